package domain

// SampleID numbers the samples of a comparison.
type SampleID int

// Samples of a comparison.
const (
	// SampleFirst is the first input corpus.
	SampleFirst SampleID = 1

	// SampleSecond is the second input corpus.
	SampleSecond SampleID = 2

	// SampleResampled is the synthetic sample aggregated from resample draws.
	SampleResampled SampleID = 3
)

// MorphemeRecord is the creativity of one morpheme at one position of one
// sample. CRE counts distinct partner types, not token frequency.
type MorphemeRecord struct {
	Sample   SampleID `json:"sample"`
	Position Position `json:"position"`
	Morpheme string   `json:"morpheme"`
	CRE      int      `json:"cre"`
}

// MorphemeMean is the mean creativity of a morpheme across resample draws.
type MorphemeMean struct {
	Sample   SampleID `json:"sample"`
	Position Position `json:"position"`
	Morpheme string   `json:"morpheme"`
	CRE      float64  `json:"cre"`

	// Draws is the number of iterations in which the morpheme appeared.
	Draws int `json:"draws"`
}

// IterationRecord is the creativity of a morpheme in one resample draw.
type IterationRecord struct {
	Iteration int      `json:"iteration"`
	Position  Position `json:"position"`
	Morpheme  string   `json:"morpheme"`
	CRE       int      `json:"cre"`
}

// AggregateStat summarises the creativity of every morpheme at one position
// of one sample.
type AggregateStat struct {
	Sample   SampleID `json:"sample"`
	Position Position `json:"position"`

	// CREMean is the mean CRE over all morphemes at the position.
	CREMean float64 `json:"cre_mean"`

	// CREStdDev is the sample standard deviation (n-1) of CRE.
	// Zero when fewer than two morphemes exist.
	CREStdDev float64 `json:"cre_sd"`

	// TRI is the fraction of morphemes used with exactly one partner type.
	TRI float64 `json:"tri"`

	// TRIPercent is TRI * 100.
	TRIPercent float64 `json:"tri_percent"`

	// TriteCount is the number of morphemes with CRE == 1.
	TriteCount int `json:"trite_count"`

	// Tokens is the size of the sample the stat was computed on.
	Tokens int `json:"tokens"`

	// Types is the number of distinct morphemes at the position.
	Types int `json:"types"`

	// PartnerTypes is the number of distinct morphemes at the partner position.
	PartnerTypes int `json:"partner_types"`
}

// PositionAnalysis holds the per-morpheme table and its aggregate for one
// position of one sample.
type PositionAnalysis struct {
	Records []MorphemeRecord `json:"records"`
	Stat    AggregateStat    `json:"stat"`
}

// SampleAnalysis holds both positions of one sample.
type SampleAnalysis struct {
	Sample SampleID         `json:"sample"`
	Name   string           `json:"name"`
	Tokens int              `json:"tokens"`
	Prefix PositionAnalysis `json:"prefix"`
	Suffix PositionAnalysis `json:"suffix"`
}

// At returns the analysis for a position.
func (a SampleAnalysis) At(p Position) PositionAnalysis {
	if p == PositionPrefix {
		return a.Prefix
	}
	return a.Suffix
}

// ResampledPosition holds the Sample-3 means and aggregate for one position.
type ResampledPosition struct {
	Means []MorphemeMean `json:"means"`
	Stat  AggregateStat  `json:"stat"`
}

// ResampleResult is the output of the resampler.
type ResampleResult struct {
	// Source is the (larger) sample the draws were taken from.
	Source SampleID `json:"source"`

	// DrawSize is the number of tokens in every draw, the smaller filtered size.
	DrawSize int `json:"draw_size"`

	// Requested is the iteration count asked for before clamping.
	Requested int `json:"requested"`

	// Iterations is the iteration count after clamping.
	Iterations int `json:"iterations"`

	// Completed is the number of iterations aggregated.
	Completed int `json:"completed"`

	// Clamped is true when Requested was outside [1, MaxIterations].
	Clamped bool `json:"clamped"`

	// Partial is true when the run was cancelled before all iterations completed.
	Partial bool `json:"partial"`

	// Seed reproduces the run when passed back in.
	Seed uint64 `json:"seed"`

	Prefix ResampledPosition `json:"prefix"`
	Suffix ResampledPosition `json:"suffix"`

	// IterationRecords holds the raw CRE of every morpheme in every draw,
	// ordered by iteration, position, morpheme.
	IterationRecords []IterationRecord `json:"-"`

	// LastDraw is the draw of the highest completed iteration.
	LastDraw []Token `json:"-"`
}

// At returns the resampled data for a position.
func (r *ResampleResult) At(p Position) ResampledPosition {
	if p == PositionPrefix {
		return r.Prefix
	}
	return r.Suffix
}

// IterationsAt returns the per-iteration records of one position.
func (r *ResampleResult) IterationsAt(p Position) []IterationRecord {
	out := make([]IterationRecord, 0, len(r.IterationRecords)/2)
	for _, rec := range r.IterationRecords {
		if rec.Position == p {
			out = append(out, rec)
		}
	}
	return out
}
