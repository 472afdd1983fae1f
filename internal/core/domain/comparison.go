package domain

import "time"

// Control names the confounds removed before a statistic was computed.
type Control string

// Control levels of the result table.
const (
	// ControlNone is the raw corpus.
	ControlNone Control = "None"

	// ControlLexical is the corpus restricted to shared vocabulary.
	ControlLexical Control = "Lexical"

	// ControlBoth adds sample-size equalisation by resampling.
	ControlBoth Control = "Both"
)

// ResultRow is one line of the summary table.
type ResultRow struct {
	Control    Control  `json:"control"`
	Sample     SampleID `json:"sample"`
	Analysis   string   `json:"analysis"`
	CREMean    float64  `json:"cre_mean"`
	CREStdDev  float64  `json:"cre_sd"`
	Tokens     int      `json:"tokens"`
	Types      int      `json:"types"`
	TRI        float64  `json:"tri"`
	TRIPercent float64  `json:"tri_percent"`
}

// AnalysisRequest configures a two-corpus comparison.
type AnalysisRequest struct {
	// FirstPath and SecondPath locate the two corpora.
	FirstPath  string
	SecondPath string

	// Iterations is the requested number of resample draws.
	Iterations int

	// Seed makes the resampling reproducible. Nil draws a fresh seed.
	Seed *uint64

	// Workers bounds resample concurrency. Zero uses the service default.
	Workers int

	// Progress is called after each completed resample iteration.
	// Calls are serialised. May be nil.
	Progress func(done, total int)
}

// Comparison is everything a two-corpus run produces.
type Comparison struct {
	// RunID uniquely identifies the run in exports.
	RunID string `json:"run_id"`

	// CreatedAt is when the run started.
	CreatedAt time.Time `json:"created_at"`

	// Unfiltered holds samples 1 and 2 before any control.
	Unfiltered [2]SampleAnalysis `json:"unfiltered"`

	// Lexical holds samples 1 and 2 after vocabulary filtering.
	Lexical [2]SampleAnalysis `json:"lexical"`

	// Filter is the vocabulary filter output.
	Filter LexicalFilter `json:"-"`

	// EqualSize is true when the filtered corpora had the same size and
	// resampling was skipped.
	EqualSize bool `json:"equal_size"`

	// Resample is nil when EqualSize is true.
	Resample *ResampleResult `json:"resample,omitempty"`
}

// First returns the name of the first corpus.
func (c *Comparison) First() string {
	return c.Unfiltered[0].Name
}

// Second returns the name of the second corpus.
func (c *Comparison) Second() string {
	return c.Unfiltered[1].Name
}

// Rows builds the summary table: four unfiltered rows, four lexical rows and,
// unless resampling was skipped, two resampled rows.
//
// The Types column counts the partner position of each analysis: suffix types
// for Prefix/Suffix and prefix types for Suffix/Prefix. Lexical rows count the
// partner types shared by both original corpora.
func (c *Comparison) Rows() []ResultRow {
	rows := make([]ResultRow, 0, 10)

	for _, s := range c.Unfiltered {
		for _, p := range Positions() {
			st := s.At(p).Stat
			rows = append(rows, statRow(ControlNone, s.Sample, p, st, s.Tokens, st.PartnerTypes))
		}
	}

	for _, s := range c.Lexical {
		for _, p := range Positions() {
			st := s.At(p).Stat
			shared := len(c.Filter.Shared(p.Partner()))
			rows = append(rows, statRow(ControlLexical, s.Sample, p, st, s.Tokens, shared))
		}
	}

	if c.Resample != nil {
		for _, p := range Positions() {
			st := c.Resample.At(p).Stat
			rows = append(rows, statRow(ControlBoth, SampleResampled, p, st, c.Resample.DrawSize, st.PartnerTypes))
		}
	}

	return rows
}

func statRow(control Control, sample SampleID, p Position, st AggregateStat, tokens, types int) ResultRow {
	return ResultRow{
		Control:    control,
		Sample:     sample,
		Analysis:   p.Analysis(),
		CREMean:    st.CREMean,
		CREStdDev:  st.CREStdDev,
		Tokens:     tokens,
		Types:      types,
		TRI:        st.TRI,
		TRIPercent: st.TRIPercent,
	}
}
