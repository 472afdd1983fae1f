package services

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/custodia-labs/morpho/internal/core/domain"
)

// Creativity computes CRE for every morpheme at position p: the number of
// distinct partner values it combines with. Morphemes are compared by exact
// equality. Records are sorted by morpheme.
func Creativity(sample domain.SampleID, tokens []domain.Token, p domain.Position) ([]domain.MorphemeRecord, error) {
	partners := partnerSets(tokens, p)
	if len(partners) == 0 {
		return nil, fmt.Errorf("creativity of %s: %w", p, domain.ErrEmptyTypeSet)
	}

	records := make([]domain.MorphemeRecord, 0, len(partners))
	for m, set := range partners {
		records = append(records, domain.MorphemeRecord{
			Sample:   sample,
			Position: p,
			Morpheme: m,
			CRE:      len(set),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Morpheme < records[j].Morpheme
	})
	return records, nil
}

func partnerSets(tokens []domain.Token, p domain.Position) map[string]domain.TypeSet {
	partner := p.Partner()
	out := make(map[string]domain.TypeSet)
	for _, t := range tokens {
		m := t.At(p)
		set, ok := out[m]
		if !ok {
			set = domain.NewTypeSet()
			out[m] = set
		}
		set.Add(t.At(partner))
	}
	return out
}

// Summarize aggregates the records of one position of one sample.
// tokens is the sample size and partnerTypes the number of distinct
// morphemes at the partner position; both are carried into the stat.
func Summarize(records []domain.MorphemeRecord, tokens, partnerTypes int) (domain.AggregateStat, error) {
	if len(records) == 0 {
		return domain.AggregateStat{}, fmt.Errorf("summarize: %w", domain.ErrEmptyTypeSet)
	}

	values := make([]float64, len(records))
	trite := 0
	for i, r := range records {
		values[i] = float64(r.CRE)
		if r.CRE == 1 {
			trite++
		}
	}

	return newStat(records[0].Sample, records[0].Position, values, trite, tokens, partnerTypes), nil
}

func newStat(sample domain.SampleID, p domain.Position, values []float64, trite, tokens, partnerTypes int) domain.AggregateStat {
	tri := float64(trite) / float64(len(values))
	return domain.AggregateStat{
		Sample:       sample,
		Position:     p,
		CREMean:      stat.Mean(values, nil),
		CREStdDev:    sampleStdDev(values),
		TRI:          tri,
		TRIPercent:   tri * 100,
		TriteCount:   trite,
		Tokens:       tokens,
		Types:        len(values),
		PartnerTypes: partnerTypes,
	}
}

// sampleStdDev uses the n-1 denominator and is 0 below two values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd := stat.StdDev(values, nil)
	if math.IsNaN(sd) {
		return 0
	}
	return sd
}

// AnalyseSample runs Creativity and Summarize for both positions of a sample.
func AnalyseSample(sample domain.SampleID, c *domain.Corpus) (domain.SampleAnalysis, error) {
	inv, err := IndexCorpus(c.Tokens)
	if err != nil {
		return domain.SampleAnalysis{}, fmt.Errorf("analyse %s: %w", c.Name, err)
	}

	out := domain.SampleAnalysis{Sample: sample, Name: c.Name, Tokens: c.Len()}
	for _, p := range domain.Positions() {
		records, err := Creativity(sample, c.Tokens, p)
		if err != nil {
			return domain.SampleAnalysis{}, fmt.Errorf("analyse %s: %w", c.Name, err)
		}
		st, err := Summarize(records, c.Len(), inv.Types(p.Partner()).Len())
		if err != nil {
			return domain.SampleAnalysis{}, fmt.Errorf("analyse %s: %w", c.Name, err)
		}

		pa := domain.PositionAnalysis{Records: records, Stat: st}
		if p == domain.PositionPrefix {
			out.Prefix = pa
		} else {
			out.Suffix = pa
		}
	}
	return out, nil
}
