package domain

import "time"

// RunSummary describes one comparison stored in a results database.
type RunSummary struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	First      string    `json:"first"`
	Second     string    `json:"second"`
	Iterations int       `json:"iterations"`
	Completed  int       `json:"completed"`
	Seed       uint64    `json:"seed"`
	EqualSize  bool      `json:"equal_size"`
	Partial    bool      `json:"partial"`
}

// RunDetail is a stored run together with its summary table.
type RunDetail struct {
	RunSummary

	Rows []ResultRow `json:"rows"`

	// Morphemes counts the stored per-morpheme records by sample.
	Morphemes map[SampleID]int `json:"morphemes"`
}

// NewRunSummary builds the stored header of a comparison.
func NewRunSummary(c *Comparison) RunSummary {
	s := RunSummary{
		ID:        c.RunID,
		CreatedAt: c.CreatedAt,
		First:     c.First(),
		Second:    c.Second(),
		EqualSize: c.EqualSize,
	}
	if c.Resample != nil {
		s.Iterations = c.Resample.Iterations
		s.Completed = c.Resample.Completed
		s.Seed = c.Resample.Seed
		s.Partial = c.Resample.Partial
	}
	return s
}
