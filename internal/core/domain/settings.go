package domain

import "runtime"

// DefaultIterations is the resample iteration count used when none is configured.
const DefaultIterations = 100

// ResampleSettings holds resampler configuration.
type ResampleSettings struct {
	// Iterations is the number of resample draws.
	Iterations int `json:"iterations"`

	// Workers bounds the number of concurrent iterations.
	Workers int `json:"workers"`

	// Seed fixes the random stream. Nil means a fresh seed per run.
	Seed *uint64 `json:"seed,omitempty"`
}

// OutputSettings controls what a comparison writes to disk.
type OutputSettings struct {
	// Dir is the directory output files are written to.
	Dir string `json:"dir"`

	// CSV enables the results, iterations and summary CSV files.
	CSV bool `json:"csv"`

	// Report enables feedback_file.txt.
	Report bool `json:"report"`

	// Sample enables the last resample draw file.
	Sample bool `json:"sample"`

	// Database is the SQLite file runs are exported to. Empty disables it.
	Database string `json:"database,omitempty"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Resample holds resampler settings.
	Resample ResampleSettings `json:"resample"`

	// Output holds export settings.
	Output OutputSettings `json:"output"`
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Resample: ResampleSettings{
			Iterations: DefaultIterations,
			Workers:    runtime.NumCPU(),
		},
		Output: OutputSettings{
			Dir:    ".",
			CSV:    true,
			Report: true,
			Sample: true,
		},
	}
}

// AnyEnabled reports whether at least one output is switched on.
func (o OutputSettings) AnyEnabled() bool {
	return o.CSV || o.Report || o.Sample || o.Database != ""
}
