// Package export builds the result exporters selected by output settings.
//
// Every file exporter writes through atomicfile, so an interrupted export
// never leaves a truncated table behind.
//
// # Exporters
//
//   - csvfile: results_creativity.csv, iterations_*.csv, summary_table.csv
//   - report: feedback_file.txt
//   - sample: <corpus>_sample.txt, the last resample draw
//   - sqlite: the results database (storage/sqlite)
package export
