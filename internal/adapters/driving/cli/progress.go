package cli

import (
	"os"

	"github.com/gosuri/uiprogress"
	"golang.org/x/term"
)

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// resampleProgress returns a progress callback that drives a terminal bar
// and a stop function. Both are no-ops when disabled.
func resampleProgress(enabled bool) (func(done, total int), func()) {
	if !enabled || !isTerminal() {
		return nil, func() {}
	}

	p := uiprogress.New()
	p.Start()

	var bar *uiprogress.Bar
	update := func(done, total int) {
		if bar == nil {
			bar = p.AddBar(total)
			bar.AppendCompleted()
			bar.PrependElapsed()
		}
		_ = bar.Set(done)
	}
	return update, p.Stop
}
