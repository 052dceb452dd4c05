package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Progress shows a spinner on stderr while a request runs.
type Progress struct {
	s *spinner.Spinner
}

// StartProgress starts a spinner with msg. When quiet is set the returned
// Progress is inert.
func StartProgress(msg string, quiet bool) *Progress {
	return startProgress(os.Stderr, msg, quiet)
}

func startProgress(w io.Writer, msg string, quiet bool) *Progress {
	if quiet {
		return &Progress{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + msg
	s.Start()
	return &Progress{s: s}
}

// Stop stops the spinner and clears its line.
func (p *Progress) Stop() {
	if p.s != nil {
		p.s.Stop()
	}
}

// Fail stops the spinner and leaves msg in red.
func (p *Progress) Fail(msg string) {
	if p.s != nil {
		p.s.FinalMSG = text.FgRed.Sprint(msg) + "\n"
		p.s.Stop()
	}
}
