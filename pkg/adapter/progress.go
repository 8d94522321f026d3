package adapter

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Progress shows that a turn is being processed. Implementations run their
// own display loop and never touch session state.
type Progress interface {
	Start(message string)
	Stop()
}

type spinnerProgress struct {
	spinner *spinner.Spinner
}

// NewSpinner returns a Progress that animates a braille spinner on w. The
// spinner only animates when w is a terminal file.
func NewSpinner(w io.Writer) Progress {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	if f, ok := w.(*os.File); ok {
		s.WriterFile = f
	} else {
		s.Disable()
	}
	return &spinnerProgress{spinner: s}
}

func (p *spinnerProgress) Start(message string) {
	if p.spinner.Active() {
		return
	}
	p.spinner.Suffix = " " + message
	p.spinner.Start()
}

func (p *spinnerProgress) Stop() {
	p.spinner.Stop()
}

type nopProgress struct{}

// NopProgress returns a Progress that displays nothing
func NopProgress() Progress {
	return nopProgress{}
}

func (nopProgress) Start(string) {}
func (nopProgress) Stop()        {}
