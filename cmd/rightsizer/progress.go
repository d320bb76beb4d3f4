package main

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/younsl/rightsizer/pkg/report"
)

// progress renders assembler events with a spinner. Lines that must stay on
// screen are printed while the spinner is paused.
type progress struct {
	out     io.Writer
	spinner *spinner.Spinner
	start   time.Time
}

func newProgress(out io.Writer) *progress {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Writer = out
	return &progress{out: out, spinner: s, start: time.Now()}
}

// Handle is passed to report.Options.OnProgress
func (p *progress) Handle(e report.Event) {
	switch e.Kind {
	case report.EventInventory:
		fmt.Fprintf(p.out, "Found %d running EC2 instance(s)\n", e.Total)
		if e.Total > 0 {
			p.spinner.Start()
		}
	case report.EventAnalyzing:
		p.spinner.Suffix = fmt.Sprintf(" [%d/%d] Analyzing %s...", e.Index, e.Total, e.InstanceID)
	case report.EventNoData:
		p.println(fmt.Sprintf(" Analyzing %s...\n No metrics found.", e.InstanceID))
	case report.EventFailed:
		p.println(fmt.Sprintf(" Analyzing %s...\n Error with %s: %v", e.InstanceID, e.InstanceID, e.Err))
	}
}

func (p *progress) println(line string) {
	active := p.spinner.Active()
	if active {
		p.spinner.Stop()
	}
	fmt.Fprintln(p.out, line)
	if active {
		p.spinner.Start()
	}
}

// Done stops the spinner with a completion message
func (p *progress) Done(analyzed int) {
	if !p.spinner.Active() {
		return
	}
	p.spinner.FinalMSG = fmt.Sprintf("✓ [%d instances analyzed] EC2 utilization analyzed - Completed in %.2f seconds\n",
		analyzed, time.Since(p.start).Seconds())
	p.spinner.Stop()
}

// Abort stops the spinner without a completion message
func (p *progress) Abort() {
	p.spinner.FinalMSG = ""
	p.spinner.Stop()
}
