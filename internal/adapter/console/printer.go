package console

import (
	"fmt"
	"io"

	"cloud-connectivity-check/internal/core/domain"

	"github.com/charmbracelet/lipgloss"
)

const (
	successMark = "✅"
	failureMark = "❌"
)

// labels are the service names shown to the operator.
var labels = map[domain.CheckName]string{
	domain.CheckDatabase:    "Neon",
	domain.CheckObjectStore: "R2",
	domain.CheckCache:       "Upstash Redis",
}

// Printer writes the human-readable report, one block per check.
// Colors are only emitted when w is a terminal.
type Printer struct {
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	detail  lipgloss.Style
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return newPrinter(w, lipgloss.NewRenderer(w))
}

func newPrinter(w io.Writer, r *lipgloss.Renderer) *Printer {
	return &Printer{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true),
		detail:  r.NewStyle().Foreground(lipgloss.Color("#8A8A8A")),
	}
}

// Label returns the display name of a check.
func Label(name domain.CheckName) string {
	if l, ok := labels[name]; ok {
		return l
	}
	return string(name)
}

// Print writes the lines for one result.
func (p *Printer) Print(res domain.Result) {
	label := Label(res.Check)
	if res.OK {
		fmt.Fprintln(p.w, p.success.Render(fmt.Sprintf("%s %s connection successful!", successMark, label)))
	} else {
		msg := "unknown error"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		fmt.Fprintln(p.w, p.failure.Render(fmt.Sprintf("%s %s connection failed: %s", failureMark, label, msg)))
	}
	for _, d := range res.Details {
		fmt.Fprintln(p.w, p.detail.Render("   "+d))
	}
}

// PrintReport writes every result in run order.
func (p *Printer) PrintReport(report domain.Report) {
	for _, res := range report.Results {
		p.Print(res)
	}
}
