package app

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	progressErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	progressStepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Progress prints one status line per finished problem. Workers report from
// their own goroutines, so writes are serialized here.
type Progress struct {
	mu    sync.Mutex
	out   io.Writer
	total int
	done  int
}

func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

func (p *Progress) Solved(sol Solution) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++

	status := progressOKStyle.Render("ok")
	switch {
	case sol.GenError != "":
		status = progressErrStyle.Render("generation failed")
	case sol.CompileError != "":
		status = progressErrStyle.Render("compile failed")
	case sol.RunError != "":
		status = progressErrStyle.Render("run failed")
	}
	counter := progressStepStyle.Render(fmt.Sprintf("[%d/%d]", p.done, p.total))
	fmt.Fprintf(p.out, "%s question %d: %s\n", counter, sol.Problem.Index, status)
}
