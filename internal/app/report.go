package app

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// maxReportLineLen keeps code and output lines inside the page width for
// the 9pt Courier blocks.
const maxReportLineLen = 100

// Report lays out solutions into a single paginated PDF. The document is
// atomic: any rendering failure aborts the whole report.
type Report struct {
	pdf *fpdf.Fpdf
	// tr re-encodes UTF-8 into the cp1252 bytes the core fonts expect.
	// Without it a Latin-1 rune like é reaches the page as two mojibake
	// characters.
	tr func(string) string
}

func NewReport() *Report {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Programming Problem Solutions", "", 1, "C", false, 0, "")
	pdf.Ln(5)
	return &Report{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// BuildReport assembles all solutions in order and writes the PDF to path.
func BuildReport(solutions []Solution, path string) error {
	report := NewReport()
	for _, sol := range solutions {
		report.AddSolution(sol)
	}
	return report.Write(path)
}

// AddSolution appends one problem section: statement, source, and the
// execution output or the failure that replaced it.
func (r *Report) AddSolution(sol Solution) {
	statement := CleanText(sol.Problem.Statement)
	code := CleanText(sol.SourceCode)
	output := CleanText(outputBlock(sol))

	if r.pdf.GetY() > 260 {
		r.pdf.AddPage()
	}

	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.CellFormat(0, 10, fmt.Sprintf("Question %d", sol.Problem.Index), "", 1, "L", false, 0, "")
	r.pdf.Ln(2)

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.MultiCell(0, 5, r.tr(statement), "", "L", false)
	r.pdf.Ln(5)

	if code != "" {
		r.pdf.SetFont("Arial", "B", 12)
		r.pdf.CellFormat(0, 8, "C Code Solution:", "", 1, "L", false, 0, "")
		r.writeMonoBlock(code)
		r.pdf.Ln(5)
	}

	if r.pdf.GetY() > 250 {
		r.pdf.AddPage()
	}

	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.CellFormat(0, 8, "Execution Output:", "", 1, "L", false, 0, "")
	r.writeMonoBlock(output)

	r.pdf.Ln(10)
	r.pdf.Line(10, r.pdf.GetY(), 200, r.pdf.GetY())
	r.pdf.Ln(10)
}

// writeMonoBlock emits a fixed-width block line by line with manual page
// breaks, since a single MultiCell would not reset the font after a break.
func (r *Report) writeMonoBlock(text string) {
	r.pdf.SetFont("Courier", "", 9)
	for _, line := range strings.Split(text, "\n") {
		if r.pdf.GetY() > 270 {
			r.pdf.AddPage()
			r.pdf.SetFont("Courier", "", 9)
		}
		r.pdf.CellFormat(0, 5, r.tr(truncateLine(line)), "", 1, "L", false, 0, "")
	}
}

// truncateLine shortens over-long lines on rune boundaries; slicing bytes
// could split a multi-byte rune and hand the renderer an orphan
// continuation byte.
func truncateLine(line string) string {
	runes := []rune(line)
	if len(runes) <= maxReportLineLen {
		return line
	}
	return string(runes[:maxReportLineLen-3]) + "..."
}

// Write serializes the document. A backend rejection here is fatal to the
// whole run: the report is produced atomically at the end.
func (r *Report) Write(path string) error {
	if err := r.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("rendering report failed: %w", err)
	}
	return nil
}

// outputBlock picks what stands in for the program output: the captured
// run, or the first failure that stopped this problem's pipeline.
func outputBlock(sol Solution) string {
	switch {
	case sol.GenError != "":
		return "Code generation failed:\n" + sol.GenError
	case sol.CompileError != "":
		return sol.CompileError
	case sol.RunError != "":
		return formatRun(sol, sol.RunError)
	default:
		return formatRun(sol, sol.RunOutput)
	}
}

// formatRun prefixes the output with the synthesized inputs, labeled with
// the program's own prompts where any were found.
func formatRun(sol Solution, body string) string {
	if len(sol.InputsUsed) == 0 {
		return body
	}
	var b strings.Builder
	b.WriteString("Input/Output Simulation:\n")
	for i, input := range sol.InputsUsed {
		if i < len(sol.InputPrompts) {
			b.WriteString(sol.InputPrompts[i])
		}
		b.WriteString(input)
		b.WriteByte('\n')
	}
	b.WriteString("\nProgram Output:\n")
	b.WriteString(body)
	return b.String()
}
