package app

// Problem is one programming exercise statement read from the questions file.
// Index is its 1-based position in the file.
type Problem struct {
	Index     int
	Statement string
}

// Solution carries the generated code and everything that happened to it.
// It is owned by the worker that processes its Problem and is never touched
// by another goroutine until the orchestrator has collected it.
type Solution struct {
	Problem Problem

	SourceCode string
	GenError   string

	Compiled     bool
	CompileError string

	// InputsUsed holds the synthesized stdin lines, one per detected input.
	InputsUsed []string
	// InputPrompts holds best-effort printf prompt texts paired with
	// InputsUsed for display in the report. May be shorter than InputsUsed.
	InputPrompts []string

	RunOutput string
	RunError  string
}

// Failed reports whether any stage of the pipeline failed for this problem.
func (s *Solution) Failed() bool {
	return s.GenError != "" || s.CompileError != "" || s.RunError != ""
}

// InputKind classifies one scanf conversion.
type InputKind int

const (
	KindInt InputKind = iota
	KindFloat
	KindString
)

func (k InputKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// InputSpec describes how many values a program reads from stdin and of
// which kinds, in reading order. Derived from the generated source by
// DetectInputs and consumed only by Synthesize.
type InputSpec struct {
	ExpectedCount int
	Kinds         []InputKind
}
