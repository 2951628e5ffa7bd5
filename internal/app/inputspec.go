package app

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// scanfCallRe matches a call to scanf proper. The leading group keeps
// fscanf/sscanf from matching; only stdin reads need synthesized input.
var scanfCallRe = regexp.MustCompile(`(?:^|[^\w])scanf\s*\(\s*("(?:[^"\\]|\\.)*")?`)

// printfPromptRe pulls the string literal out of printf calls so inputs can
// be labeled with the prompt the program printed before reading them.
var printfPromptRe = regexp.MustCompile(`printf\s*\(\s*"((?:[^"\\]|\\.)*)"`)

// DetectInputs lexically scans C source for scanf call sites and infers how
// many values the program reads from stdin and of which kinds. Best effort:
// a call site whose format string cannot be parsed (or is not a literal)
// counts as a single string input.
func DetectInputs(source string) InputSpec {
	var spec InputSpec
	for _, match := range scanfCallRe.FindAllStringSubmatch(source, -1) {
		literal := match[1]
		if literal == "" {
			// Format is not a string literal; nothing to parse.
			spec.Kinds = append(spec.Kinds, KindString)
			continue
		}
		kinds, ok := parseFormat(literal[1 : len(literal)-1])
		if !ok {
			spec.Kinds = append(spec.Kinds, KindString)
			continue
		}
		spec.Kinds = append(spec.Kinds, kinds...)
	}
	spec.ExpectedCount = len(spec.Kinds)
	return spec
}

// parseFormat walks a scanf format string and classifies each conversion
// that assigns a value. Returns ok=false when a conversion cannot be
// understood, so the caller can fall back to a conservative guess.
func parseFormat(format string) ([]InputKind, bool) {
	var kinds []InputKind
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i >= len(format) {
			return nil, false
		}
		if format[i] == '%' {
			continue
		}
		suppressed := false
		if format[i] == '*' {
			suppressed = true
			i++
		}
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			i++
		}
		for i < len(format) && (format[i] == 'h' || format[i] == 'l' || format[i] == 'L' || format[i] == 'z' || format[i] == 'j') {
			i++
		}
		if i >= len(format) {
			return nil, false
		}
		var kind InputKind
		switch format[i] {
		case 'd', 'i', 'u', 'o', 'x', 'X':
			kind = KindInt
		case 'f', 'e', 'E', 'g', 'G', 'a':
			kind = KindFloat
		case 'c', 's':
			kind = KindString
		case '[':
			kind = KindString
			for i < len(format) && format[i] != ']' {
				i++
			}
		case 'n':
			continue
		default:
			return nil, false
		}
		if !suppressed {
			kinds = append(kinds, kind)
		}
	}
	return kinds, true
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Synthesize produces one stdin line per expected input, matching its kind.
// Values only need to parse cleanly; they carry no meaning.
func Synthesize(spec InputSpec, rng *rand.Rand) []string {
	if spec.ExpectedCount == 0 {
		return nil
	}
	lines := make([]string, 0, spec.ExpectedCount)
	for _, kind := range spec.Kinds {
		switch kind {
		case KindInt:
			lines = append(lines, fmt.Sprintf("%d", rng.Intn(2001)-1000))
		case KindFloat:
			lines = append(lines, fmt.Sprintf("%.2f", rng.Float64()*2000-1000))
		default:
			token := make([]byte, 6)
			for i := range token {
				token[i] = tokenAlphabet[rng.Intn(len(tokenAlphabet))]
			}
			lines = append(lines, string(token))
		}
	}
	return lines
}

// ExtractPrompts pulls printf literals out of the source so the report can
// pair each synthesized input with the prompt shown before it was read.
// Purely cosmetic and best effort, like the detection itself.
func ExtractPrompts(source string) []string {
	var prompts []string
	for _, match := range printfPromptRe.FindAllStringSubmatch(source, -1) {
		prompt := strings.ReplaceAll(match[1], `\n`, "")
		prompt = strings.TrimSpace(prompt)
		if prompt != "" {
			prompts = append(prompts, prompt)
		}
	}
	return prompts
}
