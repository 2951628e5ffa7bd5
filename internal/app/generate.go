package app

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const generatorSystemPrompt = "You are a C programming expert. Provide only code, no explanations."

// minSourceLen guards against the backend answering with a fragment or an
// apology instead of a program.
const minSourceLen = 20

// Generator turns a problem statement into cleaned, attributable C source.
type Generator struct {
	Client   Completer
	Identity Identity
	// Models are tried in order until one yields usable source.
	Models  []string
	Timeout time.Duration
}

func NewGenerator(client Completer, cfg Config) *Generator {
	models := []string{cfg.Model}
	if cfg.FallbackModel != "" && cfg.FallbackModel != cfg.Model {
		models = append(models, cfg.FallbackModel)
	}
	return &Generator{
		Client:   client,
		Identity: cfg.Identity,
		Models:   models,
		Timeout:  cfg.GenTimeout(),
	}
}

// Generate requests a solution for the statement and returns cleaned source.
// Each configured model gets one attempt before the whole generation is
// reported as failed.
func (g *Generator) Generate(ctx context.Context, statement string) (string, error) {
	prompt := g.buildPrompt(statement)

	var lastErr error
	for _, model := range g.Models {
		reqCtx, cancel := context.WithTimeout(ctx, g.Timeout)
		raw, err := g.Client.Complete(reqCtx, model, generatorSystemPrompt, prompt)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}
		code := cleanCode(raw)
		if len(code) < minSourceLen {
			lastErr = fmt.Errorf("model %s returned no usable source", model)
			continue
		}
		return g.withIdentityHeader(code), nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no models configured")
	}
	return "", fmt.Errorf("generation failed: %w", lastErr)
}

func (g *Generator) buildPrompt(statement string) string {
	return fmt.Sprintf(
		"Write a complete, self-contained C program that solves the following problem. "+
			"Read any required values from standard input with scanf. "+
			"Only provide the code, no explanations:\n\n%s", statement)
}

// withIdentityHeader prepends the author identification comment lines.
func (g *Generator) withIdentityHeader(code string) string {
	id := g.Identity
	if id.Name == "" && id.Roll == "" && id.Section == "" {
		return code
	}
	var b strings.Builder
	if id.Name != "" {
		fmt.Fprintf(&b, "// Name: %s\n", id.Name)
	}
	if id.Roll != "" {
		fmt.Fprintf(&b, "// Roll no: %s\n", id.Roll)
	}
	if id.Section != "" {
		fmt.Fprintf(&b, "// Section: %s\n", id.Section)
	}
	b.WriteString(code)
	return b.String()
}

// cleanCode strips markdown fencing and any prose around the program body.
// Backends often wrap the answer in ```c fences or add commentary before
// the first #include and after the final brace.
func cleanCode(raw string) string {
	code := CleanText(strings.TrimSpace(raw))

	if strings.HasPrefix(code, "```") {
		parts := strings.Split(code, "```")
		if len(parts) > 1 {
			code = strings.TrimSpace(parts[1])
			// Drop the language tag on the opening fence.
			if strings.HasPrefix(code, "c\n") || strings.HasPrefix(code, "C\n") {
				code = strings.TrimSpace(code[1:])
			} else if code == "c" || code == "C" {
				code = ""
			}
		}
	}

	if start := strings.Index(code, "#include"); start != -1 {
		code = code[start:]
	}
	if last := strings.LastIndex(code, "}"); last != -1 {
		code = code[:last+1]
	}
	return code
}
