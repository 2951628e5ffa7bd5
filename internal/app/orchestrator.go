package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Orchestrator fans problems out across a bounded pool of workers. Each
// worker carries one problem through generate, detect, synthesize, build
// and run before taking the next. Completion order is arbitrary; results
// come back in original problem order.
type Orchestrator struct {
	Generator  *Generator
	Pipeline   *Pipeline
	Logger     *zap.Logger
	MaxWorkers int

	// OnSolved, when set, is called from worker goroutines as each
	// solution finishes. Used for progress reporting.
	OnSolved func(Solution)
}

func NewOrchestrator(gen *Generator, pipe *Pipeline, logger *zap.Logger, maxWorkers int) *Orchestrator {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	return &Orchestrator{
		Generator:  gen,
		Pipeline:   pipe,
		Logger:     logger,
		MaxWorkers: maxWorkers,
	}
}

// Solve processes every problem and returns one Solution per problem, in
// input order. A failure at any stage of one problem never cancels or
// blocks the others; Solve waits for all workers to drain.
func (o *Orchestrator) Solve(ctx context.Context, problems []Problem) []Solution {
	if len(problems) == 0 {
		return nil
	}
	workerLimit := o.MaxWorkers
	if workerLimit > len(problems) {
		workerLimit = len(problems)
	}

	jobs := make(chan Problem)
	// Indexed by original position so unordered completion cannot
	// reorder the report.
	solutions := make([]Solution, len(problems))
	var wg sync.WaitGroup

	// Workers started within the same nanosecond would otherwise share a
	// seed and synthesize identical inputs.
	seed := time.Now().UnixNano()
	worker := func(id int) {
		defer wg.Done()
		rng := rand.New(rand.NewSource(seed + int64(id)))
		for problem := range jobs {
			sol := o.solveOne(ctx, problem, rng)
			solutions[problem.Index-1] = sol
			if o.OnSolved != nil {
				o.OnSolved(sol)
			}
		}
	}

	wg.Add(workerLimit)
	for i := 0; i < workerLimit; i++ {
		go worker(i)
	}

	for _, problem := range problems {
		jobs <- problem
	}
	close(jobs)
	wg.Wait()

	return solutions
}

func (o *Orchestrator) solveOne(ctx context.Context, problem Problem, rng *rand.Rand) Solution {
	start := time.Now()
	sol := Solution{Problem: problem}

	code, err := o.Generator.Generate(ctx, problem.Statement)
	if err != nil {
		sol.GenError = err.Error()
		o.Logger.Warn("generation failed",
			zap.Int("problem", problem.Index),
			zap.Error(err))
		return sol
	}
	sol.SourceCode = code

	spec := DetectInputs(code)
	sol.InputsUsed = Synthesize(spec, rng)
	if spec.ExpectedCount > 0 {
		sol.InputPrompts = ExtractPrompts(code)
	}

	o.Pipeline.BuildAndRun(ctx, &sol)

	o.Logger.Info("problem finished",
		zap.Int("problem", problem.Index),
		zap.Bool("compiled", sol.Compiled),
		zap.Int("inputs", len(sol.InputsUsed)),
		zap.Duration("elapsed", time.Since(start)))
	return sol
}
