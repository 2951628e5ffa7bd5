package app

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func requireGCC(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("gcc"); err != nil {
		t.Skip("gcc not available")
	}
}

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	return NewPipeline(cfg, zap.NewNop())
}

func TestBuildAndRunSuccess(t *testing.T) {
	requireGCC(t)
	pipe := testPipeline(t)

	sol := Solution{
		Problem:    Problem{Index: 1, Statement: "print hi"},
		SourceCode: "#include <stdio.h>\nint main() { printf(\"hi\\n\"); return 0; }\n",
	}
	pipe.BuildAndRun(context.Background(), &sol)

	assert.True(t, sol.Compiled)
	assert.Empty(t, sol.CompileError)
	assert.Empty(t, sol.RunError)
	assert.Equal(t, "hi\n", sol.RunOutput)
}

func TestBuildAndRunReadsStdin(t *testing.T) {
	requireGCC(t)
	pipe := testPipeline(t)

	sol := Solution{
		Problem:    Problem{Index: 2, Statement: "double it"},
		SourceCode: "#include <stdio.h>\nint main() { int n; scanf(\"%d\", &n); printf(\"%d\\n\", n * 2); return 0; }\n",
		InputsUsed: []string{"21"},
	}
	pipe.BuildAndRun(context.Background(), &sol)

	require.True(t, sol.Compiled)
	assert.Equal(t, "42\n", sol.RunOutput)
}

func TestBuildAndRunCompileFailure(t *testing.T) {
	requireGCC(t)
	pipe := testPipeline(t)

	sol := Solution{
		Problem:    Problem{Index: 3, Statement: "broken"},
		SourceCode: "#include <stdio.h>\nint main() { printf(\"oops\"\n",
	}
	pipe.BuildAndRun(context.Background(), &sol)

	assert.False(t, sol.Compiled)
	assert.NotEmpty(t, sol.CompileError)
	assert.Empty(t, sol.RunOutput)
	assert.Empty(t, sol.RunError)
}

func TestBuildAndRunTimeout(t *testing.T) {
	requireGCC(t)
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.RunTimeoutSec = 1
	pipe := NewPipeline(cfg, zap.NewNop())

	sol := Solution{
		Problem:    Problem{Index: 4, Statement: "spin"},
		SourceCode: "int main() { for (;;) {} return 0; }\n",
	}
	start := time.Now()
	pipe.BuildAndRun(context.Background(), &sol)

	assert.True(t, sol.Compiled)
	assert.Contains(t, sol.RunError, "timed out")
	assert.Empty(t, sol.RunOutput)
	assert.Less(t, time.Since(start), 8*time.Second)
}

func TestBuildAndRunNonZeroExit(t *testing.T) {
	requireGCC(t)
	pipe := testPipeline(t)

	sol := Solution{
		Problem:    Problem{Index: 5, Statement: "fail"},
		SourceCode: "#include <stdio.h>\nint main() { fprintf(stderr, \"boom\\n\"); return 3; }\n",
	}
	pipe.BuildAndRun(context.Background(), &sol)

	assert.True(t, sol.Compiled)
	assert.Contains(t, sol.RunError, "code 3")
	assert.Contains(t, sol.RunError, "boom")
}

func TestRunCommandMissingBinary(t *testing.T) {
	res := runCommand(context.Background(), time.Second, "", "definitely-not-a-real-binary-xyz")
	assert.Error(t, res.err)
}

func TestRunCommandDeadlineMarksTimeout(t *testing.T) {
	res := runCommand(context.Background(), 100*time.Millisecond, "", "sleep", "2")

	assert.True(t, res.timedOut)
	assert.NoError(t, res.err)
}

func TestRunCommandParentCancellationIsNotTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := runCommand(ctx, 10*time.Second, "", "sleep", "5")

	assert.False(t, res.timedOut)
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, context.Canceled)
}
