package archive

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📦 Result holds the outcome of a synchronous subprocess invocation. The
// exit code and captured output are the only feedback channel we get from
// the archiver.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// 🔌 Executor runs external commands synchronously, blocking until exit.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// execRunner is the os/exec backed Executor used outside of tests.
type execRunner struct{}

// 🏭 NewExecutor creates the default subprocess executor.
func NewExecutor() Executor {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	zerolog.Ctx(ctx).Debug().Str("command", name).Strs("args", args).Msg("running subprocess")

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return nil, errors.Errorf("running %s: %w", name, err)
	}
	return res, nil
}
