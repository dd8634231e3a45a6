// Package interpreter executes parsed pseudocode programs.
package interpreter

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/runtime"
)

const (
	// DefaultMaxIterations is the per-loop iteration ceiling.
	DefaultMaxIterations = 10000
	// DefaultMaxCallDepth bounds subroutine recursion.
	DefaultMaxCallDepth = 1000
)

// Options configures a run. Zero values select the defaults.
type Options struct {
	Output        io.Writer
	Input         LineSource
	MaxIterations int
	MaxCallDepth  int
	Random        *rand.Rand
	Logger        *slog.Logger
}

// Interpreter drives evaluation of one program against its own variable state.
type Interpreter struct {
	state         *runtime.VariableState
	out           io.Writer
	in            LineSource
	maxIterations int
	maxCallDepth  int
	rng           *rand.Rand
	logger        *slog.Logger
	ctx           context.Context
}

// New returns an interpreter with an empty variable state.
func New(opts Options) *Interpreter {
	i := &Interpreter{
		state:         runtime.NewVariableState(),
		out:           opts.Output,
		in:            opts.Input,
		maxIterations: opts.MaxIterations,
		maxCallDepth:  opts.MaxCallDepth,
		rng:           opts.Random,
		logger:        opts.Logger,
		ctx:           context.Background(),
	}
	if i.out == nil {
		i.out = os.Stdout
	}
	if i.in == nil {
		i.in = NewLinesSource(nil)
	}
	if i.maxIterations <= 0 {
		i.maxIterations = DefaultMaxIterations
	}
	if i.maxCallDepth <= 0 {
		i.maxCallDepth = DefaultMaxCallDepth
	}
	if i.rng == nil {
		i.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if i.logger == nil {
		i.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return i
}

// State exposes the variable state, mainly for tests and tooling.
func (i *Interpreter) State() *runtime.VariableState {
	return i.state
}

// Execute runs every top-level statement in order and stops at the first error.
func (i *Interpreter) Execute(program *ast.Program) error {
	return i.ExecuteContext(context.Background(), program)
}

// ExecuteContext is Execute with cancellation, checked before every statement.
func (i *Interpreter) ExecuteContext(ctx context.Context, program *ast.Program) error {
	if ctx == nil {
		ctx = context.Background()
	}
	i.ctx = ctx
	i.logger.Debug("run started", "statements", len(program.Statements))
	start := time.Now()
	for _, stmt := range program.Statements {
		if _, err := i.execStatement(stmt); err != nil {
			i.logger.Debug("run failed", "error", err, "elapsed", time.Since(start))
			return err
		}
	}
	i.logger.Debug("run finished", "elapsed", time.Since(start))
	return nil
}

type flowKind int

const (
	flowNormal flowKind = iota
	flowReturn
)

// outcome is how a statement finished. RETURN travels up through enclosing
// blocks as an outcome, never as an error.
type outcome struct {
	kind  flowKind
	value ast.Value
}

var normal = outcome{kind: flowNormal}
