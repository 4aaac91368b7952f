// Package dispatch resolves a requested function name against the registry,
// runs the function and routes its results to the output sink. Report turns
// whatever error comes out of that into one console line and an exit code.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"edd/internal/domain"
	"edd/internal/function"
	"edd/internal/output"
)

// Request is one parsed invocation.
type Request struct {
	Function string
	Info     bool
	List     bool
	Args     domain.Args
}

// Dispatcher runs exactly one request against a built registry.
type Dispatcher struct {
	registry *function.Registry
	console  io.Writer
	sink     *output.Sink
	logger   *slog.Logger
}

func New(registry *function.Registry, console io.Writer, sink *output.Sink, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		console:  console,
		sink:     sink,
		logger:   logger,
	}
}

// Dispatch lists, describes or executes the requested function. Not finding
// the function is informational and returns nil.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) error {
	if req.List {
		for _, name := range d.registry.Names() {
			fmt.Fprintln(d.console, name)
		}
		return nil
	}

	fn, ok := d.registry.Lookup(req.Function)
	if !ok {
		d.logger.Debug("function not found", "name", req.Function)
		fmt.Fprintf(d.console, "Function %s does not exist\n", req.Function)
		return nil
	}

	if req.Info {
		fmt.Fprintf(d.console, "Name:  %s\nDesc:  %s\nUsage: %s\n", fn.Name(), fn.Description(), fn.Usage())
		return nil
	}

	args := req.Args.Normalized()
	d.logger.Debug("executing function", "name", fn.Name(), "threads", args.Threads)

	start := time.Now()
	lines, err := d.execute(ctx, fn, args)
	if err != nil {
		d.logger.Debug("function failed", "name", fn.Name(), "elapsed", time.Since(start), "err", err)
		return err
	}
	d.logger.Debug("function finished", "name", fn.Name(), "elapsed", time.Since(start), "results", len(lines))

	return d.sink.Emit(req.Function, lines)
}

// execute runs fn, converting a panic into an error so it reaches Report
// like any other failure.
func (d *Dispatcher) execute(ctx context.Context, fn domain.Function, args domain.Args) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Debug("function panicked", "name", fn.Name(), "panic", r, "stack", string(debug.Stack()))
			lines = nil
			err = fmt.Errorf("function %s crashed: %v", fn.Name(), r)
		}
	}()
	return fn.Execute(ctx, args)
}
