package dispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"edd/internal/domain"
	"edd/internal/function"
	"edd/internal/output"
)

// recordingFunction records every call so tests can check what reached it.
type recordingFunction struct {
	name   string
	result []string
	err    error
	panics bool
	calls  int
	got    domain.Args
}

func (f *recordingFunction) Name() string        { return f.name }
func (f *recordingFunction) Description() string { return "records calls" }
func (f *recordingFunction) Usage() string       { return "edd -f " + f.name }
func (f *recordingFunction) Execute(ctx context.Context, args domain.Args) ([]string, error) {
	f.calls++
	f.got = args
	if f.panics {
		panic("directory handle is nil")
	}
	return f.result, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestDispatcher(t *testing.T, outPath string, fns ...domain.Function) (*Dispatcher, *bytes.Buffer) {
	t.Helper()
	ctors := make([]function.Constructor, 0, len(fns))
	for _, fn := range fns {
		fn := fn
		ctors = append(ctors, func() (domain.Function, error) { return fn, nil })
	}
	reg, err := function.Build(testLogger(), nil, ctors...)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	var console bytes.Buffer
	return New(reg, &console, output.NewSink(&console, outPath), testLogger()), &console
}

func TestDispatch_ListFunctions(t *testing.T) {
	a, b, c := &recordingFunction{name: "A"}, &recordingFunction{name: "B"}, &recordingFunction{name: "C"}
	d, console := newTestDispatcher(t, "", b, c, a)

	if err := d.Dispatch(context.Background(), Request{List: true, Function: "A"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if console.String() != "B\nC\nA\n" {
		t.Fatalf("unexpected listing %q", console.String())
	}
	if a.calls+b.calls+c.calls != 0 {
		t.Fatal("listing must not execute anything")
	}
}

func TestDispatch_NotFound(t *testing.T) {
	fn := &recordingFunction{name: "Echo"}
	d, console := newTestDispatcher(t, "", fn)

	if err := d.Dispatch(context.Background(), Request{Function: "Ghost"}); err != nil {
		t.Fatalf("not found should not be an error: %v", err)
	}
	if console.String() != "Function Ghost does not exist\n" {
		t.Fatalf("unexpected output %q", console.String())
	}
	if fn.calls != 0 {
		t.Fatal("execute must not be called")
	}
}

func TestDispatch_ResolvesIgnoringCase(t *testing.T) {
	fn := &recordingFunction{name: "ListUsers", result: []string{"alice"}}
	d, _ := newTestDispatcher(t, "", fn)

	for _, name := range []string{"ListUsers", "listusers"} {
		if err := d.Dispatch(context.Background(), Request{Function: name}); err != nil {
			t.Fatalf("dispatch %s: %v", name, err)
		}
	}
	if fn.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", fn.calls)
	}
}

func TestDispatch_Info(t *testing.T) {
	fn := &recordingFunction{name: "Echo"}
	d, console := newTestDispatcher(t, "", fn)

	if err := d.Dispatch(context.Background(), Request{Function: "echo", Info: true}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	want := "Name:  Echo\nDesc:  records calls\nUsage: edd -f Echo\n"
	if console.String() != want {
		t.Fatalf("expected %q, got %q", want, console.String())
	}
	if fn.calls != 0 {
		t.Fatal("info must not execute")
	}
}

func TestDispatch_NormalizesThreads(t *testing.T) {
	cases := map[int]int{-3: 5, 0: 5, 1: 1, 12: 12}
	for in, want := range cases {
		fn := &recordingFunction{name: "Echo"}
		d, _ := newTestDispatcher(t, "", fn)
		if err := d.Dispatch(context.Background(), Request{Function: "Echo", Args: domain.Args{Threads: in}}); err != nil {
			t.Fatalf("dispatch: %v", err)
		}
		if fn.got.Threads != want {
			t.Fatalf("threads %d: expected %d, got %d", in, want, fn.got.Threads)
		}
	}
}

func TestDispatch_EmptyResults(t *testing.T) {
	d, console := newTestDispatcher(t, "", &recordingFunction{name: "Echo"})

	if err := d.Dispatch(context.Background(), Request{Function: "Echo"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if console.String() != "No results\n" {
		t.Fatalf("unexpected output %q", console.String())
	}
}

func TestDispatch_ResultsToConsoleAndFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")
	d, console := newTestDispatcher(t, out, &recordingFunction{name: "Echo", result: []string{"x", "y"}})

	if err := d.Dispatch(context.Background(), Request{Function: "Echo"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if console.String() != "x\ny\n" {
		t.Fatalf("unexpected console %q", console.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "Echo:\nx\ny\n\n" {
		t.Fatalf("unexpected file %q", data)
	}
}

func TestDispatch_PropagatesFunctionErrors(t *testing.T) {
	domainErr := domain.Failure("[-] Cannot reach dc01")
	d, console := newTestDispatcher(t, "",
		&recordingFunction{name: "Broken", err: domainErr},
		&recordingFunction{name: "Todo", err: domain.ErrNotImplemented},
	)

	if err := d.Dispatch(context.Background(), Request{Function: "Broken"}); !errors.Is(err, domainErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if err := d.Dispatch(context.Background(), Request{Function: "Todo"}); !errors.Is(err, domain.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
	if console.Len() != 0 {
		t.Fatalf("failures must not print results, got %q", console.String())
	}
}

func TestDispatch_RecoversPanic(t *testing.T) {
	d, _ := newTestDispatcher(t, "", &recordingFunction{name: "Crashy", panics: true})

	err := d.Dispatch(context.Background(), Request{Function: "Crashy"})
	if err == nil {
		t.Fatal("expected error from panicking function")
	}
}
