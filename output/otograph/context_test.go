// SPDX-License-Identifier: EPL-2.0

package otograph

import (
	"errors"
	"testing"
)

type fakeContext struct {
	suspends int
	resumes  int
	err      error
}

func (f *fakeContext) Suspend() error {
	if f.err != nil {
		return f.err
	}
	f.suspends++
	return nil
}

func (f *fakeContext) Resume() error {
	if f.err != nil {
		return f.err
	}
	f.resumes++
	return nil
}

func TestLease_SecondGraphResumesSuspendedContext(t *testing.T) {
	t.Parallel()

	var l lease
	ctx := &fakeContext{}

	// First graph starts and stops.
	if err := l.acquire(ctx); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	if err := l.release(ctx); err != nil {
		t.Fatalf("release() error = %v", err)
	}
	if ctx.suspends != 1 {
		t.Fatalf("suspends = %d, want 1", ctx.suspends)
	}

	// A second graph taking over the context must resume it.
	if err := l.acquire(ctx); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	if ctx.resumes != 1 {
		t.Errorf("resumes = %d, want 1", ctx.resumes)
	}
}

func TestLease_SuspendsWhenLastGraphStops(t *testing.T) {
	t.Parallel()

	var l lease
	ctx := &fakeContext{}

	for range 2 {
		if err := l.acquire(ctx); err != nil {
			t.Fatalf("acquire() error = %v", err)
		}
	}
	if ctx.resumes != 0 {
		t.Errorf("resumes = %d for a context never suspended, want 0", ctx.resumes)
	}

	if err := l.release(ctx); err != nil {
		t.Fatalf("release() error = %v", err)
	}
	if ctx.suspends != 0 {
		t.Errorf("suspends = %d with a graph still running, want 0", ctx.suspends)
	}

	if err := l.release(ctx); err != nil {
		t.Fatalf("release() error = %v", err)
	}
	if ctx.suspends != 1 {
		t.Errorf("suspends = %d, want 1", ctx.suspends)
	}

	// Extra releases do not suspend twice.
	if err := l.release(ctx); err != nil {
		t.Fatalf("release() error = %v", err)
	}
	if ctx.suspends != 1 {
		t.Errorf("suspends = %d after extra release, want 1", ctx.suspends)
	}
}

func TestLease_ResumeError(t *testing.T) {
	t.Parallel()

	var l lease
	ctx := &fakeContext{}

	if err := l.acquire(ctx); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	if err := l.release(ctx); err != nil {
		t.Fatalf("release() error = %v", err)
	}

	ctx.err = errors.New("device gone")
	if err := l.acquire(ctx); !errors.Is(err, ctx.err) {
		t.Fatalf("acquire() error = %v, want %v", err, ctx.err)
	}

	// The context stays suspended so the next start retries the resume.
	ctx.err = nil
	if err := l.acquire(ctx); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	if ctx.resumes != 1 {
		t.Errorf("resumes = %d, want 1", ctx.resumes)
	}
}
