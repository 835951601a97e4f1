package frame

import "testing"

func TestFlushRunsInOrder(t *testing.T) {
	q := NewQueue()
	var got []int
	q.RequestFrame(func() { got = append(got, 1) })
	q.RequestFrame(func() { got = append(got, 2) })

	if n := q.Flush(); n != 2 {
		t.Fatalf("Flush ran %d callbacks, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("callbacks ran as %v, want [1 2]", got)
	}
	if q.Pending() != 0 {
		t.Errorf("pending = %d after flush, want 0", q.Pending())
	}
}

func TestRequestDuringFlushRunsNextFlush(t *testing.T) {
	q := NewQueue()
	runs := 0
	var tick func()
	tick = func() {
		runs++
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)

	q.Flush()
	if runs != 1 {
		t.Fatalf("runs = %d after first flush, want 1", runs)
	}
	q.Flush()
	q.Flush()
	if runs != 3 {
		t.Errorf("runs = %d after three flushes, want 3", runs)
	}
}

func TestCancelBeforeFlush(t *testing.T) {
	q := NewQueue()
	ran := false
	id := q.RequestFrame(func() { ran = true })
	q.CancelFrame(id)

	if q.Flush() != 0 || ran {
		t.Error("cancelled callback should not run")
	}
}

func TestCancelLaterEntryDuringFlush(t *testing.T) {
	q := NewQueue()
	ran := false
	var second ID
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })

	if n := q.Flush(); n != 1 {
		t.Errorf("Flush ran %d callbacks, want 1", n)
	}
	if ran {
		t.Error("callback cancelled mid-flush should not run")
	}
}

func TestCancelUnknownIsNoop(t *testing.T) {
	q := NewQueue()
	q.CancelFrame(42)
	q.RequestFrame(func() {})
	q.CancelFrame(0)
	if q.Pending() != 1 {
		t.Errorf("pending = %d, want 1", q.Pending())
	}
}

func TestIDsAreNonZeroAndUnique(t *testing.T) {
	q := NewQueue()
	a := q.RequestFrame(func() {})
	b := q.RequestFrame(func() {})
	if a == 0 || b == 0 || a == b {
		t.Errorf("ids = %d, %d", a, b)
	}
}
