package frameasync

import (
	"slices"
	"testing"
)

func TestJoinHandle(t *testing.T) {
	t.Run("LatestWaiter", func(t *testing.T) {
		var q wakequeue
		var h JoinHandle[int]

		if h.Poll(&Context{waker: Waker{q: &q, id: 1}}).IsReady() {
			t.Fatal("empty handle is ready")
		}
		if h.Poll(&Context{waker: Waker{q: &q, id: 2}}).IsReady() {
			t.Fatal("empty handle is ready")
		}

		h.fill(3)

		if ids := q.swap(nil); !slices.Equal(ids, []TaskID{2}) {
			t.Fatalf("woken %v, want [2]", ids)
		}
		if !h.Done() {
			t.Fatal("filled handle is not done")
		}
		if v, ok := h.Poll(&Context{}).Value(); !ok || v != 3 {
			t.Fatalf("got (%v, %v), want (3, true)", v, ok)
		}
	})
	t.Run("ExactlyOnce", func(t *testing.T) {
		var h JoinHandle[string]

		h.fill("x")
		h.Poll(&Context{})

		defer func() {
			if recover() == nil {
				t.Fatal("second poll did not panic")
			}
		}()

		h.Poll(&Context{})
	})
	t.Run("FillTwice", func(t *testing.T) {
		var h JoinHandle[int]

		h.fill(1)

		defer func() {
			if recover() == nil {
				t.Fatal("second fill did not panic")
			}
		}()

		h.fill(2)
	})
}

func TestWaker(t *testing.T) {
	var q wakequeue

	Waker{}.Wake()
	Waker{q: &q, id: 5}.Wake()
	Waker{q: &q, id: 5}.Wake()

	if ids := q.swap(nil); !slices.Equal(ids, []TaskID{5, 5}) {
		t.Fatalf("woken %v, want [5 5]", ids)
	}

	q.close()
	Waker{q: &q, id: 6}.Wake()

	if ids := q.swap(nil); len(ids) != 0 {
		t.Fatalf("closed queue took %v", ids)
	}
}
