package overlay

import "testing"

func TestQueuePreservesOrder(t *testing.T) {
	q := NewQueue()
	q.Post(Command{Kind: Loading})
	q.Post(Command{Kind: Content, Text: "A"})

	first, ok := q.TryNext()
	if !ok || first.Kind != Loading {
		t.Fatalf("First command = %+v, %v; want Loading", first, ok)
	}
	second, ok := q.TryNext()
	if !ok || second.Kind != Content || second.Text != "A" {
		t.Fatalf("Second command = %+v, %v; want Content(A)", second, ok)
	}
}

func TestQueueTryNextEmpty(t *testing.T) {
	q := NewQueue()
	if _, ok := q.TryNext(); ok {
		t.Error("Expected ok=false on empty queue")
	}
}

func TestQueueManyProducersKeepPerProducerOrder(t *testing.T) {
	q := NewQueue()
	// A single producer's sequence must come out in posting order even
	// when interleaved reads happen.
	q.Post(Command{Kind: Show})
	q.Post(Command{Kind: Loading})
	q.Post(Command{Kind: Error, Text: "boom"})

	var kinds []Kind
	for {
		cmd, ok := q.TryNext()
		if !ok {
			break
		}
		kinds = append(kinds, cmd.Kind)
	}
	want := []Kind{Show, Loading, Error}
	if len(kinds) != len(want) {
		t.Fatalf("Drained %d commands, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Command %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{Show: "show", Hide: "hide", Loading: "loading", Content: "content", Error: "error"}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
