package bridge

import (
	"fmt"
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	b := New(0)
	for i := 0; i < 5; i++ {
		if ok := b.FromBot.Push(NewEnvelope("note", fmt.Sprintf("m%d", i))); !ok {
			t.Fatalf("push %d rejected on unbounded queue", i)
		}
	}
	got := b.FromBot.Drain()
	if len(got) != 5 {
		t.Fatalf("drained %d envelopes, want 5", len(got))
	}
	for i, e := range got {
		if want := fmt.Sprintf("m%d", i); e.Body != want {
			t.Errorf("envelope %d body = %q, want %q (FIFO order)", i, e.Body, want)
		}
	}
	if again := b.FromBot.Drain(); again != nil {
		t.Errorf("second drain returned %d envelopes, want nil", len(again))
	}
}

func TestQueueBoundDropsNewest(t *testing.T) {
	b := New(2)
	if !b.FromBot.Push(NewEnvelope("note", "a")) || !b.FromBot.Push(NewEnvelope("note", "b")) {
		t.Fatalf("pushes within capacity rejected")
	}
	if b.FromBot.Push(NewEnvelope("note", "c")) {
		t.Errorf("push beyond capacity accepted")
	}
	if d := b.FromBot.Dropped(); d != 1 {
		t.Errorf("Dropped() = %d, want 1", d)
	}
	got := b.FromBot.Drain()
	if len(got) != 2 || got[0].Body != "a" || got[1].Body != "b" {
		t.Errorf("drained %v, want [a b]", got)
	}
}

func TestQueuesAreIndependent(t *testing.T) {
	b := New(0)
	b.ToBot.Push(NewEnvelope("ctl", "pause"))
	if n := b.FromBot.Len(); n != 0 {
		t.Errorf("FromBot.Len() = %d after ToBot push, want 0", n)
	}
	if n := b.ToBot.Len(); n != 1 {
		t.Errorf("ToBot.Len() = %d, want 1", n)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	b := New(0)
	const producers, each = 8, 100
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				b.FromBot.Push(NewEnvelope("note", fmt.Sprintf("p%d-%d", p, i)))
			}
		}(p)
	}
	wg.Wait()
	total := 0
	for {
		batch := b.FromBot.Drain()
		if batch == nil {
			break
		}
		total += len(batch)
	}
	if total != producers*each {
		t.Errorf("drained %d envelopes, want %d", total, producers*each)
	}
}
