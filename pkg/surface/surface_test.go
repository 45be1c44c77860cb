package surface

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmit(t *testing.T) {
	got, ok := Admit("  hello  ")
	assert.True(t, ok)
	assert.Equal(t, "hello", got)

	_, ok = Admit(" \t\n ")
	assert.False(t, ok)
}

func TestLabels(t *testing.T) {
	l := Labels{User: "You", Bot: "BluBot"}
	assert.Equal(t, "You: hi", l.UserLine("hi").String())
	line := l.BotLine("hey")
	assert.True(t, line.FromBot)
	assert.Equal(t, "BluBot: hey", line.String())
}

func TestPacer_Delay(t *testing.T) {
	p := &Pacer{Base: 100 * time.Millisecond, Jitter: 50 * time.Millisecond, Rand: func(n int64) int64 { return n - 1 }}
	assert.Equal(t, 150*time.Millisecond-1, p.Delay())

	p = NewPacer(200*time.Millisecond, 0)
	assert.Equal(t, 200*time.Millisecond, p.Delay())

	var nilPacer *Pacer
	assert.Zero(t, nilPacer.Delay())
	assert.Zero(t, NewPacer(-time.Second, 0).Delay())
}

func TestPacer_DeliverEachSubmission(t *testing.T) {
	p := NewPacer(5*time.Millisecond, 5*time.Millisecond)

	var mu sync.Mutex
	var got []int
	var waits []<-chan struct{}
	for i := 0; i < 10; i++ {
		i := i
		waits = append(waits, p.Deliver(context.Background(), func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	for _, w := range waits {
		select {
		case <-w:
		case <-time.After(2 * time.Second):
			t.Fatal("delivery did not settle")
		}
	}
	assert.Len(t, got, 10)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestPacer_DeliverCancelled(t *testing.T) {
	p := NewPacer(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())

	called := false
	done := p.Deliver(ctx, func() { called = true })
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled delivery did not settle")
	}
	assert.False(t, called)
}

func TestPacer_WaitZeroDelay(t *testing.T) {
	require.NoError(t, NewPacer(0, 0).Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewPacer(0, 0).Wait(ctx), context.Canceled)
}
