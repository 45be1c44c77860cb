// Package surface holds the pieces every chat front end shares: input
// admission, transcript labels and the simulated thinking delay.
package surface

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Admit trims user input and reports whether it should be sent to the
// responder. Whitespace-only input is dropped.
func Admit(text string) (string, bool) {
	text = strings.TrimSpace(text)
	return text, text != ""
}

// Line is one rendered transcript entry.
type Line struct {
	Sender  string
	Text    string
	FromBot bool
}

func (l Line) String() string {
	return fmt.Sprintf("%s: %s", l.Sender, l.Text)
}

// Labels name the two sides of a conversation.
type Labels struct {
	User string
	Bot  string
}

func (l Labels) UserLine(text string) Line { return Line{Sender: l.User, Text: text} }
func (l Labels) BotLine(text string) Line  { return Line{Sender: l.Bot, Text: text, FromBot: true} }

// Pacer delays replies so the bot appears to think. The delay is purely
// cosmetic: every Deliver call is independent, so overlapping submissions
// each get their own reply.
type Pacer struct {
	Base   time.Duration
	Jitter time.Duration
	Rand   func(n int64) int64
}

// NewPacer returns a Pacer with the given base delay and jitter.
func NewPacer(base, jitter time.Duration) *Pacer {
	return &Pacer{Base: base, Jitter: jitter}
}

// Delay returns Base plus a uniform random extra in [0, Jitter).
func (p *Pacer) Delay() time.Duration {
	if p == nil {
		return 0
	}
	d := p.Base
	if p.Jitter > 0 {
		pick := p.Rand
		if pick == nil {
			pick = rand.Int64N
		}
		d += time.Duration(pick(int64(p.Jitter)))
	}
	if d < 0 {
		return 0
	}
	return d
}

// Wait blocks for one Delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	d := p.Delay()
	if d == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Deliver runs fn after one Delay in a new goroutine. fn is skipped if ctx
// ends first. The returned channel is closed once the delivery settles.
func (p *Pacer) Deliver(ctx context.Context, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := p.Wait(ctx); err != nil {
			return
		}
		fn()
	}()
	return done
}
