// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package runner drives a circuit at a fixed pace.
//
package runner

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/db47h/chipsim"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// An Edit changes a circuit between two steps, e.g. setting root inputs,
// adding or removing parts, or replacing the root chip. An edit that returns
// an error is logged and otherwise ignored.
//
type Edit func(c *chipsim.Circuit) error

// Runner steps a circuit in its own goroutine.
//
type Runner struct {
	c        *chipsim.Circuit
	limiter  *rate.Limiter
	maxTicks uint64
	log      logrus.FieldLogger
	after    func(c *chipsim.Circuit)

	mu    sync.Mutex
	edits []Edit
}

// An Option configures a Runner.
//
type Option func(r *Runner)

// WithInterval sets the time between two steps. With d <= 0, the circuit
// runs as fast as possible. This is the default.
//
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d <= 0 {
			r.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		r.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithMaxTicks makes Run return after n steps. 0 means no limit.
//
func WithMaxTicks(n uint64) Option {
	return func(r *Runner) { r.maxTicks = n }
}

// WithLogger sets the runner logger.
//
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Runner) { r.log = l }
}

// WithAfterTick sets a function called after every step, from the runner
// goroutine.
//
func WithAfterTick(fn func(c *chipsim.Circuit)) Option {
	return func(r *Runner) { r.after = fn }
}

// New returns a new runner for c.
//
func New(c *chipsim.Circuit, opts ...Option) *Runner {
	r := &Runner{
		c:       c,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		l := logrus.New()
		l.Out = io.Discard
		r.log = l
	}
	return r
}

// Submit queues an edit. Queued edits are applied in order before the next
// step. Submit is safe for concurrent use.
//
func (r *Runner) Submit(e Edit) {
	r.mu.Lock()
	r.edits = append(r.edits, e)
	r.mu.Unlock()
}

func (r *Runner) applyEdits() {
	r.mu.Lock()
	edits := r.edits
	r.edits = nil
	r.mu.Unlock()

	for _, e := range edits {
		if err := e(r.c); err != nil {
			r.log.WithField("step", r.c.Steps()).Warnf("edit rejected: %v", err)
		}
	}
}

// Run steps the circuit until ctx is done or the maximum number of ticks is
// reached. A step always runs to completion. Run returns nil when stopped
// by ctx.
//
func (r *Runner) Run(ctx context.Context) error {
	r.log.WithField("limit", r.limiter.Limit()).Debug("runner started")
	defer r.log.Debug("runner stopped")

	for r.maxTicks == 0 || r.c.Steps() < r.maxTicks {
		if err := r.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		r.applyEdits()
		r.c.Step()
		if r.after != nil {
			r.after(r.c)
		}
	}
	return nil
}
