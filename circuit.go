// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Circuit is a runnable circuit simulation built around a root chip.
//
// A Circuit is not safe for concurrent use: Step runs the whole recursive
// evaluation of the root chip synchronously, and structural edits of the
// chip tree must happen between calls to Step.
//
type Circuit struct {
	root  *Chip
	clk   Clock
	log   logrus.FieldLogger
	obs   Observer
	iters int
}

// An Observer receives simulation events. Observers are called synchronously
// from Step.
//
type Observer interface {
	// StepDone is called at the end of every step.
	StepDone(st StepStats)
	// Fault is called when a primitive chip panics.
	Fault(f *Fault)
}

// StepStats reports what a single step did.
//
type StepStats struct {
	Step       uint64
	Duration   time.Duration
	Primitives int // primitive invocations
	Composites int // composite chips evaluated
	Cyclic     int // chips evaluated as part of a feedback loop
	Faults     int
}

// A Fault records a panic raised by a primitive chip's component. The faulting
// chip keeps whatever output state it had when it panicked; the rest of the
// step proceeds normally.
//
type Fault struct {
	Chip  *Chip
	Step  uint64
	Value interface{}
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: fault in step %d: %v", f.Chip.Path(), f.Step, f.Value)
}

// An Option configures a Circuit.
//
type Option func(c *Circuit)

// WithLogger sets the circuit logger. By default, nothing is logged.
//
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Circuit) { c.log = l }
}

// WithObserver registers an observer.
//
func WithObserver(o Observer) Option {
	return func(c *Circuit) { c.obs = o }
}

// WithTimeStep sets the virtual time increment per step. The default is
// DefaultTimeStep.
//
func WithTimeStep(dt float64) Option {
	return func(c *Circuit) { c.clk.dt = dt }
}

// WithCycleIterations sets the maximum number of passes over the parts of a
// feedback loop within a single step. With the default of 1, parts in a loop
// are evaluated exactly once per step and loops settle over successive steps.
// With n > 1, their outputs are propagated and the loop is evaluated again
// until no connected pin changes or n passes ran.
//
func WithCycleIterations(n int) Option {
	return func(c *Circuit) {
		if n < 1 {
			n = 1
		}
		c.iters = n
	}
}

// NewCircuit returns a new circuit simulating root.
//
func NewCircuit(root *Chip, opts ...Option) (*Circuit, error) {
	if root == nil {
		return nil, errors.New("nil root chip")
	}
	c := &Circuit{
		root:  root,
		clk:   Clock{dt: DefaultTimeStep},
		iters: 1,
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		l := logrus.New()
		l.Out = io.Discard
		c.log = l
	}
	if c.clk.dt <= 0 {
		return nil, errors.Errorf("invalid time step %v", c.clk.dt)
	}
	return c, nil
}

// Root returns the root chip.
//
func (c *Circuit) Root() *Chip { return c.root }

// SetRoot replaces the root chip. The clock keeps running.
//
func (c *Circuit) SetRoot(root *Chip) error {
	if root == nil {
		return errors.New("nil root chip")
	}
	c.root = root
	return nil
}

// Clock returns the circuit clock.
//
func (c *Circuit) Clock() *Clock { return &c.clk }

// Steps returns the value of the step counter.
//
func (c *Circuit) Steps() uint64 { return c.clk.steps }

// Step advances the simulation by one step: it advances the clock, then
// evaluates the root chip. The root chip's input pins must have been set by
// the caller beforehand.
//
func (c *Circuit) Step() {
	start := time.Now()
	c.clk.advance()
	c.root.Walk(clearMarks)
	st := &StepStats{Step: c.clk.steps}
	c.simulate(c.root, st, false)
	st.Duration = time.Since(start)
	if c.obs != nil {
		c.obs.StepDone(*st)
	}
}

func clearMarks(c *Chip) {
	for _, p := range c.In {
		p.Set = false
	}
	for _, p := range c.Out {
		p.Set = false
	}
}

// simulate evaluates chip for one step.
//
// For composites: every connection is first copied once so that parts see
// a consistent baseline. Parts outside of feedback loops are then evaluated
// in dependency order, each one immediately followed by the propagation of
// its outputs to parts outside of loops. Parts in loops run last.
//
func (c *Circuit) simulate(chip *Chip, st *StepStats, cyclic bool) {
	if cyclic {
		st.Cyclic++
	}
	if chip.update != nil {
		c.invoke(chip, st)
		return
	}
	st.Composites++

	s := ScheduleOf(chip)
	live := drivers(chip.conns)

	for _, cn := range live {
		propagate(cn)
	}

	for _, p := range s.Order {
		c.simulate(p, st, false)
		for _, cn := range live {
			if cn.From.chip == p && !s.cycles.Has(cn.To.chip) {
				propagate(cn)
			}
		}
	}

	if len(s.Cyclic) == 0 {
		return
	}
	for pass := 0; pass < c.iters; pass++ {
		if pass > 0 {
			changed := false
			for _, cn := range live {
				if s.cycles.Has(cn.From.chip) && propagate(cn) {
					changed = true
				}
			}
			if !changed {
				break
			}
		}
		for _, p := range s.Cyclic {
			c.simulate(p, st, true)
		}
	}
}

// drivers returns the connections that effectively drive their destination:
// when several connections drive the same pin, the last one declared wins.
// Declaration order is preserved.
//
func drivers(conns []*Connection) []*Connection {
	seen := make(map[*Pin]struct{}, len(conns))
	n := len(conns)
	keep := make([]bool, n)
	for i := n - 1; i >= 0; i-- {
		to := conns[i].To
		if _, ok := seen[to]; ok {
			continue
		}
		seen[to] = struct{}{}
		keep[i] = true
	}
	if len(seen) == n {
		return conns
	}
	out := make([]*Connection, 0, len(seen))
	for i, cn := range conns {
		if keep[i] {
			out = append(out, cn)
		}
	}
	return out
}

// propagate copies the connection source state to its destination and
// reports whether the destination state changed.
//
func propagate(cn *Connection) bool {
	changed := cn.To.State != cn.From.State
	cn.To.Send(cn.From.State)
	return changed
}

func (c *Circuit) invoke(chip *Chip, st *StepStats) {
	st.Primitives++
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		st.Faults++
		f := &Fault{Chip: chip, Step: c.clk.steps, Value: v}
		c.log.WithFields(logrus.Fields{
			"chip":    chip.Path(),
			"chip_id": chip.ID.String(),
			"kind":    chip.Kind,
			"step":    f.Step,
		}).Warnf("primitive fault: %v", v)
		if c.obs != nil {
			c.obs.Fault(f)
		}
	}()
	chip.update(&c.clk)
}
