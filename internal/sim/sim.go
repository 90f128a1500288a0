// Package sim implements FernSim (spec.md §4.7): a deterministic scheduler
// used by actor tests. It has no I/O, runs entirely in the test harness
// thread, and never touches the compiler pipeline.
package sim

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// PRNG is a xorshift64* generator. A zero seed is folded through
// blake2b-256 once to derive a non-zero state, rather than substituting a
// single hand-picked magic constant — still a deterministic function of
// the input seed, not a source of fresh entropy.
type PRNG struct {
	state uint64
}

func NewPRNG(seed uint64) *PRNG {
	if seed == 0 {
		seed = normalizeZeroSeed()
	}
	return &PRNG{state: seed}
}

func normalizeZeroSeed() uint64 {
	sum := blake2b.Sum256([]byte("fern-sim-zero-seed"))
	v := binary.LittleEndian.Uint64(sum[:8])
	if v == 0 {
		return 0x9E3779B97F4A7C15
	}
	return v
}

// Next returns the next pseudo-random uint64 and advances the generator
// state.
func (p *PRNG) Next() uint64 {
	x := p.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	p.state = x
	return x * 0x2545F4914F6CDD1D
}

// Bounded returns a uniformly-ish distributed value in [0, n).
func (p *PRNG) Bounded(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return p.Next() % n
}

// Clock is a virtual monotonic clock advanced only by AdvanceMs or by
// stepping an event whose deadline lies in the future.
type Clock struct {
	nowMs uint64
}

func (c *Clock) NowMs() uint64 { return c.nowMs }

func (c *Clock) AdvanceMs(d uint64) { c.nowMs += d }

func (c *Clock) jumpTo(t uint64) {
	if t > c.nowMs {
		c.nowMs = t
	}
}

// Event is one scheduled delivery.
type Event struct {
	ActorID    string
	DeliverAt  uint64
	Sequence   uint64
}

// Scheduler is FernSim's event queue plus clock and PRNG, used to drive
// actor tests deterministically.
type Scheduler struct {
	clock  Clock
	rng    *PRNG
	events []Event
	seq    uint64
}

func NewScheduler(seed uint64) *Scheduler {
	return &Scheduler{rng: NewPRNG(seed)}
}

func (s *Scheduler) NowMs() uint64 { return s.clock.NowMs() }

func (s *Scheduler) AdvanceMs(d uint64) { s.clock.AdvanceMs(d) }

// Schedule pushes an event with deadline now+delayMs, assigning sequence
// numbers in insertion order.
func (s *Scheduler) Schedule(actor string, delayMs uint64) {
	s.events = append(s.events, Event{
		ActorID:   actor,
		DeliverAt: s.clock.NowMs() + delayMs,
		Sequence:  s.seq,
	})
	s.seq++
}

// Pending reports how many events remain queued.
func (s *Scheduler) Pending() int { return len(s.events) }

// Step selects the event with the smallest deadline. Ties are broken by
// reservoir sampling over the PRNG: the k-th tying event replaces the
// current winner with probability 1/k, so identical seeds reproduce
// identical winners regardless of insertion order. The winner is removed
// via swap-with-last, so queue order is not preserved across calls.
func (s *Scheduler) Step() (Event, bool) {
	if len(s.events) == 0 {
		return Event{}, false
	}

	winnerIdx := 0
	best := s.events[0].DeliverAt
	tieCount := 1
	for i := 1; i < len(s.events); i++ {
		d := s.events[i].DeliverAt
		switch {
		case d < best:
			best = d
			winnerIdx = i
			tieCount = 1
		case d == best:
			tieCount++
			if s.rng.Bounded(uint64(tieCount)) == 0 {
				winnerIdx = i
			}
		}
	}

	winner := s.events[winnerIdx]
	last := len(s.events) - 1
	s.events[winnerIdx] = s.events[last]
	s.events = s.events[:last]

	s.clock.jumpTo(winner.DeliverAt)
	return winner, true
}
