// Package deck implements a generic three-pile card container: an
// ordered draw pile that behaves as a double-ended queue, plus discard
// and removed piles that collect items taken out of circulation.
package deck

import (
	"slices"
	"time"

	"github.com/lox/deckhand/internal/randutil"
)

// Rand is the source of randomness used for shuffling and sparse
// insertion. IntN must return a uniform value in [0, n). *rand.Rand
// from math/rand/v2 satisfies it directly.
type Rand interface {
	IntN(n int) int
}

// Deck holds three ordered piles of T. Index 0 of the draw pile is the
// bottom, the last index is the top. The container never inspects T;
// moving an item between piles is the caller's bookkeeping.
type Deck[T any] struct {
	draw      []T
	discarded []T
	removed   []T
	rng       Rand
}

// New creates an empty deck with explicit RNG. A nil rng falls back to
// a time-seeded source.
func New[T any](rng Rand) *Deck[T] {
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	return &Deck[T]{rng: rng}
}

// CanDraw reports whether the draw pile has any items left.
func (d *Deck[T]) CanDraw() bool {
	return len(d.draw) > 0
}

// Remaining returns the number of items left in the draw pile.
func (d *Deck[T]) Remaining() int {
	return len(d.draw)
}

// DrawTop removes and returns the top item of the draw pile.
// Returns false if the pile is empty.
func (d *Deck[T]) DrawTop() (T, bool) {
	if len(d.draw) == 0 {
		var zero T
		return zero, false
	}
	x := d.draw[len(d.draw)-1]
	d.draw = d.draw[:len(d.draw)-1]
	return x, true
}

// DrawBottom removes and returns the bottom item of the draw pile,
// preserving the order of everything above it. Returns false if the
// pile is empty.
func (d *Deck[T]) DrawBottom() (T, bool) {
	if len(d.draw) == 0 {
		var zero T
		return zero, false
	}
	x := d.draw[0]
	d.draw = d.draw[1:]
	return x, true
}

// PutTop places x on top of the draw pile.
func (d *Deck[T]) PutTop(x T) {
	d.draw = append(d.draw, x)
}

// PutBottom places x at the bottom of the draw pile.
func (d *Deck[T]) PutBottom(x T) {
	d.draw = slices.Insert(d.draw, 0, x)
}

// Discard appends x to the discard pile. The draw pile is untouched.
func (d *Deck[T]) Discard(x T) {
	d.discarded = append(d.discarded, x)
}

// Remove appends x to the removed pile, taking it fully out of play.
// The draw pile is untouched.
func (d *Deck[T]) Remove(x T) {
	d.removed = append(d.removed, x)
}

// SeeDraw returns a copy of the draw pile, bottom first.
func (d *Deck[T]) SeeDraw() []T {
	return slices.Clone(d.draw)
}

// SeeDiscarded returns a copy of the discard pile in insertion order.
func (d *Deck[T]) SeeDiscarded() []T {
	return slices.Clone(d.discarded)
}

// SeeRemoved returns a copy of the removed pile in insertion order.
func (d *Deck[T]) SeeRemoved() []T {
	return slices.Clone(d.removed)
}

// ShuffleDraw shuffles the draw pile using Fisher-Yates.
func (d *Deck[T]) ShuffleDraw() {
	shuffle(d.draw, d.rng)
}

// ShuffleDiscard shuffles the discard pile using Fisher-Yates.
func (d *Deck[T]) ShuffleDiscard() {
	shuffle(d.discarded, d.rng)
}

func shuffle[T any](pile []T, rng Rand) {
	for i := len(pile) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		pile[i], pile[j] = pile[j], pile[i]
	}
}
