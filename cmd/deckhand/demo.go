package main

import (
	"fmt"
	"time"

	"github.com/lox/deckhand/cmd/deckhand/shared"
	"github.com/lox/deckhand/deck"
	"github.com/lox/deckhand/internal/randutil"
)

// DemoCmd walks a seeded deck through each operation, printing the
// pile after every step.
type DemoCmd struct {
	Seed  *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug bool   `kong:"help='Enable debug logging'"`
}

func (c *DemoCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("building deck", "seed", seed)

	d := deck.New[int](randutil.New(seed))

	fmt.Println("Double-ended draws:")
	d.PutTop(11)
	fmt.Printf("  put_top(11)    -> %v\n", d.SeeDraw())
	d.PutTop(7)
	fmt.Printf("  put_top(7)     -> %v\n", d.SeeDraw())
	d.PutBottom(5)
	fmt.Printf("  put_bottom(5)  -> %v\n", d.SeeDraw())
	if x, ok := d.DrawTop(); ok {
		fmt.Printf("  draw_top()     -> %d, %v\n", x, d.SeeDraw())
	}
	if x, ok := d.DrawBottom(); ok {
		fmt.Printf("  draw_bottom()  -> %d, %v\n", x, d.SeeDraw())
	}
	if x, ok := d.DrawBottom(); ok {
		fmt.Printf("  draw_bottom()  -> %d, %v\n", x, d.SeeDraw())
	}
	if _, ok := d.DrawTop(); !ok {
		fmt.Println("  draw_top()     -> empty")
	}

	fmt.Println("Sparse insertion:")
	for i := 0; i < 20; i++ {
		d.PutTop(i)
	}
	fmt.Printf("  initial        -> %v\n", d.SeeDraw())
	d.PutSparse([]int{100, 200, 300})
	fmt.Printf("  put_sparse([100 200 300]) -> %v\n", d.SeeDraw())

	fmt.Println("Shuffle and piles:")
	d.ShuffleDraw()
	fmt.Printf("  shuffle_draw() -> %v\n", d.SeeDraw())
	if x, ok := d.DrawTop(); ok {
		d.Discard(x)
	}
	if x, ok := d.DrawTop(); ok {
		d.Remove(x)
	}
	fmt.Printf("  discarded      -> %v\n", d.SeeDiscarded())
	fmt.Printf("  removed        -> %v\n", d.SeeRemoved())
	fmt.Printf("  remaining      -> %d\n", d.Remaining())

	return nil
}
