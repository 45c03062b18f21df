package games

import (
	"math/rand"
	"sync"
	"time"
)

// Engine is the shared randomness source for every game resolution.
// Draws are uniform and independent; nothing is seeded deterministically
// or replayed in production, and tests pass a fixed source instead.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(src rand.Source) *Engine {
	return &Engine{rng: rand.New(src)}
}

func Default() *Engine {
	return NewEngine(rand.NewSource(time.Now().UnixNano()))
}

func (e *Engine) Intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

func (e *Engine) Float64() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}
