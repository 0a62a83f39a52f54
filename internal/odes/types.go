package odes

import (
	"fmt"
	"math"
)

// State is a (value, derivative) pair on a trajectory.
type State struct {
	Y  float64
	Dy float64
}

func (s State) Add(o State) State {
	return State{s.Y + o.Y, s.Dy + o.Dy}
}

func (s State) Sub(o State) State {
	return State{s.Y - o.Y, s.Dy - o.Dy}
}

func (s State) Scale(c float64) State {
	return State{c * s.Y, c * s.Dy}
}

func (s State) IsValid() bool {
	return !math.IsNaN(s.Y) && !math.IsInf(s.Y, 0) &&
		!math.IsNaN(s.Dy) && !math.IsInf(s.Dy, 0)
}

// Clone copies a trajectory slice.
func Clone(states []State) []State {
	c := make([]State, len(states))
	copy(c, states)
	return c
}

// Grid is a fixed uniformly spaced set of positions from 0 to the domain
// length inclusive. It is immutable after construction.
type Grid struct {
	h  float64
	xs []float64
}

// NewGrid builds the grid for a domain of the given length with spacing h.
// The final position is exactly length (n = round(length/h) intervals).
func NewGrid(length, h float64) (*Grid, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrStepSize, h)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrDomainLength, length)
	}
	n := int(math.Round(length / h))
	if n < 4 {
		return nil, fmt.Errorf("%w: %d intervals", ErrGridTooShort, n)
	}
	xs := make([]float64, n+1)
	for i := range xs {
		xs[i] = float64(i) * h
	}
	return &Grid{h: h, xs: xs}, nil
}

func (g *Grid) Len() int         { return len(g.xs) }
func (g *Grid) H() float64       { return g.h }
func (g *Grid) At(i int) float64 { return g.xs[i] }

// Positions returns a copy of the grid positions.
func (g *Grid) Positions() []float64 {
	xs := make([]float64, len(g.xs))
	copy(xs, g.xs)
	return xs
}
