// Package bessel evaluates cylindrical Bessel functions of the first kind
// over a range of orders via the three-term recurrence
//
//	J_{n+1}(x) = (2n/x) J_n(x) - J_{n-1}(x)
//
// run either forward from low orders or backward from high ones. Forward
// recurrence is numerically unstable once the order exceeds the argument;
// the residual tables make that growth visible rather than hiding it.
package bessel

import (
	"fmt"
	"math"
)

// Direction selects which end of the order range is seeded.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Table holds the recurrence output for one argument.
type Table struct {
	X        float64
	Computed []float64 // J_0 .. J_{N-1}
	Residual []float64 // computed minus reference, per order
}

// Recurrence computes N orders of J at a given argument from a seed pair.
type Recurrence struct {
	dir    Direction
	orders int
}

func New(dir Direction, orders int) (*Recurrence, error) {
	if orders < 3 {
		return nil, fmt.Errorf("bessel: need at least 3 orders, got %d", orders)
	}
	return &Recurrence{dir: dir, orders: orders}, nil
}

// Compute runs the recurrence at argument x. Forward seeds are (J_0, J_1);
// backward seeds are (J_{N-2}, J_{N-1}).
func (r *Recurrence) Compute(x, seed0, seed1 float64) (*Table, error) {
	if x == 0 {
		return nil, fmt.Errorf("bessel: recurrence undefined at x=0")
	}

	c := make([]float64, r.orders)
	switch r.dir {
	case Forward:
		c[0], c[1] = seed0, seed1
		for j := 1; j < r.orders-1; j++ {
			c[j+1] = (2.0*float64(j)/x)*c[j] - c[j-1]
		}
	case Backward:
		c[r.orders-2], c[r.orders-1] = seed0, seed1
		for j := r.orders - 2; j > 0; j-- {
			c[j-1] = (2.0*float64(j)/x)*c[j] - c[j+1]
		}
	}

	res := make([]float64, r.orders)
	for i := range res {
		res[i] = c[i] - math.Jn(i, x)
	}
	return &Table{X: x, Computed: c, Residual: res}, nil
}

// Seeds returns the reference seed pair for the given direction, taken from
// the standard library Bessel implementation.
func Seeds(dir Direction, x float64, orders int) (float64, float64) {
	if dir == Backward {
		return math.Jn(orders-2, x), math.Jn(orders-1, x)
	}
	return math.J0(x), math.J1(x)
}

// Reference tabulates J_0..J_{orders-1} at x for comparison.
func Reference(x float64, orders int) []float64 {
	ref := make([]float64, orders)
	for i := range ref {
		ref[i] = math.Jn(i, x)
	}
	return ref
}
