// Package odes holds the shared primitives of the numerical solvers: the
// (value, derivative) State pair with its vector-space arithmetic, the
// immutable uniform Grid, and the domain error set.
//
// State arithmetic is componentwise and allocation free; a trajectory is
// simply a []State aligned one-to-one with a Grid.
package odes
