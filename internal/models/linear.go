package models

import "github.com/tbraden/numlab/internal/odes"

// Linear is the constant-coefficient test problem y'' = A*y + B*y'.
// Its variational equation has the same coefficients, and for A=1, B=0 the
// shooting problem has the closed form
//
//	y(x) = alpha*cosh(x) + u*sinh(x)
//
// which makes it the reference model for convergence and driver tests.
type Linear struct {
	A, B float64
	Span float64
}

func NewLinear(a, b, span float64) *Linear {
	return &Linear{A: a, B: b, Span: span}
}

func (l *Linear) Length() float64 { return l.Span }

func (l *Linear) Rate(z odes.State, _ float64) odes.State {
	return odes.State{Y: z.Dy, Dy: l.A*z.Y + l.B*z.Dy}
}

func (l *Linear) Sensitivity(v, _ odes.State, _ float64) odes.State {
	return odes.State{Y: v.Dy, Dy: l.A*v.Y + l.B*v.Dy}
}
