package models

import (
	"math"

	"github.com/tbraden/numlab/internal/odes"
)

// Beam models the large-deflection bending of a simply supported beam under
// a distributed load q and axial tension S:
//
//	y'' = (1 + y'^2)^(3/2) * ( q*x*(x-L)*y / (2D) + (S/D)*y' )
//
// The boundary-value problem pins y at both ends of the span.
type Beam struct {
	Span      float64 // L
	Stiffness float64 // flexural rigidity D
	Tension   float64 // axial load S
	Load      float64 // distributed load q
}

func NewBeam() *Beam {
	return &Beam{Span: 50.0, Stiffness: 8.5e7, Tension: 100.0, Load: 1000.0}
}

func (b *Beam) Length() float64 { return b.Span }

func (b *Beam) Rate(z odes.State, x float64) odes.State {
	y, yp := z.Y, z.Dy

	a := math.Pow(1.0+yp*yp, 1.5)
	m := b.Load * x * (x - b.Span) * y / (2.0 * b.Stiffness)
	t := (b.Tension / b.Stiffness) * yp

	return odes.State{Y: yp, Dy: a * (m + t)}
}

// Sensitivity is the chain-rule linearization of Rate about the current
// primary state, evolving g = dy/du.
func (b *Beam) Sensitivity(v, z odes.State, x float64) odes.State {
	g, gp := v.Y, v.Dy
	y, yp := z.Y, z.Dy

	a := 1.0 + yp*yp
	sqrtA := math.Sqrt(a)
	k := a * sqrtA

	bq := b.Load / (2.0 * b.Stiffness) * (x*x - x*b.Span)
	at := b.Tension / b.Stiffness

	coefG := bq * k
	coefGp := at*(k+3.0*yp*sqrtA) + bq*2.0*yp*y

	return odes.State{Y: gp, Dy: coefG*g + coefGp*gp}
}

func (b *Beam) GetParams() map[string]float64 {
	return map[string]float64{
		"length":    b.Span,
		"stiffness": b.Stiffness,
		"tension":   b.Tension,
		"load":      b.Load,
	}
}

func (b *Beam) SetParam(name string, value float64) error {
	switch name {
	case "length":
		if value <= 0 {
			return odes.ErrDomainLength
		}
		b.Span = value
	case "stiffness":
		b.Stiffness = value
	case "tension":
		b.Tension = value
	case "load":
		b.Load = value
	}
	return nil
}
