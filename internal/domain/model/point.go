// Package model defines the core domain entities for the cargo loader.
package model

import "fmt"

// Point is an integer coordinate inside a container, in millimetres.
// The origin is the container's bottom-left-rear corner.
type Point struct {
	X int `json:"x" bson:"x" example:"0"`
	Y int `json:"y" bson:"y" example:"0"`
	Z int `json:"z" bson:"z" example:"0"`
}

// Origin is the container corner every free-space index is seeded from.
var Origin = Point{}

// WithX returns a copy of p with X replaced.
func (p Point) WithX(x int) Point { return Point{X: x, Y: p.Y, Z: p.Z} }

// WithY returns a copy of p with Y replaced.
func (p Point) WithY(y int) Point { return Point{X: p.X, Y: y, Z: p.Z} }

// WithZ returns a copy of p with Z replaced.
func (p Point) WithZ(z int) Point { return Point{X: p.X, Y: p.Y, Z: z} }

// Add returns the component-wise sum of p and o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Sub returns the component-wise difference p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// LessEq reports whether every component of p is <= the matching component of o.
func (p Point) LessEq(o Point) bool {
	return p.X <= o.X && p.Y <= o.Y && p.Z <= o.Z
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}
