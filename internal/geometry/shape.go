// Package geometry contains the shape abstractions used by the area
// calculator. Shapes satisfy the Shape interface; consumers depend on the
// interface only, so a new shape type never requires changes elsewhere.
//
// Square is deliberately its own type rather than a constrained Rectangle:
// a Square whose SetWidth also changed its height would not be substitutable
// where a Rectangle is expected, so the two share nothing but the interface.
package geometry

import "math"

// Shape is anything with a measurable area and perimeter.
type Shape interface {
	// Name returns a short lowercase identifier (e.g. "rectangle").
	Name() string
	// Area returns the enclosed area. Degenerate shapes return 0.
	Area() float64
	// Perimeter returns the boundary length.
	Perimeter() float64
}

// Rectangle is an axis-aligned rectangle. Width and Height vary
// independently.
type Rectangle struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rectangle) Name() string { return "rectangle" }

func (r Rectangle) Area() float64 { return r.Width * r.Height }

func (r Rectangle) Perimeter() float64 { return 2 * (r.Width + r.Height) }

// Square has a single side length.
type Square struct {
	Side float64 `json:"side"`
}

func (s Square) Name() string { return "square" }

func (s Square) Area() float64 { return s.Side * s.Side }

func (s Square) Perimeter() float64 { return 4 * s.Side }

// Circle is defined by its radius.
type Circle struct {
	Radius float64 `json:"radius"`
}

func (c Circle) Name() string { return "circle" }

func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

func (c Circle) Perimeter() float64 { return 2 * math.Pi * c.Radius }

// Triangle is defined by its three side lengths.
type Triangle struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

func (t Triangle) Name() string { return "triangle" }

// Valid reports whether the sides satisfy the triangle inequality.
func (t Triangle) Valid() bool {
	if t.A <= 0 || t.B <= 0 || t.C <= 0 {
		return false
	}
	return t.A+t.B > t.C && t.B+t.C > t.A && t.A+t.C > t.B
}

// Area uses Heron's formula. Invalid triangles have area 0.
func (t Triangle) Area() float64 {
	if !t.Valid() {
		return 0
	}
	s := (t.A + t.B + t.C) / 2
	return math.Sqrt(s * (s - t.A) * (s - t.B) * (s - t.C))
}

func (t Triangle) Perimeter() float64 { return t.A + t.B + t.C }

// Interface satisfaction checks.
var (
	_ Shape = Rectangle{}
	_ Shape = Square{}
	_ Shape = Circle{}
	_ Shape = Triangle{}
)
