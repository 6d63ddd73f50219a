package geometry

// AreaCalculator aggregates measurements over an arbitrary mix of shapes.
// It depends only on the Shape interface, so registering a new shape type
// requires no change here.
type AreaCalculator struct {
	shapes []Shape
}

// NewAreaCalculator creates a calculator seeded with the given shapes.
func NewAreaCalculator(shapes ...Shape) *AreaCalculator {
	c := &AreaCalculator{}
	c.Add(shapes...)
	return c
}

// Add appends shapes to the calculation set. Nil shapes are ignored.
func (c *AreaCalculator) Add(shapes ...Shape) {
	for _, s := range shapes {
		if s == nil {
			continue
		}
		c.shapes = append(c.shapes, s)
	}
}

// Len returns the number of shapes held.
func (c *AreaCalculator) Len() int { return len(c.shapes) }

// TotalArea sums the areas of all shapes. An empty calculator totals 0.
func (c *AreaCalculator) TotalArea() float64 {
	var total float64
	for _, s := range c.shapes {
		total += s.Area()
	}
	return total
}

// TotalPerimeter sums the perimeters of all shapes.
func (c *AreaCalculator) TotalPerimeter() float64 {
	var total float64
	for _, s := range c.shapes {
		total += s.Perimeter()
	}
	return total
}

// Largest returns the shape with the greatest area, or nil when empty.
// Ties keep the earliest added shape.
func (c *AreaCalculator) Largest() Shape {
	var largest Shape
	var max float64
	for _, s := range c.shapes {
		if a := s.Area(); largest == nil || a > max {
			largest = s
			max = a
		}
	}
	return largest
}
