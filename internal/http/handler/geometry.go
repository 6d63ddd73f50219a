package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"solidgo/internal/geometry"
)

var errNegativeDimension = errors.New("shape dimensions must not be negative")

// shapeSpec is the wire form of a shape. Kind selects the type; only the
// fields for that kind are read.
type shapeSpec struct {
	Kind   string  `json:"kind"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Side   float64 `json:"side,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	A      float64 `json:"a,omitempty"`
	B      float64 `json:"b,omitempty"`
	C      float64 `json:"c,omitempty"`
}

func (s shapeSpec) toShape() (geometry.Shape, error) {
	switch s.Kind {
	case "rectangle":
		if s.Width < 0 || s.Height < 0 {
			return nil, errNegativeDimension
		}
		return geometry.Rectangle{Width: s.Width, Height: s.Height}, nil
	case "square":
		if s.Side < 0 {
			return nil, errNegativeDimension
		}
		return geometry.Square{Side: s.Side}, nil
	case "circle":
		if s.Radius < 0 {
			return nil, errNegativeDimension
		}
		return geometry.Circle{Radius: s.Radius}, nil
	case "triangle":
		if s.A < 0 || s.B < 0 || s.C < 0 {
			return nil, errNegativeDimension
		}
		return geometry.Triangle{A: s.A, B: s.B, C: s.C}, nil
	default:
		return nil, fmt.Errorf("unknown shape kind %q", s.Kind)
	}
}

type measureRequest struct {
	Shapes []shapeSpec `json:"shapes"`
}

type measureResponse struct {
	Count          int     `json:"count"`
	TotalArea      float64 `json:"total_area"`
	TotalPerimeter float64 `json:"total_perimeter"`
	Largest        string  `json:"largest,omitempty"`
}

// MeasureShapes computes aggregate measurements over a list of shapes
// (POST /geometry/measure).
func MeasureShapes() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req measureRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if len(req.Shapes) == 0 {
			return writeError(c, fiber.StatusBadRequest, "SHAPES_REQUIRED", "at least one shape is required")
		}

		calc := geometry.NewAreaCalculator()
		for _, spec := range req.Shapes {
			shape, err := spec.toShape()
			if err != nil {
				if errors.Is(err, errNegativeDimension) {
					return writeError(c, fiber.StatusBadRequest, "INVALID_DIMENSIONS", err.Error())
				}
				return writeError(c, fiber.StatusBadRequest, "UNKNOWN_SHAPE", err.Error())
			}
			calc.Add(shape)
		}

		res := measureResponse{
			Count:          calc.Len(),
			TotalArea:      calc.TotalArea(),
			TotalPerimeter: calc.TotalPerimeter(),
		}
		if largest := calc.Largest(); largest != nil {
			res.Largest = largest.Name()
		}
		return c.JSON(res)
	}
}
