package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Complex is a planned complex-to-complex transform of fixed size.
type Complex struct {
	plan *algofft.Plan[complex128]
	size int
}

// NewComplex creates a complex transform for the given power-of-two
// size.
func NewComplex(size int) (*Complex, error) {
	if !isPowerOf2(size) {
		return nil, fmt.Errorf("fft size must be a power of two: %d", size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fft: creating plan: %w", err)
	}

	return &Complex{plan: plan, size: size}, nil
}

// Size returns the transform size.
func (c *Complex) Size() int {
	return c.size
}

// Forward computes the unnormalized spectrum of src into dst. Both
// slices must have length Size and may alias.
func (c *Complex) Forward(dst, src []complex128) error {
	if err := c.checkLen(dst, src); err != nil {
		return err
	}

	return c.plan.Forward(dst, src)
}

// Inverse transforms the spectrum src back into dst, applying the 1/N
// factor. Both slices must have length Size and may alias.
func (c *Complex) Inverse(dst, src []complex128) error {
	if err := c.checkLen(dst, src); err != nil {
		return err
	}

	return c.plan.Inverse(dst, src)
}

func (c *Complex) checkLen(dst, src []complex128) error {
	if len(src) != c.size {
		return fmt.Errorf("fft input length %d does not match size %d", len(src), c.size)
	}

	if len(dst) != c.size {
		return fmt.Errorf("fft output length %d does not match size %d", len(dst), c.size)
	}

	return nil
}
