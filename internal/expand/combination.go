package expand

import "fmt"

// dimension is one multi-valued parameter and its resolved values.
type dimension struct {
	slot   int // position of the parameter in the route assignment
	values []string
}

// combinations enumerates the Cartesian product of its dimensions lazily.
// The last dimension cycles fastest, so the enumeration matches nested
// loops over the parameters in declaration order.
type combinations struct {
	dims  []dimension
	total int
}

func newCombinations(dims []dimension) *combinations {
	total := 1
	for _, d := range dims {
		total *= len(d.values)
	}
	return &combinations{dims: dims, total: total}
}

func (c *combinations) Total() int {
	return c.total
}

// Generate returns the value index into each dimension for combination index.
func (c *combinations) Generate(index int) []int {
	if index < 0 || index >= c.total {
		panic(fmt.Sprintf("combination index %d out of range [0, %d)", index, c.total))
	}

	picks := make([]int, len(c.dims))
	repeat := 1
	for i := len(c.dims) - 1; i >= 0; i-- {
		n := len(c.dims[i].values)
		picks[i] = (index / repeat) % n
		repeat *= n
	}
	return picks
}

// ForEach calls fn for every combination and stops at the first error.
func (c *combinations) ForEach(fn func(picks []int) error) error {
	for i := 0; i < c.total; i++ {
		if err := fn(c.Generate(i)); err != nil {
			return err
		}
	}
	return nil
}
