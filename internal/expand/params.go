package expand

import (
	"context"
	"fmt"

	"github.com/romangod6/sitemap-gen/internal/models"
)

// ErrEmptyValues marks a multi-valued parameter that resolved to no values.
var ErrEmptyValues = fmt.Errorf("parameter resolved to no values: %w", models.ErrConfiguration)

// ParamExpander turns a route's parameter specs into concrete assignments.
type ParamExpander struct {
	source     *ValueSource
	allowEmpty bool
}

// NewParamExpander creates an expander. With allowEmpty, a multi-valued
// parameter without values yields no assignments instead of an error.
func NewParamExpander(source *ValueSource, allowEmpty bool) *ParamExpander {
	return &ParamExpander{source: source, allowEmpty: allowEmpty}
}

// Expand returns one assignment per combination of the route's multi-valued
// parameters. Scalars are copied into every assignment. Assignments keep the
// parameters' declaration order and are ordered like nested loops over the
// parameters, outermost first.
func (e *ParamExpander) Expand(ctx context.Context, route models.RouteDefinition) ([]models.Assignment, error) {
	base := make(models.Assignment, len(route.Params))
	var dims []dimension

	for i, p := range route.Params {
		base[i].Name = p.Name

		if !p.Spec.IsMulti() {
			if p.Spec.Kind != models.ParamScalar {
				return nil, fmt.Errorf("unrecognized value for parameter %q: options are \"fetch\" or \"values\": %w",
					p.Name, models.ErrConfiguration)
			}
			base[i].Value = p.Spec.Scalar
			continue
		}

		values, err := e.source.Resolve(ctx, p.Name, p.Spec)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			if e.allowEmpty {
				return nil, nil
			}
			return nil, fmt.Errorf("parameter %q: %w", p.Name, ErrEmptyValues)
		}
		dims = append(dims, dimension{slot: i, values: values})
	}

	gen := newCombinations(dims)
	assignments := make([]models.Assignment, 0, gen.Total())

	err := gen.ForEach(func(picks []int) error {
		a := make(models.Assignment, len(base))
		copy(a, base)
		for d, pick := range picks {
			a[dims[d].slot].Value = dims[d].values[pick]
		}
		assignments = append(assignments, a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return assignments, nil
}
