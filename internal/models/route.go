package models

// ParamKind tells which form a route parameter was declared in.
type ParamKind int

const (
	ParamScalar ParamKind = iota
	ParamValues
	ParamFetch
)

func (k ParamKind) String() string {
	switch k {
	case ParamScalar:
		return "scalar"
	case ParamValues:
		return "values"
	case ParamFetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// FetchSpec names a data source column whose values drive URL fan-out.
type FetchSpec struct {
	Repository string `json:"repository"`
	Property   string `json:"property"`
}

// ParamSpec is the declared value of a route parameter: a single scalar,
// an explicit list of values, or a fetch from the data source.
type ParamSpec struct {
	Kind   ParamKind `json:"kind"`
	Scalar string    `json:"scalar,omitempty"`
	Values []string  `json:"values,omitempty"`
	Fetch  FetchSpec `json:"fetch,omitempty"`
}

func ScalarParam(value string) ParamSpec {
	return ParamSpec{Kind: ParamScalar, Scalar: value}
}

func ValuesParam(values ...string) ParamSpec {
	return ParamSpec{Kind: ParamValues, Values: values}
}

func FetchParam(repository, property string) ParamSpec {
	return ParamSpec{Kind: ParamFetch, Fetch: FetchSpec{Repository: repository, Property: property}}
}

// IsMulti reports whether the parameter fans out into several URLs.
func (p ParamSpec) IsMulti() bool {
	return p.Kind == ParamValues || p.Kind == ParamFetch
}

type RouteParam struct {
	Name string    `json:"name"`
	Spec ParamSpec `json:"spec"`
}

// RouteDefinition is one entry of the routes section of the path
// configuration. Params keep their declaration order.
type RouteDefinition struct {
	Name       string       `json:"name"`
	Path       string       `json:"path,omitempty"`
	Params     []RouteParam `json:"params,omitempty"`
	ChangeFreq ChangeFreq   `json:"change_freq"`
	Priority   float64      `json:"priority"`
	AltLang    []string     `json:"alt_lang,omitempty"`
}

// NewRouteDefinition returns a route with the default change frequency and priority.
func NewRouteDefinition(name string) RouteDefinition {
	return RouteDefinition{
		Name:       name,
		ChangeFreq: DefaultChangeFreq,
		Priority:   DefaultPriority,
	}
}

// Param returns the spec of the named parameter.
func (r RouteDefinition) Param(name string) (ParamSpec, bool) {
	for _, p := range r.Params {
		if p.Name == name {
			return p.Spec, true
		}
	}
	return ParamSpec{}, false
}

func (r RouteDefinition) HasAltLang() bool {
	return len(r.AltLang) > 0
}

// RouteConfig is the parsed path configuration file.
type RouteConfig struct {
	Output string
	Routes []RouteDefinition
}

// UsesFetch reports whether any route reads parameter values from the data
// source.
func (c RouteConfig) UsesFetch() bool {
	for _, r := range c.Routes {
		for _, p := range r.Params {
			if p.Spec.Kind == ParamFetch {
				return true
			}
		}
	}
	return false
}
