package models

// Param is one concrete parameter binding of a URL.
type Param struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Assignment binds every parameter of a route to a single value, in the
// order the parameters were declared. Methods never modify the receiver.
type Assignment []Param

func (a Assignment) Get(name string) (string, bool) {
	for _, p := range a {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// With returns a copy of a where name is bound to value. A new name is
// appended at the end.
func (a Assignment) With(name, value string) Assignment {
	out := make(Assignment, len(a), len(a)+1)
	copy(out, a)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Param{Name: name, Value: value})
}

func (a Assignment) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, p := range a {
		m[p.Name] = p.Value
	}
	return m
}

// Entry is a single sitemap URL before it is turned into a location.
type Entry struct {
	Route      string     `json:"route"`
	Params     Assignment `json:"params"`
	ChangeFreq ChangeFreq `json:"changefreq"`
	Priority   float64    `json:"priority"`
	AltLang    []string   `json:"alt_lang"`
}

// NewEntry creates the entry of a route for one parameter assignment. The
// alternate languages are copied from the route declaration.
func NewEntry(route RouteDefinition, params Assignment) Entry {
	altLang := make([]string, len(route.AltLang))
	copy(altLang, route.AltLang)

	return Entry{
		Route:      route.Name,
		Params:     params,
		ChangeFreq: route.ChangeFreq,
		Priority:   route.Priority,
		AltLang:    altLang,
	}
}
