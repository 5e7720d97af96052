package routeconfig

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"go.yaml.in/yaml/v4"
	"golang.org/x/text/language"

	"github.com/romangod6/sitemap-gen/internal/models"
)

// Load reads and validates a path configuration file.
func Load(path string) (*models.RouteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route configuration: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a path configuration document. Mappings are walked as YAML
// nodes so that routes and route params keep their declaration order.
func Parse(data []byte) (*models.RouteConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("configuration is empty: %w", models.ErrConfiguration)
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, configError(root, "top level must be a mapping")
	}

	entries, err := mappingPairs(root)
	if err != nil {
		return nil, err
	}

	cfg := &models.RouteConfig{}
	seenRoutes := false

	for _, e := range entries {
		key, value := e.key, e.value

		switch key.Value {
		case "output":
			if err := decodeString(value, &cfg.Output); err != nil {
				return nil, configError(value, "output: %v", err)
			}
		case "routes":
			routes, err := parseRoutes(value)
			if err != nil {
				return nil, err
			}
			cfg.Routes = routes
			seenRoutes = true
		default:
			return nil, configError(key, "unknown key %q", key.Value)
		}
	}

	if !seenRoutes {
		return nil, fmt.Errorf("no routes defined: %w", models.ErrConfiguration)
	}

	return cfg, nil
}

func parseRoutes(node *yaml.Node) ([]models.RouteDefinition, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, configError(node, "routes must be a mapping of route name to options")
	}

	entries, err := mappingPairs(node)
	if err != nil {
		return nil, err
	}

	routes := make([]models.RouteDefinition, 0, len(entries))
	seen := make(map[string]bool)

	for _, e := range entries {
		key, value := e.key, e.value
		if key.Value == "" {
			return nil, configError(key, "route name cannot be empty")
		}
		if seen[key.Value] {
			return nil, configError(key, "route %q defined twice", key.Value)
		}
		seen[key.Value] = true

		route, err := parseRoute(key.Value, value)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", key.Value, err)
		}
		routes = append(routes, route)
	}

	return routes, nil
}

func parseRoute(name string, node *yaml.Node) (models.RouteDefinition, error) {
	route := models.NewRouteDefinition(name)
	if isNull(node) {
		return route, nil
	}
	if node.Kind != yaml.MappingNode {
		return route, configError(node, "route options must be a mapping")
	}

	entries, err := mappingPairs(node)
	if err != nil {
		return route, err
	}

	var altLangNode *yaml.Node

	for _, e := range entries {
		key, value := e.key, e.value

		switch key.Value {
		case "path":
			if err := decodeString(value, &route.Path); err != nil {
				return route, configError(value, "path: %v", err)
			}
		case "route_params":
			params, err := parseParams(value)
			if err != nil {
				return route, err
			}
			route.Params = params
		case "change_freq":
			var s string
			if err := decodeString(value, &s); err != nil {
				return route, configError(value, "change_freq: %v", err)
			}
			cf, err := models.ParseChangeFreq(s)
			if err != nil {
				return route, configError(value, "%v", err)
			}
			route.ChangeFreq = cf
		case "priority":
			if value.Kind != yaml.ScalarNode {
				return route, configError(value, "priority must be a number")
			}
			var p float64
			if err := value.Decode(&p); err != nil {
				return route, configError(value, "priority must be a number")
			}
			if p < 0 || p > 1 {
				return route, configError(value, "priority %v outside [0, 1]", p)
			}
			route.Priority = p
		case "alt_lang":
			altLangNode = value
			langs, err := parseAltLang(value)
			if err != nil {
				return route, err
			}
			route.AltLang = langs
		default:
			return route, configError(key, "unknown option %q", key.Value)
		}
	}

	if altLangNode != nil && route.HasAltLang() {
		if err := validateAltLang(route, altLangNode); err != nil {
			return route, err
		}
	}

	return route, nil
}

func parseParams(node *yaml.Node) ([]models.RouteParam, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, configError(node, "route_params must be a mapping")
	}

	entries, err := mappingPairs(node)
	if err != nil {
		return nil, err
	}

	params := make([]models.RouteParam, 0, len(entries))
	seen := make(map[string]bool)

	for _, e := range entries {
		key, value := e.key, e.value
		if seen[key.Value] {
			return nil, configError(key, "parameter %q defined twice", key.Value)
		}
		seen[key.Value] = true

		spec, err := parseParamSpec(key.Value, value)
		if err != nil {
			return nil, err
		}
		params = append(params, models.RouteParam{Name: key.Value, Spec: spec})
	}

	return params, nil
}

// parseParamSpec handles the scalar, values and fetch forms of a parameter.
func parseParamSpec(name string, node *yaml.Node) (models.ParamSpec, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if isNull(node) {
			return models.ParamSpec{}, configError(node, "parameter %q has no value", name)
		}
		return models.ScalarParam(node.Value), nil
	case yaml.MappingNode:
		// handled below
	default:
		return models.ParamSpec{}, unrecognizedParam(name, node)
	}

	entries, err := mappingPairs(node)
	if err != nil {
		return models.ParamSpec{}, err
	}

	var valuesNode, fetchNode *yaml.Node
	for _, e := range entries {
		key, value := e.key, e.value
		switch key.Value {
		case "values":
			valuesNode = value
		case "fetch":
			fetchNode = value
		default:
			return models.ParamSpec{}, unrecognizedParam(name, key)
		}
	}

	switch {
	case valuesNode != nil && fetchNode != nil:
		return models.ParamSpec{}, configError(node, "parameter %q: \"fetch\" and \"values\" are mutually exclusive", name)
	case valuesNode != nil:
		return parseValues(name, valuesNode)
	case fetchNode != nil:
		return parseFetch(name, fetchNode)
	default:
		return models.ParamSpec{}, unrecognizedParam(name, node)
	}
}

func parseValues(name string, node *yaml.Node) (models.ParamSpec, error) {
	if node.Kind != yaml.SequenceNode {
		return models.ParamSpec{}, configError(node, "parameter %q: values must be a list", name)
	}
	if len(node.Content) == 0 {
		return models.ParamSpec{}, configError(node, "parameter %q: values cannot be empty", name)
	}

	values := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolve(item)
		if item.Kind != yaml.ScalarNode || isNull(item) {
			return models.ParamSpec{}, configError(item, "parameter %q: values must be scalars", name)
		}
		values = append(values, item.Value)
	}
	return models.ValuesParam(values...), nil
}

func parseFetch(name string, node *yaml.Node) (models.ParamSpec, error) {
	if node.Kind != yaml.MappingNode {
		return models.ParamSpec{}, configError(node, "parameter %q: fetch must be a mapping", name)
	}

	entries, err := mappingPairs(node)
	if err != nil {
		return models.ParamSpec{}, err
	}

	var fetch models.FetchSpec
	for _, e := range entries {
		key, value := e.key, e.value
		var target *string
		switch key.Value {
		case "repository":
			target = &fetch.Repository
		case "property":
			target = &fetch.Property
		default:
			return models.ParamSpec{}, configError(key, "parameter %q: unknown fetch option %q", name, key.Value)
		}
		if err := decodeString(value, target); err != nil {
			return models.ParamSpec{}, configError(value, "parameter %q: %s: %v", name, key.Value, err)
		}
	}

	if fetch.Repository == "" || fetch.Property == "" {
		return models.ParamSpec{}, configError(node, "parameter %q: fetch requires both repository and property", name)
	}
	return models.FetchParam(fetch.Repository, fetch.Property), nil
}

func parseAltLang(node *yaml.Node) ([]string, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, configError(node, "alt_lang must be a list of locales")
	}

	langs := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolve(item)
		if item.Kind != yaml.ScalarNode || item.Value == "" {
			return nil, configError(item, "alt_lang entries must be locale codes")
		}
		langs = append(langs, item.Value)
	}
	return langs, nil
}

// validateAltLang requires a _locale parameter and a list of distinct
// locales that are well formed and differ from the route's own locale.
func validateAltLang(route models.RouteDefinition, node *yaml.Node) error {
	locale, ok := route.Param(models.LocaleParam)
	if !ok {
		return validationError(node, "route parameter %q must be defined when alt_lang is defined", models.LocaleParam)
	}

	for i, lang := range route.AltLang {
		if !wellFormedLocale(lang) {
			return validationError(node.Content[i], "alt_lang %q is not a valid locale", lang)
		}
		if slices.Contains(route.AltLang[:i], lang) {
			return validationError(node.Content[i], "alt_lang %q listed twice", lang)
		}
	}

	var own []string
	switch locale.Kind {
	case models.ParamScalar:
		own = []string{locale.Scalar}
	case models.ParamValues:
		own = locale.Values
	}
	for i, lang := range route.AltLang {
		if slices.Contains(own, lang) {
			return validationError(node.Content[i], "alt_lang %q is also the route's own locale", lang)
		}
	}

	return nil
}

// wellFormedLocale accepts any syntactically valid BCP 47 tag, including
// ones with subtags that are not registered.
func wellFormedLocale(s string) bool {
	_, err := language.Parse(s)
	if err == nil {
		return true
	}
	var valueErr language.ValueError
	return errors.As(err, &valueErr)
}

type pair struct {
	key, value *yaml.Node
}

// mappingPairs returns the entries of a mapping with aliases resolved and
// merge keys (<<) expanded in place. Keys written in the mapping itself win
// over merged ones; among merged mappings the first one wins.
func mappingPairs(node *yaml.Node) ([]pair, error) {
	explicit := make(map[string]bool)
	for i := 0; i < len(node.Content); i += 2 {
		if key := resolve(node.Content[i]); !isMergeKey(key) {
			explicit[key.Value] = true
		}
	}

	var pairs []pair
	merged := make(map[string]bool)

	for i := 0; i < len(node.Content); i += 2 {
		key, value := resolve(node.Content[i]), resolve(node.Content[i+1])
		if !isMergeKey(key) {
			pairs = append(pairs, pair{key: key, value: value})
			continue
		}

		sources := []*yaml.Node{value}
		if value.Kind == yaml.SequenceNode {
			sources = value.Content
		}
		for _, src := range sources {
			src = resolve(src)
			if src.Kind != yaml.MappingNode {
				return nil, configError(src, "merge key requires a mapping")
			}
			inherited, err := mappingPairs(src)
			if err != nil {
				return nil, err
			}
			for _, p := range inherited {
				if explicit[p.key.Value] || merged[p.key.Value] {
					continue
				}
				merged[p.key.Value] = true
				pairs = append(pairs, p)
			}
		}
	}

	return pairs, nil
}

// resolve follows alias nodes to their anchored node.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Value == "<<" && node.ShortTag() == "!!merge"
}

func decodeString(node *yaml.Node, out *string) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected a string")
	}
	*out = node.Value
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

func unrecognizedParam(name string, node *yaml.Node) error {
	return configError(node, "unrecognized value for parameter %q: options are \"fetch\" or \"values\"", name)
}

func configError(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", node.Line, fmt.Sprintf(format, args...), models.ErrConfiguration)
}

func validationError(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", node.Line, fmt.Sprintf(format, args...), models.ErrValidation)
}
