package sitemap

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"

	"github.com/romangod6/sitemap-gen/internal/models"
)

// placeholderPattern matches {param} placeholders in route paths
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Router generates absolute URLs for route entries.
type Router struct {
	scheme string
	host   string
	paths  map[string]string
}

// NewRouter creates a router for host. Routes without a path are served
// at /<route name>.
func NewRouter(scheme, host string, routes []models.RouteDefinition) (*Router, error) {
	switch scheme {
	case "http", "https":
	default:
		return nil, fmt.Errorf("unsupported scheme %q", scheme)
	}

	normalized, err := normalizeHost(host)
	if err != nil {
		return nil, err
	}

	paths := make(map[string]string, len(routes))
	for _, r := range routes {
		p := r.Path
		if p == "" {
			p = "/" + r.Name
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		paths[r.Name] = p
	}

	return &Router{scheme: scheme, host: normalized, paths: paths}, nil
}

func (r *Router) Host() string {
	return r.host
}

// Generate builds the URL of a route with the given parameters. Parameters
// not used by the path are appended as query string in declaration order.
func (r *Router) Generate(route string, params models.Assignment) (string, error) {
	tmpl, ok := r.paths[route]
	if !ok {
		return "", fmt.Errorf("route %q does not exist", route)
	}

	values := params.Map()
	used := make(map[string]bool)
	var missing []string

	path := placeholderPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := values[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		used[name] = true
		return url.PathEscape(v)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("route %q: missing parameter(s) %s: %w",
			route, strings.Join(missing, ", "), models.ErrConfiguration)
	}

	var query []string
	for _, p := range params {
		if used[p.Name] {
			continue
		}
		query = append(query, url.QueryEscape(p.Name)+"="+url.QueryEscape(p.Value))
	}

	loc := r.scheme + "://" + r.host + path
	if len(query) > 0 {
		loc += "?" + strings.Join(query, "&")
	}
	return loc, nil
}

// normalizeHost converts an internationalized host name to its ASCII form.
// A port is kept as given.
func normalizeHost(host string) (string, error) {
	if host == "" {
		return "", fmt.Errorf("host cannot be empty")
	}
	if strings.ContainsAny(host, "/?#") {
		return "", fmt.Errorf("invalid host %q: expected a host name without scheme or path", host)
	}

	name, port := host, ""
	if h, p, err := net.SplitHostPort(host); err == nil {
		name, port = h, p
	}

	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("invalid host %q: %w", host, err)
	}

	if port != "" {
		return net.JoinHostPort(ascii, port), nil
	}
	return ascii, nil
}
