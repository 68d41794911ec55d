package auth

import (
	"strings"
)

// PublicRoutes marks which routes skip the authentication guard. The
// registry is built during startup and read-only afterwards, so lookups
// take no locks.
//
// Endpoint entries are exact method+path matches. Group entries match
// any path under a prefix, for any method. An endpoint entry always
// wins over a group entry covering the same path, which lets a mostly
// public group carry individually protected endpoints.
type PublicRoutes struct {
	endpoints map[string]bool
	groups    []string
}

// NewPublicRoutes creates an empty registry; everything is protected
// until marked otherwise.
func NewPublicRoutes() *PublicRoutes {
	return &PublicRoutes{
		endpoints: map[string]bool{},
	}
}

func endpointKey(method, path string) string {
	return strings.ToUpper(method) + " " + normalizePath(path)
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

// Route marks a single method+path pair as public
func (p *PublicRoutes) Route(method, path string) *PublicRoutes {
	p.endpoints[endpointKey(method, path)] = true
	return p
}

// RouteProtected pins a method+path pair as protected even when a
// public group covers it
func (p *PublicRoutes) RouteProtected(method, path string) *PublicRoutes {
	p.endpoints[endpointKey(method, path)] = false
	return p
}

// Group marks every route under the prefix as public
func (p *PublicRoutes) Group(prefix string) *PublicRoutes {
	p.groups = append(p.groups, normalizePath(prefix))
	return p
}

// IsPublic reports whether the guard should skip the given request
func (p *PublicRoutes) IsPublic(method, path string) bool {
	if public, ok := p.endpoints[endpointKey(method, path)]; ok {
		return public
	}

	path = normalizePath(path)
	for _, prefix := range p.groups {
		if prefix == "/" || path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
