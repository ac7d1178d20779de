// Package router maps view paths to routes and guards the protected ones.
// Anonymous visitors of a protected view are sent to the join view with the
// original path kept in the "next" query parameter, so they land where they
// wanted to go once signed in.
package router

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/newsdigest/internal/client/session"
)

const (
	JoinPath    = "/join"
	DefaultPath = "/summaries"
	nextParam   = "next"
)

type Access int

const (
	Public Access = iota
	Protected
	// GuestOnly routes send signed-in users on to their next page.
	GuestOnly
)

type Route struct {
	Name    string
	Pattern string
	Access  Access
}

type Outcome int

const (
	Render Outcome = iota
	Redirect
	Loading
	NotFound
)

func (o Outcome) String() string {
	return [...]string{"render", "redirect", "loading", "not found"}[o]
}

// Decision is the result of resolving a path.
type Decision struct {
	Outcome Outcome
	Route   Route
	Params  map[string]string
	// Location is the redirect target when Outcome is Redirect.
	Location string
}

// SessionState is the part of session.Store the guard needs.
type SessionState interface {
	Current() session.State
	IsAuthenticated() bool
}

type Router struct {
	routes  []Route
	session SessionState
}

func New(s SessionState, routes ...Route) *Router {
	return &Router{routes: routes, session: s}
}

// DefaultRoutes is the client's view table.
func DefaultRoutes() []Route {
	return []Route{
		{Name: "home", Pattern: "/", Access: Public},
		{Name: "join", Pattern: JoinPath, Access: GuestOnly},
		{Name: "summaries", Pattern: "/summaries", Access: Protected},
		{Name: "summary", Pattern: "/summaries/{id}", Access: Protected},
		{Name: "dashboard", Pattern: "/dashboard", Access: Protected},
		{Name: "profile", Pattern: "/profile/{id}", Access: Protected},
		{Name: "chat", Pattern: "/chat", Access: Protected},
	}
}

// Resolve decides what to show for path.
func (r *Router) Resolve(path string) Decision {
	u, err := url.Parse(path)
	if err != nil {
		return Decision{Outcome: NotFound}
	}

	route, params, ok := r.match(u.Path)
	if !ok {
		return Decision{Outcome: NotFound}
	}
	d := Decision{Outcome: Render, Route: route, Params: params}

	switch route.Access {
	case Protected:
		if r.session.Current().Status == session.StatusPending {
			d.Outcome = Loading
			return d
		}
		if !r.session.IsAuthenticated() {
			d.Outcome = Redirect
			d.Location = JoinLocation(path)
		}
	case GuestOnly:
		if r.session.IsAuthenticated() {
			d.Outcome = Redirect
			d.Location = AfterLogin(u.Query().Get(nextParam))
		}
	}
	return d
}

func (r *Router) match(path string) (Route, map[string]string, bool) {
	segs := split(path)
	for _, route := range r.routes {
		pat := split(route.Pattern)
		if len(pat) != len(segs) {
			continue
		}
		params := map[string]string{}
		matched := true
		for i, p := range pat {
			if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
				params[p[1:len(p)-1]] = segs[i]
				continue
			}
			if p != segs[i] {
				matched = false
				break
			}
		}
		if matched {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// JoinLocation is the join view remembering original as the return path.
func JoinLocation(original string) string {
	return JoinPath + "?" + url.Values{nextParam: {original}}.Encode()
}

// NextFrom extracts the return path from a join location, "" if none.
func NextFrom(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return ""
	}
	return u.Query().Get(nextParam)
}

// AfterLogin returns where to go after signing in. Only local paths are
// honoured; anything else falls back to DefaultPath.
func AfterLogin(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return DefaultPath
	}
	u, err := url.Parse(next)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return DefaultPath
	}
	if u.Path == JoinPath {
		return DefaultPath
	}
	return next
}
