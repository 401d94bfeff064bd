package ratelimit

import "strings"

// Match resolves the rule governing a path and method. Exact path
// matches win over prefix rules (paths ending in "/"). Health and
// metrics probes are never limited.
func Match(path, method string, rules []Rule) *Rule {
	if method == "GET" && (path == "/health" || path == "/metrics") {
		return &Rule{}
	}

	for i := range rules {
		r := &rules[i]
		if r.Method == method && r.Path == path {
			return r
		}
	}

	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}

	return nil
}
