package route

import "strings"

// NormalizePath converts colon-prefixed path segments to brace-delimited
// form for OpenAPI compatibility: /users/:id -> /users/{id}. Paths with
// no colon segments are returned unchanged.
func NormalizePath(path string) string {
	if !strings.Contains(path, ":") {
		return path
	}

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") && len(segment) > 1 {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// JoinPaths joins a controller base path with a method path, ensuring a
// single leading slash and no trailing slash (except for the root).
func JoinPaths(base, sub string) string {
	base = strings.Trim(base, "/")
	sub = strings.Trim(sub, "/")

	joined := base
	if sub != "" {
		if joined != "" {
			joined += "/"
		}
		joined += sub
	}

	return "/" + joined
}
