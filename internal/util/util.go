// Package util holds small request and URL helpers shared by the
// registry and the security gate.
package util

import (
	"fmt"
	"net/url"
	"strings"
)

// BaseURL strips the query string and fragment from a URL so that two
// requests for the same backend differing only in query parameters map
// to one registered service.
func BaseURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing service url %q: %w", rawURL, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// PathElements splits a request path into its non-empty segments.
func PathElements(path string) []string {
	var elements []string
	for _, el := range strings.Split(path, "/") {
		if s := strings.TrimSpace(el); s != "" {
			elements = append(elements, s)
		}
	}
	return elements
}

// ParseServiceName extracts the target service name from a protected
// request path: the first segment after the prefix.
func ParseServiceName(path, prefix string) (string, error) {
	if !strings.HasPrefix(path, prefix) {
		return "", fmt.Errorf("path %q is not below %q", path, prefix)
	}
	elements := PathElements(strings.TrimPrefix(path, prefix))
	if len(elements) == 0 {
		return "", fmt.Errorf("no service name in path %q", path)
	}
	return elements[0], nil
}
