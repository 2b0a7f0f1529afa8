package filesystem

import (
	"net/url"
	"strings"
)

// LocalPath converts a file:// URI to a local path. MCP clients commonly
// send roots as file URIs; bare paths pass through unchanged.
func LocalPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil || u.Path == "" {
		return strings.TrimPrefix(uri, "file://")
	}
	return u.Path
}
