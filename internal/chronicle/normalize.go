package chronicle

import "strings"

// NormalizeExportID resolves a caller-supplied export identifier into
// the versioned resource path the API expects. Pure and total; input
// that matches none of the rewrite cases passes through untouched.
//
// Cases, in order:
//  1. no "projects/" substring: a bare short id, anchored under the
//     instance base path
//  2. starts with "projects/": a full path as returned by the API,
//     missing only the version segment
//  3. anything else (including ids merely containing "projects/"):
//     assumed already fully qualified
func NormalizeExportID(raw, instanceBasePath string) string {
	if !strings.Contains(raw, "projects/") {
		return instanceBasePath + "/dataExports/" + raw
	}
	if strings.HasPrefix(raw, "projects/") {
		return "v1alpha/" + raw
	}
	return raw
}
