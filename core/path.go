package core

import "strings"

// Path is a parsed slash-delimited node path. Segments are matched
// case-sensitively against node names; "." keeps the current node and ".."
// steps to the parent. A leading slash makes the path absolute, in which
// case the first segment must name the tree's root.
type Path struct {
	segments []string
	absolute bool
}

// ParsePath splits a path string into segments. Empty segments produced by
// doubled or trailing slashes are dropped.
func ParsePath(s string) Path {
	absolute := strings.HasPrefix(s, "/")
	var segments []string
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return Path{segments: segments, absolute: absolute}
}

// Absolute reports whether the path is rooted.
func (p Path) Absolute() bool { return p.absolute }

// Segments returns the path's segments in order.
func (p Path) Segments() []string { return p.segments }

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool { return len(p.segments) == 0 }

// String reassembles the canonical form of the path.
func (p Path) String() string {
	joined := strings.Join(p.segments, "/")
	if p.absolute {
		return "/" + joined
	}
	return joined
}
