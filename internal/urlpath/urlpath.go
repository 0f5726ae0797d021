// Package urlpath provides the normalized URL path type used for every page
// address in a generated site. Paths are cleaned at construction: empty
// segments and "." are dropped, ".." pops the previous segment and never
// underflows past the root.
package urlpath

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Path is an ordered sequence of URL path segments, optionally carrying a
// scheme and host for external targets (e.g. cppreference redirects).
// The zero value is the site root.
type Path struct {
	scheme   string
	host     string
	segments []string
}

// New builds a cleaned path from segments.
func New(segments ...string) Path {
	return Path{segments: clean(segments)}
}

// Parse builds a path from a slash-separated string. Strings with a
// "scheme://host" prefix keep the scheme and host; everything else is treated
// as path segments. Parse never fails; malformed input degrades to a plain
// segment path.
func Parse(s string) Path {
	var p Path
	if idx := strings.Index(s, "://"); idx >= 0 {
		p.scheme = s[:idx]
		s = s[idx+3:]
		if slash := strings.IndexByte(s, '/'); slash >= 0 {
			p.host = s[:slash]
			s = s[slash+1:]
		} else {
			p.host = s
			s = ""
		}
	}
	p.segments = clean(strings.Split(s, "/"))
	return p
}

// External builds a path pointing at another site.
func External(scheme, host string, segments ...string) Path {
	return Path{scheme: scheme, host: host, segments: clean(segments)}
}

func clean(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return out
}

// Join appends other's segments to p. If other carries a host it wins
// wholesale, matching URL resolution semantics.
func (p Path) Join(other Path) Path {
	if other.host != "" {
		return other
	}
	joined := make([]string, 0, len(p.segments)+len(other.segments))
	joined = append(joined, p.segments...)
	joined = append(joined, other.segments...)
	return Path{scheme: p.scheme, host: p.host, segments: clean(joined)}
}

// Append joins a single raw segment string (which may itself contain slashes).
func (p Path) Append(segment string) Path {
	return p.Join(Parse(segment))
}

// HasPrefix reports whether p starts with prefix's segments.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.segments) > len(p.segments) {
		return false
	}
	for i, seg := range prefix.segments {
		if p.segments[i] != seg {
			return false
		}
	}
	return true
}

// StripPrefix removes the longest leading run of segments shared with prefix.
// It never fails; a prefix that does not match at all returns p unchanged.
func (p Path) StripPrefix(prefix Path) Path {
	n := 0
	for n < len(prefix.segments) && n < len(p.segments) && p.segments[n] == prefix.segments[n] {
		n++
	}
	rest := make([]string, len(p.segments)-n)
	copy(rest, p.segments[n:])
	return Path{scheme: p.scheme, host: p.host, segments: rest}
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// FileName returns the last segment, or "" for the root.
func (p Path) FileName() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// TrimExt returns the path with ext removed from its last segment.
func (p Path) TrimExt(ext string) Path {
	if len(p.segments) == 0 {
		return p
	}
	segs := p.Segments()
	segs[len(segs)-1] = strings.TrimSuffix(segs[len(segs)-1], ext)
	return Path{scheme: p.scheme, host: p.host, segments: segs}
}

// IsRoot reports whether the path has no segments.
func (p Path) IsRoot() bool {
	return p.host == "" && len(p.segments) == 0
}

// IsExternal reports whether the path points at another site.
func (p Path) IsExternal() bool {
	return p.host != ""
}

// Equal compares two paths segment by segment.
func (p Path) Equal(other Path) bool {
	if p.scheme != other.scheme || p.host != other.host || len(p.segments) != len(other.segments) {
		return false
	}
	for i, seg := range p.segments {
		if other.segments[i] != seg {
			return false
		}
	}
	return true
}

// String renders the raw display form: segments joined by "/", prefixed by
// scheme and host when present.
func (p Path) String() string {
	joined := strings.Join(p.segments, "/")
	if p.host == "" {
		return joined
	}
	scheme := p.scheme
	if scheme == "" {
		scheme = "https"
	}
	if joined == "" {
		return scheme + "://" + p.host
	}
	return scheme + "://" + p.host + "/" + joined
}

// Encoded renders the filesystem/URL-safe form with each segment
// percent-escaped.
func (p Path) Encoded() string {
	escaped := make([]string, len(p.segments))
	for i, seg := range p.segments {
		escaped[i] = url.PathEscape(seg)
	}
	joined := strings.Join(escaped, "/")
	if p.host == "" {
		return joined
	}
	scheme := p.scheme
	if scheme == "" {
		scheme = "https"
	}
	if joined == "" {
		return scheme + "://" + p.host
	}
	return scheme + "://" + p.host + "/" + joined
}

// Href renders the site-absolute link form used in generated markup: a
// leading slash for internal paths, the full URL for external ones.
func (p Path) Href() string {
	if p.host != "" {
		return p.Encoded()
	}
	return "/" + p.Encoded()
}

// Filepath renders the path using the platform separator for disk access.
func (p Path) Filepath() string {
	return filepath.Join(p.segments...)
}

// FromFilepath converts a platform file path into a Path.
func FromFilepath(s string) Path {
	return New(strings.Split(filepath.ToSlash(s), "/")...)
}
