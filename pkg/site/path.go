package site

import (
	"net/url"
	"path"
	"strings"

	"github.com/vango-dev/soar/internal/errors"
)

// CleanURL normalizes a page url: a single leading slash, no trailing
// slash, no "." or ".." segments. The empty url is "/".
func CleanURL(url string) string {
	return path.Clean("/" + strings.TrimSpace(url))
}

// PageFile returns the output path of the page at url, relative to the
// output directory, in slash form.
func PageFile(url string) string {
	url = strings.TrimPrefix(CleanURL(url), "/")
	if url == "" {
		return "index.html"
	}
	return url + "/index.html"
}

// PageURL is the inverse of PageFile: it reports the page url an output
// path stands for. Only index.html files stand for pages.
func PageURL(file string) (string, bool) {
	file = strings.TrimPrefix(file, "/")
	if file != "index.html" && !strings.HasSuffix(file, "/index.html") {
		return "", false
	}
	return CleanURL(strings.TrimSuffix(file, "index.html")), true
}

// requestURL maps a request path to a page url. Paths ending in a slash,
// paths without an extension and index.html paths name pages.
func requestURL(p string) (string, bool) {
	if strings.HasSuffix(p, "/") || path.Ext(p) == "" {
		return CleanURL(p), true
	}
	return PageURL(p)
}

// canonicalPath validates an escaped request path and returns it decoded
// and cleaned. Unlike CleanURL it refuses paths that path.Clean would
// silently repair:
//   - backslashes and NUL bytes, literal or encoded
//   - malformed percent escapes such as %GG or a trailing %2
//   - ".." segments that climb above the root
func canonicalPath(escaped string) (string, error) {
	invalid := func(detail string) (string, error) {
		return "", errors.New("E204").WithDetail(detail + ": " + escaped)
	}

	if strings.Contains(escaped, "%") {
		if !validEscapes(escaped) {
			return invalid("malformed percent escape")
		}
	}
	decoded, err := url.PathUnescape(escaped)
	if err != nil {
		return invalid("malformed percent escape")
	}
	if strings.ContainsRune(decoded, '\\') {
		return invalid("backslash in path")
	}
	if strings.ContainsRune(decoded, 0) {
		return invalid("NUL byte in path")
	}

	var segments []string
	for _, seg := range strings.Split(decoded, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return invalid("path escapes the root")
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}
	return "/" + strings.Join(segments, "/"), nil
}

func validEscapes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
			return false
		}
		i += 2
	}
	return true
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
