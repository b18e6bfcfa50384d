package render

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/vango-dev/soar/internal/errors"
)

// DefaultHashLength is the number of hex characters in a scope id.
const DefaultHashLength = 6

// Digest derives the scope id of a style block: the xxhash64 of the trimmed
// source in hex, truncated to length characters. Identical blocks always
// share an id.
func Digest(style string, length int) (string, error) {
	if length < 1 || length > 16 {
		return "", errors.New("E004").
			WithDetail(fmt.Sprintf("hash length %d is outside 1..16", length))
	}
	sum := xxhash.Sum64String(strings.TrimSpace(style))
	return fmt.Sprintf("%016x", sum)[:length], nil
}
