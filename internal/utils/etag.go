package utils

import (
	"errors"
	"strconv"
	"strings"
)

var ErrMalformedETag = errors.New("malformed_etag")

// FormatVersionETag renders a row version as a strong entity tag, e.g. "2".
func FormatVersionETag(version int64) string {
	return `"` + strconv.FormatInt(version, 10) + `"`
}

// ParseVersionETag reads the version out of an If-Match value. Quoted,
// weak (W/"2") and bare integers are all accepted.
func ParseVersionETag(raw string) (int64, error) {
	v := strings.TrimSpace(raw)
	v = strings.TrimPrefix(v, "W/")
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = v[1 : len(v)-1]
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 1 {
		return 0, ErrMalformedETag
	}
	return n, nil
}
