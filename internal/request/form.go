package request

import (
	"net/url"
	"strings"
)

// ParseForm decodes an application/x-www-form-urlencoded body. It never
// fails: pairs without '=' or with an empty value are dropped, and a value
// with a bad percent escape is kept literally with '+' read as a space.
func ParseForm(body string) url.Values {
	values := url.Values{}
	for pair := range strings.SplitSeq(body, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || value == "" {
			continue
		}
		key = unescape(key)
		value = unescape(value)
		if value == "" {
			continue
		}
		values[key] = append(values[key], value)
	}
	return values
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return strings.ReplaceAll(s, "+", " ")
}
