package activity

import "strings"

const locationSeparator = ", "

// ExtractCountry returns the country token of a pre-resolved
// "City, Country" location string: the last non-empty segment after
// splitting on ", ", trimmed. A string with no separator is returned
// whole (so "Unknown" yields "Unknown"). The second return is false for
// an empty or malformed string; callers skip the record instead of
// failing. Countries containing ", " themselves are not handled.
func ExtractCountry(location string) (string, bool) {
	if strings.TrimSpace(location) == "" {
		return "", false
	}
	parts := strings.Split(location, locationSeparator)
	for i := len(parts) - 1; i >= 0; i-- {
		if p := strings.TrimSpace(parts[i]); p != "" {
			return p, true
		}
	}
	return "", false
}
