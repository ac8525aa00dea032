// Package useragent guesses a browser and OS label from a raw client
// agent string. The labels are display cosmetics for the admin console,
// not security signals, and the matching is deliberately coarse.
package useragent

import "strings"

// Label is a human-readable client description, e.g. "Chrome on Windows".
type Label struct {
	Browser string `json:"browser"`
	OS      string `json:"os"`
}

// String renders the label for table cells.
func (l Label) String() string {
	if l.Browser == "" && l.OS == "" {
		return "Unknown client"
	}
	if l.OS == "" {
		return l.Browser
	}
	if l.Browser == "" {
		return l.OS
	}
	return l.Browser + " on " + l.OS
}

// Classify extracts a browser/OS guess from a user-agent string. Order
// matters: Edge and Opera embed "Chrome", Chrome embeds "Safari".
func Classify(ua string) Label {
	var l Label
	lower := strings.ToLower(ua)

	switch {
	case strings.Contains(lower, "edg/"), strings.Contains(lower, "edge"):
		l.Browser = "Edge"
	case strings.Contains(lower, "opr/"), strings.Contains(lower, "opera"):
		l.Browser = "Opera"
	case strings.Contains(lower, "firefox"):
		l.Browser = "Firefox"
	case strings.Contains(lower, "chrome"):
		l.Browser = "Chrome"
	case strings.Contains(lower, "safari"):
		l.Browser = "Safari"
	}

	switch {
	case strings.Contains(lower, "windows"):
		l.OS = "Windows"
	case strings.Contains(lower, "android"):
		l.OS = "Android"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"), strings.Contains(lower, "ios"):
		l.OS = "iOS"
	case strings.Contains(lower, "mac os"), strings.Contains(lower, "macintosh"):
		l.OS = "macOS"
	case strings.Contains(lower, "linux"):
		l.OS = "Linux"
	}

	return l
}
