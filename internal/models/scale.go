package models

import (
	"strings"
)

// Scale is a named musical key offered by the generator form
type Scale string

const (
	ScaleCMajor Scale = "C Major"
	ScaleDMinor Scale = "D Minor"
	ScaleFMajor Scale = "F Major"
	ScaleGMinor Scale = "G Minor"
)

// Scales lists the selectable scales in display order
var Scales = []Scale{ScaleCMajor, ScaleDMinor, ScaleFMajor, ScaleGMinor}

// Label returns the human readable name (e.g. "C Major")
func (s Scale) Label() string {
	return string(s)
}

// Value returns the form/wire value, with spaces replaced by underscores (e.g. "C_Major")
func (s Scale) Value() string {
	return strings.ReplaceAll(string(s), " ", "_")
}

// LookupScale resolves either a label ("C Major") or a wire value ("C_Major").
// Matching ignores case and surrounding whitespace.
func LookupScale(input string) (Scale, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input), "_", " "))
	if normalized == "" {
		return "", false
	}
	for _, s := range Scales {
		if strings.ToLower(string(s)) == normalized {
			return s, true
		}
	}
	return "", false
}
