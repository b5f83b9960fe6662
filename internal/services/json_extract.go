package services

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Model output arrives as free text. Extraction is an ordered chain of
// attempts with a tagged outcome so every failure mode is explicit: a fenced
// ```json block first, then the first balanced top-level object.
type extractionKind int

const (
	extractionFenced extractionKind = iota
	extractionBare
	extractionFailed
)

type extraction struct {
	Kind extractionKind
	JSON string
}

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

func extractJSONPayload(raw string) extraction {
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		candidate := strings.TrimSpace(m[1])
		if json.Valid([]byte(candidate)) {
			return extraction{Kind: extractionFenced, JSON: candidate}
		}
	}

	if candidate := firstBalancedObject(raw); candidate != "" && json.Valid([]byte(candidate)) {
		return extraction{Kind: extractionBare, JSON: candidate}
	}

	return extraction{Kind: extractionFailed}
}

// firstBalancedObject returns the first top-level {...} span, tracking string
// literals so braces inside JSON strings do not unbalance the scan.
func firstBalancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
