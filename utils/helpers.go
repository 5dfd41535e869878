package utils

import (
	"strings"
)

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UniqueStrings drops empty entries and duplicates while keeping the first occurrence order
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// Contains reports whether values holds target
func Contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// NonNil returns an empty slice in place of nil so it encodes as []
func NonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
