package search

import "strings"

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func containsSubstringFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContainsSubstringFold(values []string, needle string) bool {
	for _, v := range values {
		if containsSubstringFold(v, needle) {
			return true
		}
	}
	return false
}
