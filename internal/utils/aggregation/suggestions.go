package aggregation

import "strings"

// SuggestDescriptions returns every previously used description containing
// input, case-insensitively, in the order of all. Empty input yields nothing,
// and neither the empty string nor an exact match of input is suggested.
func SuggestDescriptions(all []string, input string) []string {
	out := []string{}
	if strings.TrimSpace(input) == "" {
		return out
	}
	needle := strings.ToLower(input)
	seen := make(map[string]struct{}, len(all))
	for _, d := range all {
		if d == "" || d == input {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		if strings.Contains(strings.ToLower(d), needle) {
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}
