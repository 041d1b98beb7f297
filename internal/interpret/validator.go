package interpret

import (
	"encoding/json"
	"strings"
)

// ExtractIDs sanitizes the reasoning capability's raw output into a list of
// identifier strings. The capability is treated as an adversarial text
// generator: acceptance is all-or-nothing and every failure collapses to an
// empty list, never an error.
//
// The candidate substring runs from the first '[' to the last ']' in the
// output, falling back to the whole output when no such bounded substring
// exists. This extraction is deliberately simple; with multiple bracketed
// segments inside surrounding commentary it can grab too much, which then
// fails the strict parse below. That is the defined contract, not a bug to
// fix with smarter extraction.
//
// The candidate must parse as a JSON array whose every element is a string.
// Numbers, objects, booleans and nulls reject the whole result, no partial
// acceptance. Duplicates are preserved, and no catalog existence check
// happens here: unknown ids are dropped later at the presentation boundary.
func ExtractIDs(raw string) []string {
	candidate := raw
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		candidate = raw[start : end+1]
	}

	var parsed []any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return []string{}
	}

	ids := make([]string, 0, len(parsed))
	for _, v := range parsed {
		s, ok := v.(string)
		if !ok {
			return []string{}
		}
		ids = append(ids, s)
	}
	return ids
}
