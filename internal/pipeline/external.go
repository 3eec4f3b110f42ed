package pipeline

import "strings"

// ExternalVotes reports whether a page's free-text info annotation marks the
// precinct as counting votes cast elsewhere (embassies, transferred voters,
// special precincts). The annotation is a "+"-joined keyword list with
// inconsistent spacing and separators.
func ExternalVotes(info string) bool {
	s := strings.ReplaceAll(info, " ", "")
	s = strings.ReplaceAll(s, "  ", " ")
	s = strings.ReplaceAll(s, " - ", " + ")
	s = strings.ToLower(s)

	for _, token := range strings.Split(s, "+") {
		token = strings.TrimSpace(token)
		for _, kw := range externalKeywords {
			if token == kw {
				return true
			}
		}
	}
	return false
}
