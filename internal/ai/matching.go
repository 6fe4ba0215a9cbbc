package ai

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MatchExtractor pulls the matched dish ids out of a search reply.
type MatchExtractor interface {
	ExtractMatches(text string) []int
}

// SentinelExtractor reads the `MATCHING_IDS: [...]` line the search prompt
// asks for. Missing lines and unparseable ids yield no match rather than an
// error.
type SentinelExtractor struct{}

var matchingIDsPattern = regexp.MustCompile(`MATCHING_IDS:\s*\[(.*?)\]`)

// ExtractMatches returns the ids listed on the first sentinel line, in order.
func (SentinelExtractor) ExtractMatches(text string) []int {
	ids := []int{}

	match := matchingIDsPattern.FindStringSubmatch(text)
	if match == nil || strings.TrimSpace(match[1]) == "" {
		return ids
	}

	for _, token := range strings.Split(match[1], ",") {
		if id, ok := parseLeadingInt(strings.TrimSpace(token)); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// parseLeadingInt parses an optional sign followed by the leading decimal
// digits of s, ignoring anything after them ("12abc" is 12, "abc" fails).
func parseLeadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return id, true
}

// FormatDishList renders one `- ID <id>: <name> (<cuisine>) - <description>`
// line per dish.
func FormatDishList(dishes []DishEntry) string {
	lines := make([]string, len(dishes))
	for i, d := range dishes {
		lines[i] = fmt.Sprintf("- ID %d: %s (%s) - %s", d.ID, d.Name, d.Cuisine, d.Description)
	}
	return strings.Join(lines, "\n")
}
