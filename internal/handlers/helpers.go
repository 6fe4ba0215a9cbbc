package handlers

import (
	"fmt"
	"strconv"
)

// parseIntParam parses a path parameter into a positive int.
func parseIntParam(param string) (int, error) {
	parsed, err := strconv.Atoi(param)
	if err != nil {
		return 0, err
	}
	if parsed < 1 {
		return 0, fmt.Errorf("value must be positive: %d", parsed)
	}
	return parsed, nil
}
