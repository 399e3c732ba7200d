package model

import (
	"fmt"
	"strconv"
	"time"
)

// parseID parses the textual id column. Stored ids are always positive;
// a blank or malformed value makes the whole row unusable.
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed id %q: %w", s, err)
	}
	return uint(id), nil
}

// parseTime parses a stored timestamp. An empty value is tolerated (rows
// written by earlier deployments have no timestamp column) and comes back
// as the zero time.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	return ts, nil
}
