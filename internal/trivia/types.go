package trivia

import (
	"fmt"
	"strconv"
	"strings"
)

// AllCategories is the reserved category selector meaning "draw from every
// category" during quiz play. It matches the wire protocol, where the client
// sends quiz_category.id = 0 for the "All" choice.
const AllCategories = 0

// Question is a single trivia prompt. The store assigns the id on insert and
// ids are never reused.
type Question struct {
	ID         int    `json:"id"`
	Text       string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category groups questions by topic. Categories are pre-populated and
// read-only while the service runs.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries the caller-supplied fields for an insert.
type NewQuestion struct {
	Text       string
	Answer     string
	CategoryID int
	Difficulty int
}

// FlexibleID decodes an integer id that clients may send either as a JSON
// number or as a numeric string. Coercion happens once here; everything past
// the boundary compares plain ints.
type FlexibleID int

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("id must not be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("id %q is not an integer", s)
	}
	*f = FlexibleID(n)
	return nil
}
