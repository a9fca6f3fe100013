package trivia

import "strings"

// MatchesSearch reports whether term occurs as a contiguous substring of the
// question text, ignoring case. Empty terms are rejected by the service
// before this predicate runs.
func MatchesSearch(q Question, term string) bool {
	return strings.Contains(strings.ToLower(q.Text), strings.ToLower(term))
}

// FilterQuestions applies MatchesSearch over a full scan. Linear; the intended
// dataset is hundreds of rows, so no index is kept.
func FilterQuestions(questions []Question, term string) []Question {
	matched := make([]Question, 0, len(questions))
	for _, q := range questions {
		if MatchesSearch(q, term) {
			matched = append(matched, q)
		}
	}
	return matched
}
