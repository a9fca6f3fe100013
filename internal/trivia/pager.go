package trivia

// Paginate returns the 1-based page of items for the given page size. Pages
// outside the sequence bounds (including page < 1) yield an empty result, not
// an error; the caller decides whether an empty page is a not-found condition.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
