package repository

import (
	"context"

	"github.com/triviahub/trivia-api/internal/trivia"
)

// GetCategory looks up a category by id, failing with trivia.ErrNotFound when
// absent. The façade uses this to validate a category before scoping.
func (s *Store) GetCategory(ctx context.Context, id int) (trivia.Category, error) {
	var c trivia.Category
	err := s.pool.QueryRow(ctx,
		`SELECT id, type FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Type)
	if err != nil {
		return trivia.Category{}, storeErr("get category", err)
	}
	return c, nil
}

// AllCategories returns every category ordered by ascending id.
func (s *Store) AllCategories(ctx context.Context) ([]trivia.Category, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, storeErr("scan categories", err)
	}
	defer rows.Close()

	var categories []trivia.Category
	for rows.Next() {
		var c trivia.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, storeErr("scan categories", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("scan categories", err)
	}
	return categories, nil
}
