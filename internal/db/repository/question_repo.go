package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/triviahub/trivia-api/internal/trivia"
)

const questionColumns = "id, question, answer, category_id, difficulty"

// InsertQuestion stores a new question and returns it with the id the
// database assigned. Ids come from a sequence and are never reused.
func (s *Store) InsertQuestion(ctx context.Context, q trivia.NewQuestion) (trivia.Question, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO questions (question, answer, category_id, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING `+questionColumns,
		q.Text, q.Answer, q.CategoryID, q.Difficulty)

	inserted, err := scanQuestion(row)
	if err != nil {
		return trivia.Question{}, storeErr("insert question", err)
	}
	return inserted, nil
}

// DeleteQuestion removes the question by id, failing with
// trivia.ErrNotFound when no row matches.
func (s *Store) DeleteQuestion(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete question", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete question %d: %w", id, trivia.ErrNotFound)
	}
	return nil
}

// GetQuestion looks up a single question by id.
func (s *Store) GetQuestion(ctx context.Context, id int) (trivia.Question, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	q, err := scanQuestion(row)
	if err != nil {
		return trivia.Question{}, storeErr("get question", err)
	}
	return q, nil
}

// AllQuestions returns the full question scan ordered by ascending id.
func (s *Store) AllQuestions(ctx context.Context) ([]trivia.Question, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY id`)
	if err != nil {
		return nil, storeErr("scan questions", err)
	}
	return collectQuestions(rows, "scan questions")
}

// QuestionsByCategory returns the questions of one category ordered by
// ascending id. An unknown category yields an empty slice, not an error;
// existence checks belong to the caller.
func (s *Store) QuestionsByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE category_id = $1 ORDER BY id`,
		categoryID)
	if err != nil {
		return nil, storeErr("scan category questions", err)
	}
	return collectQuestions(rows, "scan category questions")
}

// CountQuestions returns the global question count.
func (s *Store) CountQuestions(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return 0, storeErr("count questions", err)
	}
	return count, nil
}

func scanQuestion(row pgx.Row) (trivia.Question, error) {
	var q trivia.Question
	err := row.Scan(&q.ID, &q.Text, &q.Answer, &q.CategoryID, &q.Difficulty)
	return q, err
}

func collectQuestions(rows pgx.Rows, op string) ([]trivia.Question, error) {
	defer rows.Close()
	var questions []trivia.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return questions, nil
}
