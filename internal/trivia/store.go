package trivia

import "context"

// Store is the durable keyed storage for questions and categories
// (implemented by the Postgres-backed repository). All scans return rows
// ordered by ascending id; that ordering is what makes pagination
// deterministic. Reads reflect prior writes immediately.
type Store interface {
	InsertQuestion(ctx context.Context, q NewQuestion) (Question, error)
	DeleteQuestion(ctx context.Context, id int) error
	GetQuestion(ctx context.Context, id int) (Question, error)
	AllQuestions(ctx context.Context) ([]Question, error)
	QuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error)
	CountQuestions(ctx context.Context) (int, error)
	GetCategory(ctx context.Context, id int) (Category, error)
	AllCategories(ctx context.Context) ([]Category, error)
}
