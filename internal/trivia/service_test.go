package trivia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// memoryStore is an id-ordered in-memory Store used across the service tests.
type memoryStore struct {
	questions  []Question
	categories []Category
	nextID     int
	failWith   error
}

func newMemoryStore(categories []Category, questions []Question) *memoryStore {
	nextID := 1
	for _, q := range questions {
		if q.ID >= nextID {
			nextID = q.ID + 1
		}
	}
	return &memoryStore{questions: questions, categories: categories, nextID: nextID}
}

func (m *memoryStore) InsertQuestion(_ context.Context, q NewQuestion) (Question, error) {
	if m.failWith != nil {
		return Question{}, m.failWith
	}
	inserted := Question{
		ID:         m.nextID,
		Text:       q.Text,
		Answer:     q.Answer,
		CategoryID: q.CategoryID,
		Difficulty: q.Difficulty,
	}
	m.nextID++
	m.questions = append(m.questions, inserted)
	return inserted, nil
}

func (m *memoryStore) DeleteQuestion(_ context.Context, id int) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i, q := range m.questions {
		if q.ID == id {
			m.questions = append(m.questions[:i], m.questions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("question %d: %w", id, ErrNotFound)
}

func (m *memoryStore) GetQuestion(_ context.Context, id int) (Question, error) {
	for _, q := range m.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
}

func (m *memoryStore) AllQuestions(_ context.Context) ([]Question, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	ordered := append([]Question(nil), m.questions...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return ordered, nil
}

func (m *memoryStore) QuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error) {
	all, err := m.AllQuestions(ctx)
	if err != nil {
		return nil, err
	}
	var scoped []Question
	for _, q := range all {
		if q.CategoryID == categoryID {
			scoped = append(scoped, q)
		}
	}
	return scoped, nil
}

func (m *memoryStore) CountQuestions(_ context.Context) (int, error) {
	return len(m.questions), nil
}

func (m *memoryStore) GetCategory(_ context.Context, id int) (Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
}

func (m *memoryStore) AllCategories(_ context.Context) ([]Category, error) {
	return append([]Category(nil), m.categories...), nil
}

type memoryCategoryCache struct {
	entries []Category
	sets    int
}

func (c *memoryCategoryCache) Get(context.Context) ([]Category, error) {
	return c.entries, nil
}

func (c *memoryCategoryCache) Set(_ context.Context, categories []Category) error {
	c.entries = categories
	c.sets++
	return nil
}

func seededService(t *testing.T, questionCount int) (*Service, *memoryStore) {
	t.Helper()
	categories := []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 4, Type: "History"},
	}
	var questions []Question
	for i := 1; i <= questionCount; i++ {
		questions = append(questions, Question{
			ID:         i,
			Text:       fmt.Sprintf("Question %d?", i),
			Answer:     fmt.Sprintf("Answer %d", i),
			CategoryID: 1 + (i % 2), // alternates category 1 and 2
			Difficulty: 1,
		})
	}
	store := newMemoryStore(categories, questions)
	svc := NewService(store, &memoryCategoryCache{}, stubRand{}, ServiceOptions{PageSize: 10}, zerolog.New(io.Discard))
	return svc, store
}

func TestListQuestionsPaginates(t *testing.T) {
	svc, _ := seededService(t, 23)

	first, err := svc.ListQuestions(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, first.Questions, 10)
	assert.Equal(t, 23, first.TotalQuestions)
	assert.Equal(t, "Science", first.Categories[1])

	last, err := svc.ListQuestions(context.Background(), 3)
	assert.NoError(t, err)
	assert.Len(t, last.Questions, 3)
	assert.Equal(t, 21, last.Questions[0].ID)
}

func TestListQuestionsEmptyPageIsNotFound(t *testing.T) {
	svc, _ := seededService(t, 23)

	_, err := svc.ListQuestions(context.Background(), 1000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCategories(t *testing.T) {
	svc, _ := seededService(t, 3)

	mapping, err := svc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Science", 2: "Art", 4: "History"}, mapping)
}

func TestListCategoriesEmptyStoreIsNotFound(t *testing.T) {
	store := newMemoryStore(nil, nil)
	svc := NewService(store, &memoryCategoryCache{}, stubRand{}, ServiceOptions{}, zerolog.New(io.Discard))

	_, err := svc.ListCategories(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoriesServedFromCacheAfterFirstScan(t *testing.T) {
	cache := &memoryCategoryCache{}
	store := newMemoryStore([]Category{{ID: 1, Type: "Science"}}, nil)
	svc := NewService(store, cache, stubRand{}, ServiceOptions{}, zerolog.New(io.Discard))

	_, err := svc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// drop the store's categories; the cached copy must keep serving
	store.categories = nil
	mapping, err := svc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Science", mapping[1])
	assert.Equal(t, 1, cache.sets)
}

func TestSearchQuestions(t *testing.T) {
	svc, _ := seededService(t, 5)

	page, err := svc.SearchQuestions(context.Background(), "QUESTION 3", 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.TotalQuestions)
	assert.Equal(t, 3, page.Questions[0].ID)
}

func TestSearchNoMatchIsSuccessNotError(t *testing.T) {
	svc, _ := seededService(t, 5)

	page, err := svc.SearchQuestions(context.Background(), "xxx", 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, page.TotalQuestions)
	assert.NotNil(t, page.Questions)
	assert.Empty(t, page.Questions)
}

func TestSearchRejectsEmptyTerm(t *testing.T) {
	svc, _ := seededService(t, 5)

	_, err := svc.SearchQuestions(context.Background(), "", 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestListByCategoryScopes(t *testing.T) {
	svc, _ := seededService(t, 6)

	result, err := svc.ListByCategory(context.Background(), 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Science", result.CurrentCategory)
	assert.Equal(t, 6, result.TotalQuestions, "reported total stays global")
	for _, q := range result.Questions {
		assert.Equal(t, 1, q.CategoryID)
	}
}

func TestListByCategoryUnknownIsNotFound(t *testing.T) {
	svc, _ := seededService(t, 6)

	_, err := svc.ListByCategory(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByCategoryEmptyPageIsNotFound(t *testing.T) {
	svc, _ := seededService(t, 6)

	// category 4 exists but holds no questions
	_, err := svc.ListByCategory(context.Background(), 4, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateQuestionAssignsIDAndGrowsTotal(t *testing.T) {
	svc, store := seededService(t, 5)

	result, err := svc.CreateQuestion(context.Background(), NewQuestion{
		Text:       "Who painted the Mona Lisa?",
		Answer:     "Leonardo da Vinci",
		CategoryID: 2,
		Difficulty: 2,
	}, 1)
	assert.NoError(t, err)
	assert.Equal(t, 6, result.Created)
	assert.Equal(t, 6, result.TotalQuestions)

	stored, err := store.GetQuestion(context.Background(), result.Created)
	assert.NoError(t, err)
	assert.Equal(t, "Who painted the Mona Lisa?", stored.Text)
}

func TestCreateQuestionRejectsEmptyText(t *testing.T) {
	svc, _ := seededService(t, 1)

	_, err := svc.CreateQuestion(context.Background(), NewQuestion{Answer: "42"}, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeleteQuestionExcludesForever(t *testing.T) {
	svc, store := seededService(t, 5)

	page, err := svc.DeleteQuestion(context.Background(), 3, 1)
	assert.NoError(t, err)
	assert.Equal(t, 4, page.TotalQuestions)

	_, err = store.GetQuestion(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
	for _, q := range page.Questions {
		assert.NotEqual(t, 3, q.ID)
	}
}

func TestDeleteAbsentQuestion(t *testing.T) {
	svc, _ := seededService(t, 2)

	_, err := svc.DeleteQuestion(context.Background(), 999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextQuizQuestionExcludesAsked(t *testing.T) {
	svc, _ := seededService(t, 6)

	var asked []int
	for {
		q, ok, err := svc.NextQuizQuestion(context.Background(), AllCategories, asked)
		assert.NoError(t, err)
		if !ok {
			break
		}
		assert.NotContains(t, asked, q.ID)
		asked = append(asked, q.ID)
	}
	assert.Len(t, asked, 6, "every question should be drawn exactly once")
}

func TestNextQuizQuestionScopesCategory(t *testing.T) {
	svc, _ := seededService(t, 6)

	q, ok, err := svc.NextQuizQuestion(context.Background(), 2, []int{1})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, q.CategoryID)
	assert.NotEqual(t, 1, q.ID)
}

func TestNextQuizQuestionUnknownCategoryExhaustsImmediately(t *testing.T) {
	svc, _ := seededService(t, 6)

	_, ok, err := svc.NextQuizQuestion(context.Background(), 99, nil)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreFailureSurfacesAsStoreError(t *testing.T) {
	svc, store := seededService(t, 3)
	store.failWith = &StoreError{Op: "scan questions", Err: errors.New("connection reset")}

	_, err := svc.ListQuestions(context.Background(), 1)
	var storeErr *StoreError
	assert.ErrorAs(t, err, &storeErr)
}
