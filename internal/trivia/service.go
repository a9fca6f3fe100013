package trivia

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

const defaultPageSize = 10

// Service is the query façade composing the store, pager, search filter and
// quiz selector into the externally visible operations.
type Service struct {
	store    Store
	cache    CategoryCache
	selector *Selector
	pageSize int
	logger   zerolog.Logger
}

type ServiceOptions struct {
	// PageSize is the fixed window shared by every listing operation.
	PageSize int
}

func NewService(store Store, cache CategoryCache, rnd Rand, opts ServiceOptions, logger zerolog.Logger) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Service{
		store:    store,
		cache:    cache,
		selector: NewSelector(rnd),
		pageSize: pageSize,
		logger:   logger.With().Str("component", "trivia_service").Logger(),
	}
}

// QuestionPage is the windowed slice of questions plus the total count the
// listing operations report alongside it.
type QuestionPage struct {
	Questions      []Question
	TotalQuestions int
}

// ListResult is the payload of the general question listing.
type ListResult struct {
	QuestionPage
	Categories map[int]string
}

// CategoryListResult is the payload of a category-scoped listing.
type CategoryListResult struct {
	QuestionPage
	CurrentCategory string
}

// CreateResult reports the id assigned to a newly inserted question together
// with the refreshed listing page.
type CreateResult struct {
	Created int
	QuestionPage
}

// ListCategories returns the id->type mapping of every category.
// An empty store is a not-found condition.
func (s *Service) ListCategories(ctx context.Context) (map[int]string, error) {
	categories, err := s.categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories: %w", ErrNotFound)
	}
	mapping := make(map[int]string, len(categories))
	for _, c := range categories {
		mapping[c.ID] = c.Type
	}
	return mapping, nil
}

// ListQuestions returns one page of the full question scan along with the
// global total and the category mapping. An out-of-range page is a not-found
// condition rather than an empty success.
func (s *Service) ListQuestions(ctx context.Context, page int) (ListResult, error) {
	all, err := s.store.AllQuestions(ctx)
	if err != nil {
		return ListResult{}, err
	}
	current := Paginate(all, page, s.pageSize)
	if len(current) == 0 {
		return ListResult{}, fmt.Errorf("page %d is empty: %w", page, ErrNotFound)
	}

	categories, err := s.categories(ctx)
	if err != nil {
		return ListResult{}, err
	}
	mapping := make(map[int]string, len(categories))
	for _, c := range categories {
		mapping[c.ID] = c.Type
	}

	return ListResult{
		QuestionPage: QuestionPage{Questions: current, TotalQuestions: len(all)},
		Categories:   mapping,
	}, nil
}

// DeleteQuestion removes the question and returns the refreshed page.
// Deleting an absent id fails with ErrNotFound; the id never reappears in
// later scans.
func (s *Service) DeleteQuestion(ctx context.Context, id, page int) (QuestionPage, error) {
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		return QuestionPage{}, err
	}
	all, err := s.store.AllQuestions(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{
		Questions:      Paginate(all, page, s.pageSize),
		TotalQuestions: len(all),
	}, nil
}

// CreateQuestion inserts a new question and returns its assigned id with the
// refreshed page. The prompt text is required; referential integrity of the
// category id is the store's concern.
func (s *Service) CreateQuestion(ctx context.Context, q NewQuestion, page int) (CreateResult, error) {
	if q.Text == "" {
		return CreateResult{}, fmt.Errorf("question text is required: %w", ErrInvalidArgument)
	}
	created, err := s.store.InsertQuestion(ctx, q)
	if err != nil {
		return CreateResult{}, err
	}
	all, err := s.store.AllQuestions(ctx)
	if err != nil {
		return CreateResult{}, err
	}
	return CreateResult{
		Created: created.ID,
		QuestionPage: QuestionPage{
			Questions:      Paginate(all, page, s.pageSize),
			TotalQuestions: len(all),
		},
	}, nil
}

// SearchQuestions pages the questions whose text contains term,
// case-insensitively. A blank term is a caller error. Zero matches is a
// successful empty result, not a not-found condition; the total reported is
// the match count, not the store count.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (QuestionPage, error) {
	if term == "" {
		return QuestionPage{}, fmt.Errorf("search term is required: %w", ErrInvalidArgument)
	}
	all, err := s.store.AllQuestions(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	matched := FilterQuestions(all, term)
	current := Paginate(matched, page, s.pageSize)
	if current == nil {
		current = []Question{}
	}
	return QuestionPage{Questions: current, TotalQuestions: len(matched)}, nil
}

// ListByCategory pages the questions scoped to one category, validating the
// category first. The total it reports stays global, matching the documented
// external contract. An empty page follows the listing policy and is
// not-found.
func (s *Service) ListByCategory(ctx context.Context, categoryID, page int) (CategoryListResult, error) {
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return CategoryListResult{}, err
	}
	scoped, err := s.store.QuestionsByCategory(ctx, categoryID)
	if err != nil {
		return CategoryListResult{}, err
	}
	current := Paginate(scoped, page, s.pageSize)
	if len(current) == 0 {
		return CategoryListResult{}, fmt.Errorf("category %d page %d is empty: %w", categoryID, page, ErrNotFound)
	}
	total, err := s.store.CountQuestions(ctx)
	if err != nil {
		return CategoryListResult{}, err
	}
	return CategoryListResult{
		QuestionPage:    QuestionPage{Questions: current, TotalQuestions: total},
		CurrentCategory: category.Type,
	}, nil
}

// NextQuizQuestion draws a random question from the selected category (or all
// categories when the selector is AllCategories) that is not in asked.
// ok reports false once every candidate has been asked; an unknown category
// yields an empty pool and therefore the same exhausted outcome.
func (s *Service) NextQuizQuestion(ctx context.Context, categorySelector int, asked []int) (Question, bool, error) {
	var (
		pool []Question
		err  error
	)
	if categorySelector == AllCategories {
		pool, err = s.store.AllQuestions(ctx)
	} else {
		pool, err = s.store.QuestionsByCategory(ctx, categorySelector)
	}
	if err != nil {
		return Question{}, false, err
	}
	q, ok := s.selector.Next(pool, asked)
	return q, ok, nil
}

// categories resolves the category list through the cache, falling back to a
// store scan on a miss. Cache failures degrade to the store silently apart
// from a log line.
func (s *Service) categories(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		}
	}
	categories, err := s.store.AllCategories(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}
