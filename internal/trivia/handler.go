package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-api/internal/logging"
	httperrors "github.com/triviahub/trivia-api/pkg/http/errors"
)

// Handler exposes the query façade over HTTP and owns the taxonomy-to-status
// mapping. Every response carries the success flag; failures use the fixed
// error envelope.
type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

type categoriesResponse struct {
	Success         bool           `json:"success"`
	Categories      map[int]string `json:"categories"`
	TotalCategories int            `json:"total_categories"`
}

type listResponse struct {
	Success         bool           `json:"success"`
	Questions       []Question     `json:"questions"`
	TotalQuestions  int            `json:"total_questions"`
	Categories      map[int]string `json:"categories"`
	CurrentCategory *string        `json:"current_category"`
}

type mutationResponse struct {
	Success        bool       `json:"success"`
	Created        int        `json:"created,omitempty"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type searchResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory *string    `json:"current_category"`
}

type categoryQuestionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory string     `json:"current_category"`
}

type quizResponse struct {
	Success  bool `json:"success"`
	Question any  `json:"question"`
}

type createQuestionRequest struct {
	Text       string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type quizCategory struct {
	ID   FlexibleID `json:"id"`
	Type string     `json:"type"`
}

type quizRequest struct {
	PreviousQuestions []int         `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
}

// HandleListCategories responds to GET /categories.
func (h *Handler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	mapping, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, categoriesResponse{
		Success:         true,
		Categories:      mapping,
		TotalCategories: len(mapping),
	})
}

// HandleListQuestions responds to GET /questions?page=N.
func (h *Handler) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListQuestions(r.Context(), pageParam(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, listResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  result.TotalQuestions,
		Categories:      result.Categories,
		CurrentCategory: nil,
	})
}

// HandleDeleteQuestion responds to DELETE /questions/{id}. A missing id is an
// unprocessable condition, not a 404, matching the documented contract.
func (h *Handler) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}
	page, err := h.svc.DeleteQuestion(r.Context(), id, pageParam(r))
	if err != nil {
		h.logger.Warn().Err(err).Int("question_id", id).Msg("delete failed")
		httperrors.RespondUnprocessable(w)
		return
	}
	writeJSON(w, mutationResponse{
		Success:        true,
		Questions:      nonNil(page.Questions),
		TotalQuestions: page.TotalQuestions,
	})
}

// HandleCreateQuestion responds to POST /questions.
func (h *Handler) HandleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	result, err := h.svc.CreateQuestion(r.Context(), NewQuestion{
		Text:       req.Text,
		Answer:     req.Answer,
		CategoryID: req.CategoryID,
		Difficulty: req.Difficulty,
	}, pageParam(r))
	if err != nil {
		h.logger.Warn().Err(err).Msg("create failed")
		httperrors.RespondUnprocessable(w)
		return
	}
	writeJSON(w, mutationResponse{
		Success:        true,
		Created:        result.Created,
		Questions:      nonNil(result.Questions),
		TotalQuestions: result.TotalQuestions,
	})
}

// HandleSearchQuestions responds to POST /questions/search. Zero matches is a
// successful empty page; only a blank term is rejected.
func (h *Handler) HandleSearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	page, err := h.svc.SearchQuestions(r.Context(), req.SearchTerm, pageParam(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, searchResponse{
		Success:         true,
		Questions:       nonNil(page.Questions),
		TotalQuestions:  page.TotalQuestions,
		CurrentCategory: nil,
	})
}

// HandleListByCategory responds to GET /categories/{id}/questions?page=N.
func (h *Handler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}
	result, err := h.svc.ListByCategory(r.Context(), categoryID, pageParam(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, categoryQuestionsResponse{
		Success:         true,
		Questions:       result.Questions,
		TotalQuestions:  result.TotalQuestions,
		CurrentCategory: result.CurrentCategory,
	})
}

// HandleQuiz responds to POST /quizzes. A malformed or incomplete body yields
// 404, mirroring the observed external contract. An exhausted pool is a
// successful response with an empty-string question, the terminal signal the
// client uses to end the round.
func (h *Handler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuizCategory == nil {
		httperrors.RespondNotFound(w)
		return
	}
	q, ok, err := h.svc.NextQuizQuestion(r.Context(), int(req.QuizCategory.ID), req.PreviousQuestions)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	resp := quizResponse{Success: true, Question: ""}
	if ok {
		resp.Question = q
	}
	writeJSON(w, resp)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrInvalidArgument):
		httperrors.RespondUnprocessable(w)
	default:
		logger := logging.FromContext(r.Context())
		var storeErr *StoreError
		if errors.As(err, &storeErr) {
			logger.Error().Err(err).Str("path", r.URL.Path).Msg("store failure")
			httperrors.RespondUnprocessable(w)
			return
		}
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		httperrors.RespondInternalError(w)
	}
}

// pageParam reads the 1-based page query parameter, defaulting to 1 when the
// value is absent or not an integer.
func pageParam(r *http.Request) int {
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return 1
}

func nonNil(questions []Question) []Question {
	if questions == nil {
		return []Question{}
	}
	return questions
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
