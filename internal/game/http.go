package game

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/wikiquiz/internal/logging"
	"github.com/gokatarajesh/wikiquiz/internal/question"
	httperrors "github.com/gokatarajesh/wikiquiz/pkg/http/errors"
)

// HTTPHandlers serves the session and answer verification endpoints.
type HTTPHandlers struct {
	service *Service
	signer  *question.Signer
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, signer *question.Signer, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		signer:  signer,
		logger:  logger.With().Str("component", "game_http").Logger(),
	}
}

type StartRequest struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	Category       string `json:"category"`
	Level          string `json:"level"`
	TotalQuestions int    `json:"totalQuestions"`
}

type StartResponse struct {
	Message   string    `json:"message"`
	SessionID uuid.UUID `json:"sessionId"`
}

type EndRequest struct {
	UserID         string `json:"userId"`
	SessionID      string `json:"sessionId"`
	Correct        int    `json:"correct"`
	Wrong          int    `json:"wrong"`
	Category       string `json:"category"`
	Level          string `json:"level"`
	TotalQuestions int    `json:"totalQuestions"`
	Answered       int    `json:"answered"`
	Points         int    `json:"points"`
}

type EndResponse struct {
	SessionID   uuid.UUID `json:"sessionId"`
	Correct     int       `json:"correct"`
	Wrong       int       `json:"wrong"`
	Duration    int       `json:"duration"`
	IsCompleted bool      `json:"isCompleted"`
	Points      int       `json:"points"`
}

type VerifyRequest struct {
	UserID         string               `json:"userId"`
	SessionID      string               `json:"sessionId"`
	Question       question.QuestionDTO `json:"question"`
	SelectedOption string               `json:"selectedOption"`
}

type VerifyResponse struct {
	Question       string   `json:"question"`
	SelectedOption string   `json:"selectedOption"`
	CorrectAnswer  string   `json:"correctAnswer"`
	IsCorrect      bool     `json:"isCorrect"`
	Options        []string `json:"options"`
	CorrectCount   int      `json:"correctCount"`
	WrongCount     int      `json:"wrongCount"`
}

// Start handles POST /game/start.
func (h *HTTPHandlers) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if !h.decode(w, r, &req) {
		return
	}
	sess, err := h.service.Start(r.Context(), StartParams{
		UserID:         req.UserID,
		Username:       req.Username,
		Category:       req.Category,
		Level:          req.Level,
		TotalQuestions: req.TotalQuestions,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, StartResponse{
		Message:   "Game session started",
		SessionID: sess.ID,
	})
}

// End handles POST /game/end.
func (h *HTTPHandlers) End(w http.ResponseWriter, r *http.Request) {
	var req EndRequest
	if !h.decode(w, r, &req) {
		return
	}
	ref, err := parseRef(req.UserID, req.SessionID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	sess, err := h.service.End(r.Context(), ref, EndParams{
		Correct:        req.Correct,
		Wrong:          req.Wrong,
		Category:       req.Category,
		Level:          req.Level,
		TotalQuestions: req.TotalQuestions,
		Answered:       req.Answered,
		Points:         req.Points,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, EndResponse{
		SessionID:   sess.ID,
		Correct:     sess.Correct,
		Wrong:       sess.Wrong,
		Duration:    sess.Duration,
		IsCompleted: sess.IsCompleted,
		Points:      sess.Points,
	})
}

// Statistics handles GET /game/statistics?userId=.
func (h *HTTPHandlers) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, stats)
}

// GetSession handles GET /game/sessions/{id}?userId=.
func (h *HTTPHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	ref, err := parseRef(r.URL.Query().Get("userId"), r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	sess, err := h.service.Get(r.Context(), ref)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, sess)
}

// Verify handles POST /verify: checks the selected option and records the
// outcome on the user's session.
func (h *HTTPHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !h.decode(w, r, &req) {
		return
	}
	ref, err := parseRef(req.UserID, req.SessionID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if req.Question.Statement == "" || req.Question.CorrectAnswer == "" {
		h.respondError(w, r, &ValidationError{Field: "question", Message: "question with statement and correctAnswer is required"})
		return
	}
	q := req.Question.ToDomain()
	if !h.signer.Valid(q, req.Question.Token) {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidToken, "question token does not match", "question.token")
		return
	}

	isCorrect := question.Verify(q, req.SelectedOption)

	sess, err := h.service.RecordAnswer(r.Context(), ref, isCorrect)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, VerifyResponse{
		Question:       q.Statement,
		SelectedOption: req.SelectedOption,
		CorrectAnswer:  q.CorrectAnswer,
		IsCorrect:      isCorrect,
		Options:        q.Options,
		CorrectCount:   sess.Correct,
		WrongCount:     sess.Wrong,
	})
}

func (h *HTTPHandlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httperrors.RespondError(w, http.StatusBadRequest, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return false
	}
	return true
}

func parseRef(userID, sessionID string) (Ref, error) {
	ref := Ref{UserID: strings.TrimSpace(userID)}
	if ref.UserID == "" {
		return Ref{}, &ValidationError{Field: "userId", Message: "userId is required"}
	}
	if sessionID = strings.TrimSpace(sessionID); sessionID != "" {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			return Ref{}, &ValidationError{Field: "sessionId", Message: "sessionId must be a UUID"}
		}
		ref.SessionID = id
	}
	return ref, nil
}

func (h *HTTPHandlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		code := httperrors.ErrCodeValidationFailed
		if strings.HasSuffix(verr.Message, "is required") {
			code = httperrors.ErrCodeMissingField
		}
		httperrors.RespondValidationError(w, code, verr.Message, verr.Field)
	case errors.Is(err, ErrNoActiveSession):
		httperrors.RespondError(w, http.StatusNotFound, httperrors.ErrCodeNoActiveSession, err.Error())
	case errors.Is(err, ErrSessionNotFound):
		httperrors.RespondError(w, http.StatusNotFound, httperrors.ErrCodeSessionNotFound, err.Error())
	case errors.Is(err, ErrSessionEnded):
		httperrors.RespondError(w, http.StatusConflict, httperrors.ErrCodeSessionEnded, err.Error())
	case errors.Is(err, ErrTallyExhausted):
		httperrors.RespondError(w, http.StatusConflict, httperrors.ErrCodeTallyExhausted, err.Error())
	default:
		logging.FromContext(r.Context(), h.logger).Error().Err(err).Msg("game request failed")
		httperrors.RespondInternal(w)
	}
}
