package question

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/wikiquiz/internal/logging"
	httperrors "github.com/gokatarajesh/wikiquiz/pkg/http/errors"
)

const defaultMaxPerRequest = 50

// QuestionDTO is the wire shape of a served question. Clients echo it back
// to /verify, so Token binds the statement to its correct answer.
type QuestionDTO struct {
	Statement     string   `json:"statement"`
	Image         string   `json:"image"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Category      string   `json:"category,omitempty"`
	Token         string   `json:"token,omitempty"`
}

// ToDomain rebuilds the question a client submitted.
func (d QuestionDTO) ToDomain() Question {
	cat, _ := ParseCategory(d.Category)
	return Question{
		Statement:     d.Statement,
		CorrectAnswer: d.CorrectAnswer,
		Image:         d.Image,
		Category:      cat,
		Options:       d.Options,
	}
}

// HTTPHandlers serves the question supply endpoints.
type HTTPHandlers struct {
	service       *Service
	signer        *Signer
	maxPerRequest int
	logger        zerolog.Logger
}

func NewHTTPHandlers(service *Service, signer *Signer, maxPerRequest int, logger zerolog.Logger) *HTTPHandlers {
	if maxPerRequest <= 0 {
		maxPerRequest = defaultMaxPerRequest
	}
	return &HTTPHandlers{
		service:       service,
		signer:        signer,
		maxPerRequest: maxPerRequest,
		logger:        logger.With().Str("component", "question_http").Logger(),
	}
}

// GetQuestions handles GET /question/{category}/{n}.
func (h *HTTPHandlers) GetQuestions(w http.ResponseWriter, r *http.Request) {
	category, ok := h.category(w, r)
	if !ok {
		return
	}
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "n must be a non-negative integer", "n")
		return
	}
	if n > h.maxPerRequest {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed,
			fmt.Sprintf("n must not exceed %d", h.maxPerRequest), "n")
		return
	}

	qs, err := h.service.GetQuestions(r.Context(), category, n)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	out := make([]QuestionDTO, 0, len(qs))
	for _, q := range qs {
		out = append(out, h.toDTO(q))
	}
	httperrors.RespondJSON(w, http.StatusOK, out)
}

// GetSingleQuestion handles GET /question/{category}.
func (h *HTTPHandlers) GetSingleQuestion(w http.ResponseWriter, r *http.Request) {
	category, ok := h.category(w, r)
	if !ok {
		return
	}
	q, found, err := h.service.GetSingleQuestion(r.Context(), category)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, h.toDTO(q))
}

func (h *HTTPHandlers) category(w http.ResponseWriter, r *http.Request) (Category, bool) {
	raw := r.PathValue("category")
	category, ok := ParseCategory(raw)
	if !ok {
		httperrors.RespondError(w, http.StatusNotFound, httperrors.ErrCodeUnknownCategory,
			fmt.Sprintf("unknown category %q", raw))
		return "", false
	}
	return category, true
}

func (h *HTTPHandlers) toDTO(q Question) QuestionDTO {
	return QuestionDTO{
		Statement:     q.Statement,
		Image:         q.Image,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Category:      string(q.Category),
		Token:         h.signer.Sign(q),
	}
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrUnknownCategory) {
		httperrors.RespondError(w, http.StatusNotFound, httperrors.ErrCodeUnknownCategory, err.Error())
		return
	}
	logging.FromContext(r.Context(), h.logger).Error().Err(err).Msg("question supply failed")
	httperrors.RespondInternal(w)
}
