package adapthttp

import (
	"errors"
	"net/http"

	"healthapp/internal/domain"

	"github.com/google/uuid"
)

func (s *Server) handleCoachingInsight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	insight, err := s.insights.GetDailyInsight(r.Context(), s.requestUserID(r))
	if err != nil {
		writeGenerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insight)
}

// writeGenerationError maps the generation error taxonomy onto stable
// 5xx responses so clients can tell "this feature is off" from "try again
// later".
func writeGenerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCoachingUnconfigured):
		writeError(w, http.StatusServiceUnavailable,
			errors.New("AI coaching is not configured. GEMINI_API_KEY is missing."))
	case errors.Is(err, domain.ErrQuotaExceeded):
		writeError(w, http.StatusServiceUnavailable,
			errors.New("AI coaching quota exceeded. Please check your Gemini API billing."))
	default:
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			writeError(w, http.StatusServiceUnavailable, upstream)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
	}
}

// requestUserID returns the authenticated user's id, or uuid.Nil when auth
// is disabled for tests.
func (s *Server) requestUserID(r *http.Request) uuid.UUID {
	if user := userFrom(r.Context()); user != nil {
		return user.ID
	}
	return uuid.Nil
}
