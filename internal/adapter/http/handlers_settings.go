package adapthttp

import (
	"errors"
	"net/http"

	"healthapp/internal/app"
)

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := s.requestUserID(r)

	switch r.Method {
	case http.MethodGet:
		settings, err := s.settings.Get(ctx, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		var upd app.SettingsUpdate
		if err := parseJSON(r, &upd); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		settings, err := s.settings.Update(ctx, userID, upd)
		if errors.Is(err, app.ErrInvalidSettings) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
