package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kiranalabs/kirana-voice-backend/api/responses"
	"github.com/kiranalabs/kirana-voice-backend/internal/session"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
	"github.com/kiranalabs/kirana-voice-backend/pkg/logger"
	"github.com/kiranalabs/kirana-voice-backend/pkg/metrics"
)

// SessionStart opens a new shopping session with an empty cart.
func SessionStart(sessions *session.Manager, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "start_session")
		start := time.Now()

		sessionID, err := sessions.Create(ctx)
		if err != nil {
			report(m, "start_session", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report(m, "start_session", start, nil)
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"session_id": sessionID})
	}
}

// SessionEnd closes the session and discards its cart.
func SessionEnd(sessions *session.Manager, m *metrics.ToolMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithTool(r.Context(), "end_session")
		start := time.Now()

		sessionID, err := sessionIDParam(r)
		if err != nil {
			report(m, "end_session", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithSessionID(ctx, sessionID)

		if err := sessions.Reset(ctx, sessionID); err != nil {
			report(m, "end_session", start, err)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report(m, "end_session", start, nil)
		responses.WriteSuccess(w, map[string]bool{"ended": true})
	}
}

func sessionIDParam(r *http.Request) (string, error) {
	sessionID := strings.TrimSpace(chi.URLParam(r, "sessionID"))
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return sessionID, nil
}
