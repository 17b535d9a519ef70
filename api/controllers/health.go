package controllers

import (
	"net/http"

	"github.com/kiranalabs/kirana-voice-backend/api/responses"
	"github.com/kiranalabs/kirana-voice-backend/pkg/config"
	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
	"github.com/kiranalabs/kirana-voice-backend/pkg/logger"
	redispkg "github.com/kiranalabs/kirana-voice-backend/pkg/redis"
	"github.com/kiranalabs/kirana-voice-backend/pkg/storage/jsonfile"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kirana-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the catalog file is present and, when configured,
// that Redis answers a ping. redisClient may be nil.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redispkg.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Kirana-Env", cfg.App.Env)

		if !jsonfile.Exists(cfg.Store.CatalogPath) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "catalog file missing").
				WithDetails(map[string]any{"path": cfg.Store.CatalogPath}))
			return
		}

		if redisClient != nil {
			if err := redisClient.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not reachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
