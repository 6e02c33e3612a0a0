package httpapi

import (
	"net/http"

	"github.com/ligadatos/liga-stats/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handler.Healthz)

	mux.HandleFunc("GET /v1/groups/{groupID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/players/{playerID}/season-total", handler.GetPlayerSeasonTotal)
	mux.HandleFunc("GET /v1/clubs/{clubID}/season-total", handler.GetClubSeasonTotal)

	mux.HandleFunc("POST /internal/recompute/standings", handler.RecomputeStandings)
	mux.HandleFunc("POST /internal/recompute/mvp-points", handler.RecomputePlayerPoints)
	mux.HandleFunc("POST /internal/recompute/team-points", handler.RecomputeClubPoints)
	mux.HandleFunc("POST /internal/recompute/season", handler.RecomputeSeason)
	mux.HandleFunc("POST /internal/matches/{matchID}/result", handler.RecordMatchResult)
	mux.HandleFunc("POST /internal/coefficients/sync", handler.SyncCoefficients)

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
