package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/ligadatos/liga-stats/internal/domain/match"
	"github.com/ligadatos/liga-stats/internal/platform/logging"
	"github.com/ligadatos/liga-stats/internal/usecase"
)

type Handler struct {
	standingsService   *usecase.StandingsService
	playerPoints       *usecase.PlayerPointsService
	clubPoints         *usecase.ClubPointsService
	batchService       *usecase.BatchService
	ingestionService   *usecase.ResultIngestionService
	coefficientService *usecase.CoefficientSyncService
	logger             *logging.Logger
	validator          *validator.Validate
}

// NewHandler wires the transport surface. coefficientService may be nil
// when no ratings provider is configured.
func NewHandler(
	standingsService *usecase.StandingsService,
	playerPoints *usecase.PlayerPointsService,
	clubPoints *usecase.ClubPointsService,
	batchService *usecase.BatchService,
	ingestionService *usecase.ResultIngestionService,
	coefficientService *usecase.CoefficientSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService:   standingsService,
		playerPoints:       playerPoints,
		clubPoints:         clubPoints,
		batchService:       batchService,
		ingestionService:   ingestionService,
		coefficientService: coefficientService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type standingsSnapshotDTO struct {
	SnapshotID    string               `json:"snapshotId"`
	GroupID       string               `json:"groupId"`
	Matchday      int                  `json:"matchday"`
	TeamCount     int                  `json:"teamCount"`
	MatchesPlayed int                  `json:"matchesPlayed"`
	CalculatedAt  time.Time            `json:"calculatedAt"`
	Positions     []standingsVectorDTO `json:"positions"`
}

type standingsVectorDTO struct {
	Position       int    `json:"position"`
	ClubID         string `json:"clubId"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	Streak         string `json:"streak"`
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	groupID := strings.TrimSpace(r.PathValue("groupID"))
	matchday, err := queryInt(r, "matchday")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, positions, err := h.standingsService.Get(ctx, groupID, matchday)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "group_id", groupID, "matchday", matchday, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingsVectorDTO, 0, len(positions))
	for _, p := range positions {
		items = append(items, standingsVectorDTO{
			Position:       p.Position,
			ClubID:         p.ClubID,
			Played:         p.Played,
			Won:            p.Won,
			Draw:           p.Draw,
			Lost:           p.Lost,
			GoalsFor:       p.GoalsFor,
			GoalsAgainst:   p.GoalsAgainst,
			GoalDifference: p.GoalDifference,
			Points:         p.Points,
			Streak:         p.Streak,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, standingsSnapshotDTO{
		SnapshotID:    snapshot.ID,
		GroupID:       snapshot.GroupID,
		Matchday:      snapshot.Matchday,
		TeamCount:     snapshot.TeamCount,
		MatchesPlayed: snapshot.MatchesPlayed,
		CalculatedAt:  snapshot.CalculatedAt,
		Positions:     items,
	})
}

type seasonTotalDTO struct {
	OwnerID        string    `json:"id"`
	SeasonID       string    `json:"seasonId"`
	BasePoints     float64   `json:"basePoints"`
	WeightedPoints float64   `json:"weightedPoints"`
	Goals          int       `json:"goals"`
	Appearances    int       `json:"appearances"`
	LastMatchday   int       `json:"lastMatchday"`
	CalculatedAt   time.Time `json:"calculatedAt"`
}

func (h *Handler) GetPlayerSeasonTotal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSeasonTotal")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))

	total, err := h.playerPoints.GetSeasonTotal(ctx, playerID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player season total failed", "player_id", playerID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonTotalDTO{
		OwnerID:        total.PlayerID,
		SeasonID:       total.SeasonID,
		BasePoints:     total.BasePoints,
		WeightedPoints: total.WeightedPoints,
		Goals:          total.Goals,
		Appearances:    total.Appearances,
		LastMatchday:   total.LastMatchday,
		CalculatedAt:   total.CalculatedAt,
	})
}

func (h *Handler) GetClubSeasonTotal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubSeasonTotal")
	defer span.End()

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	seasonID := strings.TrimSpace(r.URL.Query().Get("season_id"))

	total, err := h.clubPoints.GetSeasonTotal(ctx, clubID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get club season total failed", "club_id", clubID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonTotalDTO{
		OwnerID:        total.ClubID,
		SeasonID:       total.SeasonID,
		BasePoints:     total.BasePoints,
		WeightedPoints: total.WeightedPoints,
		Goals:          total.Goals,
		Appearances:    total.Appearances,
		LastMatchday:   total.LastMatchday,
		CalculatedAt:   total.CalculatedAt,
	})
}

type recomputeStandingsRequest struct {
	GroupID  string `json:"groupId" validate:"required"`
	Matchday int    `json:"matchday" validate:"required,min=1"`
}

func (h *Handler) RecomputeStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeStandings")
	defer span.End()

	var req recomputeStandingsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshotID, err := h.standingsService.Recompute(ctx, req.GroupID, req.Matchday)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute standings failed", "group_id", req.GroupID, "matchday", req.Matchday, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"snapshotId": snapshotID})
}

type recomputePointsRequest struct {
	GroupID  string `json:"groupId" validate:"required"`
	SeasonID string `json:"seasonId" validate:"required"`
	Matchday int    `json:"matchday" validate:"required,min=1"`
	Force    bool   `json:"force"`
}

type matchdayPointsDTO struct {
	OwnerID        string  `json:"id"`
	BasePoints     float64 `json:"basePoints"`
	WeightedPoints float64 `json:"weightedPoints"`
	Coefficient    float64 `json:"coefficient"`
	Appearances    int     `json:"appearances"`
	Goals          int     `json:"goals"`
}

func (h *Handler) RecomputePlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputePlayerPoints")
	defer span.End()

	var req recomputePointsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.playerPoints.ComputeMatchday(ctx, req.GroupID, req.SeasonID, req.Matchday, req.Force)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute player points failed", "group_id", req.GroupID, "matchday", req.Matchday, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchdayPointsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, matchdayPointsDTO{
			OwnerID:        row.PlayerID,
			BasePoints:     row.BasePoints,
			WeightedPoints: row.WeightedPoints,
			Coefficient:    row.Coefficient,
			Appearances:    row.Appearances,
			Goals:          row.Goals,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].OwnerID < items[j].OwnerID })

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RecomputeClubPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeClubPoints")
	defer span.End()

	var req recomputePointsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.clubPoints.ComputeMatchday(ctx, req.GroupID, req.SeasonID, req.Matchday, req.Force)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute club points failed", "group_id", req.GroupID, "matchday", req.Matchday, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchdayPointsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, matchdayPointsDTO{
			OwnerID:        row.ClubID,
			BasePoints:     row.BasePoints,
			WeightedPoints: row.WeightedPoints,
			Coefficient:    row.Coefficient,
			Appearances:    row.Appearances,
			Goals:          row.Goals,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].OwnerID < items[j].OwnerID })

	writeSuccess(ctx, w, http.StatusOK, items)
}

type recomputeSeasonRequest struct {
	SeasonID   string `json:"seasonId" validate:"required"`
	Matchday   int    `json:"matchday" validate:"required,min=1"`
	WithPoints bool   `json:"withPoints"`
	Force      bool   `json:"force"`
}

type batchResultDTO struct {
	GroupCount   int               `json:"groupCount"`
	SuccessCount int               `json:"successCount"`
	FailedCount  int               `json:"failedCount"`
	Failures     []batchFailureDTO `json:"failures,omitempty"`
}

type batchFailureDTO struct {
	GroupID string `json:"groupId"`
	Error   string `json:"error"`
}

func (h *Handler) RecomputeSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeSeason")
	defer span.End()

	var req recomputeSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.batchService.RecomputeSeason(ctx, req.SeasonID, req.Matchday, req.WithPoints, req.Force)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute season failed", "season_id", req.SeasonID, "matchday", req.Matchday, "error", err)
		writeError(ctx, w, err)
		return
	}

	failures := make([]batchFailureDTO, 0, len(result.Failures))
	for _, item := range result.Failures {
		failures = append(failures, batchFailureDTO{GroupID: item.GroupID, Error: item.Err.Error()})
	}

	writeSuccess(ctx, w, http.StatusOK, batchResultDTO{
		GroupCount:   result.GroupCount,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		Failures:     failures,
	})
}

type matchResultRequest struct {
	HomeGoals int                 `json:"homeGoals" validate:"min=0"`
	AwayGoals int                 `json:"awayGoals" validate:"min=0"`
	Events    []matchEventRequest `json:"events" validate:"dive"`
}

type matchEventRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	ClubID   string `json:"clubId" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=APPEARANCE GOAL OWN_GOAL YELLOW_CARD RED_CARD"`
	Minute   int    `json:"minute" validate:"min=0"`
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var req matchResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	events := make([]match.Event, 0, len(req.Events))
	for _, item := range req.Events {
		events = append(events, match.Event{
			PlayerID: item.PlayerID,
			ClubID:   item.ClubID,
			Type:     item.Type,
			Minute:   item.Minute,
		})
	}

	saved, err := h.ingestionService.RecordResult(ctx, matchID, req.HomeGoals, req.AwayGoals, events)
	if err != nil {
		h.logger.WarnContext(ctx, "record match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"matchId":   saved.ID,
		"groupId":   saved.GroupID,
		"matchday":  saved.Matchday,
		"homeGoals": saved.HomeGoals,
		"awayGoals": saved.AwayGoals,
		"played":    saved.Played,
	})
}

type syncCoefficientsRequest struct {
	SeasonID string `json:"seasonId" validate:"required"`
	Matchday int    `json:"matchday" validate:"required,min=1"`
}

func (h *Handler) SyncCoefficients(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncCoefficients")
	defer span.End()

	if h.coefficientService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ratings provider is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req syncCoefficientsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.coefficientService.SyncSeason(ctx, req.SeasonID, req.Matchday)
	if err != nil {
		h.logger.WarnContext(ctx, "sync coefficients failed", "season_id", req.SeasonID, "matchday", req.Matchday, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"divisionCount": result.DivisionCount,
		"clubCount":     result.ClubCount,
		"syncedAt":      result.SyncedAt,
	})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	if err := h.validator.StructCtx(ctx, target); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, fmt.Errorf("%w: query parameter %s is required", usecase.ErrInvalidInput, key)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}
