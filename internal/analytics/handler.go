// Package analytics is the HTTP surface over the activity engine: it
// fetches event records, anchors the pure aggregations at the request
// time and serializes the results. The engine itself lives in
// internal/activity and stays free of transport concerns.
package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vantutor/admin-backend/internal/activity"
	"github.com/vantutor/admin-backend/internal/activitylog"
	"github.com/vantutor/admin-backend/pkg/response"
	"github.com/vantutor/admin-backend/pkg/useragent"
)

const metricsCacheKey = "analytics:platform"

// Handler handles analytics HTTP endpoints.
type Handler struct {
	activityRepo *activitylog.Repository
	rdb          *redis.Client
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewHandler creates an analytics handler. rdb may be nil to disable caching.
func NewHandler(activityRepo *activitylog.Repository, rdb *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *Handler {
	return &Handler{activityRepo: activityRepo, rdb: rdb, cacheTTL: cacheTTL, logger: logger}
}

// GetPlatformMetrics handles GET /analytics/platform: 24h active users,
// 7d average session minutes and top countries, cached briefly in Redis
// so dashboard refreshes do not rescan all events.
func (h *Handler) GetPlatformMetrics(c *gin.Context) {
	ctx := c.Request.Context()

	if cached := h.readCache(ctx); cached != nil {
		response.OK(c, cached)
		return
	}

	records, err := h.activityRepo.ListRecords(ctx)
	if err != nil {
		response.Internal(c, "failed to load activity records")
		return
	}

	metrics := activity.ComputeMetrics(records, time.Now())
	h.writeCache(ctx, metrics)
	response.OK(c, metrics)
}

func (h *Handler) readCache(ctx context.Context) *activity.PlatformMetrics {
	if h.rdb == nil {
		return nil
	}
	raw, err := h.rdb.Get(ctx, metricsCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var m activity.PlatformMetrics
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return &m
}

func (h *Handler) writeCache(ctx context.Context, m activity.PlatformMetrics) {
	if h.rdb == nil || h.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := h.rdb.Set(ctx, metricsCacheKey, raw, h.cacheTTL).Err(); err != nil {
		h.logger.Debug("metrics cache write failed", zap.Error(err))
	}
}

// AnnotatedLoginResponse decorates one analyzed login with a client label.
type AnnotatedLoginResponse struct {
	Timestamp    time.Time `json:"timestamp"`
	IPAddress    string    `json:"ip_address"`
	Location     string    `json:"location"`
	Client       string    `json:"client"`
	IsNewCountry bool      `json:"is_new_country"`
}

// UserActivityResponse is the JSON shape for GET /users/:id/activity.
type UserActivityResponse struct {
	LatestLogin            *AnnotatedLoginResponse  `json:"latest_login,omitempty"`
	Logins                 []AnnotatedLoginResponse `json:"logins"`
	DailyEngagementMinutes []int64                  `json:"daily_engagement_minutes"`
}

// GetUserActivity handles GET /users/:id/activity: recency-ordered login
// history with new-country flags and the 30-day engagement histogram.
func (h *Handler) GetUserActivity(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	record, err := h.activityRepo.GetUserRecord(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to load activity record")
		return
	}

	view := activity.Analyze(*record, time.Now())

	out := UserActivityResponse{
		Logins:                 make([]AnnotatedLoginResponse, 0, len(view.AnnotatedLogins)),
		DailyEngagementMinutes: view.DailyEngagementMinutes,
	}
	for _, a := range view.AnnotatedLogins {
		out.Logins = append(out.Logins, annotate(a))
	}
	if len(out.Logins) > 0 {
		latest := out.Logins[0]
		out.LatestLogin = &latest
	}
	response.OK(c, out)
}

func annotate(a activity.AnnotatedLogin) AnnotatedLoginResponse {
	return AnnotatedLoginResponse{
		Timestamp:    a.Login.Timestamp,
		IPAddress:    a.Login.IPAddress,
		Location:     a.Login.Location,
		Client:       useragent.Classify(a.Login.UserAgent).String(),
		IsNewCountry: a.IsNewCountry,
	}
}
