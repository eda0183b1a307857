package heartbeat

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/miximax/miximax/pkg/responses"
)

// PingTimeout bounds a single database round trip.
const PingTimeout = 5 * time.Second

// Status is the heartbeat reply.
type Status struct {
	OK   bool      `json:"ok"`
	Time time.Time `json:"time"`
}

// HeartbeatController keeps the hosted database from idling out.
type HeartbeatController struct {
	pinger Pinger
	log    *zap.Logger
}

// NewHeartbeatController creates a new heartbeat controller
func NewHeartbeatController(pinger Pinger, log *zap.Logger) *HeartbeatController {
	if log == nil {
		log = zap.NewNop()
	}
	return &HeartbeatController{pinger: pinger, log: log}
}

// Beat godoc
// @Summary Database heartbeat
// @Description Runs a trivial query. Requires "Authorization: Bearer <CRON_SECRET>" when a secret is configured.
// @Tags Heartbeat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse{data=Status}
// @Failure 401 {object} responses.ErrorResponse
// @Failure 503 {object} responses.ErrorResponse
// @Router /heartbeat [get]
func (hc *HeartbeatController) Beat(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), PingTimeout)
	defer cancel()

	now, err := hc.pinger.Now(ctx)
	if err != nil {
		hc.log.Warn("Heartbeat failed", zap.Error(err))
		responses.SendError(c, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Database is awake", Status{OK: true, Time: now})
}
