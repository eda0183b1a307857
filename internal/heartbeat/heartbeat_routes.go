package heartbeat

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/miximax/miximax/internal/middleware"
)

// HeartbeatRoutes registers the heartbeat endpoint behind the cron secret.
func HeartbeatRoutes(router *gin.RouterGroup, pinger Pinger, cronSecret string, log *zap.Logger) {
	heartbeatController := NewHeartbeatController(pinger, log)

	router.GET("/heartbeat", mw.CronSecretMiddleware(cronSecret), heartbeatController.Beat)
}
