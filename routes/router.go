package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/miximax/miximax/config"
	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/heartbeat"
	mw "github.com/miximax/miximax/internal/middleware"
	"github.com/miximax/miximax/internal/player"
	"github.com/miximax/miximax/internal/team"
)

// Dependencies are the long-lived services the HTTP layer is built on.
type Dependencies struct {
	Config    *config.Config
	Catalog   *formation.Catalog
	Directory *player.Directory
	Builder   *team.Service
	Pinger    heartbeat.Pinger
	Log       *zap.Logger
}

func SetupRoutes(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(mw.RequestLogger(log), mw.Recovery(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.Config.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Match-Distance"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>Miximax Team Builder</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>Miximax Team Builder API</h1>
					<p><a href="/swagger/index.html">API documentation</a></p>
				</body>
			</html>
		`))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	formation.FormationRoutes(api, deps.Catalog)
	player.PlayerRoutes(api, deps.Directory)
	team.BuilderRoutes(api, deps.Builder, deps.Config.App.FrontendURL, log)
	heartbeat.HeartbeatRoutes(api, deps.Pinger, deps.Config.Heartbeat.CronSecret, log)

	return r
}
