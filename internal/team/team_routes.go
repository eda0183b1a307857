package team

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuilderRoutes registers the team builder session endpoints.
func BuilderRoutes(router *gin.RouterGroup, service *Service, frontendURL string, log *zap.Logger) {
	builderController := NewBuilderController(service, frontendURL, log)

	sessions := router.Group("/builder/sessions")
	{
		sessions.POST("", builderController.CreateSession)
		sessions.GET("/:session_id", builderController.GetSession)
		sessions.DELETE("/:session_id", builderController.DeleteSession)

		sessions.PUT("/:session_id/name", builderController.RenameTeam)
		sessions.PUT("/:session_id/formation", builderController.ChangeFormation)
		sessions.PUT("/:session_id/slots/:slot_id", builderController.AssignPlayer)
		sessions.DELETE("/:session_id/slots/:slot_id", builderController.ClearSlot)
		sessions.DELETE("/:session_id/slots", builderController.ClearAll)

		sessions.GET("/:session_id/candidates", builderController.ListCandidates)
		sessions.GET("/:session_id/share", builderController.ShareTeam)
		sessions.GET("/:session_id/export", builderController.ExportTeam)
		sessions.POST("/:session_id/import", builderController.ImportTeam)
	}
}
