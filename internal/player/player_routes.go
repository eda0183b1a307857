package player

import "github.com/gin-gonic/gin"

// PlayerRoutes registers the read-only player directory endpoints.
func PlayerRoutes(router *gin.RouterGroup, dir *Directory) {
	playerController := NewPlayerController(dir)

	router.GET("/players", playerController.ListPlayers)
	router.GET("/players/facets", playerController.GetFacets)
	router.GET("/players/lookup", playerController.LookupPlayer)
	router.GET("/players/:player_id", playerController.GetPlayerByID)
}
