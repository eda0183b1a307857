package formation

import "github.com/gin-gonic/gin"

// FormationRoutes registers the formation catalog endpoints.
func FormationRoutes(router *gin.RouterGroup, catalog *Catalog) {
	formationController := NewFormationController(catalog)

	router.GET("/formations", formationController.GetAllFormations)
	router.GET("/formations/:formation_id", formationController.GetFormationByID)
}
