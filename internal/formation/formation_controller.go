package formation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miximax/miximax/pkg/responses"
)

// FormationController serves the formation catalog.
type FormationController struct {
	catalog *Catalog
}

// NewFormationController creates a new formation controller
func NewFormationController(catalog *Catalog) *FormationController {
	return &FormationController{catalog: catalog}
}

// GetAllFormations godoc
// @Summary List formations
// @Description Formation templates in catalog order. The first one is the default of a new team.
// @Tags Formations
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Template}
// @Router /formations [get]
func (fc *FormationController) GetAllFormations(c *gin.Context) {
	responses.SendSuccess(c, http.StatusOK, "Formations retrieved successfully", fc.catalog.List())
}

// GetFormationByID godoc
// @Summary Get a formation
// @Tags Formations
// @Produce json
// @Param formation_id path string true "Formation ID, e.g. 4-4-2"
// @Success 200 {object} responses.SuccessResponse{data=Template}
// @Failure 404 {object} responses.ErrorResponse
// @Router /formations/{formation_id} [get]
func (fc *FormationController) GetFormationByID(c *gin.Context) {
	t, err := fc.catalog.Find(c.Param("formation_id"))
	if errors.Is(err, ErrUnknownFormation) {
		responses.NotFound(c, "Formation")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Formation retrieved successfully", t)
}
