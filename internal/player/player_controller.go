package player

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/miximax/miximax/pkg/responses"
	"github.com/miximax/miximax/pkg/validator"
)

// View is a player as rendered for one locale preference.
type View struct {
	Player
	DisplayName string `json:"display_name"`
}

// NewView renders p with the display name for the jp preference.
func NewView(p Player, names *NameBook, jp bool) View {
	return View{Player: p, DisplayName: names.Display(p.Name, jp)}
}

// Facets are the dropdown values of the players table.
type Facets struct {
	Elements   []string `json:"elements"`
	Positions  []string `json:"positions"`
	Affinities []string `json:"affinities"`
	Roles      []string `json:"roles"`
}

// Elements lists the element filter values in display order.
var Elements = []string{"Fire", "Wind", "Mountain", "Forest", "Void"}

// PlayerController serves the read-only player directory.
type PlayerController struct {
	dir *Directory
}

// NewPlayerController creates a new player controller
func NewPlayerController(dir *Directory) *PlayerController {
	return &PlayerController{dir: dir}
}

// JpPreference reads the "jp" query flag selecting romanized Japanese names.
func JpPreference(c *gin.Context) bool {
	jp, _ := strconv.ParseBool(c.DefaultQuery("jp", "false"))
	return jp
}

func (pc *PlayerController) views(players []Player, jp bool) []View {
	out := make([]View, 0, len(players))
	for _, p := range players {
		out = append(out, NewView(p, pc.dir.Names(), jp))
	}
	return out
}

// ListPlayers godoc
// @Summary Browse players
// @Description Filters, sorts and paginates the player directory. Placeholder records are never listed.
// @Tags Players
// @Produce json
// @Param q query string false "Search in name or nickname (either naming convention)"
// @Param element query string false "Element filter ('all' disables)"
// @Param position query string false "Position filter (GK, DF, MF, FW)"
// @Param affinity query string false "Affinity filter"
// @Param role query string false "Role filter"
// @Param sort query string false "Sort column: name, total or a stat" default(kick)
// @Param dir query string false "asc or desc" default(desc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(30)
// @Param jp query bool false "Use romanized Japanese display names"
// @Success 200 {object} responses.PaginatedResponse{data=[]View}
// @Failure 400 {object} responses.ErrorResponse
// @Router /players [get]
func (pc *PlayerController) ListPlayers(c *gin.Context) {
	var q BrowseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		responses.SendValidationError(c, "Invalid query parameters", validator.ParseError(err))
		return
	}
	q.Normalize()

	result := pc.dir.Browse(q)
	message := "Players retrieved successfully"
	if result.Fuzzy {
		message = "No exact match, showing close matches"
	}
	responses.SendPaginated(c, http.StatusOK, message, pc.views(result.Players, JpPreference(c)), result.Total, q.Page, q.Limit)
}

// GetPlayerByID godoc
// @Summary Get a player by id
// @Tags Players
// @Produce json
// @Param player_id path int true "Player ID"
// @Param jp query bool false "Use romanized Japanese display names"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /players/{player_id} [get]
func (pc *PlayerController) GetPlayerByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("player_id"))
	if err != nil {
		responses.BadRequest(c, "Invalid player ID")
		return
	}
	p, ok := pc.dir.Lookup(id)
	if !ok {
		responses.NotFound(c, "Player")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player retrieved successfully", NewView(p, pc.dir.Names(), JpPreference(c)))
}

// LookupPlayer godoc
// @Summary Find the closest player by name
// @Description Returns the player whose name has the smallest edit distance to the query.
// @Tags Players
// @Produce json
// @Param name query string true "Player name"
// @Success 200 {object} responses.SuccessResponse{data=View}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /players/lookup [get]
func (pc *PlayerController) LookupPlayer(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		responses.BadRequest(c, "Query parameter 'name' is required")
		return
	}
	p, distance, ok := pc.dir.Closest(name)
	if !ok {
		responses.NotFound(c, "Player")
		return
	}
	c.Header("X-Match-Distance", strconv.Itoa(distance))
	responses.SendSuccess(c, http.StatusOK, "Closest player retrieved", NewView(p, pc.dir.Names(), JpPreference(c)))
}

// GetFacets godoc
// @Summary Player filter values
// @Tags Players
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Facets}
// @Router /players/facets [get]
func (pc *PlayerController) GetFacets(c *gin.Context) {
	responses.SendSuccess(c, http.StatusOK, "", Facets{
		Elements:   Elements,
		Positions:  []string{"GK", "DF", "MF", "FW"},
		Affinities: pc.dir.Affinities(),
		Roles:      pc.dir.Roles(),
	})
}
