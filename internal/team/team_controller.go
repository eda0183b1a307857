package team

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/player"
	"github.com/miximax/miximax/pkg/responses"
	"github.com/miximax/miximax/pkg/validator"
)

// MaxImportSize bounds the size of an uploaded team file.
const MaxImportSize = 1 << 20

// ErrUnknownPlayer is returned when an assignment names a player the
// directory does not hold.
var ErrUnknownPlayer = errors.New("unknown player")

// SlotView is a roster slot with the display name of its player.
type SlotView struct {
	RosterSlot
	DisplayName string `json:"display_name,omitempty"`
}

// FormationRef identifies the active formation.
type FormationRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamView is a builder session as rendered to the client.
type TeamView struct {
	SessionID string       `json:"session_id"`
	Name      string       `json:"name"`
	Formation FormationRef `json:"formation"`
	Slots     []SlotView   `json:"slots"`
	Filled    int          `json:"filled"`
	// Stats is null while no starting slot is occupied.
	Stats *TeamStats `json:"stats"`
}

// ShareView carries a share token and the link that opens it.
type ShareView struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type SetNameRequest struct {
	Name string `json:"name" binding:"max=100"`
}

type SetFormationRequest struct {
	FormationID string `json:"formation_id" binding:"required"`
}

type AssignPlayerRequest struct {
	PlayerID int `json:"player_id" binding:"required,gt=0"`
}

// BuilderController serves the team builder sessions.
type BuilderController struct {
	service     *Service
	frontendURL string
	log         *zap.Logger
}

// NewBuilderController creates a new builder controller
func NewBuilderController(service *Service, frontendURL string, log *zap.Logger) *BuilderController {
	if log == nil {
		log = zap.NewNop()
	}
	return &BuilderController{service: service, frontendURL: frontendURL, log: log}
}

func (bc *BuilderController) render(sessionID string, s TeamState, jp bool) TeamView {
	names := bc.service.Directory().Names()
	view := TeamView{
		SessionID: sessionID,
		Name:      s.Name,
		Formation: FormationRef{ID: s.Formation.ID, Name: s.Formation.Name},
		Slots:     make([]SlotView, 0, len(s.Slots)),
	}
	for _, slot := range s.Slots {
		sv := SlotView{RosterSlot: slot}
		if slot.Player != nil {
			sv.DisplayName = names.Display(slot.Player.Name, jp)
			view.Filled++
		}
		view.Slots = append(view.Slots, sv)
	}
	if stats, ok := computeStats(s); ok {
		view.Stats = &stats
	}
	return view
}

// fail maps engine and session errors onto HTTP replies.
func (bc *BuilderController) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		responses.NotFound(c, "Builder session")
	case errors.Is(err, formation.ErrUnknownFormation):
		responses.NotFound(c, "Formation")
	case errors.Is(err, ErrUnknownSlot):
		responses.NotFound(c, "Slot")
	case errors.Is(err, ErrUnknownPlayer):
		responses.BadRequest(c, "Unknown player")
	case errors.Is(err, ErrPlaceholderPlayer):
		responses.BadRequest(c, "This player cannot be selected")
	case errors.Is(err, ErrImport):
		responses.BadRequest(c, "Failed to import team. Please check the file format.")
	default:
		bc.log.Error("Builder request failed", zap.String("path", c.FullPath()), zap.Error(err))
		responses.InternalServerError(c, "")
	}
}

func (bc *BuilderController) update(c *gin.Context, message string, action func(*Engine) error) {
	s, err := bc.service.Update(c.Request.Context(), c.Param("session_id"), action)
	if err != nil {
		bc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, message, bc.render(c.Param("session_id"), s, player.JpPreference(c)))
}

// CreateSession godoc
// @Summary Open a builder session
// @Description Starts an empty team, or the team carried by a share token. A token that does not decode yields the empty team.
// @Tags Builder
// @Produce json
// @Param t query string false "Share token"
// @Param jp query bool false "Use romanized Japanese display names"
// @Success 201 {object} responses.SuccessResponse{data=TeamView}
// @Failure 500 {object} responses.ErrorResponse
// @Router /builder/sessions [post]
func (bc *BuilderController) CreateSession(c *gin.Context) {
	id, s, err := bc.service.Create(c.Request.Context(), c.Query(ShareQueryParam))
	if err != nil {
		bc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Builder session created", bc.render(id, s, player.JpPreference(c)))
}

// GetSession godoc
// @Summary Get a builder session
// @Tags Builder
// @Produce json
// @Param session_id path string true "Session ID"
// @Param jp query bool false "Use romanized Japanese display names"
// @Success 200 {object} responses.SuccessResponse{data=TeamView}
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id} [get]
func (bc *BuilderController) GetSession(c *gin.Context) {
	s, err := bc.service.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		bc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Builder session retrieved", bc.render(c.Param("session_id"), s, player.JpPreference(c)))
}

// RenameTeam godoc
// @Summary Rename the team
// @Tags Builder
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body SetNameRequest true "New name"
// @Success 200 {object} responses.SuccessResponse{data=TeamView}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id}/name [put]
func (bc *BuilderController) RenameTeam(c *gin.Context) {
	var req SetNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "", validator.ParseError(err))
		return
	}
	bc.update(c, "Team renamed", func(e *Engine) error {
		e.SetName(req.Name)
		return nil
	})
}

// ChangeFormation godoc
// @Summary Switch formation
// @Description Players in slots present in both formations stay, the others leave the pitch. The bench is untouched.
// @Tags Builder
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body SetFormationRequest true "Formation"
// @Success 200 {object} responses.SuccessResponse{data=TeamView}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id}/formation [put]
func (bc *BuilderController) ChangeFormation(c *gin.Context) {
	var req SetFormationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "", validator.ParseError(err))
		return
	}
	bc.update(c, "Formation changed", func(e *Engine) error {
		return e.SetFormation(req.FormationID)
	})
}

// AssignPlayer godoc
// @Summary Put a player in a slot
// @Description A player already on the roster is moved to the new slot.
// @Tags Builder
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param slot_id path string true "Slot ID"
// @Param request body AssignPlayerRequest true "Player"
// @Success 200 {object} responses.SuccessResponse{data=TeamView}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id}/slots/{slot_id} [put]
func (bc *BuilderController) AssignPlayer(c *gin.Context) {
	var req AssignPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "", validator.ParseError(err))
		return
	}
	bc.update(c, "Player assigned", func(e *Engine) error {
		p, ok := bc.service.Directory().Lookup(req.PlayerID)
		if !ok {
			return fmt.Errorf("%w %d", ErrUnknownPlayer, req.PlayerID)
		}
		return e.AssignPlayer(c.Param("slot_id"), &p)
	})
}

// ClearSlot godoc
// @Summary Empty a slot
// @Tags Builder
// @Produce json
// @Param session_id path string true "Session ID"
// @Param slot_id path string true "Slot ID"
// @Success 200 {object} responses.SuccessResponse{data=TeamView}
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id}/slots/{slot_id} [delete]
func (bc *BuilderController) ClearSlot(c *gin.Context) {
	bc.update(c, "Slot cleared", func(e *Engine) error {
		return e.ClearSlot(c.Param("slot_id"))
	})
}

// ClearAll godoc
// @Summary Empty every slot
// @Description Name and formation are kept.
// @Tags Builder
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} responses.SuccessResponse{data=TeamView}
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id}/slots [delete]
func (bc *BuilderController) ClearAll(c *gin.Context) {
	bc.update(c, "Team cleared", func(e *Engine) error {
		e.ClearAll()
		return nil
	})
}

// ListCandidates godoc
// @Summary Players eligible for a slot
// @Description Players not on the roster, of the slot's position for starting slots, ordered by total. At most 50.
// @Tags Builder
// @Produce json
// @Param session_id path string true "Session ID"
// @Param slot query string true "Slot ID"
// @Param q query string false "Name filter"
// @Param jp query bool false "Use romanized Japanese display names"
// @Success 200 {object} responses.SuccessResponse{data=[]player.View}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id}/candidates [get]
func (bc *BuilderController) ListCandidates(c *gin.Context) {
	slotID := c.Query("slot")
	if slotID == "" {
		responses.BadRequest(c, "Query parameter 'slot' is required")
		return
	}
	e, err := bc.service.Engine(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		bc.fail(c, err)
		return
	}
	candidates, err := e.Candidates(slotID, c.Query("q"))
	if err != nil {
		bc.fail(c, err)
		return
	}

	jp := player.JpPreference(c)
	names := bc.service.Directory().Names()
	views := make([]player.View, 0, len(candidates))
	for _, p := range candidates {
		views = append(views, player.NewView(p, names, jp))
	}
	responses.SendSuccess(c, http.StatusOK, "Candidates retrieved", views)
}

// ShareTeam godoc
// @Summary Share link for the team
// @Tags Builder
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} responses.SuccessResponse{data=ShareView}
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id}/share [get]
func (bc *BuilderController) ShareTeam(c *gin.Context) {
	s, err := bc.service.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		bc.fail(c, err)
		return
	}
	token, err := EncodeShareToken(s)
	if err != nil {
		bc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Share link created", ShareView{Token: token, URL: ShareURL(bc.frontendURL, token)})
}

// ExportTeam godoc
// @Summary Download the team file
// @Tags Builder
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} Document
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id}/export [get]
func (bc *BuilderController) ExportTeam(c *gin.Context) {
	s, err := bc.service.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		bc.fail(c, err)
		return
	}
	body, err := ExportDocument(s)
	if err != nil {
		bc.fail(c, err)
		return
	}
	c.Header("Content-Disposition", contentDisposition(DocumentFilename(s.Name)))
	c.Data(http.StatusOK, "application/json", body)
}

// ImportTeam godoc
// @Summary Load a team file
// @Description Accepts the file as multipart field "file" or as the raw request body. On error the team is unchanged.
// @Tags Builder
// @Accept json,mpfd
// @Produce json
// @Param session_id path string true "Session ID"
// @Param file formData file false "Team file"
// @Success 200 {object} responses.SuccessResponse{data=TeamView}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id}/import [post]
func (bc *BuilderController) ImportTeam(c *gin.Context) {
	data, err := readImport(c)
	if err != nil {
		responses.BadRequest(c, "Could not read the uploaded file")
		return
	}
	bc.update(c, "Team imported", func(e *Engine) error {
		return e.ImportDocument(data)
	})
}

func readImport(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		if fh.Size > MaxImportSize {
			return nil, fmt.Errorf("file too large: %d bytes", fh.Size)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxImportSize))
}

// DeleteSession godoc
// @Summary Close a builder session
// @Tags Builder
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /builder/sessions/{session_id} [delete]
func (bc *BuilderController) DeleteSession(c *gin.Context) {
	if err := bc.service.Delete(c.Request.Context(), c.Param("session_id")); err != nil {
		bc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Builder session closed", nil)
}

// contentDisposition names an attachment with an ASCII fallback and the
// RFC 5987 UTF-8 form.
func contentDisposition(filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, strings.ReplaceAll(url.QueryEscape(filename), "+", "%20"))
}
