package player

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	PlayerRoutes(r.Group("/api"), NewDirectory(fixturePlayers(), fixtureNames()))
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestListPlayers(t *testing.T) {
	r := newTestRouter()

	w := get(r, "/api/players?position=FW&jp=true")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data       []View `json:"data"`
		Pagination struct {
			TotalItems int64 `json:"total_items"`
			PageSize   int   `json:"page_size"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Shuuya Gouenji", body.Data[0].DisplayName)
	assert.Equal(t, "Shawn Frost", body.Data[1].DisplayName)
	assert.EqualValues(t, 2, body.Pagination.TotalItems)
	assert.Equal(t, DefaultBrowseLimit, body.Pagination.PageSize)
}

func TestListPlayersRejectsBadDirection(t *testing.T) {
	w := get(newTestRouter(), "/api/players?dir=sideways")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"fields"`)
}

func TestGetPlayerByID(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, http.StatusOK, get(r, "/api/players/3").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/players/4").Code, "placeholders are hidden")
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/players/abc").Code)
}

func TestLookupPlayer(t *testing.T) {
	r := newTestRouter()

	w := get(r, "/api/players/lookup?name=jude+sharpe")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Match-Distance"))
	assert.Contains(t, w.Body.String(), `"name":"Jude Sharp"`)

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/players/lookup").Code)
}

func TestGetFacets(t *testing.T) {
	w := get(newTestRouter(), "/api/players/facets")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data Facets `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, Elements, body.Data.Elements)
	assert.Equal(t, []string{"Balanced", "Power"}, body.Data.Affinities)
}
