package responses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(65, 2, 30)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
	require.NotNil(t, p.NextPage)
	require.NotNil(t, p.PreviousPage)
	assert.Equal(t, 3, *p.NextPage)
	assert.Equal(t, 1, *p.PreviousPage)

	last := NewPagination(65, 3, 30)
	assert.False(t, last.HasNextPage)
	assert.Nil(t, last.NextPage)

	empty := NewPagination(0, 1, 0)
	assert.Equal(t, 10, empty.PageSize)
	assert.Zero(t, empty.TotalPages)
	assert.False(t, empty.HasPrevPage)
}

func TestSendError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		send   func(c *gin.Context)
		code   int
		status string
	}{
		{func(c *gin.Context) { NotFound(c, "Formation") }, http.StatusNotFound, "error"},
		{func(c *gin.Context) { BadRequest(c, "") }, http.StatusBadRequest, "error"},
		{func(c *gin.Context) { InternalServerError(c, "") }, http.StatusInternalServerError, "fail"},
		{func(c *gin.Context) { SendValidationError(c, "", map[string]string{"name": "too long"}) }, http.StatusBadRequest, "error"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		tt.send(c)

		assert.Equal(t, tt.code, w.Code)
		assert.True(t, c.IsAborted())
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tt.status, body.Status)
		assert.Equal(t, tt.code, body.Code)
		assert.NotEmpty(t, body.Message)
	}
}

func TestSendSuccessDefaultMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendSuccess(c, http.StatusOK, "", []int{1})
	var body SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "Operation completed successfully", body.Message)
}
