package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope of every successful JSON reply.
type SuccessResponse struct {
	Status  string `json:"status"` // "success"
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorResponse is the envelope of every failed JSON reply.
type ErrorResponse struct {
	Status  string            `json:"status"` // "error" for client errors, "fail" for server errors
	Message string            `json:"message"`
	Code    int               `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// PaginatedResponse is a success envelope for a page of a larger list.
type PaginatedResponse struct {
	Status     string     `json:"status"`
	Message    string     `json:"message"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination describes where a page sits in the full result.
type Pagination struct {
	TotalItems   int64 `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	PageSize     int   `json:"page_size"`
	HasNextPage  bool  `json:"has_next_page"`
	HasPrevPage  bool  `json:"has_prev_page"`
	NextPage     *int  `json:"next_page,omitempty"`
	PreviousPage *int  `json:"previous_page,omitempty"`
}

// SendSuccess writes a success envelope.
func SendSuccess(c *gin.Context, statusCode int, message string, data any) {
	if message == "" {
		message = "Operation completed successfully"
	}
	c.JSON(statusCode, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// SendError aborts the request with an error envelope.
func SendError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  statusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// SendValidationError aborts with 400 and the per-field messages.
func SendValidationError(c *gin.Context, message string, fields map[string]string) {
	if message == "" {
		message = "Invalid request payload or parameters"
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Status:  statusText(http.StatusBadRequest),
		Message: message,
		Code:    http.StatusBadRequest,
		Fields:  fields,
	})
}

// SendPaginated writes a success envelope together with page metadata.
func SendPaginated(c *gin.Context, statusCode int, message string, data any, totalItems int64, currentPage int, pageSize int) {
	if message == "" {
		message = "Data retrieved successfully"
	}
	c.JSON(statusCode, PaginatedResponse{
		Status:     "success",
		Message:    message,
		Data:       data,
		Pagination: NewPagination(totalItems, currentPage, pageSize),
	})
}

// NewPagination computes page metadata. A non-positive page size falls back to 10.
func NewPagination(totalItems int64, currentPage, pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = 10
	}
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))

	p := Pagination{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		HasNextPage: currentPage < totalPages,
		HasPrevPage: currentPage > 1,
	}
	if p.HasNextPage {
		next := currentPage + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := currentPage - 1
		p.PreviousPage = &prev
	}
	return p
}

// NotFound sends a 404 for the named resource.
func NotFound(c *gin.Context, resourceName string) {
	SendError(c, http.StatusNotFound, resourceName+" not found")
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request payload or parameters"
	}
	SendError(c, http.StatusBadRequest, message)
}

// InternalServerError sends a 500 without leaking the cause.
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "An unexpected error occurred on the server"
	}
	SendError(c, http.StatusInternalServerError, message)
}

func statusText(statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return "fail"
	}
	return "error"
}
