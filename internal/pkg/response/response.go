package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard error payload returned by the API
type ErrorResponse struct {
	Error   string            `json:"error" example:"user not found"`
	Code    string            `json:"code,omitempty" example:"USER_NOT_FOUND"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse represents a standard success payload
type SuccessResponse struct {
	Status string      `json:"status" example:"success"`
	Data   interface{} `json:"data"`
}

// PaginatedResponse represents a paginated list response
type PaginatedResponse struct {
	Status string      `json:"status" example:"success"`
	Data   interface{} `json:"data"`
	Total  int64       `json:"total" example:"25"`
	Limit  int         `json:"limit" example:"10"`
	Page   int         `json:"page,omitempty" example:"1"`
}

// Success sends a 200 OK response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Accepted sends a 202 Accepted response, used for fire-and-forget submissions
func Accepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, SuccessResponse{
		Status: "accepted",
		Data:   data,
	})
}

// NoContent sends an empty 204 response
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated sends a paginated response
func Paginated(c *gin.Context, data interface{}, total int64, limit int, page ...int) {
	pageNum := 1
	if len(page) > 0 {
		pageNum = page[0]
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Status: "success",
		Data:   data,
		Total:  total,
		Limit:  limit,
		Page:   pageNum,
	})
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	code := ""
	if len(errorCode) > 0 {
		code = errorCode[0]
	}

	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// ErrorWithDetails sends an error response carrying per-field or per-branch detail
func ErrorWithDetails(c *gin.Context, statusCode int, message string, code string, details map[string]string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusNotFound, message, errorCode...)
}

// TooManyRequests sends a 429 Too Many Requests error
func TooManyRequests(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusTooManyRequests, message, errorCode...)
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusInternalServerError, message, errorCode...)
}

// ServiceUnavailable sends a 503 Service Unavailable error
func ServiceUnavailable(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusServiceUnavailable, message, errorCode...)
}

// BindError handles request binding errors
func BindError(c *gin.Context, err error) {
	BadRequest(c, "Invalid request format", "INVALID_REQUEST")
}
