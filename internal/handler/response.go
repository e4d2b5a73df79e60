package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 성공 응답
type SuccessResponse struct {
	Description string `json:"description" example:"Succeeded"`
}

// 에러 응답, 500은 "Internal Server Error: " 접두어
type ErrorResponse struct {
	Description string `json:"description" example:"Record Not Found"`
}

type HealthCheckResponse struct {
	HealthCheck string `json:"health_check" example:"OK"`
}

func abortWithError(c *gin.Context, status int, description string) {
	if status == http.StatusInternalServerError {
		description = "Internal Server Error: " + description
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Description: description})
}
