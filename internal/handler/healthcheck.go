package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck godoc
// @Summary      서버 상태 확인 (Health Check)
// @Description  프로세스가 요청을 처리 중이면 항상 OK를 반환합니다.
// @Tags         Health
// @Produce      json
// @Success      200 {object} handler.HealthCheckResponse
// @Router       /healthcheck [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthCheckResponse{HealthCheck: "OK"})
}
