package handler

import "github.com/gin-gonic/gin"

func RegisterRoutes(router gin.IRouter, audio *AudioHandler) {
	router.GET("/healthcheck", HealthCheck)

	audioGroup := router.Group("/audio/user/:user_id/phrase/:phrase_id")
	{
		audioGroup.GET("/:audio_format", audio.GetAudio)
		audioGroup.POST("", audio.PostAudio)
	}
}
