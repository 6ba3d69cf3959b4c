package transcriptions

import (
	"github.com/gin-gonic/gin"
	"github.com/revlence/transcribe-api/api/types"
)

// RegisterRoutes registers all transcription-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/transcribe", Transcribe(deps))
	router.GET("/transcriptions/:uuid", GetRecord(deps))
}
