package api

import "github.com/gin-gonic/gin"

// NewRouter wires the handlers onto a gin engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", Health)
	r.HEAD("/healthz", Health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/analysis/:symbol", h.GetAnalysis)
		v1.POST("/analysis", h.PostAnalysis)
		v1.GET("/history/:symbol", h.GetHistory)
	}

	return r
}
