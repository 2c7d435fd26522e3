package http

import "github.com/gin-gonic/gin"

// Register mounts the records endpoints on the given group.
func Register(g *gin.RouterGroup, h *Handler) {
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/geocode", h.geocode)
	g.GET("/:id", h.getByID)
}
