package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/laabobo/live-relay/internal/room"
	"github.com/laabobo/live-relay/pkg/response"
)

// HTTPHandler serves the stream discovery API. Clients use it to list
// open streams and pick a streamId for join_stream instead of relying on
// the auto-join-latest fallback.
type HTTPHandler struct {
	rooms *room.Table
}

func NewHTTPHandler(rooms *room.Table) *HTTPHandler {
	return &HTTPHandler{rooms: rooms}
}

// RegisterRoutes registers all routes.
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		streams := api.Group("/streams")
		{
			streams.GET("", h.ListStreams)
			streams.GET("/:id", h.GetStream)
		}
	}
}

// ListStreams returns every open stream in creation order.
func (h *HTTPHandler) ListStreams(c *gin.Context) {
	response.Success(c, gin.H{
		"streams": h.rooms.List(),
		"total":   h.rooms.Len(),
	})
}

// GetStream returns one stream with its recent comment backlog.
func (h *HTTPHandler) GetStream(c *gin.Context) {
	snap, ok := h.rooms.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "stream not found")
		return
	}
	response.Success(c, snap)
}
