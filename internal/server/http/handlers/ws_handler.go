package handlers

import "github.com/gin-gonic/gin"

// WSHandler upgrades authenticated clients to their realtime feed.
type WSHandler struct {
	realtime RealtimeServer
}

// NewWSHandler constructs WSHandler.
func NewWSHandler(realtime RealtimeServer) *WSHandler {
	return &WSHandler{realtime: realtime}
}

// Connect handles GET /ws. The hub joins the caller to the global feed and
// their private room; the upgrade response is written by the hub, so nothing
// more is done here on success.
func (h *WSHandler) Connect(c *gin.Context) {
	userID := CurrentUserID(c)
	if err := h.realtime.Serve(c.Writer, c.Request, userID); err != nil {
		c.Abort()
	}
}
