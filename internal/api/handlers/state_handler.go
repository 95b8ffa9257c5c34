package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/hirea/internal/models"
	"github.com/yoockh/hirea/internal/state"
)

type StateHandler struct {
	state *state.JobsState
}

func NewStateHandler(st *state.JobsState) *StateHandler {
	return &StateHandler{state: st}
}

// Jobs returns the in-memory job collection, optionally narrowed by ?type=.
func (h *StateHandler) Jobs(c *gin.Context) {
	if t := c.Query("type"); t != "" {
		c.JSON(http.StatusOK, gin.H{"jobs": h.state.ByType(models.JobType(t))})
		return
	}
	c.JSON(http.StatusOK, h.state.Snapshot())
}
