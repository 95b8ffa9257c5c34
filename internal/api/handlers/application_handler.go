package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/hirea/internal/services"
	"github.com/yoockh/hirea/internal/state"
	"github.com/yoockh/hirea/internal/utils"
)

type ApplicationHandler struct {
	svc   services.ApplicationService
	state *state.JobsState
}

func NewApplicationHandler(svc services.ApplicationService, st *state.JobsState) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, state: st}
}

type SubmitApplicationResponse struct {
	ApplicationID int64 `json:"application_id"`
	JobID         int64 `json:"job_id"`
}

// Submit accepts a flat field key -> value object. Unknown keys are ignored.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	const op = "ApplicationHandler.Submit"

	jobID, ok := parseJobID(c, op)
	if !ok {
		return
	}
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	appID, err := h.state.SubmitApplication(c.Request.Context(), jobID, payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SubmitApplicationResponse{ApplicationID: appID, JobID: jobID})
}

func (h *ApplicationHandler) Candidates(c *gin.Context) {
	jobID, ok := parseJobID(c, "ApplicationHandler.Candidates")
	if !ok {
		return
	}
	list, err := h.svc.ListApplicationsByJobFormatted(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ApplicationHandler) CandidateRows(c *gin.Context) {
	jobID, ok := parseJobID(c, "ApplicationHandler.CandidateRows")
	if !ok {
		return
	}
	list, err := h.svc.ListApplicationsByJobFormatted(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToCandidateRows(list))
}
