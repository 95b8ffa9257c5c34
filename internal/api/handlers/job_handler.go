package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/hirea/internal/models"
	"github.com/yoockh/hirea/internal/services"
	"github.com/yoockh/hirea/internal/state"
	"github.com/yoockh/hirea/internal/utils"
)

type JobHandler struct {
	svc   services.JobService
	state *state.JobsState
}

func NewJobHandler(svc services.JobService, st *state.JobsState) *JobHandler {
	return &JobHandler{svc: svc, state: st}
}

func (h *JobHandler) List(c *gin.Context) {
	var (
		items []models.JobListItem
		err   error
	)
	switch c.Query("status") {
	case "":
		items, err = h.svc.ListJobsFormatted(c.Request.Context())
	case string(models.JobActive):
		items, err = h.svc.ListActiveJobsFormatted(c.Request.Context())
	default:
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.List", "status filter must be active", nil))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type CreateJobRequest struct {
	Title       string   `json:"title" binding:"required"`
	Company     string   `json:"company" binding:"required"`
	Type        string   `json:"type" binding:"required,oneof=Full-time Part-time Intern Contract Freelance"`
	Status      string   `json:"status" binding:"required,oneof=active inactive draft"`
	Location    *string  `json:"location,omitempty"`
	MinSalary   *int64   `json:"min_salary,omitempty"`
	MaxSalary   *int64   `json:"max_salary,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Needed      *int64   `json:"needed,omitempty"`

	// form key -> mandatory|optional|off
	Fields map[string]string `json:"fields"`
}

func (h *JobHandler) Create(c *gin.Context) {
	const op = "JobHandler.Create"

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Company = strings.TrimSpace(req.Company)
	if req.Title == "" || req.Company == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "title and company are required", nil))
		return
	}

	fields := make(map[models.FormField]models.FieldLevel, len(req.Fields))
	for k, v := range req.Fields {
		level := models.FieldLevel(v)
		switch level {
		case models.LevelMandatory, models.LevelOptional, models.LevelOff:
		default:
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid level for field "+k, nil))
			return
		}
		fields[models.FormField(k)] = level
	}

	job, err := h.state.CreateJob(c.Request.Context(), services.CreateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Type:        models.JobType(req.Type),
		Status:      models.JobStatus(req.Status),
		Location:    req.Location,
		MinSalary:   req.MinSalary,
		MaxSalary:   req.MaxSalary,
		Description: req.Description,
		Tags:        req.Tags,
		Needed:      req.Needed,
		Fields:      fields,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Detail(c *gin.Context) {
	const op = "JobHandler.Detail"

	jobID, ok := parseJobID(c, op)
	if !ok {
		return
	}
	view, err := h.svc.GetJobDetailFormatted(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, err)
		return
	}
	if view == nil {
		writeError(c, utils.E(utils.CodeNotFound, op, "job not found", nil))
		return
	}
	c.JSON(http.StatusOK, view)
}
