package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/service"
)

type createProjectRequest struct {
	Name      string  `json:"name" binding:"required"`
	LeaderID  string  `json:"leaderId"`
	Workers   int     `json:"workers"`
	TotalWork float64 `json:"totalWork"`
	Status    string  `json:"status"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Location  string  `json:"location"`
}

func (h *Handler) createProject(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	startDate, err := optionalDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
		return
	}
	endDate, err := optionalDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
		return
	}
	project, err := h.projects.CreateProject(c.Request.Context(), service.CreateProjectInput{
		Name:      req.Name,
		LeaderID:  req.LeaderID,
		Workers:   req.Workers,
		TotalWork: req.TotalWork,
		Status:    req.Status,
		StartDate: startDate,
		EndDate:   endDate,
		Location:  req.Location,
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) listProjects(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	projects, err := h.projects.ListProjects(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) getProject(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	project, err := h.projects.GetProject(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project":              project,
		"completionPercentage": service.CompletionPercentage(*project),
	})
}

func (h *Handler) deleteProject(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.projects.DeleteProject(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type recordProgressRequest struct {
	Date              string                    `json:"date"`
	CompletedWork     float64                   `json:"completedWork"`
	TimeTaken         float64                   `json:"timeTaken"`
	Photos            []model.PhotoWithMetadata `json:"photos"`
	Notes             string                    `json:"notes"`
	VehicleID         string                    `json:"vehicleId"`
	StartMeterReading string                    `json:"startMeterReading"`
	EndMeterReading   string                    `json:"endMeterReading"`
	Documents         []model.Document          `json:"documents"`
}

func (h *Handler) recordProgress(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req recordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := optionalDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	input := service.RecordProgressInput{
		ProjectID:         c.Param("id"),
		CompletedWork:     req.CompletedWork,
		TimeTaken:         req.TimeTaken,
		Photos:            req.Photos,
		Notes:             req.Notes,
		VehicleID:         req.VehicleID,
		StartMeterReading: req.StartMeterReading,
		EndMeterReading:   req.EndMeterReading,
		Documents:         req.Documents,
		Principal:         principal,
	}
	if date != nil {
		input.Date = *date
	}
	update, err := h.projects.RecordProgress(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, update)
}

func (h *Handler) listProgress(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	updates, err := h.projects.ListProgress(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updates)
}
