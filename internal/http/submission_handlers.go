package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type startSubmissionRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
}

func (h *Handler) startSubmission(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req startSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	submission, err := h.submissions.Start(c.Request.Context(), principal, req.ProjectID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

func (h *Handler) activeSubmission(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	submission, err := h.submissions.Active(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (h *Handler) getSubmission(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	submission, err := h.submissions.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

type attachImageRequest struct {
	DataURL string `json:"dataUrl" binding:"required"`
}

func (h *Handler) attachSubmissionImage(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req attachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	submission, err := h.submissions.AttachImage(c.Request.Context(), principal, c.Param("id"), req.DataURL)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) updateSubmissionNotes(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req updateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	submission, err := h.submissions.UpdateNotes(c.Request.Context(), principal, c.Param("id"), req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (h *Handler) completeSubmission(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	submission, err := h.submissions.Complete(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}
