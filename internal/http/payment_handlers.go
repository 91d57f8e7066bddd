package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/service"
)

type createPaymentRequest struct {
	ProjectID        string                 `json:"projectId" binding:"required"`
	ProgressUpdateID string                 `json:"progressUpdateId"`
	Date             string                 `json:"date"`
	Purposes         []model.PaymentPurpose `json:"purposes" binding:"required"`
}

func (h *Handler) createPayment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := optionalDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	input := service.CreatePaymentInput{
		ProjectID:        req.ProjectID,
		ProgressUpdateID: req.ProgressUpdateID,
		Purposes:         req.Purposes,
		Principal:        principal,
	}
	if date != nil {
		input.Date = *date
	}
	request, err := h.payments.CreateRequest(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *Handler) listPayments(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var status *model.PaymentStatus
	if raw := c.Query("status"); raw != "" {
		parsed, valid := model.ParsePaymentStatus(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}
	requests, err := h.payments.ListRequests(c.Request.Context(), principal, c.Query("projectId"), status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) getPayment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	request, err := h.payments.GetRequest(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

type paymentReviewRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) approvePayment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req paymentReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	request, err := h.payments.Approve(c.Request.Context(), principal, c.Param("id"), req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) rejectPayment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req paymentReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	request, err := h.payments.Reject(c.Request.Context(), principal, c.Param("id"), req.Notes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

type schedulePaymentRequest struct {
	ScheduledDate string `json:"scheduledDate" binding:"required"`
}

func (h *Handler) schedulePayment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req schedulePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduledDate"})
		return
	}
	request, err := h.payments.Schedule(c.Request.Context(), principal, c.Param("id"), scheduledDate)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *Handler) payPayment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	request, err := h.payments.Pay(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
