package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/service"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (h *Handler) leaderStats(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	stats, err := h.stats.LeaderStats(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) paymentTotals(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	status, valid := model.ParsePaymentStatus(c.DefaultQuery("status", string(model.PaymentStatusPaid)))
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	totals, err := h.stats.PaymentTotals(c.Request.Context(), principal, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *Handler) exportProjectsPDF(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	table, err := h.reports.ProjectsTable(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.ExportPDF(*table, "projects")
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, contentTypePDF, result)
}

func (h *Handler) exportPaymentsPDF(c *gin.Context) {
	h.exportPayments(c, contentTypePDF)
}

func (h *Handler) exportPaymentsExcel(c *gin.Context) {
	h.exportPayments(c, contentTypeXLSX)
}

func (h *Handler) exportPayments(c *gin.Context, contentType string) {
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
	table, err := h.reports.PaymentsTable(c.Request.Context(), principal, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	var result *service.ExportResult
	if contentType == contentTypePDF {
		result, err = h.reports.ExportPDF(*table, "payments")
	} else {
		result, err = h.reports.ExportExcel(*table, "payments")
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, contentType, result)
}

func (h *Handler) exportTenderItemsExcel(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	table, err := h.reports.TenderItemsTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := h.reports.ExportExcel(*table, "tender-items")
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, contentTypeXLSX, result)
}

func (h *Handler) sendFile(c *gin.Context, contentType string, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}
