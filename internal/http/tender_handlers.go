package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/service"
)

type createTenderRequest struct {
	Title      string `json:"title" binding:"required"`
	Department string `json:"department"`
	Location   string `json:"location"`
	DueDate    string `json:"dueDate"`
	Status     string `json:"status"`
}

func (h *Handler) createTender(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req createTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dueDate, err := optionalDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dueDate"})
		return
	}
	tender, err := h.tenders.CreateTender(c.Request.Context(), principal, service.TenderInput{
		Title:      req.Title,
		Department: req.Department,
		Location:   req.Location,
		DueDate:    dueDate,
		Status:     req.Status,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tender)
}

func (h *Handler) listTenders(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	tenders, err := h.tenders.ListTenders(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenders)
}

func (h *Handler) getTender(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	tender, err := h.tenders.GetTender(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tender)
}

func (h *Handler) deleteTender(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.tenders.DeleteTender(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createTenderBillRequest struct {
	BillNumber string             `json:"billNumber" binding:"required"`
	Date       string             `json:"date"`
	Items      []model.TenderItem `json:"items" binding:"required"`
}

func (h *Handler) createTenderBill(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req createTenderBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := optionalDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	input := service.TenderBillInput{
		TenderID:   c.Param("id"),
		BillNumber: req.BillNumber,
		Items:      req.Items,
	}
	if date != nil {
		input.Date = *date
	}
	bill, err := h.tenders.CreateBill(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (h *Handler) listTenderBills(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	bills, err := h.tenders.ListBills(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *Handler) deleteTenderBill(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.tenders.DeleteBill(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
