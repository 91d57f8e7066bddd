package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/http/middleware"
	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/service"
)

type Handler struct {
	auth        *service.AuthService
	projects    *service.ProjectService
	payments    *service.PaymentService
	submissions *service.SubmissionService
	stats       *service.StatsService
	fleet       *service.FleetService
	tenders     *service.TenderService
	backups     *service.BackupService
	reports     *service.ReportService
	log         zerolog.Logger
}

type Services struct {
	Auth        *service.AuthService
	Projects    *service.ProjectService
	Payments    *service.PaymentService
	Submissions *service.SubmissionService
	Stats       *service.StatsService
	Fleet       *service.FleetService
	Tenders     *service.TenderService
	Backups     *service.BackupService
	Reports     *service.ReportService
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{
		auth:        services.Auth,
		projects:    services.Projects,
		payments:    services.Payments,
		submissions: services.Submissions,
		stats:       services.Stats,
		fleet:       services.Fleet,
		tenders:     services.Tenders,
		backups:     services.Backups,
		reports:     services.Reports,
		log:         log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/users", h.listUsers)
	protected.POST("/users", h.registerUser)
	protected.DELETE("/users/:id", h.deleteUser)

	protected.GET("/projects", h.listProjects)
	protected.POST("/projects", h.createProject)
	protected.GET("/projects/:id", h.getProject)
	protected.DELETE("/projects/:id", h.deleteProject)
	protected.GET("/projects/:id/progress", h.listProgress)
	protected.POST("/projects/:id/progress", h.recordProgress)

	protected.GET("/payments", h.listPayments)
	protected.POST("/payments", h.createPayment)
	protected.GET("/payments/:id", h.getPayment)
	protected.POST("/payments/:id/approve", h.approvePayment)
	protected.POST("/payments/:id/reject", h.rejectPayment)
	protected.POST("/payments/:id/schedule", h.schedulePayment)
	protected.POST("/payments/:id/pay", h.payPayment)

	protected.GET("/vehicles", h.listVehicles)
	protected.POST("/vehicles", h.createVehicle)
	protected.GET("/vehicles/certificates", h.vehicleCertificates)
	protected.GET("/vehicles/:id", h.getVehicle)
	protected.PUT("/vehicles/:id", h.updateVehicle)
	protected.DELETE("/vehicles/:id", h.deleteVehicle)

	protected.GET("/drivers", h.listDrivers)
	protected.POST("/drivers", h.createDriver)
	protected.GET("/drivers/:id", h.getDriver)
	protected.PUT("/drivers/:id", h.updateDriver)
	protected.DELETE("/drivers/:id", h.deleteDriver)

	protected.GET("/tenders", h.listTenders)
	protected.POST("/tenders", h.createTender)
	protected.GET("/tenders/:id", h.getTender)
	protected.DELETE("/tenders/:id", h.deleteTender)
	protected.GET("/tenders/:id/bills", h.listTenderBills)
	protected.POST("/tenders/:id/bills", h.createTenderBill)
	protected.DELETE("/tender-bills/:id", h.deleteTenderBill)

	protected.POST("/submissions", h.startSubmission)
	protected.GET("/submissions/active", h.activeSubmission)
	protected.GET("/submissions/:id", h.getSubmission)
	protected.POST("/submissions/:id/images", h.attachSubmissionImage)
	protected.PUT("/submissions/:id/notes", h.updateSubmissionNotes)
	protected.POST("/submissions/:id/complete", h.completeSubmission)

	protected.GET("/stats/leaders/:id", h.leaderStats)
	protected.GET("/stats/payments", h.paymentTotals)

	protected.GET("/export/projects/pdf", h.exportProjectsPDF)
	protected.GET("/export/payments/pdf", h.exportPaymentsPDF)
	protected.GET("/export/payments/excel", h.exportPaymentsExcel)
	protected.GET("/export/tenders/:id/items/excel", h.exportTenderItemsExcel)

	protected.GET("/backup-links", h.listBackupLinks)
	protected.POST("/backup-links", h.createBackupLink)
	protected.DELETE("/backup-links/:id", h.deleteBackupLink)
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrSubmissionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func optionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
