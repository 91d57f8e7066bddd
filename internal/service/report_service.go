package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
)

// PDFGenerator renders a tabular report as a PDF document.
type PDFGenerator interface {
	Generate(table model.ReportTable) ([]byte, error)
}

// ExcelGenerator renders a tabular report as a spreadsheet.
type ExcelGenerator interface {
	Generate(table model.ReportTable) ([]byte, error)
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// ReportService projects collections into stable tables and hands them to
// the export adapters. The same tables back the on-screen report views.
type ReportService struct {
	projects *repository.ProjectRepository
	payments *repository.PaymentRepository
	users    *repository.UserRepository
	tenders  *repository.TenderRepository
	bills    *repository.TenderBillRepository
	pdf      PDFGenerator
	excel    ExcelGenerator
	log      zerolog.Logger
}

func NewReportService(
	projects *repository.ProjectRepository,
	payments *repository.PaymentRepository,
	users *repository.UserRepository,
	tenders *repository.TenderRepository,
	bills *repository.TenderBillRepository,
	pdf PDFGenerator,
	excel ExcelGenerator,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		projects: projects,
		payments: payments,
		users:    users,
		tenders:  tenders,
		bills:    bills,
		pdf:      pdf,
		excel:    excel,
		log:      log,
	}
}

// ProjectsTable lists projects visible to the caller with their completion.
func (s *ReportService) ProjectsTable(ctx context.Context, principal model.Principal) (*model.ReportTable, error) {
	var projects []model.Project
	var err error
	if principal.SeesAllProjects() {
		projects, err = s.projects.GetAll(ctx)
	} else {
		projects, err = s.projects.GetByLeader(ctx, principal.UserID)
	}
	if err != nil {
		return nil, err
	}

	leaderNames, err := s.leaderNames(ctx)
	if err != nil {
		return nil, err
	}

	table := model.ReportTable{
		Title:   "Projects",
		Columns: []string{"Name", "Leader", "Workers", "Planned (m)", "Completed (m)", "Completion", "Status", "Created"},
	}
	for _, project := range projects {
		table.Rows = append(table.Rows, []string{
			project.Name,
			leaderNames[project.LeaderID],
			strconv.Itoa(project.Workers),
			formatMeters(project.TotalWork),
			formatMeters(project.CompletedWork),
			fmt.Sprintf("%d%%", CompletionPercentage(project)),
			project.Status,
			project.CreatedAt.Format("2006-01-02"),
		})
	}
	return &table, nil
}

// PaymentsTable lists payment requests visible to the caller, optionally
// filtered by status.
func (s *ReportService) PaymentsTable(ctx context.Context, principal model.Principal, status *model.PaymentStatus) (*model.ReportTable, error) {
	requests, err := s.payments.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var ownProjects map[string]bool
	projectNames := make(map[string]string)
	projects, err := s.projects.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, project := range projects {
		projectNames[project.ID] = project.Name
	}
	if !principal.SeesAllProjects() {
		ownProjects = make(map[string]bool)
		for _, project := range projects {
			if project.LeaderID == principal.UserID {
				ownProjects[project.ID] = true
			}
		}
	}

	table := model.ReportTable{
		Title:   "Payment Requests",
		Columns: []string{"Date", "Project", "Purposes", "Total", "Status", "Scheduled", "Notes"},
	}
	for _, request := range requests {
		if ownProjects != nil && !ownProjects[request.ProjectID] {
			continue
		}
		if status != nil && request.Status != *status {
			continue
		}
		scheduled := ""
		if request.ScheduledDate != nil {
			scheduled = request.ScheduledDate.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []string{
			request.Date.Format("2006-01-02"),
			projectNames[request.ProjectID],
			purposeSummary(request.Purposes),
			formatAmount(request.TotalAmount),
			string(request.Status),
			scheduled,
			request.CheckerNotes,
		})
	}
	return &table, nil
}

// TenderItemsTable flattens all bill items of one tender.
func (s *ReportService) TenderItemsTable(ctx context.Context, tenderID string) (*model.ReportTable, error) {
	tender, err := s.tenders.GetByID(ctx, tenderID)
	if err != nil {
		return nil, ErrNotFound
	}
	bills, err := s.bills.GetByTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}

	table := model.ReportTable{
		Title:   fmt.Sprintf("Tender Items: %s", tender.Title),
		Columns: []string{"Bill", "Date", "Description", "Unit", "Qty", "Rate", "Amount"},
	}
	for _, bill := range bills {
		for _, item := range bill.Items {
			table.Rows = append(table.Rows, []string{
				bill.BillNumber,
				bill.Date.Format("2006-01-02"),
				item.Description,
				item.Unit,
				formatAmount(item.Quantity),
				formatAmount(item.Rate),
				formatAmount(item.Amount),
			})
		}
	}
	return &table, nil
}

func (s *ReportService) ExportPDF(table model.ReportTable, slug string) (*ExportResult, error) {
	content, err := s.pdf.Generate(table)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: buildFileName(slug, "pdf"), Content: content}, nil
}

func (s *ReportService) ExportExcel(table model.ReportTable, slug string) (*ExportResult, error) {
	content, err := s.excel.Generate(table)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: buildFileName(slug, "xlsx"), Content: content}, nil
}

func (s *ReportService) leaderNames(ctx context.Context) (map[string]string, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	return names, nil
}

func buildFileName(slug, ext string) string {
	return fmt.Sprintf("%s-%s.%s", slug, time.Now().Format("20060102"), ext)
}

func purposeSummary(purposes []model.PaymentPurpose) string {
	out := ""
	for i, purpose := range purposes {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %s", purpose.Type, formatAmount(purpose.Amount))
	}
	return out
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatMeters(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}
