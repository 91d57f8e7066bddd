package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
)

// StatsService computes the derived aggregates. Everything here is a pure
// projection over repository reads; nothing is stored.
type StatsService struct {
	projects *repository.ProjectRepository
	progress *repository.ProgressRepository
	payments *repository.PaymentRepository
	vehicles *repository.VehicleRepository
	recentN  int
	log      zerolog.Logger
}

func NewStatsService(
	projects *repository.ProjectRepository,
	progress *repository.ProgressRepository,
	payments *repository.PaymentRepository,
	vehicles *repository.VehicleRepository,
	recentUpdates int,
	log zerolog.Logger,
) *StatsService {
	return &StatsService{
		projects: projects,
		progress: progress,
		payments: payments,
		vehicles: vehicles,
		recentN:  recentUpdates,
		log:      log,
	}
}

// CompletionPercentage is the project's rounded completion, clamped to
// 0..100. A project with no planned work is 0% by definition.
func CompletionPercentage(project model.Project) int {
	return percentage(project.CompletedWork, project.TotalWork)
}

func percentage(completed, total float64) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(completed / total * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// LeaderStats aggregates one leader's projects and progress log: project
// count, total distance and hours across all updates, overall completion
// across all projects, and the most recent updates by date.
func (s *StatsService) LeaderStats(ctx context.Context, principal model.Principal, leaderID string) (*model.LeaderProgressStats, error) {
	if !principal.SeesAllProjects() && principal.UserID != leaderID {
		return nil, ErrPermissionDenied
	}

	projects, err := s.projects.GetByLeader(ctx, leaderID)
	if err != nil {
		return nil, err
	}

	stats := model.LeaderProgressStats{
		LeaderID:      leaderID,
		ProjectCount:  len(projects),
		RecentUpdates: []model.ProgressUpdate{},
	}

	var sumCompleted, sumTotal float64
	var updates []model.ProgressUpdate
	for _, project := range projects {
		sumCompleted += project.CompletedWork
		sumTotal += project.TotalWork
		projectUpdates, err := s.progress.GetByProject(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		for _, update := range projectUpdates {
			stats.TotalDistance += update.CompletedWork
			stats.TotalTime += update.TimeTaken
		}
		updates = append(updates, projectUpdates...)
	}
	stats.CompletionPercentage = percentage(sumCompleted, sumTotal)

	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].Date.After(updates[j].Date)
	})
	if len(updates) > s.recentN {
		updates = updates[:s.recentN]
	}
	if updates != nil {
		stats.RecentUpdates = updates
	}
	return &stats, nil
}

// PaymentTotals groups purpose amounts across all requests with the given
// status. The raw map carries every purpose type, zeros included; the chart
// rows omit zero totals.
func (s *StatsService) PaymentTotals(ctx context.Context, principal model.Principal, status model.PaymentStatus) (*model.PaymentTotals, error) {
	if !principal.SeesAllProjects() {
		return nil, ErrPermissionDenied
	}
	requests, err := s.payments.GetByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	raw := make(map[model.PurposeType]float64, len(model.PurposeTypes))
	for _, purposeType := range model.PurposeTypes {
		raw[purposeType] = 0
	}
	for _, request := range requests {
		for _, purpose := range request.Purposes {
			raw[purpose.Type] += purpose.Amount
		}
	}

	chart := make([]model.PurposeTotal, 0, len(model.PurposeTypes))
	for _, purposeType := range model.PurposeTypes {
		if raw[purposeType] == 0 {
			continue
		}
		chart = append(chart, model.PurposeTotal{Type: purposeType, Total: raw[purposeType]})
	}

	return &model.PaymentTotals{Status: status, Raw: raw, Chart: chart}, nil
}

// CertificateStatus classifies a certificate expiry date against today:
// missing when unset, expired when past, expiring within 30 days, valid
// beyond that.
func CertificateStatus(expiry *time.Time, today time.Time) model.CertificateState {
	if expiry == nil {
		return model.CertificateMissing
	}
	days := int(dateOnly(*expiry).Sub(dateOnly(today)).Hours() / 24)
	switch {
	case days < 0:
		return model.CertificateExpired
	case days <= 30:
		return model.CertificateExpiring
	default:
		return model.CertificateValid
	}
}

// VehicleCertificates builds the fleet certificate monitoring view.
func (s *StatsService) VehicleCertificates(ctx context.Context, principal model.Principal) ([]model.VehicleCertificates, error) {
	if principal.IsChecker() {
		return nil, ErrPermissionDenied
	}
	vehicles, err := s.vehicles.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	today := time.Now().UTC()
	out := make([]model.VehicleCertificates, 0, len(vehicles))
	for _, vehicle := range vehicles {
		out = append(out, model.VehicleCertificates{
			VehicleID:          vehicle.ID,
			RegistrationNumber: vehicle.RegistrationNumber,
			Pollution:          CertificateStatus(vehicle.PollutionCertExpiry, today),
			Fitness:            CertificateStatus(vehicle.FitnessCertExpiry, today),
		})
	}
	return out, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
