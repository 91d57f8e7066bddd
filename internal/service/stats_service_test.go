package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
	"github.com/davral/siteworks/internal/store"
)

type statsFixture struct {
	stats    *StatsService
	projects *repository.ProjectRepository
	progress *repository.ProgressRepository
	payments *repository.PaymentRepository
	vehicles *repository.VehicleRepository
}

func newStatsFixture(t *testing.T) statsFixture {
	t.Helper()
	s := store.NewMemoryStore()
	f := statsFixture{
		projects: repository.NewProjectRepository(s, zerolog.Nop()),
		progress: repository.NewProgressRepository(s, zerolog.Nop()),
		payments: repository.NewPaymentRepository(s, zerolog.Nop()),
		vehicles: repository.NewVehicleRepository(s, zerolog.Nop()),
	}
	f.stats = NewStatsService(f.projects, f.progress, f.payments, f.vehicles, 5, zerolog.Nop())
	return f
}

func TestCompletionPercentage(t *testing.T) {
	cases := []struct {
		name      string
		completed float64
		total     float64
		want      int
	}{
		{"no planned work", 100, 0, 0},
		{"negative planned work", 100, -10, 0},
		{"zero progress", 0, 1000, 0},
		{"quarter done", 250, 1000, 25},
		{"rounds to nearest", 333, 1000, 33},
		{"exactly done", 1000, 1000, 100},
		{"over-delivery clamps", 1050, 1000, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			project := model.Project{CompletedWork: tc.completed, TotalWork: tc.total}
			require.Equal(t, tc.want, CompletionPercentage(project))
		})
	}
}

func TestLeaderStats(t *testing.T) {
	ctx := context.Background()
	f := newStatsFixture(t)

	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

	project, err := f.projects.Create(ctx, model.Project{Name: "Ring road", LeaderID: leader.UserID, TotalWork: 1000, CompletedWork: 500})
	require.NoError(t, err)
	other, err := f.projects.Create(ctx, model.Project{Name: "Bypass", LeaderID: leader.UserID, TotalWork: 1000, CompletedWork: 100})
	require.NoError(t, err)
	_, err = f.projects.Create(ctx, model.Project{Name: "Not mine", LeaderID: leader2.UserID, TotalWork: 1000})
	require.NoError(t, err)

	for d := 1; d <= 4; d++ {
		_, err = f.progress.Create(ctx, model.ProgressUpdate{ProjectID: project.ID, Date: day(d), CompletedWork: 100, TimeTaken: 2})
		require.NoError(t, err)
	}
	for d := 5; d <= 7; d++ {
		_, err = f.progress.Create(ctx, model.ProgressUpdate{ProjectID: other.ID, Date: day(d), CompletedWork: 50, TimeTaken: 1})
		require.NoError(t, err)
	}

	t.Run("aggregates across the leader's projects", func(t *testing.T) {
		stats, err := f.stats.LeaderStats(ctx, checker, leader.UserID)
		require.NoError(t, err)
		require.Equal(t, 2, stats.ProjectCount)
		require.Equal(t, 550.0, stats.TotalDistance)
		require.Equal(t, 11.0, stats.TotalTime)
		require.Equal(t, 30, stats.CompletionPercentage)
	})

	t.Run("recent updates are newest first and capped", func(t *testing.T) {
		stats, err := f.stats.LeaderStats(ctx, leader, leader.UserID)
		require.NoError(t, err)
		require.Len(t, stats.RecentUpdates, 5)
		require.Equal(t, day(7), stats.RecentUpdates[0].Date)
		require.Equal(t, day(3), stats.RecentUpdates[4].Date)
	})

	t.Run("a leader may not read another leader's stats", func(t *testing.T) {
		_, err := f.stats.LeaderStats(ctx, leader2, leader.UserID)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestPaymentTotals(t *testing.T) {
	ctx := context.Background()
	f := newStatsFixture(t)

	_, err := f.payments.Create(ctx, model.PaymentRequest{
		ProjectID: "p1",
		Status:    model.PaymentStatusPending,
		Purposes: []model.PaymentPurpose{
			{Type: model.PurposeFuel, Amount: 1500},
			{Type: model.PurposeLabour, Amount: 3000},
		},
	})
	require.NoError(t, err)
	_, err = f.payments.Create(ctx, model.PaymentRequest{
		ProjectID: "p1",
		Status:    model.PaymentStatusPending,
		Purposes:  []model.PaymentPurpose{{Type: model.PurposeFuel, Amount: 500}},
	})
	require.NoError(t, err)
	_, err = f.payments.Create(ctx, model.PaymentRequest{
		ProjectID: "p1",
		Status:    model.PaymentStatusPaid,
		Purposes:  []model.PaymentPurpose{{Type: model.PurposeWater, Amount: 9999}},
	})
	require.NoError(t, err)

	t.Run("raw map carries every purpose type with zeros", func(t *testing.T) {
		totals, err := f.stats.PaymentTotals(ctx, owner, model.PaymentStatusPending)
		require.NoError(t, err)
		require.Len(t, totals.Raw, len(model.PurposeTypes))
		require.Equal(t, 2000.0, totals.Raw[model.PurposeFuel])
		require.Equal(t, 3000.0, totals.Raw[model.PurposeLabour])
		require.Equal(t, 0.0, totals.Raw[model.PurposeWater])
	})

	t.Run("chart rows omit zero totals", func(t *testing.T) {
		totals, err := f.stats.PaymentTotals(ctx, owner, model.PaymentStatusPending)
		require.NoError(t, err)
		require.Equal(t, []model.PurposeTotal{
			{Type: model.PurposeFuel, Total: 2000},
			{Type: model.PurposeLabour, Total: 3000},
		}, totals.Chart)
	})

	t.Run("leaders may not read owner dashboards", func(t *testing.T) {
		_, err := f.stats.PaymentTotals(ctx, leader, model.PaymentStatusPending)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestCertificateStatus(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	date := func(d time.Time) *time.Time { return &d }

	cases := []struct {
		name   string
		expiry *time.Time
		want   model.CertificateState
	}{
		{"missing", nil, model.CertificateMissing},
		{"expired yesterday", date(today.AddDate(0, 0, -1)), model.CertificateExpired},
		{"expires today", date(today), model.CertificateExpiring},
		{"expires in 30 days", date(today.AddDate(0, 0, 30)), model.CertificateExpiring},
		{"expires in 31 days", date(today.AddDate(0, 0, 31)), model.CertificateValid},
		{"time of day does not matter", date(today.AddDate(0, 0, 30).Add(8 * time.Hour)), model.CertificateExpiring},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CertificateStatus(tc.expiry, today))
		})
	}
}
