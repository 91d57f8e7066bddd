package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/repository"
	"github.com/davral/siteworks/internal/store"
)

type fakeGenerator struct {
	last model.ReportTable
}

func (g *fakeGenerator) Generate(table model.ReportTable) ([]byte, error) {
	g.last = table
	return []byte("rendered:" + table.Title), nil
}

func newReportFixture(t *testing.T) (*ReportService, *fakeGenerator, *repository.ProjectRepository, *repository.UserRepository) {
	t.Helper()
	s := store.NewMemoryStore()
	projects := repository.NewProjectRepository(s, zerolog.Nop())
	users := repository.NewUserRepository(s, zerolog.Nop())
	gen := &fakeGenerator{}
	svc := NewReportService(
		projects,
		repository.NewPaymentRepository(s, zerolog.Nop()),
		users,
		repository.NewTenderRepository(s, zerolog.Nop()),
		repository.NewTenderBillRepository(s, zerolog.Nop()),
		gen,
		gen,
		zerolog.Nop(),
	)
	return svc, gen, projects, users
}

func TestReportServiceProjectsTable(t *testing.T) {
	ctx := context.Background()
	svc, _, projects, users := newReportFixture(t)

	user, err := users.Create(ctx, model.User{Name: "Asel", Email: "asel@example.com", Role: model.RoleLeader})
	require.NoError(t, err)
	_, err = projects.Create(ctx, model.Project{Name: "Ring road", LeaderID: user.ID, TotalWork: 1000, CompletedWork: 250, Workers: 12})
	require.NoError(t, err)
	_, err = projects.Create(ctx, model.Project{Name: "Not hers", LeaderID: "other", TotalWork: 500})
	require.NoError(t, err)

	t.Run("rows resolve leader names and completion", func(t *testing.T) {
		table, err := svc.ProjectsTable(ctx, owner)
		require.NoError(t, err)
		require.Len(t, table.Rows, 2)
		require.Equal(t, "Ring road", table.Rows[0][0])
		require.Equal(t, "Asel", table.Rows[0][1])
		require.Equal(t, "25%", table.Rows[0][5])
	})

	t.Run("leaders are scoped to their own rows", func(t *testing.T) {
		scoped := model.Principal{UserID: user.ID, Role: model.RoleLeader}
		table, err := svc.ProjectsTable(ctx, scoped)
		require.NoError(t, err)
		require.Len(t, table.Rows, 1)
		require.Equal(t, "Ring road", table.Rows[0][0])
	})
}

func TestReportServiceExport(t *testing.T) {
	ctx := context.Background()
	svc, gen, projects, _ := newReportFixture(t)
	_, err := projects.Create(ctx, model.Project{Name: "Ring road", LeaderID: "l1", TotalWork: 1000})
	require.NoError(t, err)

	table, err := svc.ProjectsTable(ctx, owner)
	require.NoError(t, err)

	t.Run("pdf export names the file after the slug", func(t *testing.T) {
		result, err := svc.ExportPDF(*table, "projects")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(result.FileName, "projects-"))
		require.True(t, strings.HasSuffix(result.FileName, ".pdf"))
		require.Equal(t, []byte("rendered:Projects"), result.Content)
		require.Equal(t, "Projects", gen.last.Title)
	})

	t.Run("excel export uses the xlsx extension", func(t *testing.T) {
		result, err := svc.ExportExcel(*table, "projects")
		require.NoError(t, err)
		require.True(t, strings.HasSuffix(result.FileName, ".xlsx"))
	})
}
