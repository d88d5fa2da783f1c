package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/domains/report/model"
)

type fakeReportRepo struct {
	ranks    []model.AuthorRank
	years    []int
	err      error
	gotYear  int
	gotLimit int
}

func (f *fakeReportRepo) TopAuthorsByYear(_ context.Context, year, limit int) ([]model.AuthorRank, error) {
	f.gotYear = year
	f.gotLimit = limit
	return f.ranks, f.err
}

func (f *fakeReportRepo) AvailableYears(_ context.Context) ([]int, error) {
	return f.years, f.err
}

func TestTopAuthors_PassesYearAndLimit(t *testing.T) {
	repo := &fakeReportRepo{
		ranks: []model.AuthorRank{{AuthorID: uuid.New(), LastName: "Гоголь", BookCount: 3}},
		years: []int{1842, 1835},
	}

	report, err := NewReportService(repo).TopAuthors(context.Background(), 1842)

	require.NoError(t, err)
	assert.Equal(t, 1842, repo.gotYear)
	assert.Equal(t, 10, repo.gotLimit)
	assert.Equal(t, 1842, report.Year)
	assert.Len(t, report.Authors, 1)
	assert.Equal(t, []int{1842, 1835}, report.AvailableYears)
}

func TestTopAuthors_OutOfRangeYearFallsBackToCurrent(t *testing.T) {
	current := 2026
	svc := &reportService{
		repo: &fakeReportRepo{},
		now:  func() time.Time { return time.Date(current, time.August, 31, 0, 0, 0, 0, time.UTC) },
	}

	tests := []struct {
		name string
		year int
	}{
		{"zero", 0},
		{"negative", -5},
		{"below range", 999},
		{"above range", 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := svc.TopAuthors(context.Background(), tt.year)

			require.NoError(t, err)
			assert.Equal(t, current, report.Year)
		})
	}
}

func TestTopAuthors_RepositoryFailure(t *testing.T) {
	repo := &fakeReportRepo{err: errors.New("connection refused")}

	_, err := NewReportService(repo).TopAuthors(context.Background(), 1842)

	require.Error(t, err)
}
