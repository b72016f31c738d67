package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"testing"
	"time"

	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fixtureApps returns records whose persisted serials deliberately diverge
// from dense row positions, as they would after partial deletes were the
// invariant ever relaxed. Exports must number rows by position regardless.
func fixtureApps(n int) []domain.Application {
	apps := make([]domain.Application, n)
	for i := range apps {
		apps[i] = domain.Application{
			ID:              int64(i + 1),
			Token:           fmt.Sprintf("token-%d", i+1),
			UserID:          "user1",
			SerialNo:        (i + 1) * 3, // 3, 6, 9, ...
			Company:         fmt.Sprintf("Company %d", i+1),
			JobTitle:        "Engineer",
			ApplicationDate: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			Status:          domain.StatusApplied,
			Location:        "Berlin",
		}
	}
	return apps
}

func exportFixture(t *testing.T, n int) (domain.ExportUsecase, *MockUserRepo) {
	t.Helper()
	appRepo := new(MockApplicationRepo)
	appRepo.On("GetByUserSorted", mock.Anything, "user1").Return(fixtureApps(n), nil)

	userRepo := new(MockUserRepo)
	return usecase.NewExportUsecase(appRepo, userRepo), userRepo
}

func TestExportCSV(t *testing.T) {
	uc, _ := exportFixture(t, 4)

	data, filename, err := uc.ExportCSV(context.Background(), "user1")
	require.NoError(t, err)
	assert.Contains(t, filename, ".csv")

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5, "header plus one row per record")

	assert.Equal(t, []string{
		"Serial No", "Token", "Company", "Job Title",
		"Application Date", "Status", "Follow Up Date", "Location",
	}, records[0])

	for i, row := range records[1:] {
		assert.Equal(t, strconv.Itoa(i+1), row[0], "serial column is the 1-based row position")
		assert.Equal(t, fmt.Sprintf("token-%d", i+1), row[1])
		assert.Equal(t, fmt.Sprintf("Company %d", i+1), row[2])
		assert.Equal(t, domain.StatusApplied, row[5])
		assert.Empty(t, row[6], "unset follow-up date renders empty")
	}
}

func TestExportCSVEmptySet(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	appRepo.On("GetByUserSorted", mock.Anything, "user1").Return([]domain.Application{}, nil)
	uc := usecase.NewExportUsecase(appRepo, new(MockUserRepo))

	data, _, err := uc.ExportCSV(context.Background(), "user1")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}

func TestExportXLSX(t *testing.T) {
	uc, _ := exportFixture(t, 3)

	data, filename, err := uc.ExportXLSX(context.Background(), "user1")
	require.NoError(t, err)
	assert.Contains(t, filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Applications", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Serial No", header)

	for i := 0; i < 3; i++ {
		serial, err := f.GetCellValue("Applications", fmt.Sprintf("A%d", i+2))
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(i+1), serial)

		company, err := f.GetCellValue("Applications", fmt.Sprintf("C%d", i+2))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("Company %d", i+1), company)
	}
}

func TestExportPDF(t *testing.T) {
	uc, userRepo := exportFixture(t, 4)

	phone := "+49 30 1234567"
	userRepo.On("GetByID", mock.Anything, "user1").Return(&domain.User{
		ID:          "user1",
		Username:    "jane",
		Email:       "jane@example.com",
		PhoneNumber: &phone,
	}, nil)

	data, filename, err := uc.ExportPDF(context.Background(), "user1")
	require.NoError(t, err)
	assert.Contains(t, filename, ".pdf")
	require.True(t, len(data) > 0)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
}
