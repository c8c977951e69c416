package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

type mockTravelReportRepo struct {
	report *models.TravelReport
}

func (m *mockTravelReportRepo) Create(_ context.Context, report *models.TravelReport) error {
	report.ID = "rpt-1"
	for i := range report.VisitProofs {
		report.VisitProofs[i].TravelReportID = report.ID
	}
	m.report = report
	return nil
}

func (m *mockTravelReportRepo) FindByRequestID(_ context.Context, travelRequestID string) (*models.TravelReport, error) {
	if m.report == nil || m.report.TravelRequestID != travelRequestID {
		return nil, sql.ErrNoRows
	}
	return m.report, nil
}

type mockReportRequestStore struct {
	request *models.TravelRequest
	status  string
}

func (m *mockReportRequestStore) FindByID(_ context.Context, id string) (*models.TravelRequest, error) {
	if m.request == nil || m.request.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.request, nil
}

func (m *mockReportRequestStore) UpdateStatus(_ context.Context, id, status string) error {
	m.status = status
	return nil
}

func reportFixtureRequest() *models.TravelRequest {
	return &models.TravelRequest{
		ID:            "req-1",
		Destination:   "Jakarta",
		RequestNumber: "064/0001/DIB/VP/NOTA",
		ReportNumber:  "064/0001/DIB/VP/NOTA",
		Status:        models.StatusApproved,
		Participants: []models.TravelRequestParticipant{
			{EmployeeID: "emp-1", EmployeeName: "Budi Santoso"},
		},
	}
}

func newTestTravelReportService(repo *mockTravelReportRepo, requests *mockReportRequestStore) *TravelReportService {
	return NewTravelReportService(repo, requests,
		&mockRepReader{rep: &models.Representative{Name: "Andi Pratama", Position: "Senior Vice President"}},
		nil, nil)
}

func validReportPayload() CreateTravelReportRequest {
	return CreateTravelReportRequest{
		TravelRequestID: "req-1",
		VisitProofs: []VisitProofInput{
			{Date: "2025-03-10", DepartFrom: "Surabaya", ArriveAt: "Jakarta"},
			{Date: "2025-03-12", DepartFrom: "Jakarta", StayOrStopAt: "Semarang", ArriveAt: "Surabaya"},
		},
	}
}

func TestCreateTravelReport(t *testing.T) {
	repo := &mockTravelReportRepo{}
	requests := &mockReportRequestStore{request: reportFixtureRequest()}
	svc := newTestTravelReportService(repo, requests)

	report, err := svc.Create(context.Background(), validReportPayload())
	require.NoError(t, err)

	assert.Equal(t, "064/0001/DIB/VP/NOTA", report.ReportNumber)
	assert.Equal(t, "Andi Pratama", report.RepresentativeName)
	assert.Equal(t, "Senior Vice President", report.RepresentativePosition)
	require.Len(t, report.VisitProofs, 2)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), report.VisitProofs[0].Date)
	assert.Equal(t, "Semarang", report.VisitProofs[1].StayOrStopAt)
	assert.Equal(t, models.StatusCompleted, requests.status)
}

func TestCreateTravelReportConflict(t *testing.T) {
	repo := &mockTravelReportRepo{report: &models.TravelReport{ID: "rpt-1", TravelRequestID: "req-1"}}
	svc := newTestTravelReportService(repo, &mockReportRequestStore{request: reportFixtureRequest()})

	_, err := svc.Create(context.Background(), validReportPayload())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCreateTravelReportUnknownRequest(t *testing.T) {
	svc := newTestTravelReportService(&mockTravelReportRepo{}, &mockReportRequestStore{})

	_, err := svc.Create(context.Background(), validReportPayload())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCreateTravelReportValidation(t *testing.T) {
	requests := &mockReportRequestStore{request: reportFixtureRequest()}
	svc := newTestTravelReportService(&mockTravelReportRepo{}, requests)

	_, err := svc.Create(context.Background(), CreateTravelReportRequest{TravelRequestID: "req-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	payload := validReportPayload()
	payload.VisitProofs[0].Date = "10-03-2025"
	_, err = svc.Create(context.Background(), payload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, requests.status)
}

func TestGetTravelReportByRequest(t *testing.T) {
	repo := &mockTravelReportRepo{report: &models.TravelReport{ID: "rpt-1", TravelRequestID: "req-1"}}
	svc := newTestTravelReportService(repo, &mockReportRequestStore{})

	report, err := svc.GetByTravelRequest(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, "rpt-1", report.ID)

	_, err = svc.GetByTravelRequest(context.Background(), "req-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
