package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

type mockClaimRepo struct {
	claims      map[string]*models.AtCostClaim
	byRequest   map[string]*models.AtCostClaim
	created     *models.AtCostClaim
	deleted     []string
	statusCalls []string
}

func newMockClaimRepo() *mockClaimRepo {
	return &mockClaimRepo{claims: map[string]*models.AtCostClaim{}, byRequest: map[string]*models.AtCostClaim{}}
}

func (m *mockClaimRepo) Create(_ context.Context, claim *models.AtCostClaim) error {
	claim.ID = "claim-1"
	m.created = claim
	m.claims[claim.ID] = claim
	m.byRequest[claim.TravelRequestID] = claim
	return nil
}

func (m *mockClaimRepo) FindByID(_ context.Context, id string) (*models.AtCostClaim, error) {
	claim, ok := m.claims[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return claim, nil
}

func (m *mockClaimRepo) FindByTravelRequestID(_ context.Context, travelRequestID string) (*models.AtCostClaim, error) {
	claim, ok := m.byRequest[travelRequestID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return claim, nil
}

func (m *mockClaimRepo) List(_ context.Context) ([]models.AtCostClaim, error) {
	out := make([]models.AtCostClaim, 0, len(m.claims))
	for _, c := range m.claims {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockClaimRepo) UpdateStatus(_ context.Context, id, status string) error {
	m.statusCalls = append(m.statusCalls, status)
	if claim, ok := m.claims[id]; ok {
		claim.Status = status
	}
	return nil
}

func (m *mockClaimRepo) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.claims, id)
	return nil
}

func (m *mockClaimRepo) FindReceiptByID(_ context.Context, receiptID string) (*models.Receipt, error) {
	for _, claim := range m.claims {
		for _, item := range claim.Items {
			for _, r := range item.Receipts {
				if r.ID == receiptID {
					return &r, nil
				}
			}
		}
	}
	return nil, sql.ErrNoRows
}

type mockRequestReader struct {
	request *models.TravelRequest
}

func (m *mockRequestReader) FindByID(_ context.Context, id string) (*models.TravelRequest, error) {
	if m.request == nil || m.request.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.request, nil
}

type mockRepReader struct {
	rep *models.Representative
	err error
}

func (m *mockRepReader) FindActive(_ context.Context) (*models.Representative, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rep, nil
}

type mockSequencer struct {
	next int
}

func (m *mockSequencer) NextClaimSequence(_ context.Context) (int, error) {
	m.next++
	return m.next, nil
}

type mockFileRemover struct {
	removed []string
	err     error
}

func (m *mockFileRemover) Delete(filename string) error {
	m.removed = append(m.removed, filename)
	return m.err
}

func claimFixtureRequest() *models.TravelRequest {
	return &models.TravelRequest{
		ID:            "req-1",
		RequestNumber: "064/0007/DIB/VP/NOTA",
		Participants: []models.TravelRequestParticipant{
			{EmployeeID: "emp-1", EmployeeName: "Budi Santoso"},
			{EmployeeID: "emp-2", EmployeeName: "Siti Rahayu"},
		},
	}
}

func newTestClaimService(repo *mockClaimRepo, requests *mockRequestReader, files *mockFileRemover) (*ClaimService, *mockSequencer) {
	seq := &mockSequencer{}
	reps := &mockRepReader{rep: &models.Representative{Name: "M. MACHFUD HIDAYAT", Position: "Vice President"}}
	svc := NewClaimService(repo, requests, reps, seq, files, NumberingConfig{Prefix: "064", DivisionCode: "DIB"}, nil, nil)
	return svc, seq
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, BucketTransport, BucketFor(models.ReceiptFlight))
	assert.Equal(t, BucketTransport, BucketFor(models.ReceiptTrain))
	assert.Equal(t, BucketAccommodation, BucketFor(models.ReceiptHotel))
	assert.Equal(t, BucketNone, BucketFor(models.ReceiptOther))
}

func TestAddReceiptAccumulatesBuckets(t *testing.T) {
	item := models.ClaimItem{EmployeeID: "emp-1"}
	item = AddReceipt(item, models.Receipt{ID: "r-1", Type: models.ReceiptFlight, Amount: 1200000})
	item = AddReceipt(item, models.Receipt{ID: "r-2", Type: models.ReceiptHotel, Amount: 800000})
	item = AddReceipt(item, models.Receipt{ID: "r-3", Type: models.ReceiptOther, Amount: 50000})

	assert.Equal(t, int64(1200000), item.TransportCost)
	assert.Equal(t, int64(800000), item.AccommodationCost)
	assert.Equal(t, int64(2000000), item.TotalCost())
	assert.Len(t, item.Receipts, 3)
}

func TestRemoveReceiptInvertsAddReceipt(t *testing.T) {
	item := models.ClaimItem{EmployeeID: "emp-1"}
	item = AddReceipt(item, models.Receipt{ID: "r-1", Type: models.ReceiptTrain, Amount: 300000})
	item = AddReceipt(item, models.Receipt{ID: "r-2", Type: models.ReceiptHotel, Amount: 450000})

	item = RemoveReceipt(item, "r-2")
	assert.Equal(t, int64(300000), item.TransportCost)
	assert.Equal(t, int64(0), item.AccommodationCost)
	assert.Len(t, item.Receipts, 1)

	unchanged := RemoveReceipt(item, "r-404")
	assert.Equal(t, item, unchanged)
}

func TestAddReceiptDoesNotShareBackingArray(t *testing.T) {
	base := models.ClaimItem{EmployeeID: "emp-1"}
	base = AddReceipt(base, models.Receipt{ID: "r-1", Type: models.ReceiptFlight, Amount: 100})

	a := AddReceipt(base, models.Receipt{ID: "r-2", Type: models.ReceiptHotel, Amount: 200})
	b := AddReceipt(base, models.Receipt{ID: "r-3", Type: models.ReceiptTrain, Amount: 300})

	assert.Equal(t, "r-2", a.Receipts[1].ID)
	assert.Equal(t, "r-3", b.Receipts[1].ID)
}

func TestClaimCreateDerivesTotalsAndNumber(t *testing.T) {
	repo := newMockClaimRepo()
	svc, _ := newTestClaimService(repo, &mockRequestReader{request: claimFixtureRequest()}, &mockFileRemover{})

	claim, err := svc.Create(context.Background(), CreateClaimRequest{
		TravelRequestID: "req-1",
		Items: []ClaimItemInput{
			{EmployeeID: "emp-1", Receipts: []ReceiptInput{
				{Type: "flight", Amount: 1200000},
				{Type: "hotel", Amount: 800000},
			}},
			{EmployeeID: "emp-2", Receipts: []ReceiptInput{
				{Type: "train", Amount: 250000},
				{Type: "other", Amount: 99000},
			}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "064/0001/DIB/VP/NOTA", claim.ClaimNumber)
	assert.Equal(t, models.StatusPending, claim.Status)
	assert.Equal(t, "M. MACHFUD HIDAYAT", claim.RepresentativeName)
	// "other" receipts never contribute to the claim total.
	assert.Equal(t, int64(1200000+800000+250000), claim.TotalAmount)
	require.Len(t, claim.Items, 2)
	assert.Equal(t, "Budi Santoso", claim.Items[0].EmployeeName)
	assert.Equal(t, int64(250000), claim.Items[1].TransportCost)
}

func TestClaimCreateRejectsNonParticipant(t *testing.T) {
	repo := newMockClaimRepo()
	svc, _ := newTestClaimService(repo, &mockRequestReader{request: claimFixtureRequest()}, &mockFileRemover{})

	_, err := svc.Create(context.Background(), CreateClaimRequest{
		TravelRequestID: "req-1",
		Items: []ClaimItemInput{
			{EmployeeID: "emp-999", Receipts: []ReceiptInput{{Type: "flight", Amount: 100}}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emp-999")
}

func TestClaimCreateRejectsDuplicateItems(t *testing.T) {
	repo := newMockClaimRepo()
	svc, _ := newTestClaimService(repo, &mockRequestReader{request: claimFixtureRequest()}, &mockFileRemover{})

	_, err := svc.Create(context.Background(), CreateClaimRequest{
		TravelRequestID: "req-1",
		Items: []ClaimItemInput{
			{EmployeeID: "emp-1", Receipts: []ReceiptInput{{Type: "flight", Amount: 100}}},
			{EmployeeID: "emp-1", Receipts: []ReceiptInput{{Type: "hotel", Amount: 200}}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Budi Santoso")
}

func TestClaimCreateConflictsWhenClaimExists(t *testing.T) {
	repo := newMockClaimRepo()
	repo.byRequest["req-1"] = &models.AtCostClaim{ID: "claim-0", TravelRequestID: "req-1"}
	svc, _ := newTestClaimService(repo, &mockRequestReader{request: claimFixtureRequest()}, &mockFileRemover{})

	_, err := svc.Create(context.Background(), CreateClaimRequest{
		TravelRequestID: "req-1",
		Items: []ClaimItemInput{
			{EmployeeID: "emp-1", Receipts: []ReceiptInput{{Type: "flight", Amount: 100}}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestClaimUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := newMockClaimRepo()
	repo.claims["claim-1"] = &models.AtCostClaim{ID: "claim-1"}
	svc, _ := newTestClaimService(repo, &mockRequestReader{}, &mockFileRemover{})

	_, err := svc.UpdateStatus(context.Background(), "claim-1", "archived")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	claim, err := svc.UpdateStatus(context.Background(), "claim-1", models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, claim.Status)
}

func TestClaimDeleteRemovesStoredFiles(t *testing.T) {
	repo := newMockClaimRepo()
	repo.claims["claim-1"] = &models.AtCostClaim{
		ID: "claim-1",
		Items: []models.ClaimItem{
			{Receipts: []models.Receipt{
				{ID: "r-1", FilePath: "20250101_090000_tiket.pdf"},
				{ID: "r-2"},
			}},
		},
	}
	files := &mockFileRemover{}
	svc, _ := newTestClaimService(repo, &mockRequestReader{}, files)

	require.NoError(t, svc.Delete(context.Background(), "claim-1"))
	assert.Equal(t, []string{"20250101_090000_tiket.pdf"}, files.removed)
	assert.Equal(t, []string{"claim-1"}, repo.deleted)
}

func TestClaimDeleteSurvivesFileRemovalFailure(t *testing.T) {
	repo := newMockClaimRepo()
	repo.claims["claim-1"] = &models.AtCostClaim{
		ID: "claim-1",
		Items: []models.ClaimItem{
			{Receipts: []models.Receipt{{ID: "r-1", FilePath: "gone.pdf"}}},
		},
	}
	files := &mockFileRemover{err: errors.New("file already removed")}
	svc, _ := newTestClaimService(repo, &mockRequestReader{}, files)

	require.NoError(t, svc.Delete(context.Background(), "claim-1"))
	assert.Equal(t, []string{"claim-1"}, repo.deleted)
}
