package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/dib-tools/perjadin-api/internal/dto"
	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
	"github.com/dib-tools/perjadin-api/pkg/export"
)

type stubClaimReader struct {
	claim *models.AtCostClaim
}

func (s *stubClaimReader) FindByID(_ context.Context, id string) (*models.AtCostClaim, error) {
	if s.claim == nil || s.claim.ID != id {
		return nil, appErrors.ErrNotFound
	}
	return s.claim, nil
}

type stubTravelReportReader struct {
	report *models.TravelReport
}

func (s *stubTravelReportReader) FindByRequestID(_ context.Context, travelRequestID string) (*models.TravelReport, error) {
	if s.report == nil || s.report.TravelRequestID != travelRequestID {
		return nil, sql.ErrNoRows
	}
	return s.report, nil
}

func documentFixtureRequest() *models.TravelRequest {
	return &models.TravelRequest{
		ID:              "req-1",
		Purpose:         "Koordinasi implementasi digital banking",
		DeparturePlace:  "Surabaya",
		Destination:     "Jakarta",
		DestinationType: models.DestinationOutsideProvince,
		DepartureDate:   day(2025, time.March, 10),
		ReturnDate:      day(2025, time.March, 12),
		DurationDays:    3,
		Transportation:  "Pesawat",
		TotalAllowance:  1050000,
		RequestNumber:   "064/0001/DIB/VP/NOTA",
		ReportNumber:    "064/0001/DIB/VP/NOTA",
		Participants: []models.TravelRequestParticipant{
			{EmployeeID: "emp-1", EmployeeNIP: "1001", EmployeeName: "Budi Santoso", PositionTitle: "Vice President"},
		},
	}
}

func newTestDocumentService(requests []models.TravelRequest) *DocumentService {
	return newTestDocumentServiceWithReport(requests, nil)
}

func newTestDocumentServiceWithReport(requests []models.TravelRequest, report *models.TravelReport) *DocumentService {
	lister := &stubRequestLister{requests: requests}
	cacheSvc := NewCacheService(nil, nil, 0, zap.NewNop(), false)
	reports := NewReportService(lister, &stubRosterReader{}, cacheSvc, nil, zap.NewNop())
	fixture := documentFixtureRequest()
	return NewDocumentService(
		&mockRequestReader{request: fixture},
		&stubClaimReader{claim: &models.AtCostClaim{
			ID:                     "claim-1",
			ClaimNumber:            "064/0002/DIB/VP/NOTA",
			RepresentativeName:     "M. MACHFUD HIDAYAT",
			RepresentativePosition: "Vice President",
			TotalAmount:            2000000,
			Items: []models.ClaimItem{
				{EmployeeName: "Budi Santoso", Receipts: []models.Receipt{
					{Type: models.ReceiptFlight, Vendor: "Traveloka", Amount: 1200000, FileName: "tiket.pdf"},
					{Type: models.ReceiptHotel, Vendor: "Traveloka", Amount: 800000, FileName: "hotel.pdf"},
				}},
			},
		}},
		&stubTravelReportReader{report: report},
		&mockRepReader{rep: &models.Representative{Name: "M. MACHFUD HIDAYAT", Position: "Vice President"}},
		reports,
		export.NewPDFExporter(),
		export.NewExcelExporter(),
		nil,
		zap.NewNop())
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Januari", MonthName(1))
	assert.Equal(t, "Agustus", MonthName(8))
	assert.Equal(t, "Desember", MonthName(12))
	assert.Empty(t, MonthName(0))
	assert.Empty(t, MonthName(13))
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 500", FormatRupiah(500))
	assert.Equal(t, "Rp 1.250.000", FormatRupiah(1250000))
	assert.Equal(t, "Rp 1.000.000.000", FormatRupiah(1000000000))
	assert.Equal(t, "Rp -75.000", FormatRupiah(-75000))
}

func TestNotaPermintaanRendersPDF(t *testing.T) {
	svc := newTestDocumentService(nil)

	payload, filename, err := svc.NotaPermintaan(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, "nota-permintaan-req-1.pdf", filename)
	require.NotEmpty(t, payload)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestCombinedRequestRendersPDF(t *testing.T) {
	svc := newTestDocumentService(nil)

	payload, filename, err := svc.CombinedRequest(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, "perjalanan-dinas-req-1.pdf", filename)
	assert.NotEmpty(t, payload)
}

func TestVisitProofTable(t *testing.T) {
	report := &models.TravelReport{
		TravelRequestID: "req-1",
		VisitProofs: []models.VisitProof{
			{Date: day(2025, time.March, 10), DepartFrom: "Surabaya", ArriveAt: "Jakarta"},
			{Date: day(2025, time.March, 12), DepartFrom: "Jakarta", StayOrStopAt: "Semarang", ArriveAt: "Surabaya"},
		},
	}

	data := visitProofTable(report)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "10/03/2025", data.Rows[0]["TANGGAL"])
	assert.Equal(t, "Surabaya", data.Rows[0]["BERANGKAT DARI"])
	assert.Equal(t, "Semarang", data.Rows[1]["BERMALAM/SINGGAH DI"])
	assert.Empty(t, data.Rows[0]["TANDA TANGAN"])

	blank := visitProofTable(nil)
	require.Len(t, blank.Rows, 5)
	for _, h := range blank.Headers {
		assert.Empty(t, blank.Rows[0][h])
	}
}

func TestBeritaAcaraUsesFiledReport(t *testing.T) {
	report := &models.TravelReport{
		TravelRequestID:        "req-1",
		ReportNumber:           "064/0001/DIB/VP/NOTA",
		RepresentativeName:     "Andi Pratama",
		RepresentativePosition: "Senior Vice President",
		VisitProofs: []models.VisitProof{
			{Date: day(2025, time.March, 10), DepartFrom: "Surabaya", ArriveAt: "Jakarta"},
		},
	}
	svc := newTestDocumentServiceWithReport(nil, report)

	section := svc.reportSection(context.Background(), documentFixtureRequest())
	require.Len(t, section.Table.Rows, 1)
	assert.Equal(t, "10/03/2025", section.Table.Rows[0]["TANGGAL"])
	assert.Contains(t, section.Footer, "Andi Pratama")
	assert.Contains(t, section.Footer, "Senior Vice President")

	payload, filename, err := svc.BeritaAcara(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, "berita-acara-req-1.pdf", filename)
	assert.NotEmpty(t, payload)
}

func TestBeritaAcaraWithoutReportKeepsBlankItinerary(t *testing.T) {
	svc := newTestDocumentService(nil)

	section := svc.reportSection(context.Background(), documentFixtureRequest())
	require.Len(t, section.Table.Rows, 5)
	assert.Contains(t, section.Footer, "M. MACHFUD HIDAYAT")
}

func TestNotaAtCostRendersPDF(t *testing.T) {
	svc := newTestDocumentService(nil)

	payload, filename, err := svc.NotaAtCost(context.Background(), "claim-1")
	require.NoError(t, err)
	assert.Equal(t, "nota-atcost-claim-1.pdf", filename)
	assert.NotEmpty(t, payload)

	_, _, err = svc.NotaAtCost(context.Background(), "claim-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCombinedAtCostRendersPDF(t *testing.T) {
	svc := newTestDocumentService(nil)

	payload, filename, err := svc.CombinedAtCost(context.Background(), "claim-1")
	require.NoError(t, err)
	assert.Equal(t, "combined-atcost-claim-1.pdf", filename)
	assert.NotEmpty(t, payload)

	_, _, err = svc.CombinedAtCost(context.Background(), "claim-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReceiptManifestSection(t *testing.T) {
	claim := &models.AtCostClaim{
		ClaimNumber: "064/0002/DIB/VP/NOTA",
		Items: []models.ClaimItem{
			{EmployeeName: "Budi Santoso", Receipts: []models.Receipt{
				{FileName: "tiket.pdf", ReceiptDate: day(2025, time.March, 10), Amount: 1200000},
				{FilePath: "20250310_hotel.pdf", ReceiptDate: day(2025, time.March, 11), Amount: 800000},
			}},
		},
	}

	section := receiptManifestSection(claim)
	require.Len(t, section.Table.Rows, 2)
	assert.Equal(t, "tiket.pdf", section.Table.Rows[0]["BERKAS"])
	assert.Equal(t, "20250310_hotel.pdf", section.Table.Rows[1]["BERKAS"])
	assert.Equal(t, "Rp 1.200.000", section.Table.Rows[0]["JUMLAH"])
}

func TestDocumentNotFound(t *testing.T) {
	svc := newTestDocumentService(nil)

	_, _, err := svc.NotaPermintaan(context.Background(), "req-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMonthlyAllowanceExcelDynamicColumns(t *testing.T) {
	requests := []models.TravelRequest{
		tripFixture("a", day(2025, time.March, 10), 600000, 3, models.DestinationOutsideProvince, "emp-1"),
		tripFixture("b", day(2025, time.March, 20), 200000, 2, models.DestinationInProvince, "emp-1"),
	}
	svc := newTestDocumentService(requests)

	payload, filename, err := svc.MonthlyAllowanceExcel(context.Background(), dto.ReportFilter{Year: 2025, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, "rekap-iuran-maret-2025.xlsx", filename)

	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer workbook.Close() //nolint:errcheck

	rows, err := workbook.GetRows("Rekap Iuran")
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	header := rows[0]
	assert.Contains(t, header, "HARI DALAM PROVINSI")
	assert.Contains(t, header, "HARI LUAR PROVINSI")
	assert.NotContains(t, header, "HARI LUAR NEGERI")
	assert.Equal(t, "TOTAL IURAN", header[len(header)-1])
	require.Len(t, rows, 2)
}

func TestMonthlyAllowanceCSV(t *testing.T) {
	requests := []models.TravelRequest{
		tripFixture("a", day(2025, time.March, 10), 600000, 3, models.DestinationOutsideProvince, "emp-1"),
	}
	svc := newTestDocumentService(requests)

	payload, filename, err := svc.MonthlyAllowanceCSV(context.Background(), dto.ReportFilter{Year: 2025, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, "rekap-iuran-maret-2025.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"NIP", "NAMA", "JABATAN", "JUMLAH TRIP", "HARI LUAR PROVINSI", "TOTAL IURAN"}, records[0])
	assert.Equal(t, "600000", records[1][len(records[1])-1])
}

func TestMonthlyAllowanceExcelYearlyFilename(t *testing.T) {
	svc := newTestDocumentService(nil)

	_, filename, err := svc.MonthlyAllowanceExcel(context.Background(), dto.ReportFilter{Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, "rekap-iuran-2025.xlsx", filename)
}
