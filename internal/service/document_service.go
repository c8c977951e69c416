package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dib-tools/perjadin-api/internal/dto"
	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
	"github.com/dib-tools/perjadin-api/pkg/export"
)

var indonesianMonths = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian month name, or "" out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return indonesianMonths[month-1]
}

// FormatRupiah renders a whole-rupiah amount with dot separators.
func FormatRupiah(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if negative {
		return "Rp -" + b.String()
	}
	return "Rp " + b.String()
}

type documentClaimReader interface {
	FindByID(ctx context.Context, id string) (*models.AtCostClaim, error)
}

type documentReportReader interface {
	FindByRequestID(ctx context.Context, travelRequestID string) (*models.TravelReport, error)
}

// DocumentService renders the downloadable documents: the request note, the
// completion report, the at-cost note and the monthly allowance recap.
type DocumentService struct {
	requests     TravelRequestGetter
	claims       documentClaimReader
	travelReport documentReportReader
	reps         representativeReader
	reports      *ReportService
	pdf          *export.PDFExporter
	excel        *export.ExcelExporter
	csv          *export.CSVExporter
	metrics      *MetricsService
	logger       *zap.Logger
	now          func() time.Time
}

// TravelRequestGetter loads a travel request with participants.
type TravelRequestGetter interface {
	FindByID(ctx context.Context, id string) (*models.TravelRequest, error)
}

// NewDocumentService constructs DocumentService.
func NewDocumentService(requests TravelRequestGetter, claims documentClaimReader, travelReport documentReportReader, reps representativeReader, reports *ReportService, pdf *export.PDFExporter, excel *export.ExcelExporter, metrics *MetricsService, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		requests:     requests,
		claims:       claims,
		travelReport: travelReport,
		reps:         reps,
		reports:      reports,
		pdf:          pdf,
		excel:        excel,
		csv:          export.NewCSVExporter(),
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *DocumentService) loadRequest(ctx context.Context, id string) (*models.TravelRequest, error) {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "travel request not found")
	}
	return request, nil
}

func (s *DocumentService) representative(ctx context.Context) (name, position string) {
	rep, err := s.reps.FindActive(ctx)
	if err != nil {
		// Documents must still render when the signer is unconfigured.
		return "M. MACHFUD HIDAYAT", "Vice President"
	}
	return rep.Name, rep.Position
}

func participantTable(request *models.TravelRequest) export.Dataset {
	data := export.Dataset{Headers: []string{"NO", "NIP", "NAMA", "JABATAN"}}
	for i, p := range request.Participants {
		data.Rows = append(data.Rows, map[string]string{
			"NO":      strconv.Itoa(i + 1),
			"NIP":     p.EmployeeNIP,
			"NAMA":    p.EmployeeName,
			"JABATAN": p.PositionTitle,
		})
	}
	return data
}

func (s *DocumentService) notaSection(request *models.TravelRequest) export.PDFSection {
	return export.PDFSection{
		Title:    "Nota Permintaan",
		Subtitle: "Surat Tugas Perjalanan Dinas",
		Preamble: []string{
			"Nomor    : " + request.RequestNumber,
			"Kepada   : Divisi Human Capital",
			"Dari     : Divisi Digital Banking",
			"Perihal  : Permohonan Surat Perjalanan Dinas",
			"",
			"Maksud perjalanan dinas  : " + request.Purpose,
			"Tempat berangkat         : " + request.DeparturePlace,
			"Tempat tujuan            : " + request.Destination,
			fmt.Sprintf("Lama perjalanan dinas    : %d hari", request.DurationDays),
			"Tanggal berangkat        : " + request.DepartureDate.Format("02 January 2006"),
			"Tanggal kembali          : " + request.ReturnDate.Format("02 January 2006"),
			"Angkutan yang digunakan  : " + request.Transportation,
			"Total iuran dinas        : " + FormatRupiah(request.TotalAllowance),
		},
		Table: participantTable(request),
	}
}

// visitProofTable lays out the proof-of-visit itinerary. The signature
// column stays blank for ink; five empty rows are emitted for manual filling
// when no report has been filed yet.
func visitProofTable(report *models.TravelReport) export.Dataset {
	headers := []string{"TANGGAL", "BERANGKAT DARI", "BERMALAM/SINGGAH DI", "DATANG DI", "TANDA TANGAN"}
	data := export.Dataset{Headers: headers}
	if report == nil || len(report.VisitProofs) == 0 {
		for i := 0; i < 5; i++ {
			row := make(map[string]string, len(headers))
			for _, h := range headers {
				row[h] = ""
			}
			data.Rows = append(data.Rows, row)
		}
		return data
	}
	for _, proof := range report.VisitProofs {
		data.Rows = append(data.Rows, map[string]string{
			"TANGGAL":             proof.Date.Format("02/01/2006"),
			"BERANGKAT DARI":      proof.DepartFrom,
			"BERMALAM/SINGGAH DI": proof.StayOrStopAt,
			"DATANG DI":           proof.ArriveAt,
			"TANDA TANGAN":        "",
		})
	}
	return data
}

func (s *DocumentService) reportSection(ctx context.Context, request *models.TravelRequest) export.PDFSection {
	report, err := s.travelReport.FindByRequestID(ctx, request.ID)
	if err != nil {
		report = nil
	}
	repName, repPosition := s.representative(ctx)
	if report != nil {
		repName, repPosition = report.RepresentativeName, report.RepresentativePosition
	}
	preamble := []string{
		"Nomor    : " + request.ReportNumber,
		"",
		"Perjalanan dinas ke " + request.Destination + " telah dilaksanakan",
		fmt.Sprintf("selama %d hari, berangkat tanggal %s dan kembali tanggal %s.",
			request.DurationDays,
			request.DepartureDate.Format("02 January 2006"),
			request.ReturnDate.Format("02 January 2006")),
		"",
		"Dilaksanakan oleh:",
	}
	for i, p := range request.Participants {
		preamble = append(preamble, fmt.Sprintf("%d. %s - %s (%s)", i+1, p.EmployeeNIP, p.EmployeeName, p.PositionTitle))
	}
	return export.PDFSection{
		Title:    "Berita Acara",
		Subtitle: "Penyelesaian Perjalanan Dinas",
		Preamble: preamble,
		Table:    visitProofTable(report),
		Footer: []string{
			"Surabaya, " + s.now().Format("02 January 2006"),
			"DIVISI DIGITAL BANKING",
			"",
			"",
			repName,
			repPosition,
		},
	}
}

// NotaPermintaan renders the request note PDF.
func (s *DocumentService) NotaPermintaan(ctx context.Context, requestID string) ([]byte, string, error) {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.RenderSections([]export.PDFSection{s.notaSection(request)})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render request note")
	}
	s.metrics.RecordDocumentGenerated("nota")
	return payload, fmt.Sprintf("nota-permintaan-%s.pdf", request.ID), nil
}

// BeritaAcara renders the completion report PDF.
func (s *DocumentService) BeritaAcara(ctx context.Context, requestID string) ([]byte, string, error) {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.RenderSections([]export.PDFSection{s.reportSection(ctx, request)})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	s.metrics.RecordDocumentGenerated("report")
	return payload, fmt.Sprintf("berita-acara-%s.pdf", request.ID), nil
}

// CombinedRequest renders the request note and the report as one two-page
// download.
func (s *DocumentService) CombinedRequest(ctx context.Context, requestID string) ([]byte, string, error) {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.RenderSections([]export.PDFSection{
		s.notaSection(request),
		s.reportSection(ctx, request),
	})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render combined document")
	}
	s.metrics.RecordDocumentGenerated("combined")
	return payload, fmt.Sprintf("perjalanan-dinas-%s.pdf", request.ID), nil
}

func (s *DocumentService) loadClaim(ctx context.Context, claimID string) (*models.AtCostClaim, error) {
	claim, err := s.claims.FindByID(ctx, claimID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "claim not found")
	}
	return claim, nil
}

func (s *DocumentService) atCostSection(claim *models.AtCostClaim) export.PDFSection {
	table := export.Dataset{Headers: []string{"NO", "NAMA", "JENIS", "VENDOR", "JUMLAH"}}
	rowNum := 0
	for _, item := range claim.Items {
		for _, r := range item.Receipts {
			rowNum++
			table.Rows = append(table.Rows, map[string]string{
				"NO":     strconv.Itoa(rowNum),
				"NAMA":   item.EmployeeName,
				"JENIS":  string(r.Type),
				"VENDOR": r.Vendor,
				"JUMLAH": FormatRupiah(r.Amount),
			})
		}
	}
	return export.PDFSection{
		Title:    "N O T A",
		Subtitle: "Penggantian Biaya At-Cost Perjalanan Dinas",
		Preamble: []string{
			"Nomor    : " + claim.ClaimNumber,
			"",
			"Total penggantian : " + FormatRupiah(claim.TotalAmount),
		},
		Table: table,
		Footer: []string{
			"Surabaya, " + s.now().Format("02 January 2006"),
			"DIVISI DIGITAL BANKING",
			"",
			"",
			claim.RepresentativeName,
			claim.RepresentativePosition,
		},
	}
}

// receiptManifestSection lists the uploaded receipt documents backing the
// claim, one row per stored file.
func receiptManifestSection(claim *models.AtCostClaim) export.PDFSection {
	table := export.Dataset{Headers: []string{"NO", "NAMA", "BERKAS", "TANGGAL", "JUMLAH"}}
	rowNum := 0
	for _, item := range claim.Items {
		for _, r := range item.Receipts {
			name := r.FileName
			if name == "" {
				name = r.FilePath
			}
			rowNum++
			table.Rows = append(table.Rows, map[string]string{
				"NO":      strconv.Itoa(rowNum),
				"NAMA":    item.EmployeeName,
				"BERKAS":  name,
				"TANGGAL": r.ReceiptDate.Format("02/01/2006"),
				"JUMLAH":  FormatRupiah(r.Amount),
			})
		}
	}
	return export.PDFSection{
		Title:    "Lampiran",
		Subtitle: "Daftar Bukti Pembayaran",
		Preamble: []string{"Nomor    : " + claim.ClaimNumber},
		Table:    table,
	}
}

// NotaAtCost renders the at-cost claim note PDF with one receipt row per
// reimbursable expense.
func (s *DocumentService) NotaAtCost(ctx context.Context, claimID string) ([]byte, string, error) {
	claim, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.RenderSections([]export.PDFSection{s.atCostSection(claim)})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render claim note")
	}
	s.metrics.RecordDocumentGenerated("nota_atcost")
	return payload, fmt.Sprintf("nota-atcost-%s.pdf", claim.ID), nil
}

// CombinedAtCost renders the claim note followed by the receipt manifest as
// one download.
func (s *DocumentService) CombinedAtCost(ctx context.Context, claimID string) ([]byte, string, error) {
	claim, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.RenderSections([]export.PDFSection{
		s.atCostSection(claim),
		receiptManifestSection(claim),
	})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render combined claim note")
	}
	s.metrics.RecordDocumentGenerated("combined_atcost")
	return payload, fmt.Sprintf("combined-atcost-%s.pdf", claim.ID), nil
}

// allowanceRecapDataset flattens recap rows into an export dataset. Day
// columns appear only for destination types that occur in the data.
func (s *DocumentService) allowanceRecapDataset(ctx context.Context, filter dto.ReportFilter) (export.Dataset, error) {
	rows, err := s.reports.MonthlyAllowance(ctx, filter)
	if err != nil {
		return export.Dataset{}, err
	}

	hasInProvince, hasOutsideProvince, hasAbroad := false, false, false
	for _, r := range rows {
		hasInProvince = hasInProvince || r.DaysInProvince > 0
		hasOutsideProvince = hasOutsideProvince || r.DaysOutsideProvince > 0
		hasAbroad = hasAbroad || r.DaysAbroad > 0
	}

	headers := []string{"NIP", "NAMA", "JABATAN", "JUMLAH TRIP"}
	if hasInProvince {
		headers = append(headers, "HARI DALAM PROVINSI")
	}
	if hasOutsideProvince {
		headers = append(headers, "HARI LUAR PROVINSI")
	}
	if hasAbroad {
		headers = append(headers, "HARI LUAR NEGERI")
	}
	headers = append(headers, "TOTAL IURAN")

	data := export.Dataset{Headers: headers}
	for _, r := range rows {
		row := map[string]string{
			"NIP":         r.NIP,
			"NAMA":        r.Name,
			"JABATAN":     r.Position,
			"JUMLAH TRIP": strconv.Itoa(r.TotalTrips),
			"TOTAL IURAN": strconv.FormatFloat(r.TotalAllowance, 'f', -1, 64),
		}
		if hasInProvince {
			row["HARI DALAM PROVINSI"] = strconv.Itoa(r.DaysInProvince)
		}
		if hasOutsideProvince {
			row["HARI LUAR PROVINSI"] = strconv.Itoa(r.DaysOutsideProvince)
		}
		if hasAbroad {
			row["HARI LUAR NEGERI"] = strconv.Itoa(r.DaysAbroad)
		}
		data.Rows = append(data.Rows, row)
	}
	return data, nil
}

func recapFileName(filter dto.ReportFilter, extension string) string {
	if filter.Month != 0 {
		return fmt.Sprintf("rekap-iuran-%s-%d.%s", strings.ToLower(MonthName(filter.Month)), filter.Year, extension)
	}
	return fmt.Sprintf("rekap-iuran-%d.%s", filter.Year, extension)
}

// MonthlyAllowanceExcel renders the allowance recap workbook for a period.
func (s *DocumentService) MonthlyAllowanceExcel(ctx context.Context, filter dto.ReportFilter) ([]byte, string, error) {
	data, err := s.allowanceRecapDataset(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.excel.Render(data, "Rekap Iuran", []string{"TOTAL IURAN"})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render allowance recap")
	}
	s.metrics.RecordDocumentGenerated("excel")
	return payload, recapFileName(filter, "xlsx"), nil
}

// MonthlyAllowanceCSV renders the same recap as plain CSV.
func (s *DocumentService) MonthlyAllowanceCSV(ctx context.Context, filter dto.ReportFilter) ([]byte, string, error) {
	data, err := s.allowanceRecapDataset(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render allowance recap")
	}
	s.metrics.RecordDocumentGenerated("csv")
	return payload, recapFileName(filter, "csv"), nil
}
