package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ReceiptParser extracts a best-effort field guess from the text layer of an
// uploaded receipt PDF. Output is advisory; ReceiptService.Normalize owns
// the defaulting and validation rules.
type ReceiptParser struct{}

// NewReceiptParser constructs a ReceiptParser.
func NewReceiptParser() *ReceiptParser {
	return &ReceiptParser{}
}

var (
	receiptNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`#(\d{13,25})`),
		regexp.MustCompile(`(?:Nomor|Number)\s*:\s*#(\d{13,25})`),
		regexp.MustCompile(`KODE RESERVASI VOUCHER HOTEL:\s*(\d+)`),
		regexp.MustCompile(`(?:Kode Booking|Booking Code):\s*(\w+)`),
	}
	namedDatePattern   = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]{3,9})\s+(\d{4})`)
	slashedDatePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	passengerPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`(?:Tn\.|Mr\.|Ny\.|Ms\.)\s+([A-Za-z\s]+?)\s+\((?:DEWASA|ADULT|Dewasa|Adult)\)`),
		regexp.MustCompile(`(?:Nama|Name)\s*:\s*([A-Za-z\s]+)`),
		regexp.MustCompile(`TAMU[\s\n]+([A-Za-z\s]+)`),
		regexp.MustCompile(`PASSENGER DETAILS[\s\n]+(?:Mr\.|Ms\.|Tn\.|Ny\.)\s+([A-Za-z\s]+)`),
		regexp.MustCompile(`Nama Pemesan[:\s]+([A-Za-z\s]+)`),
	}
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`JUMLAH PEMBAYARAN\s+(?:Rp\s*)?([\d\.]+)`),
		regexp.MustCompile(`PAYMENT AMOUNT\s+(?:Rp\s*)?([\d\.]+)`),
		regexp.MustCompile(`TOTAL\s+(?:Rp\s*)?([\d\.]+)`),
		regexp.MustCompile(`HARGA\s+Rp\.\s*([\d\.]+)`),
		regexp.MustCompile(`(?:Rp\.?|IDR)\s*([\d\.]+)`),
	}
	airportPairPattern = regexp.MustCompile(`([A-Z]{3})\s*-\s*([A-Z]{3})`)
	hotelNamePatterns  = []*regexp.Regexp{
		regexp.MustCompile(`DETAIL HOTEL[\s\n]+([A-Za-z\s]+?)(?:\n|Alamat|Check)`),
		regexp.MustCompile(`Akomodasi\s+([A-Za-z\s]+?)\s*,`),
		regexp.MustCompile(`Detail Booking\s+([A-Za-z\s]+?)\s+(?:Hotel|by|-)`),
		regexp.MustCompile(`([A-Za-z\s]+Hotel)`),
	}
	collapseSpaces = regexp.MustCompile(`\s+`)
)

// Indonesian month abbreviations normalised to English for time.Parse.
var monthAliases = map[string]string{
	"jan": "Jan", "feb": "Feb", "mar": "Mar", "apr": "Apr",
	"mei": "May", "may": "May", "jun": "Jun", "jul": "Jul",
	"agu": "Aug", "aug": "Aug", "sep": "Sep",
	"okt": "Oct", "oct": "Oct", "nov": "Nov", "des": "Dec", "dec": "Dec",
}

// Parse scans the receipt text and assembles the raw field guess consumed by
// ReceiptService.Normalize.
func (p *ReceiptParser) Parse(text string) RawReceiptFields {
	receiptType := p.detectType(text)
	route := p.extractRouteOrLocation(text, receiptType)

	raw := RawReceiptFields{
		Type:            receiptType,
		Vendor:          p.detectVendor(text),
		ReceiptNumber:   p.extractReceiptNumber(text),
		Date:            p.extractDate(text),
		PassengerName:   p.extractPassengerName(text),
		RouteOrLocation: route,
	}
	if amount, ok := p.extractAmount(text); ok {
		raw.Amount = json.Number(strconv.FormatInt(amount, 10))
	}
	raw.Description = describeReceipt(receiptType, route)
	return raw
}

func (p *ReceiptParser) detectVendor(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "traveloka") || strings.Contains(lower, "trinusa travelindo"):
		return "Traveloka"
	case strings.Contains(lower, "tiket.com") || strings.Contains(lower, "tiket com"):
		return "Tiket.com"
	case strings.Contains(lower, "pegipegi"):
		return "PegiPegi"
	case strings.Contains(lower, "sonyloka") || strings.Contains(lower, "tiketqta"):
		return "Sonyloka Travel"
	case strings.Contains(lower, "biro") && strings.Contains(lower, "travel"):
		return "Biro Travel"
	case strings.Contains(lower, "travel agent") || strings.Contains(lower, "tour"):
		return "Travel Agent"
	case strings.Contains(lower, "receipt") || strings.Contains(lower, "bukti pembelian"):
		return "Travel Provider"
	}
	return "Unknown"
}

func (p *ReceiptParser) extractReceiptNumber(text string) string {
	for _, re := range receiptNumberPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			if regexp.MustCompile(`^\d+$`).MatchString(m[1]) && !strings.HasPrefix(m[1], "#") {
				return "#" + m[1]
			}
			return m[1]
		}
	}
	return ""
}

// extractDate returns an ISO date string or "" when no date is found.
func (p *ReceiptParser) extractDate(text string) string {
	if m := namedDatePattern.FindStringSubmatch(text); len(m) > 3 {
		month := strings.ToLower(m[2])
		if len(month) >= 3 {
			if alias, ok := monthAliases[month[:3]]; ok {
				month = alias
			}
		}
		for _, layout := range []string{"2 Jan 2006", "2 January 2006"} {
			if t, err := time.Parse(layout, fmt.Sprintf("%s %s %s", m[1], month, m[3])); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	if m := slashedDatePattern.FindStringSubmatch(text); len(m) > 3 {
		if t, err := time.Parse("2/1/2006", fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

func (p *ReceiptParser) extractPassengerName(text string) string {
	for _, re := range passengerPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return collapseSpaces.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		}
	}
	return ""
}

func (p *ReceiptParser) detectType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "tiket pesawat"),
		strings.Contains(lower, "flight ticket"),
		strings.Contains(lower, "batik air"),
		strings.Contains(lower, "garuda"),
		strings.Contains(lower, "lion air"),
		airportPairPattern.MatchString(text):
		return "flight"
	case strings.Contains(lower, "hotel"),
		strings.Contains(lower, "akomodasi"),
		strings.Contains(lower, "accommodation"),
		strings.Contains(lower, "check-in"),
		strings.Contains(lower, "kamar"):
		return "hotel"
	case strings.Contains(lower, "kereta"),
		strings.Contains(lower, "train"),
		strings.Contains(lower, "kai"):
		return "train"
	}
	return "other"
}

func (p *ReceiptParser) extractAmount(text string) (int64, bool) {
	for _, re := range amountPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			// Dots are thousands separators in the Indonesian format.
			digits := strings.ReplaceAll(strings.ReplaceAll(m[1], ".", ""), ",", "")
			if amount, err := strconv.ParseInt(digits, 10, 64); err == nil && amount > 0 {
				return amount, true
			}
		}
	}
	return 0, false
}

func (p *ReceiptParser) extractRouteOrLocation(text, receiptType string) string {
	switch receiptType {
	case "flight":
		if m := airportPairPattern.FindStringSubmatch(text); len(m) > 2 {
			return fmt.Sprintf("%s - %s", m[1], m[2])
		}
	case "hotel":
		for _, re := range hotelNamePatterns {
			if m := re.FindStringSubmatch(text); len(m) > 1 {
				return collapseSpaces.ReplaceAllString(strings.TrimSpace(m[1]), " ")
			}
		}
	}
	return ""
}

func describeReceipt(receiptType, route string) string {
	switch receiptType {
	case "flight":
		if route != "" {
			return "Tiket Pesawat " + route
		}
		return "Tiket Pesawat"
	case "hotel":
		if route != "" {
			return "Hotel " + route
		}
		return "Akomodasi Hotel"
	case "train":
		if route != "" {
			return "Tiket Kereta " + route
		}
		return "Tiket Kereta"
	}
	return "Akomodasi Perjalanan Dinas"
}
