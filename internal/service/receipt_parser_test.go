package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const flightReceiptText = `TRAVELOKA
BUKTI PEMBELIAN TIKET PESAWAT
#1234567890123
Tn. BUDI SANTOSO (DEWASA)
Batik Air
SUB - CGK
10 Mar 2025
JUMLAH PEMBAYARAN Rp 1.250.000`

const hotelReceiptText = `Traveloka
KODE RESERVASI VOUCHER HOTEL: 987654321
DETAIL HOTEL
Hotel Majapahit
Alamat Jalan Tunjungan
Check-in 12 Apr 2025
TAMU
SITI RAHAYU
1 Kamar
TOTAL Rp 800.000`

const trainReceiptText = `TIKET.COM
TIKET KERETA API
Kode Booking: ABC123
Nama : Agus Wijaya
07:30 Keberangkatan
15/03/2025
Rp 350.000`

func TestParseFlightReceipt(t *testing.T) {
	raw := NewReceiptParser().Parse(flightReceiptText)

	assert.Equal(t, "flight", raw.Type)
	assert.Equal(t, "Traveloka", raw.Vendor)
	assert.Equal(t, "#1234567890123", raw.ReceiptNumber)
	assert.Equal(t, "2025-03-10", raw.Date)
	assert.Equal(t, "BUDI SANTOSO", raw.PassengerName)
	assert.Equal(t, "SUB - CGK", raw.RouteOrLocation)
	assert.Equal(t, "1250000", raw.Amount.String())
	assert.Equal(t, "Tiket Pesawat SUB - CGK", raw.Description)
}

func TestParseHotelReceipt(t *testing.T) {
	raw := NewReceiptParser().Parse(hotelReceiptText)

	assert.Equal(t, "hotel", raw.Type)
	assert.Equal(t, "Traveloka", raw.Vendor)
	assert.Equal(t, "#987654321", raw.ReceiptNumber)
	assert.Equal(t, "2025-04-12", raw.Date)
	assert.Equal(t, "SITI RAHAYU", raw.PassengerName)
	assert.Equal(t, "Hotel Majapahit", raw.RouteOrLocation)
	assert.Equal(t, "800000", raw.Amount.String())
}

func TestParseTrainReceipt(t *testing.T) {
	raw := NewReceiptParser().Parse(trainReceiptText)

	assert.Equal(t, "train", raw.Type)
	assert.Equal(t, "Tiket.com", raw.Vendor)
	assert.Equal(t, "ABC123", raw.ReceiptNumber)
	assert.Equal(t, "2025-03-15", raw.Date)
	assert.Equal(t, "Agus Wijaya", raw.PassengerName)
	assert.Equal(t, "350000", raw.Amount.String())
	assert.Equal(t, "Tiket Kereta", raw.Description)
}

func TestParseUnrecognisedText(t *testing.T) {
	raw := NewReceiptParser().Parse("warung makan sederhana nota nomor lima")

	assert.Equal(t, "other", raw.Type)
	assert.Equal(t, "Unknown", raw.Vendor)
	assert.Empty(t, raw.ReceiptNumber)
	assert.Empty(t, raw.Date)
	assert.Empty(t, string(raw.Amount))
	assert.Equal(t, "Akomodasi Perjalanan Dinas", raw.Description)
}

func TestParseIndonesianMonthNames(t *testing.T) {
	raw := NewReceiptParser().Parse("DETAIL HOTEL\nHotel Tunjungan\nCheck-in 5 Agu 2025\nTOTAL Rp 400.000")
	assert.Equal(t, "2025-08-05", raw.Date)

	raw = NewReceiptParser().Parse("DETAIL HOTEL\nHotel Tunjungan\nCheck-in 17 Mei 2025\nTOTAL Rp 400.000")
	assert.Equal(t, "2025-05-17", raw.Date)
}
