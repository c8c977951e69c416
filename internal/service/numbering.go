package service

import (
	"fmt"
	"strings"
)

// NumberingConfig carries the fixed segments of the document numbering
// scheme. Numbers look like 064/0001/DIB/KBO/NOTA where 0001 is a global
// sequence and KBO is the position code of the first participant.
type NumberingConfig struct {
	Prefix       string
	DivisionCode string
}

// FormatRequestNumber renders a request or claim number for a sequence.
func (c NumberingConfig) FormatRequestNumber(seq int, positionCode string) string {
	return fmt.Sprintf("%s/%04d/%s/%s/NOTA", c.Prefix, seq, c.DivisionCode, positionCode)
}

// FormatReportNumber renders the companion report number. Reports carry no
// sequence of their own; the slot is kept blank for manual assignment.
func (c NumberingConfig) FormatReportNumber(positionCode string) string {
	return fmt.Sprintf("%s/    /%s/%s/NOTA", c.Prefix, c.DivisionCode, positionCode)
}

// PositionCodeFromNumber recovers the position code segment from a
// previously issued number. Returns "" when the number does not match the
// scheme.
func PositionCodeFromNumber(number string) string {
	parts := strings.Split(number, "/")
	if len(parts) != 5 {
		return ""
	}
	return parts[3]
}
