package sales

import (
	"fmt"
	"strconv"
	"strings"
)

// SequenceWidth is the zero-padded width of the per-year counter
const SequenceWidth = 5

// FormatDocumentNumber renders {Prefix}-{Year}-{seq}, e.g. BILL-2024-00042.
// Sequences beyond SequenceWidth digits are rendered in full.
func FormatDocumentNumber(variant Variant, year int, seq int64) string {
	return fmt.Sprintf("%s-%04d-%0*d", variant.Prefix(), year, SequenceWidth, seq)
}

// ParseDocumentNumber splits a document number into its variant, year and sequence
func ParseDocumentNumber(number string) (Variant, int, int64, error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("malformed document number %q", number)
	}

	var variant Variant
	for _, v := range []Variant{VariantInvoice, VariantBill, VariantExchangeBill} {
		if v.Prefix() == parts[0] {
			variant = v
		}
	}
	if variant == "" {
		return "", 0, 0, fmt.Errorf("unknown document prefix %q", parts[0])
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 4 {
		return "", 0, 0, fmt.Errorf("malformed document year %q", parts[1])
	}
	seq, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || seq < 1 {
		return "", 0, 0, fmt.Errorf("malformed document sequence %q", parts[2])
	}
	return variant, year, seq, nil
}
