package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

const invoiceNumberSuffixAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateInvoiceNumber produces a globally unique invoice number of the form
// INV-YYYYMMDDHHMMSS-XXXXXX. The UTC timestamp prefix keeps numbers sortable by
// creation order; the random suffix disambiguates invoices created within the
// same second.
func GenerateInvoiceNumber(now time.Time) (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = invoiceNumberSuffixAlphabet[int(b[i])%len(invoiceNumberSuffixAlphabet)]
	}
	return fmt.Sprintf("INV-%s-%s", now.UTC().Format("20060102150405"), string(b)), nil
}
