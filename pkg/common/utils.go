package common

import (
	"fmt"
	"math/rand"
	"time"
)

func GenerateTrxNo() string {
	const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	result := make([]byte, 7)
	for i := range result {
		result[i] = characters[r.Intn(len(characters))]
	}
	return string(result)
}

// GenerateInvoiceNo returns an invoice number like INV-20260831-X4T9KQZ.
func GenerateInvoiceNo(now time.Time) string {
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), GenerateTrxNo())
}

// RoundAmount normalizes monetary values to 2 fractional digits to match the
// decimal(20,2) columns they are stored in.
func RoundAmount(amount float64) float64 {
	if amount >= 0 {
		return float64(int64(amount*100+0.5)) / 100
	}
	return float64(int64(amount*100-0.5)) / 100
}
