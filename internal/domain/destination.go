package domain

import (
	"strconv"
	"strings"
)

// CategoryAll is the sentinel category value that disables category filtering.
const CategoryAll = "all"

// Destination is a single catalog entry. The JSON field names follow the
// upstream catalog file, which uses Indonesian keys.
type Destination struct {
	ID          int64  `json:"id"`
	Name        string `json:"nama_destinasi"`
	Location    string `json:"lokasi"`
	Category    string `json:"kategori"`
	Price       int64  `json:"harga"`
	Description string `json:"deskripsi"`
	Image       string `json:"gambar"`
}

// FormatPrice renders a catalog price for display: zero means free ("Gratis"),
// anything else gets dot-separated thousands, e.g. 1250000 -> "1.250.000".
// Prices are non-negative.
func FormatPrice(price int64) string {
	if price == 0 {
		return "Gratis"
	}
	s := strconv.FormatInt(price, 10)
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
