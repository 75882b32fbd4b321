package pdf

import (
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DateLayout is how dates are rendered in exported document information.
const DateLayout = "2006-01-02 15:04:05"

// ParseDate parses a PDF date string D:YYYYMMDDHHmmSSOHH'mm'. Only the
// year is mandatory and the D: prefix may be missing. The result keeps the
// offset written in the string.
func ParseDate(s string) (time.Time, bool) {
	return types.DateTime(strings.TrimSpace(s), true)
}

// FormatDate renders t with DateLayout, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
