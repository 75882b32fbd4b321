package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DecodeText converts a PDF text string object into a Go string. Anything
// that is not a string yields "".
func DecodeText(obj types.Object) string {
	if name, ok := obj.(types.Name); ok {
		return string(name)
	}
	s, err := types.StringOrHexLiteral(obj)
	if err != nil || s == nil {
		return ""
	}
	return *s
}

// EncodeText converts s into a PDF text string: an escaped literal for
// ASCII, a UTF-16BE hex string with byte order mark otherwise.
func EncodeText(s string) types.Object {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return types.NewHexLiteral([]byte(types.EncodeUTF16String(s)))
		}
	}
	esc, err := types.Escape(s)
	if err != nil {
		return types.StringLiteral(s)
	}
	return types.StringLiteral(*esc)
}
