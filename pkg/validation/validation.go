// pkg/validation/validation.go
package validation

import (
	"fmt"
	"net"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits for client-supplied values
const (
	MaxUserLen     = 32
	MinWindowCols  = 20
	MinWindowRows  = 8
	MaxWindowCols  = 500
	MaxWindowRows  = 200
	unknownUser    = "anonymous"
	truncateMarker = "~"
)

// SanitizeUser makes an SSH user name safe to log: control characters are
// dropped, invalid UTF-8 is replaced and long names are truncated.
func SanitizeUser(name string) string {
	name = strings.ToValidUTF8(name, "?")
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" {
		return unknownUser
	}
	if utf8.RuneCountInString(out) > MaxUserLen {
		runes := []rune(out)
		out = string(runes[:MaxUserLen-1]) + truncateMarker
	}
	return out
}

// ValidateWindow rejects terminal sizes the renderer cannot draw into and
// clamps oversized ones
func ValidateWindow(cols, rows int) (int, int, error) {
	if cols < MinWindowCols || rows < MinWindowRows {
		return 0, 0, fmt.Errorf("terminal too small: %dx%d (min %dx%d)", cols, rows, MinWindowCols, MinWindowRows)
	}
	if cols > MaxWindowCols {
		cols = MaxWindowCols
	}
	if rows > MaxWindowRows {
		rows = MaxWindowRows
	}
	return cols, rows, nil
}

// RemoteHost returns the host part of addr, or the whole string when it has
// no port
func RemoteHost(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
