package sources

import (
	"net"
	"strings"
)

// stripLineBOM removes a UTF-8 byte order mark from the start of a line.
func stripLineBOM(line string) string {
	return strings.TrimPrefix(line, "\uFEFF")
}

// classifyLine reports whether the trimmed line is empty or a whole-line
// comment. Inline comments are deliberately not handled here: candidate
// items (passwords in particular) may legitimately contain '#'.
func classifyLine(line string) (isEmpty, isComment bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true, false
	}
	if strings.HasPrefix(trimmed, "#") {
		return false, true
	}
	return false, false
}

// firstIPv4Token returns the first whitespace-separated token that is a
// valid dotted-quad IPv4 address. Octets are range-checked via net.ParseIP,
// so "999.1.1.1" is rejected.
func firstIPv4Token(fields []string) (string, bool) {
	for _, f := range fields {
		if isIPv4(f) {
			return f, true
		}
	}
	return "", false
}

// isIPv4 reports whether s is a dotted-quad IPv4 address.
func isIPv4(s string) bool {
	if strings.Count(s, ".") != 3 {
		return false
	}
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}
