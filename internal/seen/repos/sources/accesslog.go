package sources

import (
	"bufio"
	"io"
	"strings"

	logpkg "github.com/haukened/seen/internal/seen/common/log"
)

// ParseAccessLog extracts one IPv4 address per line from an access-log style
// stream (client address first, as in common/combined log format).
//
// Rules:
// - The first whitespace-separated token that is a valid dotted-quad IPv4
//   address is taken as the item for that line
// - Lines with no valid IPv4 token are skipped
// - Empty lines and whole-line '#' comments are skipped
// - Repeats are kept; counting distinct addresses is the checker's job
func ParseAccessLog(r io.Reader, source string, logger logpkg.Logger) ([]string, error) {
	scanner := bufio.NewScanner(r)

	out := make([]string, 0, 256)
	logger.Debug(map[string]any{"source": source}, "parse_accesslog_start")
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := stripLineBOM(scanner.Text())

		if isEmpty, isComment := classifyLine(line); isEmpty || isComment {
			logger.Debug(map[string]any{"line": lineNum}, "accesslog_skip_blank")
			continue
		}

		ip, ok := firstIPv4Token(strings.Fields(line))
		if !ok {
			logger.Debug(map[string]any{"line": lineNum}, "accesslog_no_ipv4")
			continue
		}
		out = append(out, ip)
	}

	if err := scanner.Err(); err != nil {
		logger.Debug(map[string]any{"source": source, "error": err.Error()}, "parse_accesslog_scan_error")
		return nil, err
	}
	logger.Debug(map[string]any{"source": source, "count": len(out)}, "parse_accesslog_done")
	return out, nil
}
