// Package sources extracts candidate items from line-oriented inputs.
// Invalid lines are skipped with a debug log entry, never fatal; the only
// error either parser returns is a read failure from the underlying stream.
// No de-duplication happens here: classifying repeats is the checker's job.
package sources

import (
	"bufio"
	"io"
	"strings"

	logpkg "github.com/haukened/seen/internal/seen/common/log"
)

// ParsePlainItems parses a newline-delimited list of candidate items, one
// per line (e.g. a password list).
//
// Behavior:
// - Skips empty lines and whole-line '#' comments
// - Trims surrounding whitespace and a leading BOM
// - Keeps every remaining line verbatim, including repeats
func ParsePlainItems(r io.Reader, source string, logger logpkg.Logger) ([]string, error) {
	scanner := bufio.NewScanner(r)
	// Default scanner buffer should suffice for typical lines; adjust if needed later.

	out := make([]string, 0, 256)
	logger.Debug(map[string]any{"source": source}, "parse_plain_start")
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := stripLineBOM(scanner.Text())

		if isEmpty, isComment := classifyLine(line); isEmpty || isComment {
			if isEmpty {
				logger.Debug(map[string]any{"line": lineNum}, "plain_skip_empty")
			} else {
				logger.Debug(map[string]any{"line": lineNum}, "plain_skip_comment")
			}
			continue
		}

		item := strings.TrimSpace(line)
		out = append(out, item)
	}

	if err := scanner.Err(); err != nil {
		logger.Debug(map[string]any{"source": source, "error": err.Error()}, "parse_plain_scan_error")
		return nil, err
	}
	logger.Debug(map[string]any{"source": source, "count": len(out)}, "parse_plain_done")
	return out, nil
}
