// Package logline parses timestamped application log files, one entry per
// line. A line that doesn't match the grammar is collected as a per-line
// error rather than failing the file outright — the file is only a hard
// error when not a single line matches.
package logline

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"dataengine/internal/types"
)

var levels = map[string]bool{"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true, "FATAL": true}

var lineRe = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2})\s+(\d{2}):(\d{2}):(\d{2})\s+\[(\w+)\]\s+\[([^\]]+)\]\s+(.*)$`,
)

// Entry is one successfully parsed log line.
type Entry struct {
	Timestamp string
	Level     string
	Component string
	Message   string
	Hour      int
}

// Outcome is the parser's closed-sum return value.
type Outcome struct {
	Kind    types.Status
	Entries []Entry
	Errors  []types.ParseError // only populated for Partial
	Err     string             // only populated for Error
}

// Parse reads the file at path line by line.
func Parse(path string) Outcome {
	f, err := os.Open(path)
	if err != nil {
		return Outcome{Kind: types.StatusError, Err: fmt.Sprintf("failed to read file: %v", err)}
	}
	defer f.Close()

	var entries []Entry
	var errs []types.ParseError
	var firstFailure string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		entry, reason := parseLine(line)
		if reason != "" {
			if firstFailure == "" {
				firstFailure = reason
			}
			errs = append(errs, types.ParseError{Line: lineNo, Message: reason})
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		reason := firstFailure
		if reason == "" {
			reason = "file contains no log lines"
		}
		return Outcome{Kind: types.StatusError, Err: reason}
	}
	if len(errs) > 0 {
		return Outcome{Kind: types.StatusPartial, Entries: entries, Errors: errs}
	}
	return Outcome{Kind: types.StatusOK, Entries: entries}
}

func parseLine(line string) (Entry, string) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, "line does not match the expected timestamp/level/component/message format"
	}

	level := m[5]
	if !levels[level] {
		return Entry{}, fmt.Sprintf("unrecognized level %q", level)
	}

	hour, err := strconv.Atoi(m[2])
	if err != nil || hour < 0 || hour > 23 {
		return Entry{}, fmt.Sprintf("invalid hour %q", m[2])
	}

	timestamp := fmt.Sprintf("%s %s:%s:%s", m[1], m[2], m[3], m[4])

	return Entry{
		Timestamp: timestamp,
		Level:     level,
		Component: m[6],
		Message:   m[7],
		Hour:      hour,
	}, ""
}
