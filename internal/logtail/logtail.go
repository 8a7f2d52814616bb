package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Entry is one line of the application log split into the columns written by
// zap's console encoder: time, level, caller, message and a JSON object of
// structured fields. Lines that do not follow that layout keep only Message.
type Entry struct {
	Time    string
	Level   string
	Caller  string
	Message string
	Fields  string
}

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file is not an error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var ring []string
	if maxLines > 0 {
		ring = make([]string, 0, maxLines)
	}
	start := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if maxLines <= 0 || len(ring) < maxLines {
			ring = append(ring, line)
			continue
		}
		ring[start] = line
		start = (start + 1) % maxLines
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if start == 0 {
		return ring, nil
	}
	return append(ring[start:], ring[:start]...), nil
}

var (
	tails singleflight.Group
	// readLines is replaced in tests.
	readLines = Read
)

// Tail reads the last maxLines lines of path and parses each one. Concurrent
// calls for the same path and window share a single read, and the returned
// slice is shared between them: callers must not modify it.
func Tail(path string, maxLines int) ([]Entry, error) {
	v, err, _ := tails.Do(path+"\x00"+strconv.Itoa(maxLines), func() (any, error) {
		lines, err := readLines(path, maxLines)
		if err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(lines))
		for _, line := range lines {
			entries = append(entries, ParseLine(line))
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Entry), nil
}

// ParseLine splits a console-encoded log line. The caller column is optional.
func ParseLine(line string) Entry {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 || !isLevel(parts[1]) {
		return Entry{Message: line}
	}
	entry := Entry{Time: parts[0], Level: parts[1]}
	rest := parts[2:]
	if last := rest[len(rest)-1]; len(rest) > 1 && strings.HasPrefix(last, "{") {
		entry.Fields = last
		rest = rest[:len(rest)-1]
	}
	if len(rest) > 1 && looksLikeCaller(rest[0]) {
		entry.Caller = rest[0]
		rest = rest[1:]
	}
	entry.Message = strings.Join(rest, " ")
	return entry
}

func isLevel(s string) bool {
	switch strings.ToUpper(s) {
	case "DEBUG", "INFO", "WARN", "ERROR", "DPANIC", "PANIC", "FATAL":
		return true
	}
	return false
}

// looksLikeCaller matches "pkg/file.go:123".
func looksLikeCaller(s string) bool {
	idx := strings.LastIndex(s, ".go:")
	return idx > 0 && !strings.Contains(s, " ")
}
