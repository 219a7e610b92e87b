package style

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Extension is the file extension of stylesheet resources.
const Extension = ".mplstyle"

// entryPattern is the raw grammar every configuration line must follow.
var entryPattern = regexp.MustCompile(`^[\w.-]+:\s*.+`)

// Entry is one key/value directive from a stylesheet.
type Entry struct {
	Key   string
	Value string
	Line  int
}

// Sheet is a parsed stylesheet.
type Sheet struct {
	Name    string
	Entries []Entry
	// Skipped holds lines that could not be read as a directive.
	Skipped []Issue
}

// Issue describes a problem found on a stylesheet line.
type Issue struct {
	Sheet   string
	Line    int
	Text    string
	Message string
}

func (i Issue) String() string {
	if i.Text == "" {
		return fmt.Sprintf("%s:%d: %s", i.Sheet, i.Line, i.Message)
	}
	return fmt.Sprintf("%s:%d: %s: %q", i.Sheet, i.Line, i.Message, i.Text)
}

// Params returns the sheet directives as parameters. Later entries
// override earlier ones.
func (s *Sheet) Params() Params {
	p := make(Params, len(s.Entries))
	for _, e := range s.Entries {
		p[e.Key] = e.Value
	}
	return p
}

// Parse reads a stylesheet leniently: malformed lines are recorded in
// Sheet.Skipped and parsing continues. Only read errors are returned.
func Parse(name string, r io.Reader) (*Sheet, error) {
	sheet := &Sheet{Name: name}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		raw := scanner.Text()
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			sheet.Skipped = append(sheet.Skipped, Issue{Sheet: name, Line: lineno, Text: raw, Message: "missing colon"})
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			sheet.Skipped = append(sheet.Skipped, Issue{Sheet: name, Line: lineno, Text: raw, Message: "empty key or value"})
			continue
		}

		sheet.Entries = append(sheet.Entries, Entry{Key: key, Value: value, Line: lineno})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stylesheet %s: %w", name, err)
	}

	return sheet, nil
}

// stripComment removes a trailing # comment unless the # is quoted.
func stripComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '#':
			return line[:i]
		}
	}
	return line
}

// Lint checks a stylesheet strictly. Unlike Parse it reports every
// deviation from the resource format: grammar, functional color syntax,
// unknown or duplicate keys and values that do not fit their key.
func Lint(name string, data []byte) []Issue {
	var issues []Issue
	seen := make(map[string]int)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineno := 0
	for scanner.Scan() {
		lineno++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)

		if strings.Contains(raw, "rgb(") {
			issues = append(issues, Issue{Sheet: name, Line: lineno, Text: raw, Message: "rgb() color syntax, use hex"})
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !entryPattern.MatchString(raw) {
			issues = append(issues, Issue{Sheet: name, Line: lineno, Text: raw, Message: "invalid format, want key: value"})
			continue
		}

		key, value, _ := strings.Cut(raw, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(stripComment(value))

		if value == "" {
			issues = append(issues, Issue{Sheet: name, Line: lineno, Text: raw, Message: "value is empty once the comment is stripped (write hex colors without #)"})
			continue
		}
		if first, dup := seen[key]; dup {
			issues = append(issues, Issue{Sheet: name, Line: lineno, Text: raw, Message: fmt.Sprintf("duplicate key, first set on line %d", first)})
		} else {
			seen[key] = lineno
		}
		if _, ok := KnownKey(key); !ok {
			issues = append(issues, Issue{Sheet: name, Line: lineno, Text: raw, Message: "unknown key"})
			continue
		}
		if err := validateValue(key, value); err != nil {
			issues = append(issues, Issue{Sheet: name, Line: lineno, Text: raw, Message: err.Error()})
		}
	}
	if err := scanner.Err(); err != nil {
		issues = append(issues, Issue{Sheet: name, Line: lineno, Message: err.Error()})
	}

	return issues
}
