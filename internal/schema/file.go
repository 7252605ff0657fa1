package schema

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/micaelyMelo/OficinaMecanica/internal/atomicfile"
)

// Separator delimits the fields of a record line.
const Separator = ";"

// readRecords parses every non-blank line of path with parse.
// A missing file yields an empty slice and no error.
//
// When key is not nil, a line whose key was already read is skipped with
// ErrDuplicateKey; the first occurrence wins.
func readRecords[T any](path string, parse func(string) (T, error), key func(*T) string) ([]T, []*LineError, error) {
	// #nosec G304 - path is built from the configured data dir
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records := []T{}
	var skipped []*LineError
	seen := map[string]int{}

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := parse(line)
		if err != nil {
			skipped = append(skipped, &LineError{Path: path, Line: lineNum, Err: err})
			continue
		}
		if key != nil {
			k := key(&rec)
			if first, dup := seen[k]; dup {
				skipped = append(skipped, &LineError{Path: path, Line: lineNum,
					Err: fmt.Errorf("%q already on line %d: %w", k, first, ErrDuplicateKey)})
				continue
			}
			seen[k] = lineNum
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return records, skipped, nil
}

// writeRecords rewrites path with one formatted line per record.
func writeRecords[T any](path string, records []T, format func(*T) string) error {
	var b strings.Builder
	for i := range records {
		b.WriteString(format(&records[i]))
		b.WriteByte('\n')
	}

	if err := atomicfile.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
