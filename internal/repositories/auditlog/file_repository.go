package auditlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/authgate/internal/models"
)

const separator = " : "

// FileRepository appends "<timestamp> : <message>" lines to a text file.
//
// List also understands the older two-line layout in which the timestamp
// line is followed by a line starting with " : ". Lines it cannot parse are
// returned verbatim as the message of an entry with a zero timestamp, so
// nothing in the file is hidden from the reader.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Append(ctx context.Context, e models.AuditEntry) error {
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	e.Message = singleLine(e.Message)
	if _, err := fmt.Fprintln(f, e.String()); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *FileRepository) List(ctx context.Context) ([]models.AuditEntry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.AuditEntry{}, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	entries := make([]models.AuditEntry, 0)
	var pending *time.Time
	var pendingRaw string

	flush := func() {
		if pending != nil {
			entries = append(entries, models.AuditEntry{Message: pendingRaw})
			pending = nil
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if pending != nil && strings.HasPrefix(line, separator) {
			entries = append(entries, models.AuditEntry{Timestamp: *pending, Message: strings.TrimPrefix(line, separator)})
			pending = nil
			continue
		}
		flush()

		if ts, msg, ok := parseLine(line); ok {
			entries = append(entries, models.AuditEntry{Timestamp: ts, Message: msg})
			continue
		}
		if ts, err := parseTime(line); err == nil {
			pending, pendingRaw = &ts, line
			continue
		}
		entries = append(entries, models.AuditEntry{Message: line})
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return entries, nil
}

func parseLine(line string) (time.Time, string, bool) {
	stamp, msg, found := strings.Cut(line, separator)
	if !found {
		return time.Time{}, "", false
	}
	ts, err := parseTime(stamp)
	if err != nil {
		return time.Time{}, "", false
	}
	return ts, msg, true
}

func parseTime(s string) (time.Time, error) {
	return time.ParseInLocation(models.AuditTimeLayout, strings.TrimSpace(s), time.Local)
}

func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
