package identities

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dmitrijs2005/authgate/internal/filex"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/models"
)

// FileRepository stores identities in a text file, one per line:
//
//	username digest role
//
// Lines that do not have exactly three fields or carry an unknown role token
// are skipped on load and reported at WARN level.
type FileRepository struct {
	path   string
	logger logging.Logger
}

func NewFileRepository(path string, logger logging.Logger) *FileRepository {
	return &FileRepository{path: path, logger: logger}
}

func (r *FileRepository) List(ctx context.Context) ([]models.Identity, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Identity{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer f.Close()

	ids := make([]models.Identity, 0)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			r.logger.Warn(ctx, "skipping malformed identity line", "file", r.path, "line", lineNo, "fields", len(fields))
			continue
		}
		role, err := models.ParseRole(fields[2])
		if err != nil {
			r.logger.Warn(ctx, "skipping identity with unknown role", "file", r.path, "line", lineNo, "role", fields[2])
			continue
		}
		ids = append(ids, models.Identity{Username: fields[0], Digest: fields[1], Role: role})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	return ids, nil
}

func (r *FileRepository) ReplaceAll(ctx context.Context, ids []models.Identity) error {
	var buf bytes.Buffer
	for _, id := range ids {
		fmt.Fprintf(&buf, "%s %s %s\n", id.Username, id.Digest, id.Role)
	}
	if err := filex.WriteFileAtomic(r.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to save identities: %w", err)
	}
	return nil
}
