// Package archive persists finalized submissions to an append-only CSV log.
package archive

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/models"
)

// timestampLayout is ISO-8601 local time with second precision.
const timestampLayout = "2006-01-02T15:04:05"

var header = []string{
	"timestamp", "name", "department", "email", "phone", "interest", "short_goal", "long_goal",
}

// CSVArchive appends one row per finalized submission. Writes are serialized
// behind a mutex so concurrent sessions never interleave partial rows.
type CSVArchive struct {
	mu   sync.Mutex
	path string
}

func NewCSV(path string) *CSVArchive {
	return &CSVArchive{path: path}
}

// Append writes one submission row, creating the log with its header row on
// first use. Errors are returned to the caller; a failed append must not be
// reported to the user as success.
func (a *CSVArchive) Append(ctx context.Context, rec *models.Submission, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("archive append: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	_, statErr := os.Stat(a.path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open submissions log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write submissions header: %w", err)
		}
	}
	row := []string{
		at.Format(timestampLayout),
		rec.Name,
		rec.Department,
		rec.Email,
		rec.Phone,
		rec.Interest,
		rec.ShortGoal,
		rec.LongGoal,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write submission row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush submissions log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close submissions log: %w", err)
	}
	return nil
}
