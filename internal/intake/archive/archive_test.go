package archive

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/models"
)

func record(name string) *models.Submission {
	return &models.Submission{
		Name:       name,
		Department: "CSE",
		Email:      "ann@example.com",
		Phone:      "1234567890",
		Interest:   "Web Development",
		ShortGoal:  "Ship a side project",
		LongGoal:   "Lead a platform team",
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestAppendCreatesLogWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.csv")
	a := NewCSV(path)
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.Local)

	require.NoError(t, a.Append(context.Background(), record("Ann O'Brien-Lee"), at))

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"timestamp", "name", "department", "email", "phone", "interest", "short_goal", "long_goal",
	}, rows[0])
	assert.Equal(t, []string{
		"2026-03-01T10:30:00", "Ann O'Brien-Lee", "CSE", "ann@example.com",
		"1234567890", "Web Development", "Ship a side project", "Lead a platform team",
	}, rows[1])
}

func TestAppendWritesHeaderOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.csv")
	a := NewCSV(path)
	at := time.Now()

	require.NoError(t, a.Append(context.Background(), record("First Person"), at))
	require.NoError(t, a.Append(context.Background(), record("Second Person"), at))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "timestamp", rows[0][0])
	assert.Equal(t, "First Person", rows[1][1])
	assert.Equal(t, "Second Person", rows[2][1])
}

func TestAppendSerializesConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.csv")
	a := NewCSV(path)
	at := time.Now()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, a.Append(context.Background(), record("Writer "+strconv.Itoa(i)), at))
		}(i)
	}
	wg.Wait()

	// Every row must parse cleanly: no interleaved partial writes.
	rows := readRows(t, path)
	require.Len(t, rows, writers+1)
	for _, row := range rows {
		assert.Len(t, row, 8)
	}
}

func TestAppendRespectsCanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.csv")
	a := NewCSV(path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.Append(ctx, record("Ann"), time.Now())
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestAppendFailsOnUnwritablePath(t *testing.T) {
	a := NewCSV(filepath.Join(t.TempDir(), "missing-dir", "submissions.csv"))

	err := a.Append(context.Background(), record("Ann"), time.Now())
	assert.Error(t, err)
}
