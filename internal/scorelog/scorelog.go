package scorelog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rootlab/vidscore/internal/migrations"
	"github.com/rootlab/vidscore/internal/timestamps"
)

// Record is one saved timestamp in the score log.
type Record struct {
	ID        int64
	Project   string
	Video     string
	Kind      string
	Onset     int
	Offset    int
	Note      string
	CreatedAt time.Time
}

// Event returns the record's frames as a timestamp event.
func (r Record) Event() timestamps.Event {
	return timestamps.Event{Onset: r.Onset, Offset: r.Offset}
}

// Manager owns the SQLite score log.
type Manager struct {
	db *sql.DB
}

// NewManager opens (creating if needed) the score log database and brings
// the schema up to date.
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create score log directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open score log database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to score log database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Save appends one scored event to the log.
func (m *Manager) Save(project, video string, kind timestamps.Kind, e timestamps.Event, note string) (int64, error) {
	query := `
		INSERT INTO scores (project, video, kind, onset_frame, offset_frame, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	timestampStr := time.Now().Local().Format("2006-01-02 15:04:05")

	res, err := m.db.Exec(query, project, video, kind.String(), e.Onset, e.Offset, note, timestampStr)
	if err != nil {
		return 0, fmt.Errorf("failed to save score: %w", err)
	}
	return res.LastInsertId()
}

// LoadForProject returns every record for a project ordered by onset.
func (m *Manager) LoadForProject(project string) ([]Record, error) {
	query := `
		SELECT id, project, video, kind, onset_frame, offset_frame, COALESCE(note, ''), created_at
		FROM scores
		WHERE project = ?
		ORDER BY onset_frame ASC
	`

	rows, err := m.db.Query(query, project)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// LoadForVideo returns every record for a video file ordered by onset.
func (m *Manager) LoadForVideo(video string) ([]Record, error) {
	query := `
		SELECT id, project, video, kind, onset_frame, offset_frame, COALESCE(note, ''), created_at
		FROM scores
		WHERE video = ?
		ORDER BY onset_frame ASC
	`

	rows, err := m.db.Query(query, video)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ReplaceProject swaps a project's log for the given events in one
// transaction, so a crash mid-save never loses the old log.
func (m *Manager) ReplaceProject(project, video string, kind timestamps.Kind, events []timestamps.Event) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM scores WHERE project = ?", project); err != nil {
		return fmt.Errorf("failed to clear project scores: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO scores (project, video, kind, onset_frame, offset_frame, note)
		VALUES (?, ?, ?, ?, ?, '')
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(project, video, kind.String(), e.Onset, e.Offset); err != nil {
			return fmt.Errorf("failed to insert score %s: %w", e, err)
		}
	}

	return tx.Commit()
}

// Delete removes one record by id.
func (m *Manager) Delete(id int64) error {
	res, err := m.db.Exec("DELETE FROM scores WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("score %d not found", id)
	}
	return nil
}

// Clear removes every record for a project.
func (m *Manager) Clear(project string) error {
	if _, err := m.db.Exec("DELETE FROM scores WHERE project = ?", project); err != nil {
		return fmt.Errorf("failed to clear scores: %w", err)
	}
	return nil
}

// Count returns the number of records for a project.
func (m *Manager) Count(project string) (int, error) {
	var n int
	err := m.db.QueryRow("SELECT COUNT(*) FROM scores WHERE project = ?", project).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count scores: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (m *Manager) Close() error {
	return m.db.Close()
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Project, &r.Video, &r.Kind, &r.Onset, &r.Offset, &r.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", createdAt, time.Local); err == nil {
			r.CreatedAt = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
