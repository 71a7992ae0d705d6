package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"statuspage/internal/models"
)

// HasFile reports whether a check file was archived before
func (db *DB) HasFile(name string) (bool, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM check_files WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SaveFile archives a check file and its results in one transaction
func (db *DB) SaveFile(name string, results []*models.Result) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO check_files (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("insert check file: %w", err)
	}

	query := `
        INSERT INTO check_results (file, endpoint, title, timestamp, threshold, healthy, degraded, down, message, times)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	for _, r := range results {
		times, err := json.Marshal(r.Times)
		if err != nil {
			return fmt.Errorf("marshal samples: %w", err)
		}
		_, err = tx.Exec(query,
			name,
			r.Endpoint,
			r.Title,
			r.Timestamp,
			int64(r.Threshold),
			r.Healthy,
			r.Degraded,
			r.Down,
			r.Message,
			string(times),
		)
		if err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
	}

	return tx.Commit()
}

// LoadAll returns archived files in the order they were saved
func (db *DB) LoadAll() ([]models.ArchivedFile, error) {
	query := `
        SELECT f.name, r.endpoint, r.title, r.timestamp, r.threshold,
               r.healthy, r.degraded, r.down, r.message, r.times
        FROM check_files f
        JOIN check_results r ON r.file = f.name
        ORDER BY f.rowid, r.id
    `

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.ArchivedFile
	for rows.Next() {
		var (
			name      string
			r         models.Result
			threshold int64
			msg       sql.NullString
			times     string
		)
		err := rows.Scan(&name, &r.Endpoint, &r.Title, &r.Timestamp, &threshold,
			&r.Healthy, &r.Degraded, &r.Down, &msg, &times)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(times), &r.Times); err != nil {
			return nil, fmt.Errorf("unmarshal samples: %w", err)
		}
		r.Threshold = time.Duration(threshold)
		if msg.Valid {
			r.Message = msg.String
		}

		if n := len(files); n == 0 || files[n-1].Name != name {
			files = append(files, models.ArchivedFile{Name: name})
		}
		files[len(files)-1].Results = append(files[len(files)-1].Results, &r)
	}

	return files, rows.Err()
}
