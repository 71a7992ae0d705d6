package database

import (
	"time"
)

// Prune deletes archived results checked before olderThan (unix
// nanoseconds). File names are kept so re-scans skip pruned files.
func (db *DB) Prune(olderThan int64) (int64, error) {
	res, err := db.Exec(`DELETE FROM check_results WHERE timestamp < ?`, olderThan)
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	// Vacuum to reclaim space (run occasionally)
	if removed > 0 && time.Now().Day() == 1 { // Run on first day of month
		_, err := db.Exec("VACUUM")
		return removed, err
	}

	return removed, nil
}
