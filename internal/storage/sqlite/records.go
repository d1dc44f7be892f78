package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage"
)

func (s *Store) GetDayRecord(userID, day string) (models.DayRecord, error) {
	row := s.db.QueryRow(`
		SELECT day, completed, note, timestamp, created_at
		FROM day_records WHERE user_id = ? AND day = ?`, userID, day)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DayRecord{}, fmt.Errorf("day record %s: %w", day, storage.ErrNotFound)
	}
	return rec, err
}

func (s *Store) PutDayRecord(userID string, rec models.DayRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO day_records (user_id, day, completed, note, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			completed = excluded.completed,
			note = excluded.note,
			timestamp = excluded.timestamp,
			created_at = excluded.created_at`,
		userID, rec.Day, rec.Completed, rec.Note, rec.Timestamp, rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetDayRecords(userID, startDay, endDay string) (map[string]models.DayRecord, error) {
	rows, err := s.db.Query(`
		SELECT day, completed, note, timestamp, created_at
		FROM day_records WHERE user_id = ? AND day >= ? AND day <= ?
		ORDER BY day`, userID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(map[string]models.DayRecord)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records[rec.Day] = rec
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (models.DayRecord, error) {
	var rec models.DayRecord
	var createdAt string
	if err := row.Scan(&rec.Day, &rec.Completed, &rec.Note, &rec.Timestamp, &createdAt); err != nil {
		return models.DayRecord{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.DayRecord{}, fmt.Errorf("failed to parse created_at for day %s: %w", rec.Day, err)
	}
	rec.CreatedAt = t
	return rec, nil
}
