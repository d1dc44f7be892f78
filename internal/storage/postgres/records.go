package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage"
)

func (s *Store) GetDayRecord(userID, day string) (models.DayRecord, error) {
	var rec models.DayRecord
	err := s.db.QueryRow(`
		SELECT day, completed, note, timestamp, created_at
		FROM day_records WHERE user_id = $1 AND day = $2`, userID, day,
	).Scan(&rec.Day, &rec.Completed, &rec.Note, &rec.Timestamp, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DayRecord{}, fmt.Errorf("day record %s: %w", day, storage.ErrNotFound)
	}
	if err != nil {
		return models.DayRecord{}, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

func (s *Store) PutDayRecord(userID string, rec models.DayRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO day_records (user_id, day, completed, note, timestamp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, day) DO UPDATE SET
			completed = EXCLUDED.completed,
			note = EXCLUDED.note,
			timestamp = EXCLUDED.timestamp,
			created_at = EXCLUDED.created_at`,
		userID, rec.Day, rec.Completed, rec.Note, rec.Timestamp, rec.CreatedAt.UTC(),
	)
	return err
}

func (s *Store) GetDayRecords(userID, startDay, endDay string) (map[string]models.DayRecord, error) {
	rows, err := s.db.Query(`
		SELECT day, completed, note, timestamp, created_at
		FROM day_records WHERE user_id = $1 AND day BETWEEN $2 AND $3
		ORDER BY day`, userID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(map[string]models.DayRecord)
	for rows.Next() {
		var rec models.DayRecord
		if err := rows.Scan(&rec.Day, &rec.Completed, &rec.Note, &rec.Timestamp, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		records[rec.Day] = rec
	}
	return records, rows.Err()
}
