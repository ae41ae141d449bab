package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/audiovault/backend/internal/models"
)

// audioRecordRepository implements audio record repository operations
type audioRecordRepository struct {
	db *sql.DB
}

// NewAudioRecordRepository creates a new audio record repository
func NewAudioRecordRepository(db *sql.DB) *audioRecordRepository {
	return &audioRecordRepository{
		db: db,
	}
}

// Create inserts a new audio record into the database
func (r *audioRecordRepository) Create(ctx context.Context, record *models.AudioRecord) error {
	query := `
		INSERT INTO audio_records (user_id, public_id, file_path)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		record.UserID,
		record.PublicID,
		record.FilePath,
	)
	if err != nil {
		return fmt.Errorf("failed to create audio record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	record.ID = int(id)
	return nil
}

// GetByPublicID retrieves an audio record by its public identifier
func (r *audioRecordRepository) GetByPublicID(ctx context.Context, publicID string) (*models.AudioRecord, error) {
	query := `
		SELECT id, user_id, file_path
		FROM audio_records
		WHERE public_id = ?
		LIMIT 1
	`

	record := &models.AudioRecord{}
	err := r.db.QueryRowContext(ctx, query, publicID).Scan(
		&record.ID,
		&record.UserID,
		&record.FilePath,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("audio record %s: %w", publicID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audio record by public id: %w", err)
	}

	record.PublicID = publicID
	return record, nil
}

// DeleteByPublicID deletes an audio record by its public identifier
func (r *audioRecordRepository) DeleteByPublicID(ctx context.Context, publicID string) error {
	query := `DELETE FROM audio_records WHERE public_id = ?`

	result, err := r.db.ExecContext(ctx, query, publicID)
	if err != nil {
		return fmt.Errorf("failed to delete audio record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("audio record %s: %w", publicID, ErrNotFound)
	}

	return nil
}
