package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/audiovault/backend/internal/models"
	"github.com/audiovault/backend/internal/repositories"
	"github.com/audiovault/backend/internal/storage"
	"github.com/google/uuid"
)

// AudioRecordRepository defines the interface for audio record data access
type AudioRecordRepository interface {
	Create(ctx context.Context, record *models.AudioRecord) error
	GetByPublicID(ctx context.Context, publicID string) (*models.AudioRecord, error)
	DeleteByPublicID(ctx context.Context, publicID string) error
}

// UserReader is the subset of user data access needed by audio operations
type UserReader interface {
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// Storage defines the interface for file storage operations
type Storage interface {
	// Create creates a new file under the storage base path and returns a WriteCloser
	Create(name string) (io.WriteCloser, error)

	// OpenPath opens a stored file by its full path, for use with http.ServeContent
	OpenPath(path string) (*os.File, error)

	// Path returns the full on-disk path for a stored file name
	Path(name string) string
}

// Transcoder converts a WAV file on disk into an MP3 file on disk.
// It is an external black box: success or failure, no finer taxonomy
type Transcoder interface {
	ConvertWAVToMP3(wavPath, mp3Path string) error
}

// AudioService handles business logic for audio upload, download and deletion
type AudioService struct {
	userRepo   UserReader
	recordRepo AudioRecordRepository
	storage    Storage
	transcoder Transcoder
}

// NewAudioService creates a new audio service
func NewAudioService(userRepo UserReader, recordRepo AudioRecordRepository, storage Storage, transcoder Transcoder) *AudioService {
	return &AudioService{
		userRepo:   userRepo,
		recordRepo: recordRepo,
		storage:    storage,
		transcoder: transcoder,
	}
}

// Upload authorizes the request against the id+token pair, persists the
// raw WAV bytes, converts them to MP3 and records the result.
// Returns the download URL for the new record.
//
// On storage or conversion failure no database record is created; the
// already-written WAV file stays on disk. A successful upload also keeps
// the WAV sibling next to the MP3
func (s *AudioService) Upload(ctx context.Context, userID int, token string, file io.Reader, baseURL string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := CheckUploadCredentials(user, token); err != nil {
		return "", err
	}

	// Persist raw bytes under a generated unique filename
	wavName := storage.GenerateFileName(".wav")
	writeCloser, err := s.storage.Create(wavName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if _, err := io.Copy(writeCloser, file); err != nil {
		writeCloser.Close()
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := writeCloser.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// Convert to an MP3 sibling file
	mp3Name := strings.TrimSuffix(wavName, ".wav") + ".mp3"
	if err := s.transcoder.ConvertWAVToMP3(s.storage.Path(wavName), s.storage.Path(mp3Name)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	record := &models.AudioRecord{
		UserID:   userID,
		PublicID: uuid.New().String(),
		FilePath: s.storage.Path(mp3Name),
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to create audio record: %w", err)
	}

	downloadURL := fmt.Sprintf("%s/api/v1/audio?publicId=%s&userId=%d", baseURL, record.PublicID, userID)
	return downloadURL, nil
}

// Download returns the stored MP3 file for the record with the given
// public identifier, if it is owned by the given user.
//
// An ownership mismatch is reported exactly like absence so public
// identifiers cannot be probed across users
func (s *AudioService) Download(ctx context.Context, publicID string, userID int) (*os.File, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	record, err := s.recordRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to look up audio record: %w", err)
	}

	if record.UserID != userID {
		return nil, ErrRecordNotFound
	}

	audioFile, err := s.storage.OpenPath(record.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return audioFile, nil
}

// Delete removes the database record with the given public identifier.
// The on-disk MP3 file is not removed
func (s *AudioService) Delete(ctx context.Context, publicID string) error {
	if err := s.recordRepo.DeleteByPublicID(ctx, publicID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete audio record: %w", err)
	}

	return nil
}
