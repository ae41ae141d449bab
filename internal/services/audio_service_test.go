package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/audiovault/backend/internal/models"
	"github.com/audiovault/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUserReader is a mock implementation of UserReader
type mockUserReader struct {
	user *models.User
	err  error
}

func (m *mockUserReader) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

// mockAudioRecordRepository is a mock implementation of AudioRecordRepository
type mockAudioRecordRepository struct {
	record    *models.AudioRecord
	createErr error
	getErr    error
	deleteErr error
	created   *models.AudioRecord
}

func (m *mockAudioRecordRepository) Create(ctx context.Context, record *models.AudioRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record.ID = 1
	m.created = record
	return nil
}

func (m *mockAudioRecordRepository) GetByPublicID(ctx context.Context, publicID string) (*models.AudioRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.record, nil
}

func (m *mockAudioRecordRepository) DeleteByPublicID(ctx context.Context, publicID string) error {
	return m.deleteErr
}

// mockStorage is a mock implementation of Storage
// OpenPath opens real files so download tests can use t.TempDir
type mockStorage struct {
	basePath    string
	createErr   error
	writeCloser io.WriteCloser
}

func (m *mockStorage) Create(name string) (io.WriteCloser, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.writeCloser != nil {
		return m.writeCloser, nil
	}
	return &mockWriteCloser{}, nil
}

func (m *mockStorage) OpenPath(path string) (*os.File, error) {
	return os.Open(path)
}

func (m *mockStorage) Path(name string) string {
	return filepath.Join(m.basePath, name)
}

// mockWriteCloser is a mock implementation of io.WriteCloser
type mockWriteCloser struct {
	writeErr error
	closeErr error
	written  []byte
}

func (m *mockWriteCloser) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.written = append(m.written, p...)
	return len(p), nil
}

func (m *mockWriteCloser) Close() error {
	return m.closeErr
}

// mockTranscoder is a mock implementation of Transcoder
type mockTranscoder struct {
	err     error
	called  bool
	wavPath string
	mp3Path string
}

func (m *mockTranscoder) ConvertWAVToMP3(wavPath, mp3Path string) error {
	m.called = true
	m.wavPath = wavPath
	m.mp3Path = mp3Path
	return m.err
}

func TestNewAudioService(t *testing.T) {
	userReader := &mockUserReader{}
	recordRepo := &mockAudioRecordRepository{}
	store := &mockStorage{}
	trans := &mockTranscoder{}

	svc := NewAudioService(userReader, recordRepo, store, trans)

	assert.NotNil(t, svc)
	assert.Equal(t, userReader, svc.userRepo)
	assert.Equal(t, recordRepo, svc.recordRepo)
	assert.Equal(t, store, svc.storage)
	assert.Equal(t, trans, svc.transcoder)
}

func TestAudioService_Upload_Success(t *testing.T) {
	user := &models.User{ID: 1, Name: "alice", Token: "secret-token"}
	userReader := &mockUserReader{user: user}
	recordRepo := &mockAudioRecordRepository{}
	writeCloser := &mockWriteCloser{}
	store := &mockStorage{basePath: "/var/audio", writeCloser: writeCloser}
	trans := &mockTranscoder{}

	svc := NewAudioService(userReader, recordRepo, store, trans)

	wavData := "RIFF....WAVEfmt "
	downloadURL, err := svc.Upload(context.Background(), 1, "secret-token", strings.NewReader(wavData), "http://localhost:8080")

	require.NoError(t, err)

	// Raw bytes were written to storage
	assert.Equal(t, wavData, string(writeCloser.written))

	// Transcoder was invoked on the WAV and its MP3 sibling
	assert.True(t, trans.called)
	assert.True(t, strings.HasSuffix(trans.wavPath, ".wav"))
	assert.Equal(t, strings.TrimSuffix(trans.wavPath, ".wav")+".mp3", trans.mp3Path)

	// A record was created referencing the MP3 path
	require.NotNil(t, recordRepo.created)
	assert.Equal(t, 1, recordRepo.created.UserID)
	assert.Equal(t, trans.mp3Path, recordRepo.created.FilePath)

	// PublicID is a freshly generated UUID distinct from the internal key
	_, parseErr := uuid.Parse(recordRepo.created.PublicID)
	assert.NoError(t, parseErr)

	expectedURL := fmt.Sprintf("http://localhost:8080/api/v1/audio?publicId=%s&userId=1", recordRepo.created.PublicID)
	assert.Equal(t, expectedURL, downloadURL)
}

func TestAudioService_Upload_Errors(t *testing.T) {
	user := &models.User{ID: 1, Name: "alice", Token: "secret-token"}

	tests := []struct {
		name          string
		userReader    *mockUserReader
		recordRepo    *mockAudioRecordRepository
		store         *mockStorage
		trans         *mockTranscoder
		token         string
		expectedError error
	}{
		{
			name:          "unknown user id",
			userReader:    &mockUserReader{err: repositories.ErrNotFound},
			recordRepo:    &mockAudioRecordRepository{},
			store:         &mockStorage{},
			trans:         &mockTranscoder{},
			token:         "secret-token",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "wrong token",
			userReader:    &mockUserReader{user: user},
			recordRepo:    &mockAudioRecordRepository{},
			store:         &mockStorage{},
			trans:         &mockTranscoder{},
			token:         "wrong-token",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "error creating file",
			userReader:    &mockUserReader{user: user},
			recordRepo:    &mockAudioRecordRepository{},
			store:         &mockStorage{createErr: errors.New("disk full")},
			trans:         &mockTranscoder{},
			token:         "secret-token",
			expectedError: ErrStorage,
		},
		{
			name:          "error writing file",
			userReader:    &mockUserReader{user: user},
			recordRepo:    &mockAudioRecordRepository{},
			store:         &mockStorage{writeCloser: &mockWriteCloser{writeErr: errors.New("write error")}},
			trans:         &mockTranscoder{},
			token:         "secret-token",
			expectedError: ErrStorage,
		},
		{
			name:          "error closing file",
			userReader:    &mockUserReader{user: user},
			recordRepo:    &mockAudioRecordRepository{},
			store:         &mockStorage{writeCloser: &mockWriteCloser{closeErr: errors.New("close error")}},
			trans:         &mockTranscoder{},
			token:         "secret-token",
			expectedError: ErrStorage,
		},
		{
			name:          "transcoding failure",
			userReader:    &mockUserReader{user: user},
			recordRepo:    &mockAudioRecordRepository{},
			store:         &mockStorage{},
			trans:         &mockTranscoder{err: errors.New("ffmpeg exited with code 1")},
			token:         "secret-token",
			expectedError: ErrConversion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAudioService(tt.userReader, tt.recordRepo, tt.store, tt.trans)

			downloadURL, err := svc.Upload(context.Background(), 1, tt.token, strings.NewReader("data"), "http://localhost:8080")

			assert.ErrorIs(t, err, tt.expectedError)
			assert.Empty(t, downloadURL)

			// No database record may be created on failure
			assert.Nil(t, tt.recordRepo.created)
		})
	}
}

func TestAudioService_Upload_RecordCreateError(t *testing.T) {
	user := &models.User{ID: 1, Name: "alice", Token: "secret-token"}
	userReader := &mockUserReader{user: user}
	recordRepo := &mockAudioRecordRepository{createErr: errors.New("database error")}
	store := &mockStorage{}
	trans := &mockTranscoder{}

	svc := NewAudioService(userReader, recordRepo, store, trans)

	downloadURL, err := svc.Upload(context.Background(), 1, "secret-token", strings.NewReader("data"), "http://localhost:8080")

	assert.Error(t, err)
	assert.Empty(t, downloadURL)
}

func TestAudioService_Download(t *testing.T) {
	// Write a real MP3 payload into a temp dir so OpenPath succeeds
	baseDir := t.TempDir()
	mp3Path := filepath.Join(baseDir, "stored.mp3")
	mp3Data := []byte("ID3 converted audio bytes")
	require.NoError(t, os.WriteFile(mp3Path, mp3Data, 0644))

	user := &models.User{ID: 1, Name: "alice", Token: "secret-token"}
	record := &models.AudioRecord{ID: 5, UserID: 1, PublicID: "public-id-1", FilePath: mp3Path}

	tests := []struct {
		name          string
		userReader    *mockUserReader
		recordRepo    *mockAudioRecordRepository
		userID        int
		expectedError error
	}{
		{
			name:       "success",
			userReader: &mockUserReader{user: user},
			recordRepo: &mockAudioRecordRepository{record: record},
			userID:     1,
		},
		{
			name:          "user not found",
			userReader:    &mockUserReader{err: repositories.ErrNotFound},
			recordRepo:    &mockAudioRecordRepository{record: record},
			userID:        42,
			expectedError: ErrUserNotFound,
		},
		{
			name:          "record not found",
			userReader:    &mockUserReader{user: user},
			recordRepo:    &mockAudioRecordRepository{getErr: repositories.ErrNotFound},
			userID:        1,
			expectedError: ErrRecordNotFound,
		},
		{
			name:       "ownership mismatch reported as not found",
			userReader: &mockUserReader{user: &models.User{ID: 2, Name: "bob", Token: "other"}},
			recordRepo: &mockAudioRecordRepository{record: record},
			userID:     2,
			// The record belongs to user 1; user 2 must not learn it exists
			expectedError: ErrRecordNotFound,
		},
		{
			name:          "file missing on disk",
			userReader:    &mockUserReader{user: user},
			recordRepo:    &mockAudioRecordRepository{record: &models.AudioRecord{ID: 6, UserID: 1, PublicID: "public-id-2", FilePath: filepath.Join(baseDir, "missing.mp3")}},
			userID:        1,
			expectedError: ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAudioService(tt.userReader, tt.recordRepo, &mockStorage{basePath: baseDir}, &mockTranscoder{})

			audioFile, err := svc.Download(context.Background(), "public-id-1", tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, audioFile)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, audioFile)
			defer audioFile.Close()

			// Download returns byte-identical MP3 content
			content, readErr := io.ReadAll(audioFile)
			require.NoError(t, readErr)
			assert.Equal(t, mp3Data, content)
		})
	}
}

func TestAudioService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		recordRepo    *mockAudioRecordRepository
		expectedError error
	}{
		{
			name:       "success",
			recordRepo: &mockAudioRecordRepository{},
		},
		{
			name:          "record not found",
			recordRepo:    &mockAudioRecordRepository{deleteErr: repositories.ErrNotFound},
			expectedError: ErrRecordNotFound,
		},
		{
			name:          "database error",
			recordRepo:    &mockAudioRecordRepository{deleteErr: errors.New("database error")},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAudioService(&mockUserReader{}, tt.recordRepo, &mockStorage{}, &mockTranscoder{})

			err := svc.Delete(context.Background(), "public-id-1")

			if tt.expectedError != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectedError, ErrRecordNotFound) {
					assert.ErrorIs(t, err, ErrRecordNotFound)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
