package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Path(t *testing.T) {
	store := NewLocalStorage("/var/audio")

	assert.Equal(t, filepath.Join("/var/audio", "file.wav"), store.Path("file.wav"))
}

func TestLocalStorage_CreateAndOpenPath(t *testing.T) {
	// basePath does not exist yet; Create must make it
	basePath := filepath.Join(t.TempDir(), "audio")
	store := NewLocalStorage(basePath)

	writeCloser, err := store.Create("sample.wav")
	require.NoError(t, err)

	data := []byte("RIFF....WAVEfmt ")
	_, err = writeCloser.Write(data)
	require.NoError(t, err)
	require.NoError(t, writeCloser.Close())

	file, err := store.OpenPath(store.Path("sample.wav"))
	require.NoError(t, err)
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, data, content)
}

func TestLocalStorage_OpenPath_NotExist(t *testing.T) {
	store := NewLocalStorage(t.TempDir())

	_, err := store.OpenPath(store.Path("missing.mp3"))

	assert.True(t, os.IsNotExist(err))
}

func TestGenerateFileName(t *testing.T) {
	tests := []struct {
		name      string
		extension string
	}{
		{name: "with dot", extension: ".wav"},
		{name: "without dot", extension: "mp3"},
		{name: "empty extension", extension: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileName := GenerateFileName(tt.extension)

			base := fileName
			if tt.extension != "" {
				ext := tt.extension
				if ext[0] != '.' {
					ext = "." + ext
				}
				require.True(t, strings.HasSuffix(fileName, ext))
				base = strings.TrimSuffix(fileName, ext)
			}

			_, err := uuid.Parse(base)
			assert.NoError(t, err)
		})
	}
}

func TestGenerateFileName_Unique(t *testing.T) {
	first := GenerateFileName(".wav")
	second := GenerateFileName(".wav")

	assert.NotEqual(t, first, second)
}
