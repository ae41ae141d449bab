// Package transcoder converts audio files by delegating to the external
// ffmpeg binary. The codec is treated as a black box: it either produces
// the output file or fails
package transcoder

import (
	"fmt"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ffmpegTranscoder implements WAV to MP3 conversion via ffmpeg
type ffmpegTranscoder struct {
	bitrate string
}

// NewFFmpegTranscoder creates a new ffmpeg-backed transcoder
func NewFFmpegTranscoder() *ffmpegTranscoder {
	return &ffmpegTranscoder{
		bitrate: "192k",
	}
}

// ConvertWAVToMP3 reads the WAV file at wavPath and writes an MP3 file
// to mp3Path. The ffmpeg binary must be available in PATH
func (t *ffmpegTranscoder) ConvertWAVToMP3(wavPath, mp3Path string) error {
	err := ffmpeg.Input(wavPath).
		Output(mp3Path, ffmpeg.KwArgs{"format": "mp3", "b:a": t.bitrate}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return fmt.Errorf("failed to convert %s to mp3: %w", filepath.Base(wavPath), err)
	}

	return nil
}
