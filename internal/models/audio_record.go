package models

// AudioRecord represents a stored, converted audio file
// PublicID is exposed to clients instead of the internal integer key
// FilePath is the on-disk location of the converted MP3
type AudioRecord struct {
	ID       int    `json:"id" db:"id"`
	UserID   int    `json:"userId" db:"user_id"`
	PublicID string `json:"publicId" db:"public_id"`
	FilePath string `json:"-" db:"file_path"`
}

// UploadAudioResponse is the response body for a successful upload
type UploadAudioResponse struct {
	DownloadURL string `json:"downloadUrl"`
}
