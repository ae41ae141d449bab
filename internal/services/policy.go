package services

import (
	"crypto/subtle"

	"github.com/audiovault/backend/internal/models"
)

// CheckUploadCredentials is the access-control policy for uploads.
// A request is authorized only when the supplied token matches the
// stored token of the user it names; the id+token pair is the sole
// access-control mechanism for uploads
func CheckUploadCredentials(user *models.User, token string) error {
	if user == nil || token == "" {
		return ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(user.Token), []byte(token)) != 1 {
		return ErrInvalidCredentials
	}

	return nil
}
