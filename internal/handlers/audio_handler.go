package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/audiovault/backend/internal/models"
	"github.com/audiovault/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AudioService is the interface that wraps methods for audio business logic.
type AudioService interface {
	// Method Upload authorizes the id+token pair, stores the WAV bytes, converts them
	// to MP3 and creates an audio record.
	//
	// "userID" and "token" parameters identify and authorize the uploading user.
	// "file" parameter is the raw WAV byte stream.
	// "baseURL" parameter is used to construct the returned download URL.
	//
	// If some error occurs during upload, the error will be returned together with an empty string.
	Upload(ctx context.Context, userID int, token string, file io.Reader, baseURL string) (string, error)
	// Method Download returns the stored MP3 file for the given public identifier
	// when the record is owned by the given user.
	//
	// If the user or record does not exist, or the record is owned by another user,
	// the error will be returned together with "nil" value.
	Download(ctx context.Context, publicID string, userID int) (*os.File, error)
	// Method Delete removes the audio record with the given public identifier.
	//
	// If the record does not exist, the error will be returned.
	Delete(ctx context.Context, publicID string) error
}

// AudioHandler handles audio-related HTTP requests
type AudioHandler struct {
	BaseHandler
	audioService AudioService
	baseURL      string
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(audioService AudioService, logger *zap.Logger, baseURL string) *AudioHandler {
	return &AudioHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		audioService: audioService,
		baseURL:      baseURL,
	}
}

// RegisterRoutes registers all audio handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *AudioHandler) RegisterRoutes(r chi.Router) {
	r.Route("/audio", func(r chi.Router) {
		r.Post("/", h.UploadAudio)
		r.Get("/", h.DownloadAudio)
		r.Delete("/{publicId}", h.DeleteAudio)
	})
}

// UploadAudio handles POST /audio
// @Summary Upload a WAV file
// @Description Upload a WAV file for conversion to MP3. Requires the user ID and token issued at registration.
// @Tags audio
// @Accept multipart/form-data
// @Produce json
// @Param userId formData int true "User ID"
// @Param token formData string true "Upload token"
// @Param file formData file true "WAV file"
// @Success 201 {object} models.UploadAudioResponse
// @Failure 400 {object} map[string]string "Invalid request or credentials"
// @Failure 500 {object} map[string]string "Storage or conversion failure"
// @Router /audio [post]
func (h *AudioHandler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (limit to 50MB to match request size limit)
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	userID, err := strconv.Atoi(r.FormValue("userId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	token := r.FormValue("token")
	if token == "" {
		h.RespondError(w, http.StatusBadRequest, "token is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.Logger.Error("failed to get file from form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	downloadURL, err := h.audioService.Upload(r.Context(), userID, token, file, h.baseURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			h.RespondError(w, http.StatusBadRequest, "invalid user id or token")
		case errors.Is(err, services.ErrStorage):
			h.Logger.Error("failed to store audio file", zap.Error(err), zap.Int("user_id", userID))
			h.RespondError(w, http.StatusInternalServerError, "failed to store file")
		case errors.Is(err, services.ErrConversion):
			h.Logger.Error("failed to convert audio file", zap.Error(err), zap.Int("user_id", userID))
			h.RespondError(w, http.StatusInternalServerError, "failed to convert file to mp3")
		default:
			h.Logger.Error("failed to upload audio", zap.Error(err), zap.Int("user_id", userID))
			h.RespondError(w, http.StatusInternalServerError, "failed to upload audio")
		}
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.UploadAudioResponse{DownloadURL: downloadURL})
}

// DownloadAudio handles GET /audio?publicId=&userId=
// @Summary Download a converted MP3
// @Description Download the converted MP3 for an audio record. The record must be owned by the given user.
// @Tags audio
// @Produce audio/mpeg
// @Param publicId query string true "Public record identifier"
// @Param userId query int true "User ID"
// @Success 200 "MP3 content"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "User or record not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /audio [get]
func (h *AudioHandler) DownloadAudio(w http.ResponseWriter, r *http.Request) {
	publicID := r.URL.Query().Get("publicId")
	if publicID == "" {
		h.RespondError(w, http.StatusBadRequest, "publicId is required")
		return
	}

	userID, err := strconv.Atoi(r.URL.Query().Get("userId"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	audioFile, err := h.audioService.Download(r.Context(), publicID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			h.RespondError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, services.ErrRecordNotFound):
			h.RespondError(w, http.StatusNotFound, "audio record not found")
		default:
			h.Logger.Error("failed to open audio file", zap.Error(err), zap.String("public_id", publicID))
			h.RespondError(w, http.StatusInternalServerError, "failed to open file")
		}
		return
	}
	defer audioFile.Close()

	fileInfo, err := audioFile.Stat()
	if err != nil {
		h.Logger.Error("failed to get file info", zap.Error(err), zap.String("public_id", publicID))
		h.RespondError(w, http.StatusInternalServerError, "failed to get file info")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", publicID+".mp3"))

	// Serve content with range support
	http.ServeContent(w, r, publicID+".mp3", fileInfo.ModTime(), audioFile)
}

// DeleteAudio handles DELETE /audio/{publicId}
// @Summary Delete an audio record
// @Description Delete the audio record with the given public identifier. The stored file is not removed.
// @Tags audio
// @Produce json
// @Param publicId path string true "Public record identifier"
// @Success 200 {object} map[string]string "Audio deleted successfully"
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /audio/{publicId} [delete]
func (h *AudioHandler) DeleteAudio(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicId")

	if err := h.audioService.Delete(r.Context(), publicID); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			h.RespondError(w, http.StatusNotFound, "audio record not found")
			return
		}
		h.Logger.Error("failed to delete audio record", zap.Error(err), zap.String("public_id", publicID))
		h.RespondError(w, http.StatusInternalServerError, "failed to delete audio record")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "audio deleted successfully"})
}
