package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantry-recipes/backend/internal/service"
	"github.com/pageza/pantry-recipes/backend/internal/types"
)

const (
	uploadField        = "file"
	defaultAudioExt    = ".wav"
	endpointTranscribe = "transcribe"
	endpointCommand    = "command"
	msgNoFile          = "No audio file provided"
	msgEmptyFilename   = "No file selected"
	msgTooLarge        = "Audio file too large"
)

// TranscriptionHandler serves the speech endpoints
type TranscriptionHandler struct {
	svc       service.ITranscriptionService
	maxUpload int64
	workDir   string
	logger    *zap.Logger
}

// NewTranscriptionHandler creates a new TranscriptionHandler instance.
// Uploads larger than maxUpload bytes are rejected; workDir holds them while
// they are transcribed.
func NewTranscriptionHandler(svc service.ITranscriptionService, maxUpload int64, workDir string, logger *zap.Logger) *TranscriptionHandler {
	if workDir == "" {
		workDir = os.TempDir()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionHandler{svc: svc, maxUpload: maxUpload, workDir: workDir, logger: logger}
}

// RegisterRoutes registers the transcription routes
func (h *TranscriptionHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
	router.POST("/transcribe", h.Transcribe)
	router.POST("/command", h.Command)
}

// Health reports the loaded model
func (h *TranscriptionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "model": h.svc.EngineName()})
}

// Transcribe returns the text of the uploaded clip
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	result, ok := h.transcribeUpload(c, endpointTranscribe)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, types.TranscribeResponse{Text: result.Text, Success: true})
}

// Command returns the text of the uploaded clip and whether it is an update command
func (h *TranscriptionHandler) Command(c *gin.Context) {
	result, ok := h.transcribeUpload(c, endpointCommand)
	if !ok {
		return
	}
	h.logger.Info("command detection",
		zap.String("text", result.Text),
		zap.Bool("update", result.IsUpdateCommand))
	c.JSON(http.StatusOK, types.CommandResponse{
		Text:            result.Text,
		IsUpdateCommand: result.IsUpdateCommand,
		Success:         true,
		Mock:            h.svc.IsMock(),
	})
}

// transcribeUpload stores the upload in a temp file, transcribes it and
// removes the file. On failure it writes the error response and returns false.
func (h *TranscriptionHandler) transcribeUpload(c *gin.Context, endpoint string) (*types.TranscriptionResult, bool) {
	path, status, msg := h.saveUpload(c)
	if status != http.StatusOK {
		c.JSON(status, types.TranscriptionError{Error: msg, Success: false})
		return nil, false
	}
	defer os.Remove(path)

	result, err := h.svc.Transcribe(c.Request.Context(), path)
	service.RecordTranscription(endpoint, err)
	if err != nil {
		h.logger.Error("transcription failed", zap.String("endpoint", endpoint), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, types.TranscriptionError{Error: err.Error(), Success: false})
		return nil, false
	}
	return result, true
}

// saveUpload returns the temp path of the uploaded clip, or a non-200 status
// and message describing why there is none.
func (h *TranscriptionHandler) saveUpload(c *gin.Context) (string, int, string) {
	if h.maxUpload > 0 {
		if c.Request.ContentLength > h.maxUpload {
			return "", http.StatusRequestEntityTooLarge, msgTooLarge
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	fh, err := c.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return "", http.StatusRequestEntityTooLarge, msgTooLarge
		}
		// A part named "file" without a filename is parsed as a plain value.
		if form := c.Request.MultipartForm; form != nil && len(form.Value[uploadField]) > 0 {
			return "", http.StatusBadRequest, msgEmptyFilename
		}
		return "", http.StatusBadRequest, msgNoFile
	}
	if fh.Filename == "" {
		return "", http.StatusBadRequest, msgEmptyFilename
	}

	path := filepath.Join(h.workDir, "audio-"+uuid.NewString()+audioExt(fh.Filename))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		os.Remove(path)
		h.logger.Error("failed to store upload", zap.Error(err))
		return "", http.StatusInternalServerError, "failed to store upload"
	}
	return path, http.StatusOK, ""
}

// audioExt keeps a short alphanumeric extension so engines can sniff the format.
func audioExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > 6 {
		return defaultAudioExt
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return defaultAudioExt
		}
	}
	return ext
}
