package api

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-recipes/backend/internal/mocks"
	"github.com/pageza/pantry-recipes/backend/internal/service"
	"github.com/pageza/pantry-recipes/backend/internal/stt"
)

func setupTranscriptionRouter(t *testing.T, engine stt.Engine, maxUpload int64) *gin.Engine {
	router := gin.New()
	svc := service.NewTranscriptionService(engine, nil)
	NewTranscriptionHandler(svc, maxUpload, t.TempDir(), nil).RegisterRoutes(router)
	return router
}

// multipartBody builds a form with one part. An empty field omits the part.
func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", "audio/wav")
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField("other", "x"))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func upload(t *testing.T, router *gin.Engine, path, field, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, field, filename, data)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCommandDetectsKeyword(t *testing.T) {
	var seenPath string
	engine := &mocks.MockEngine{}
	engine.On("Transcribe", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			seenPath = args.String(1)
			assert.FileExists(t, seenPath)
		}).
		Return([]stt.Segment{{Text: " Please UPDATE now "}}, nil)

	w := upload(t, setupTranscriptionRouter(t, engine, 1<<20), "/command", "file", "clip.wav", []byte("RIFF"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"Please UPDATE now","is_update_command":true,"success":true}`, w.Body.String())
	assert.NoFileExists(t, seenPath, "upload must be removed after transcription")
}

func TestTranscribe(t *testing.T) {
	engine := &mocks.MockEngine{}
	engine.On("Transcribe", mock.Anything, mock.Anything).Return([]stt.Segment{{Text: "hello"}, {Text: "there"}}, nil)

	w := upload(t, setupTranscriptionRouter(t, engine, 0), "/transcribe", "file", "clip.m4a", []byte("data"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"hello there","success":true}`, w.Body.String())
}

func TestUploadErrorsNeverInvokeEngine(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		filename string
		data     []byte
		want     int
		body     string
	}{
		{name: "missing file", field: "", want: http.StatusBadRequest, body: `{"error":"No audio file provided","success":false}`},
		{name: "wrong field", field: "audio", filename: "a.wav", data: []byte("x"), want: http.StatusBadRequest, body: `{"error":"No audio file provided","success":false}`},
		{name: "empty filename", field: "file", filename: "", data: []byte("x"), want: http.StatusBadRequest, body: `{"error":"No file selected","success":false}`},
		{name: "too large", field: "file", filename: "a.wav", data: make([]byte, 4096), want: http.StatusRequestEntityTooLarge, body: `{"error":"Audio file too large","success":false}`},
	}

	for _, tt := range tests {
		for _, path := range []string{"/transcribe", "/command"} {
			t.Run(tt.name+path, func(t *testing.T) {
				engine := &mocks.MockEngine{}
				w := upload(t, setupTranscriptionRouter(t, engine, 1024), path, tt.field, tt.filename, tt.data)

				assert.Equal(t, tt.want, w.Code)
				assert.JSONEq(t, tt.body, w.Body.String())
				engine.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
			})
		}
	}
}

func TestNonMultipartRequest(t *testing.T) {
	engine := &mocks.MockEngine{}
	router := setupTranscriptionRouter(t, engine, 0)

	req := httptest.NewRequest(http.MethodPost, "/transcribe", bytes.NewBufferString(`{"file":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	engine.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
}

func TestTranscribeEngineError(t *testing.T) {
	var seenPath string
	engine := &mocks.MockEngine{}
	engine.On("Transcribe", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { seenPath = args.String(1) }).
		Return(nil, errors.New("model crashed"))

	w := upload(t, setupTranscriptionRouter(t, engine, 0), "/command", "file", "clip.wav", []byte("RIFF"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "model crashed")
	assert.Contains(t, w.Body.String(), `"success":false`)
	_, err := os.Stat(seenPath)
	assert.True(t, os.IsNotExist(err), "upload must be removed on error paths too")
}

func TestTranscribeSurvivesClientDisconnect(t *testing.T) {
	var engineErr error
	engine := &mocks.MockEngine{}
	engine.On("Transcribe", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { engineErr = args.Get(0).(context.Context).Err() }).
		Return([]stt.Segment{{Text: "hello"}}, nil)

	body, contentType := multipartBody(t, "file", "clip.wav", []byte("RIFF"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/transcribe", body).WithContext(ctx)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	setupTranscriptionRouter(t, engine, 1<<20).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, engineErr, "engine must not see the client's cancellation")
	engine.AssertExpectations(t)
}

func TestCommandWithMockEngine(t *testing.T) {
	router := setupTranscriptionRouter(t, stt.NewMockEngine(), 0)

	w := upload(t, router, "/command", "file", "clip.wav", make([]byte, 2000))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"update","is_update_command":true,"success":true,"mock":true}`, w.Body.String())

	w = upload(t, router, "/command", "file", "clip.wav", make([]byte, 10))
	assert.JSONEq(t, `{"text":"noise","is_update_command":false,"success":true,"mock":true}`, w.Body.String())
}

func TestTranscriptionHealth(t *testing.T) {
	w := httptest.NewRecorder()
	setupTranscriptionRouter(t, stt.NewMockEngine(), 0).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.JSONEq(t, `{"status":"healthy","model":"mock-whisperx-tiny"}`, w.Body.String())
}

func TestAudioExt(t *testing.T) {
	assert.Equal(t, ".m4a", audioExt("clip.M4A"))
	assert.Equal(t, ".wav", audioExt("clip"))
	assert.Equal(t, ".wav", audioExt("clip.../../x"))
	assert.Equal(t, ".wav", audioExt("clip.verylongext"))
}
