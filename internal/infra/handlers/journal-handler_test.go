package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiobio/internal/domain/dto"
	"audiobio/internal/infra/handlers"
	"audiobio/internal/infra/logger"
	"audiobio/internal/infra/repository"
	"audiobio/internal/infra/routes"
	"audiobio/internal/infra/services"
	"audiobio/internal/middleware"
)

type fakeStorage struct {
	keys []string
}

func (f *fakeStorage) Upload(_ context.Context, key string, body io.Reader, _ string) error {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return err
	}
	f.keys = append(f.keys, key)
	return nil
}

type fakeTranscriber struct {
	text string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string, audio io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, audio); err != nil {
		return "", err
	}
	return f.text, nil
}

type testServer struct {
	router      *mux.Router
	repo        *repository.MemoryUserRepository
	storage     *fakeStorage
	transcriber *fakeTranscriber
	now         time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		repo:        repository.NewMemoryUserRepository(),
		storage:     &fakeStorage{},
		transcriber: &fakeTranscriber{text: "dear diary"},
		now:         time.Date(2024, time.February, 10, 15, 0, 0, 0, time.UTC),
	}

	log := logger.NewLogger(context.Background(), true)
	authService := services.NewAuthService("test-secret", 30*time.Minute, log)
	journalService := services.NewJournalService(ts.repo, log).WithClock(func() time.Time { return ts.now })

	authHandlers := handlers.NewAuthHandlers(log, ts.repo, authService)
	journalHandlers := handlers.NewJournalHandlers(log, journalService, ts.storage, ts.transcriber)

	ts.router = mux.NewRouter()
	r := routes.NewRoutes(
		ts.router,
		authHandlers,
		journalHandlers,
		middleware.AuthMiddleware(log, authService, ts.repo),
	)
	r.Init()
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) signup(t *testing.T, email string) string {
	t.Helper()
	body, _ := json.Marshal(dto.SignupRequest{Email: email, Name: "Sam Rivera", Password: "hunter22"})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	rec := ts.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var token dto.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func (ts *testServer) authedRequest(method, target, token string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func multipartUpload(t *testing.T, filename, contentType, length string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	require.NoError(t, writer.WriteField("length_in_seconds", length))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake audio bytes"))
	require.NoError(t, err)

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestSignupLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "sam@example.com")

	// duplicate signup is rejected
	body, _ := json.Marshal(dto.SignupRequest{Email: "sam@example.com", Name: "Sam", Password: "x"})
	rec := ts.do(httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	form := url.Values{"username": {"sam@example.com"}, "password": {"hunter22"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token dto.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.Equal(t, "bearer", token.TokenType)

	form.Set("password", "wrong")
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusUnauthorized, ts.do(req).Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/progress_time_today", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/progress_time_today", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	assert.Equal(t, http.StatusUnauthorized, ts.do(req).Code)
}

func TestUploadFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "sam@example.com")

	body, contentType := multipartUpload(t, "morning.mp3", "audio/mpeg", "30.0")
	req := ts.authedRequest(http.MethodPost, "/upload", token, body)
	req.Header.Set("Content-Type", contentType)
	rec := ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Filename, "AudioBio_Recording_"))
	assert.True(t, strings.HasSuffix(resp.Filename, ".mp3"))
	require.Len(t, ts.storage.keys, 1)
	assert.Equal(t, resp.Filename, ts.storage.keys[0])

	// progress reflects the upload
	rec = ts.do(ts.authedRequest(http.MethodGet, "/progress_time_today", token, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var progress dto.ProgressTimeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.InDelta(t, 30.0, progress.ProgressTime, 1e-9)

	// the transcription landed on the entry
	rec = ts.do(ts.authedRequest(http.MethodGet, "/journal_entries_today", token, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var entries dto.JournalEntriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries.Transcripts, 1)
	require.NotNil(t, entries.Transcripts[0])
	assert.Equal(t, "dear diary", *entries.Transcripts[0])
}

func TestUploadRejectsNonAudio(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "sam@example.com")

	body, contentType := multipartUpload(t, "notes.txt", "text/plain", "10")
	req := ts.authedRequest(http.MethodPost, "/upload", token, body)
	req.Header.Set("Content-Type", contentType)
	assert.Equal(t, http.StatusBadRequest, ts.do(req).Code)
	assert.Empty(t, ts.storage.keys)
}

func TestUploadRejectsMissingLength(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "sam@example.com")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="audio"; filename="morning.mp3"`)
	header.Set("Content-Type", "audio/mpeg")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake audio bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := ts.authedRequest(http.MethodPost, "/upload", token, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, ts.do(req).Code)
}

func TestStreaksEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "sam@example.com")

	body, contentType := multipartUpload(t, "morning.mp3", "audio/mpeg", "61.5")
	req := ts.authedRequest(http.MethodPost, "/upload", token, body)
	req.Header.Set("Content-Type", contentType)
	require.Equal(t, http.StatusOK, ts.do(req).Code)

	rec := ts.do(ts.authedRequest(http.MethodGet, "/streaks/2/2024", token, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var streaks []dto.Streak
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &streaks))
	require.Len(t, streaks, 29)
	assert.Equal(t, "01_FEB_2024", streaks[0].Date)
	assert.InDelta(t, 61.5, streaks[9].ProgressTime, 1e-9, "10_FEB_2024 carries the upload")

	rec = ts.do(ts.authedRequest(http.MethodGet, "/streaks/13/2024", token, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAllJournalsSortedNewestFirst(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "sam@example.com")

	upload := func(length string) {
		body, contentType := multipartUpload(t, "rec.mp3", "audio/mpeg", length)
		req := ts.authedRequest(http.MethodPost, "/upload", token, body)
		req.Header.Set("Content-Type", contentType)
		require.Equal(t, http.StatusOK, ts.do(req).Code)
	}

	upload("10")
	ts.now = ts.now.AddDate(0, 0, 1)
	upload("20")

	rec := ts.do(ts.authedRequest(http.MethodGet, "/all_journals", token, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var journals []dto.JournalDay
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &journals))
	require.Len(t, journals, 2)
	assert.Equal(t, "11_FEB_2024", journals[0].Date)
	assert.Equal(t, "10_FEB_2024", journals[1].Date)
}

func TestDeleteJournalEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "sam@example.com")

	body, contentType := multipartUpload(t, "rec.mp3", "audio/mpeg", "15")
	req := ts.authedRequest(http.MethodPost, "/upload", token, body)
	req.Header.Set("Content-Type", contentType)
	require.Equal(t, http.StatusOK, ts.do(req).Code)

	rec := ts.do(ts.authedRequest(http.MethodDelete, "/journal/10/2/2024", token, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var status dto.DeleteStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "success", status.Status)

	rec = ts.do(ts.authedRequest(http.MethodGet, "/progress_time_today", token, nil))
	var progress dto.ProgressTimeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Zero(t, progress.ProgressTime)

	// deleting a day that was never recorded still succeeds
	rec = ts.do(ts.authedRequest(http.MethodDelete, "/journal/1/1/2020", token, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// an impossible date is rejected
	rec = ts.do(ts.authedRequest(http.MethodDelete, "/journal/30/2/2024", token, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
