package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jonathan/job-board/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func (e *testEnv) upload(token, field, filename string, content []byte) *httptest.ResponseRecorder {
	e.t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(e.t, err)
	_, err = part.Write(content)
	require.NoError(e.t, err)
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/resume", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

func TestUploadResume_StoresPDF(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register("seeker@example.com", db.UserTypeJobSeeker)

	w := env.upload(token, "file", "../My Resume (final).pdf", samplePDF)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeJSON[map[string]string](t, w)
	assert.Equal(t, "File uploaded successfully", resp["message"])
	wantURL := "/uploads/resumes/" + userID.String() + "-" +
		strconv.FormatInt(testNow.UnixMilli(), 10) + "-My_Resume_final_.pdf"
	assert.Equal(t, wantURL, resp["url"])

	stored, err := os.ReadFile(filepath.Join(env.blobDir, strings.TrimPrefix(resp["url"], "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, samplePDF, stored)

	// The local store is served back under its public prefix.
	w = env.do(http.MethodGet, resp["url"], "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, samplePDF, w.Body.Bytes())
}

func TestUploadResume_RejectsNonPDF(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register("seeker@example.com", db.UserTypeJobSeeker)

	// The extension does not matter; the content is sniffed.
	w := env.upload(token, "file", "resume.pdf", []byte("just some plain text, not a pdf"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only PDF files are allowed", errorMessage(t, w))
}

func TestUploadResume_MissingFile(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register("seeker@example.com", db.UserTypeJobSeeker)

	w := env.upload(token, "attachment", "resume.pdf", samplePDF)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", errorMessage(t, w))

	w = env.do(http.MethodPost, "/uploads/resume", token, map[string]string{"file": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadResume_TooLarge(t *testing.T) {
	env := newTestEnv(t, withMaxBytes(1<<20))
	token, _ := env.register("seeker@example.com", db.UserTypeJobSeeker)

	big := append(append([]byte{}, samplePDF...), bytes.Repeat([]byte("0"), 2<<20)...)
	w := env.upload(token, "file", "resume.pdf", big)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File size must be less than 1MB", errorMessage(t, w))
}

func TestUploadResume_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.upload("", "file", "resume.pdf", samplePDF)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
