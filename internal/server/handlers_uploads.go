package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/job-board/internal/blob"
	"github.com/jonathan/job-board/internal/logger"
	"go.uber.org/zap"
)

const (
	pdfMIME = "application/pdf"
	// multipartOverhead covers boundaries and part headers around the file.
	multipartOverhead = 64 << 10
)

// handleUploadResume stores a PDF resume and returns its public URL.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}

	maxBytes := s.cfg.Upload.MaxBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	tooLarge := fmt.Sprintf("File size must be less than %dMB", maxBytes>>20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if isBodyTooLarge(err) {
			s.errorResponse(w, http.StatusBadRequest, tooLarge)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		s.errorResponse(w, http.StatusBadRequest, tooLarge)
		return
	}

	// Sniff the content; the client's Content-Type is not trusted.
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		s.respond.fail(w, r, err, "Failed to read upload")
		return
	}
	if !mtype.Is(pdfMIME) {
		s.errorResponse(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		s.respond.fail(w, r, err, "Failed to read upload")
		return
	}

	key := blob.ResumeKey(userID, s.now(), header.Filename)
	url, err := s.blobs.Put(r.Context(), key, pdfMIME, file)
	if err != nil {
		s.respond.fail(w, r, err, "Failed to upload file")
		return
	}
	s.log.Info("resume uploaded",
		zap.String(logger.FieldUserID, userID.String()),
		zap.String("key", key),
		zap.Int64("bytes", header.Size),
	)

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "File uploaded successfully",
		"url":     url,
	})
}

// isBodyTooLarge reports whether err came from the request body limit.
func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}
