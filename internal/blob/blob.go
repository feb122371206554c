// Package blob stores uploaded files and returns the URL they are served from.
package blob

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store writes an object under key and returns its public URL.
type Store interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ResumeKey builds the object key for a user's uploaded resume:
// resumes/<userID>-<unix millis>-<sanitized filename>.
func ResumeKey(userID uuid.UUID, now time.Time, filename string) string {
	return fmt.Sprintf("resumes/%s-%d-%s", userID, now.UnixMilli(), SanitizeFilename(filename))
}

// SanitizeFilename drops any directory part and replaces characters that are
// awkward in URLs and object keys.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "resume.pdf"
	}
	return name
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
