package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-board/internal/blob"
	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/db/sqlitedb"
	"github.com/jonathan/job-board/internal/matching"
	"github.com/jonathan/job-board/internal/server/ratelimit"
	"github.com/jonathan/job-board/internal/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	t       *testing.T
	srv     *Server
	store   db.Store
	blobDir string
}

type envOption func(*config.Config, *Deps)

func withRateLimit(rl *ratelimit.Config) envOption {
	return func(_ *config.Config, d *Deps) { d.RateLimit = rl }
}

func withMaxBytes(n int64) envOption {
	return func(c *config.Config, _ *Deps) { c.Upload.MaxBytes = n }
}

// newTestEnv builds a server over an in-memory SQLite store and a local blob
// directory. Rate limiting is off unless an option turns it on.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	ctx := context.Background()

	store, err := sqlitedb.Open(ctx, ":memory:", sqlitedb.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(store.Close)

	return newTestEnvWithStore(t, store, opts...)
}

// newTestEnvWithStore builds the server over an already migrated store.
func newTestEnvWithStore(t *testing.T, store db.Store, opts ...envOption) *testEnv {
	t.Helper()

	dir := t.TempDir()
	blobs, err := blob.NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	cfg := &config.Config{
		Port:          8080,
		DatabaseURL:   "sqlite::memory:",
		MaxCandidates: 50,
		CORSOrigin:    "*",
		Upload: config.UploadConfig{
			Driver:        config.UploadDriverLocal,
			Dir:           dir,
			PublicBaseURL: "/uploads",
			MaxBytes:      5 << 20,
		},
	}
	deps := Deps{
		Store: store,
		Blobs: blobs,
		Engine: matching.NewEngine(
			matching.WithJitter(matching.NoJitter()),
			matching.WithClock(func() time.Time { return testNow }),
		),
		JWT: &config.JWTConfig{Secret: testJWTSecret, ExpirationHours: 24},
		// Lower cost for faster tests
		Password:  &config.PasswordConfig{BcryptCost: bcrypt.MinCost},
		RateLimit: &ratelimit.Config{Enabled: false},
		Clock:     func() time.Time { return testNow },
	}
	for _, opt := range opts {
		opt(cfg, &deps)
	}

	srv, err := New(cfg, deps)
	require.NoError(t, err)
	t.Cleanup(srv.rateLimiter.Stop)

	return &testEnv{t: t, srv: srv, store: store, blobDir: dir}
}

// do sends a JSON request through the full middleware stack.
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token and ID.
func (e *testEnv) register(email string, userType db.UserType) (string, uuid.UUID) {
	e.t.Helper()

	w := e.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":     email,
		"password":  "password123",
		"user_type": string(userType),
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeJSON[types.LoginResponse](e.t, w)
	require.NotEmpty(e.t, resp.Token)
	return resp.Token, resp.User.ID
}

// seeker registers a job seeker with a profile.
func (e *testEnv) seeker(email string, profile map[string]any) (string, uuid.UUID) {
	e.t.Helper()

	token, userID := e.register(email, db.UserTypeJobSeeker)
	if profile == nil {
		profile = map[string]any{
			"first_name":       "Ada",
			"last_name":        "Lovelace",
			"location":         "San Francisco, CA",
			"title":            "Senior Backend Engineer",
			"skills":           []string{"Go", "PostgreSQL"},
			"experience_years": 6,
		}
	}
	w := e.do(http.MethodPost, "/profile/job-seeker", token, profile)
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	return token, userID
}

// recruiter registers a recruiter with a company profile.
func (e *testEnv) recruiter(email, company string) string {
	e.t.Helper()

	token, _ := e.register(email, db.UserTypeRecruiter)
	w := e.do(http.MethodPost, "/profile/recruiter", token, map[string]any{
		"company_name": company,
		"contact_name": "Grace Hopper",
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	return token
}

// postJob creates an active posting and returns it.
func (e *testEnv) postJob(token string, job map[string]any) db.JobPosting {
	e.t.Helper()

	w := e.do(http.MethodPost, "/jobs", token, job)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeJSON[struct {
		Job db.JobPosting `json:"job"`
	}](e.t, w).Job
}

func jobBody(title, location string, skills ...string) map[string]any {
	return map[string]any{
		"title":               title,
		"description":         "Build and run services.",
		"requirements":        "Production experience.",
		"location":            location,
		"job_type":            "full-time",
		"experience_required": 3,
		"skills_required":     skills,
	}
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeJSON[map[string]any](t, w)["error"].(string)
}
