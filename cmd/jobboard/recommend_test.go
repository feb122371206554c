package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *matching.Engine {
	return matching.NewEngine(
		matching.WithJitter(matching.NoJitter()),
		matching.WithClock(time.Now),
	)
}

func TestRecommend(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	recruiter := seedRecruiter(t, store, "rec@example.com", "Initech")

	_, err := store.CreateJobPosting(ctx, recruiter.ID, &db.JobPostingInput{
		Title:              "Backend Engineer",
		Description:        "Build and operate the order pipeline.",
		Requirements:       "Go",
		Location:           "Austin, TX",
		JobType:            db.JobTypeFullTime,
		ExperienceRequired: 3,
		SkillsRequired:     []string{"Go", "PostgreSQL"},
	})
	require.NoError(t, err)

	user, err := store.CreateUser(ctx, "seeker@example.com", "hash", db.UserTypeJobSeeker)
	require.NoError(t, err)
	_, err = store.UpsertJobSeeker(ctx, user.ID, &db.JobSeekerInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Location:        "Austin, TX",
		Title:           "Backend Engineer",
		Skills:          []string{"Go", "PostgreSQL"},
		ExperienceYears: 5,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, recommend(ctx, store, newTestEngine(), &out, "seeker@example.com"))

	output := out.String()
	assert.Contains(t, output, "JOB SEEKER PROFILE")
	assert.Contains(t, output, "Backend Engineer")
	assert.Contains(t, output, "Initech")
	assert.Contains(t, output, "order pipeline")
}

func TestRecommend_NoProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, "seeker@example.com", "hash", db.UserTypeJobSeeker)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, recommend(ctx, store, newTestEngine(), &out, "seeker@example.com"))
	assert.Contains(t, out.String(), "No recommendations")
}

func TestRecommend_UnknownUser(t *testing.T) {
	store := newTestStore(t)

	err := recommend(context.Background(), store, newTestEngine(), &bytes.Buffer{}, "ghost@example.com")
	assert.ErrorContains(t, err, "no account")
}
