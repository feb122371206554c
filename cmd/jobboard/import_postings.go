package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/observability"
	"github.com/jonathan/job-board/internal/schemas"
	"github.com/jonathan/job-board/internal/types"
	"github.com/spf13/cobra"
)

var (
	importFile      string
	importRecruiter string
)

var importPostingsCmd = &cobra.Command{
	Use:   "import-postings",
	Short: "Publish job postings from a JSON file",
	Long: `Validate a JSON file of postings against the posting import schema and publish
every posting under the recruiter profile owned by the given account email.
Nothing is written unless the whole file is valid.`,
	RunE: runImportPostings,
}

func init() {
	importPostingsCmd.Flags().StringVar(&importFile, "file", "", "Path to the postings JSON file (required)")
	importPostingsCmd.Flags().StringVar(&importRecruiter, "recruiter", "", "Email of the recruiter account that owns the postings (required)")
	_ = importPostingsCmd.MarkFlagRequired("file")
	_ = importPostingsCmd.MarkFlagRequired("recruiter")
	rootCmd.AddCommand(importPostingsCmd)
}

func runImportPostings(cmd *cobra.Command, _ []string) error {
	doc, err := os.ReadFile(importFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", importFile)
	}

	_, store, _, cleanup, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	return importPostings(cmd.Context(), store, cmd.OutOrStdout(), doc, importRecruiter)
}

type postingImport struct {
	Postings []types.CreateJobPostingRequest `json:"postings"`
}

// importPostings validates doc and creates each posting for the recruiter
// owning recruiterEmail.
func importPostings(ctx context.Context, store db.Store, out io.Writer, doc []byte, recruiterEmail string) error {
	if err := schemas.ValidatePostingImport(doc); err != nil {
		return err
	}

	var batch postingImport
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&batch); err != nil {
		return errors.Wrap(err, "failed to decode postings")
	}
	for i := range batch.Postings {
		if err := batch.Postings[i].Validate(); err != nil {
			return errors.Newf("posting %d: %s", i+1, types.ValidationMessage(err))
		}
	}

	recruiter, err := recruiterByEmail(ctx, store, recruiterEmail)
	if err != nil {
		return err
	}

	created := make([]db.JobPosting, 0, len(batch.Postings))
	for i := range batch.Postings {
		posting, err := store.CreateJobPosting(ctx, recruiter.ID, batch.Postings[i].ToInput())
		if err != nil {
			return errors.Wrapf(err, "failed to create posting %d (%s)", i+1, batch.Postings[i].Title)
		}
		created = append(created, *posting)
	}

	observability.NewPrinter(out).PrintImportSummary(recruiter.CompanyName, created)
	return nil
}

func recruiterByEmail(ctx context.Context, store db.Store, email string) (*db.Recruiter, error) {
	user, err := store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, errors.Newf("no account with email %s", email)
		}
		return nil, err
	}
	if user.UserType != db.UserTypeRecruiter {
		return nil, errors.Newf("%s is not a recruiter account", email)
	}

	recruiter, err := store.GetRecruiterByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, errors.Newf("%s has no recruiter profile", email)
		}
		return nil, err
	}
	return recruiter, nil
}
