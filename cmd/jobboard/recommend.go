package main

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/matching"
	"github.com/jonathan/job-board/internal/observability"
	"github.com/jonathan/job-board/internal/types"
	"github.com/spf13/cobra"
)

var recommendUser string

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print job recommendations for a job seeker",
	Long:  `Rank the most recent active postings against a job seeker's profile, exactly as GET /recommendations does, and print the result.`,
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendUser, "user", "", "Email of the job seeker account (required)")
	_ = recommendCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, store, _, cleanup, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	engine := matching.NewEngine(matching.WithMaxCandidates(cfg.MaxCandidates))
	return recommend(cmd.Context(), store, engine, cmd.OutOrStdout(), recommendUser)
}

// recommend prints the profile of the seeker owning email and their ranked postings.
func recommend(ctx context.Context, store db.Store, engine *matching.Engine, out io.Writer, email string) error {
	user, err := store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return errors.Newf("no account with email %s", email)
		}
		return err
	}

	printer := observability.NewPrinter(out)

	profile, err := store.GetJobSeekerByUserID(ctx, user.ID)
	if errors.Is(err, db.ErrNotFound) {
		printer.PrintRecommendations(types.EmptyRecommendations())
		return nil
	}
	if err != nil {
		return err
	}

	postings, err := store.ListRecentActivePostings(ctx, engine.MaxCandidates())
	if err != nil {
		return err
	}

	res := engine.Recommend(types.CandidateFromProfile(profile), types.PostingsForScoring(postings))
	printer.PrintProfile(profile)
	printer.PrintRecommendations(types.NewRecommendations(postings, res))
	return nil
}
