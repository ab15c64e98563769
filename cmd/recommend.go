package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank jobs for a user",
	Long: `Reads {"user_data": {...}, "jobs": [...]} and prints the jobs worth
recommending, best match first. Jobs the user already applied to are never
returned.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd, "recommend")
		if err != nil {
			return err
		}
		defer s.close()

		return runRecommend(s)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("input", "i", "", "JSON request file, or - for stdin")
	recommendCmd.Flags().IntP("limit", "l", recommend.DefaultLimit, "maximum number of recommendations")

	viper.BindPFlag("limit", recommendCmd.Flags().Lookup("limit"))
}

func runRecommend(s *session) error {
	r, err := s.renderer()
	if err != nil {
		return err
	}

	user, batch, err := s.userAndJobs()
	if err != nil {
		return err
	}

	recs, err := recommend.New(s.logger).Recommend(s.ctx, user, batch, s.config.Limit)
	if err != nil {
		return err
	}

	s.logger.Info("recommendations ready", zap.Int("count", len(recs)))
	return r.Recommendations(recs)
}
