package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/interests"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Print the interest profile learned from a user's activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd, "learn")
		if err != nil {
			return err
		}
		defer s.close()

		return runLearn(s)
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)

	learnCmd.Flags().StringP("input", "i", "", "JSON request file, or - for stdin")
}

func runLearn(s *session) error {
	r, err := s.renderer()
	if err != nil {
		return err
	}

	user, err := s.userData()
	if err != nil {
		return err
	}

	profile := interests.Learn(user)
	s.logger.Debug("learned interests",
		zap.Int("skills", len(profile.Skills)),
		zap.Int("job_types", len(profile.JobTypes)),
		zap.Int("locations", len(profile.Locations)),
	)

	return r.Interests(profile)
}
