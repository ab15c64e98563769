package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/textsim"
	"github.com/spigell/jobmatch/internal/utils"
)

const maxLoggedText = 80

var textSimilarityCmd = &cobra.Command{
	Use:   "text-similarity",
	Short: "Compare two texts with TF-IDF cosine similarity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd, "text-similarity")
		if err != nil {
			return err
		}
		defer s.close()

		a, _ := cmd.Flags().GetString("a")
		b, _ := cmd.Flags().GetString("b")
		return runTextSimilarity(s, a, b)
	},
}

func init() {
	rootCmd.AddCommand(textSimilarityCmd)

	textSimilarityCmd.Flags().String("a", "", "first text")
	textSimilarityCmd.Flags().String("b", "", "second text")
	textSimilarityCmd.MarkFlagRequired("a")
	textSimilarityCmd.MarkFlagRequired("b")
}

func runTextSimilarity(s *session, a, b string) error {
	r, err := s.renderer()
	if err != nil {
		return err
	}

	score := textsim.Compare(a, b)
	s.logger.Debug("compared texts",
		zap.String("a", utils.TruncateForLog(a, maxLoggedText)),
		zap.String("b", utils.TruncateForLog(b, maxLoggedText)),
		zap.Float64("similarity", score),
	)

	return r.Similarity(score)
}
