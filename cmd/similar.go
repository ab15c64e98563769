package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/jobs"
	"github.com/spigell/jobmatch/internal/payload"
	"github.com/spigell/jobmatch/internal/recommend"
)

var errPickFromStdin = errors.New("--pick needs a terminal and cannot be used with stdin input")

// pickJob asks the user to choose one label. Replaced in tests.
var pickJob = func(labels []string) (string, error) {
	prompt := promptui.Select{
		Label: "Choose a reference job and press ENTER",
		Items: labels,
		Size:  10,
	}
	_, selected, err := prompt.Run()
	return selected, err
}

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Find jobs similar to a reference job",
	Long: `Reads {"target_job": {...}, "jobs": [...]} and prints the jobs that
resemble the target by skills, job type and location. With --catalog the
target is selected by --target.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd, "similar")
		if err != nil {
			return err
		}
		defer s.close()

		target, _ := cmd.Flags().GetInt64("target")
		pick, _ := cmd.Flags().GetBool("pick")
		return runSimilar(s, target, pick)
	},
}

func init() {
	rootCmd.AddCommand(similarCmd)

	similarCmd.Flags().StringP("input", "i", "", "JSON request file, or - for stdin")
	similarCmd.Flags().IntP("limit", "l", recommend.DefaultSimilarLimit, "maximum number of similar jobs")
	similarCmd.Flags().Int64("target", 0, "reference job id in the catalog")
	similarCmd.Flags().Bool("pick", false, "choose the reference job interactively when none is given")

	viper.BindPFlag("similar-limit", similarCmd.Flags().Lookup("limit"))
}

func runSimilar(s *session, target int64, pick bool) error {
	r, err := s.renderer()
	if err != nil {
		return err
	}

	reference, batch, err := s.referenceAndJobs(target)
	if err != nil {
		return err
	}

	if reference.IsEmpty() && pick {
		if s.input == payload.Stdin {
			return errPickFromStdin
		}
		if reference, err = choose(batch); err != nil {
			return err
		}
	}

	similar, err := recommend.New(s.logger).Similar(s.ctx, reference, batch, s.config.SimilarLimit)
	if err != nil {
		return err
	}

	s.logger.Info("similar jobs ready",
		zap.String("reference", string(reference.ID())),
		zap.Int("count", len(similar)),
	)
	return r.SimilarJobs(similar)
}

func (s *session) referenceAndJobs(target int64) (*jobs.Job, []*jobs.Job, error) {
	if !s.fromCatalog() {
		req, err := s.request()
		if err != nil {
			return nil, nil, err
		}
		return req.TargetJob, req.Jobs, nil
	}

	c, err := s.openCatalog()
	if err != nil {
		return nil, nil, err
	}
	defer c.Close()

	batch, err := c.ActiveJobs(s.ctx)
	if err != nil {
		return nil, nil, err
	}
	if target <= 0 {
		return nil, batch, nil
	}

	reference, err := c.Job(s.ctx, target)
	if err != nil {
		return nil, nil, err
	}
	return reference, batch, nil
}

func choose(batch []*jobs.Job) (*jobs.Job, error) {
	b := &jobs.Batch{Items: batch}
	labels := b.Labels()
	if len(labels) == 0 {
		return nil, fmt.Errorf("no jobs with an id to choose from")
	}

	selected, err := pickJob(labels)
	if err != nil {
		return nil, fmt.Errorf("choosing a reference job: %w", err)
	}

	id := jobs.ID(strings.Split(selected, " ")[0])
	reference := b.FindByID(id)
	if reference == nil {
		return nil, fmt.Errorf("there is no such job id %s", id)
	}
	return reference, nil
}
