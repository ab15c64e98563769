package cmd

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/catalog"
	"github.com/spigell/jobmatch/internal/jobs"
	"github.com/spigell/jobmatch/internal/payload"
)

var errNoSource = errors.New("either --input or --catalog is required")

func (s *session) fromCatalog() bool {
	return s.config.Catalog != ""
}

func (s *session) request() (*payload.Request, error) {
	if s.input == "" {
		return nil, errNoSource
	}

	req, err := payload.Read(payload.Source{Path: s.input, Stdin: s.in})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("read request",
		zap.String("input", s.input),
		zap.Int("jobs", len(req.Jobs)),
		zap.Bool("target_job", !req.TargetJob.IsEmpty()),
	)
	return req, nil
}

func (s *session) openCatalog() (*catalog.Catalog, error) {
	return catalog.Open(s.ctx, s.config.Catalog, s.logger)
}

func (s *session) catalogUser(c *catalog.Catalog) (*jobs.UserData, error) {
	if s.config.User <= 0 {
		return nil, fmt.Errorf("--user is required with --catalog")
	}
	return c.UserData(s.ctx, s.config.User)
}

// userData loads the user without any job batch.
func (s *session) userData() (*jobs.UserData, error) {
	if !s.fromCatalog() {
		req, err := s.request()
		if err != nil {
			return nil, err
		}
		return req.UserData, nil
	}

	c, err := s.openCatalog()
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return s.catalogUser(c)
}

// userAndJobs loads the user together with the batch to rank.
func (s *session) userAndJobs() (*jobs.UserData, []*jobs.Job, error) {
	if !s.fromCatalog() {
		req, err := s.request()
		if err != nil {
			return nil, nil, err
		}
		return req.UserData, req.Jobs, nil
	}

	c, err := s.openCatalog()
	if err != nil {
		return nil, nil, err
	}
	defer c.Close()

	user, err := s.catalogUser(c)
	if err != nil {
		return nil, nil, err
	}
	batch, err := c.ActiveJobs(s.ctx)
	if err != nil {
		return nil, nil, err
	}
	return user, batch, nil
}
