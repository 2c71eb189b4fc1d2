package service

import (
	"careertest/internal/content"
	"careertest/internal/model"
	"careertest/internal/repository"
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ContentService loads the question bank and profile table once at startup
type ContentService struct {
	repo   repository.ContentRepo
	logger *zap.Logger
}

// NewContentService creates a new content service. repo may be nil when
// only the embedded content is used.
func NewContentService(repo repository.ContentRepo, logger *zap.Logger) *ContentService {
	return &ContentService{
		repo:   repo,
		logger: logger,
	}
}

// LoadEmbedded builds content from the bundle compiled into the binary
func (s *ContentService) LoadEmbedded() (*content.Content, error) {
	c, err := content.Embedded()
	if err != nil {
		return nil, err
	}
	s.logger.Info("content loaded",
		zap.String("source", "embedded"),
		zap.String("version", c.Version),
		zap.Int("questions", len(c.Questions)))
	return c, nil
}

// LoadStored fetches the questions and profiles for version concurrently
// and builds content from them
func (s *ContentService) LoadStored(ctx context.Context, version string) (*content.Content, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("no content repository configured")
	}

	var (
		questions []model.RawQuestion
		profiles  []model.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.repo.GetQuestions(gctx, version)
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		profiles, err = s.repo.GetProfiles(gctx, version)
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c, err := content.Build(&model.ContentBundle{
		Version:   version,
		Questions: questions,
		Profiles:  profiles,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("content loaded",
		zap.String("source", "mongo"),
		zap.String("version", version),
		zap.Int("questions", len(c.Questions)))
	return c, nil
}

// Seed writes bundle into the content repository under its version
func (s *ContentService) Seed(ctx context.Context, bundle *model.ContentBundle) error {
	if s.repo == nil {
		return fmt.Errorf("no content repository configured")
	}
	if err := content.Validate(bundle); err != nil {
		return err
	}
	if err := s.repo.ReplaceQuestions(ctx, bundle.Version, bundle.Questions); err != nil {
		return err
	}
	if err := s.repo.ReplaceProfiles(ctx, bundle.Version, bundle.Profiles); err != nil {
		return err
	}
	s.logger.Info("content seeded",
		zap.String("version", bundle.Version),
		zap.Int("questions", len(bundle.Questions)),
		zap.Int("profiles", len(bundle.Profiles)))
	return nil
}
