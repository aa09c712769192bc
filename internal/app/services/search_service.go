package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/app/search"
	"github.com/yigit/coursehub/internal/config"
)

// SearchService handles course discovery requests
type SearchService interface {
	Search(ctx context.Context, in search.Input) (*search.Output, error)
}

type searchServiceImpl struct {
	engine *search.Engine
}

// NewSearchService wires the search engine from the repositories and the
// configured tuning parameters.
func NewSearchService(repos *repositories.Repositories, refData RefDataService, cfg *config.Config, lgr zerolog.Logger) SearchService {
	opts := engineOptions(cfg.Search)
	engine := search.NewEngine(
		repos.Catalog,
		repos.Instructor,
		repos.Eval,
		repos.Offering,
		refData,
		opts,
		lgr,
	)
	return &searchServiceImpl{engine: engine}
}

// Search runs one search request through the engine.
func (s *searchServiceImpl) Search(ctx context.Context, in search.Input) (*search.Output, error) {
	return s.engine.Search(ctx, in)
}

// engineOptions maps the configuration section onto the engine knobs.
func engineOptions(sc config.SearchConfig) search.Options {
	return search.Options{
		PageSize:       sc.PageSize,
		MinQueryLength: sc.MinQueryLength,
		Weights: search.Weights{
			Code:        sc.Weights.Code,
			Content:     sc.Weights.Content,
			Instructor:  sc.Weights.Instructor,
			SubjectName: sc.Weights.SubjectName,
			Fallback:    sc.Weights.Fallback,
		},
		Resolver: search.ResolverParams{
			FullNameWeight:  sc.Instructor.FullNameWeight,
			LastNameWeight:  sc.Instructor.LastNameWeight,
			FirstNameWeight: sc.Instructor.FirstNameWeight,
			TrustThreshold:  sc.Instructor.TrustThreshold,
			KeepRatio:       sc.Instructor.KeepRatio,
			AssistantFactor: sc.Instructor.AssistantFactor,
			BestWeight:      sc.Instructor.BestWeight,
			AvgWeight:       sc.Instructor.AvgWeight,
			CrowdPenalty:    sc.Instructor.CrowdPenalty,
		},
	}
}
