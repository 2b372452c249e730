package check

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/project-clarion/core/internal/modules/sources"
	"github.com/project-clarion/core/internal/pkg/cache"
	"github.com/project-clarion/core/internal/pkg/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrEmptyClaim is the only error FactCheck returns to the caller;
// every provider-side failure degrades into the Verdict instead.
var ErrEmptyClaim = errors.New("claim must not be empty")

const trendingCount = 5

// FactChecker looks a claim up in the structured fact-check database.
type FactChecker interface {
	Query(ctx context.Context, claim string) (*sources.FactCheckHit, error)
}

// NewsSearcher finds corroborating articles and the trending feed.
type NewsSearcher interface {
	Search(ctx context.Context, query string) ([]sources.Article, error)
	Trending(ctx context.Context, limit int) ([]sources.Article, error)
}

// Analyzer assesses a claim grounded on article evidence.
type Analyzer interface {
	Analyze(ctx context.Context, claim string, evidence []sources.Article) (string, error)
}

// Service is the fact-check orchestration engine: cache lookup, retried
// source queries, composition, cache store.
type Service struct {
	factcheck FactChecker
	news      NewsSearcher
	ai        Analyzer
	store     cache.Store
	retryCfg  retry.Config
	logger    *zap.Logger
	flight    singleflight.Group
}

// NewService wires the engine. The retry predicate is fixed to the
// shared transient classification.
func NewService(factcheck FactChecker, news NewsSearcher, ai Analyzer, store cache.Store, retryCfg retry.Config, logger *zap.Logger) *Service {
	retryCfg.Retryable = sources.IsTransient
	return &Service{
		factcheck: factcheck,
		news:      news,
		ai:        ai,
		store:     store,
		retryCfg:  retryCfg,
		logger:    logger,
	}
}

// FactCheck runs one claim through the pipeline: normalize →
// fingerprint → cache → sources → compose → cache. It rejects only a
// blank claim; provider failures degrade into the Verdict.
func (s *Service) FactCheck(ctx context.Context, claim string) (*Verdict, error) {
	trimmed := strings.TrimSpace(claim)
	if trimmed == "" {
		return nil, ErrEmptyClaim
	}

	fp := Fingerprint(trimmed)

	if cached, ok := s.cacheGet(ctx, fp); ok {
		return cached, nil
	}

	// Concurrent identical claims collapse into one upstream
	// computation; followers receive the leader's verdict.
	result, err, _ := s.flight.Do(fp, func() (interface{}, error) {
		// The pipeline outlives the caller: an abandoned request still
		// completes and warms the cache for the next one.
		return s.compute(context.WithoutCancel(ctx), trimmed, fp)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Verdict), nil
}

func (s *Service) compute(ctx context.Context, claim, fp string) (*Verdict, error) {
	in := composeInput{Claim: claim}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		in.FactCheck, in.FactCheckErr = s.queryFactCheck(gctx, claim)
		return nil
	})

	g.Go(func() error {
		// The analyzer is sequenced after the news search so it can
		// ground on the articles; a failed search just means
		// ungrounded analysis.
		in.Articles, in.NewsErr = s.searchNews(gctx, claim)
		in.Analysis, in.AnalysisErr = s.analyze(gctx, claim, in.Articles)
		return nil
	})

	_ = g.Wait()

	s.logDegradations(claim, in)

	verdict := compose(in)

	data, err := json.Marshal(verdict)
	if err != nil {
		return nil, fmt.Errorf("encode verdict: %w", err)
	}
	if err := s.store.Put(ctx, fp, data); err != nil {
		s.logger.Warn("verdict cache store failed", zap.String("fingerprint", fp), zap.Error(err))
	}

	return verdict, nil
}

// FetchTrending pulls the current top headlines and runs each one
// through the single-claim pipeline, assigning stable 1-based ranks.
func (s *Service) FetchTrending(ctx context.Context) ([]TrendingItem, error) {
	var headlines []sources.Article
	err := retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		var err error
		headlines, err = s.news.Trending(ctx, trendingCount)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch trending headlines: %w", err)
	}

	items := make([]TrendingItem, len(headlines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(trendingCount)

	for i, headline := range headlines {
		g.Go(func() error {
			verdict, err := s.FactCheck(gctx, headline.Title)
			if err != nil {
				return err
			}
			items[i] = trendingItem(i+1, headline, verdict)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return items, nil
}

func trendingItem(rank int, headline sources.Article, verdict *Verdict) TrendingItem {
	item := TrendingItem{
		ID:              rank,
		Title:           headline.Title,
		Source:          headline.Source,
		URL:             headline.URL,
		PublishedDate:   headline.PublishedAt,
		Verdict:         verdict.Verdict,
		Summary:         "No fact-check available",
		FactCheckSource: "N/A",
	}
	if item.Source == "" {
		item.Source = "Unknown"
	}
	if gfc := verdict.GoogleFactCheck; gfc != nil {
		item.Summary = gfc.Summary
		item.FactCheckSource = gfc.Source
	}
	return item
}

func (s *Service) queryFactCheck(ctx context.Context, claim string) (*sources.FactCheckHit, error) {
	var hit *sources.FactCheckHit
	err := retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		var err error
		hit, err = s.factcheck.Query(ctx, claim)
		return err
	})
	if err != nil {
		return nil, err
	}
	return hit, nil
}

func (s *Service) searchNews(ctx context.Context, claim string) ([]sources.Article, error) {
	var articles []sources.Article
	err := retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		var err error
		articles, err = s.news.Search(ctx, claim)
		return err
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *Service) analyze(ctx context.Context, claim string, evidence []sources.Article) (string, error) {
	var analysis string
	err := retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		var err error
		analysis, err = s.ai.Analyze(ctx, claim, evidence)
		return err
	})
	if err != nil {
		return "", err
	}
	return analysis, nil
}

func (s *Service) cacheGet(ctx context.Context, fp string) (*Verdict, bool) {
	data, found, err := s.store.Get(ctx, fp)
	if err != nil {
		s.logger.Warn("verdict cache lookup failed", zap.String("fingerprint", fp), zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var verdict Verdict
	if err := json.Unmarshal(data, &verdict); err != nil {
		s.logger.Warn("corrupt cache entry dropped", zap.String("fingerprint", fp), zap.Error(err))
		return nil, false
	}
	return &verdict, true
}

func (s *Service) logDegradations(claim string, in composeInput) {
	for source, err := range map[string]error{
		"factcheckdb": in.FactCheckErr,
		"newsdata":    in.NewsErr,
		"reasoning":   in.AnalysisErr,
	} {
		if err != nil {
			s.logger.Warn("source degraded",
				zap.String("source", source),
				zap.String("claim", claim),
				zap.Error(err),
			)
		}
	}
}
