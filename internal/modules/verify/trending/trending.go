// Package trending exposes the ranked trending-headline feed, each
// headline already run through the fact-check pipeline. A background
// job keeps a snapshot warm so the endpoint does not pay the full
// pipeline cost on every request.
package trending

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/project-clarion/core/internal/modules/verify/check"
	"github.com/project-clarion/core/internal/pkg/response"
)

// Service holds the latest trending snapshot. Refresh is driven by the
// scheduler; requests read the snapshot and fall back to a live fetch
// only before the first successful refresh.
type Service struct {
	engine *check.Service

	mu        sync.RWMutex
	items     []check.TrendingItem
	refreshed time.Time
}

func NewService(engine *check.Service) *Service {
	return &Service{engine: engine}
}

// Refresh recomputes the trending feed and replaces the snapshot. A
// failed refresh keeps the previous snapshot in place.
func (s *Service) Refresh(ctx context.Context) error {
	items, err := s.engine.FetchTrending(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.refreshed = time.Now()
	s.mu.Unlock()
	return nil
}

// Feed returns the current snapshot, fetching live when no refresh has
// succeeded yet.
func (s *Service) Feed(ctx context.Context) ([]check.TrendingItem, error) {
	s.mu.RLock()
	items, warm := s.items, !s.refreshed.IsZero()
	s.mu.RUnlock()
	if warm {
		return items, nil
	}

	items, err := s.engine.FetchTrending(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.refreshed.IsZero() {
		s.items = items
		s.refreshed = time.Now()
	}
	s.mu.Unlock()
	return items, nil
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/trending", h.trending)
}

// GET /trending
func (h *Handler) trending(c *gin.Context) {
	items, err := h.svc.Feed(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}
