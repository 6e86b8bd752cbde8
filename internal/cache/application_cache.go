// Package cache provides the in-process application metadata cache sitting
// in front of the register store.
package cache

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tracewatch/tracewatch-backend/internal/models"
	"github.com/tracewatch/tracewatch-backend/internal/repository"
)

// ApplicationCache caches application metadata by id. An id with no
// register row resolves to a zero-value Application rather than an error;
// registration is an upstream concern and the topology build degrades
// gracefully on unknown ids.
type ApplicationCache struct {
	repo repository.ApplicationRepository
	lru  *lru.Cache[int, models.Application]
	log  *slog.Logger
}

// NewApplicationCache builds a cache holding up to size entries.
func NewApplicationCache(repo repository.ApplicationRepository, size int, log *slog.Logger) (*ApplicationCache, error) {
	l, err := lru.New[int, models.Application](size)
	if err != nil {
		return nil, err
	}
	return &ApplicationCache{repo: repo, lru: l, log: log}, nil
}

// ApplicationByID resolves application metadata, consulting the store on a
// cache miss. Misses in the store are not cached so late registrations
// become visible.
func (c *ApplicationCache) ApplicationByID(ctx context.Context, applicationID int) models.Application {
	if app, ok := c.lru.Get(applicationID); ok {
		return app
	}

	app, err := c.repo.GetApplication(ctx, applicationID)
	if err != nil {
		c.log.Warn("application lookup failed", "application_id", applicationID, "error", err)
		return models.Application{ApplicationID: applicationID}
	}

	c.lru.Add(applicationID, app)
	return app
}
