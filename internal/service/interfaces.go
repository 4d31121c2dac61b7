// Package service defines the interfaces shared between roomcraft components.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/roomcraft/internal/model"
)

// ProductCatalog is the read-only product query surface.
type ProductCatalog interface {
	Search(params model.SearchParams) []model.Product
	ProductByID(id string) (model.Product, bool)
	ProductsByIDs(ids []string) []model.Product
	Categories() []model.CategorySummary
	CategoriesByRoomType(roomType model.RoomType) []model.CategoryPriority
	// InCategory returns the products of the normalized category in catalog order.
	InCategory(category string) []model.Product
	NextInCategory(category, currentName string, excludeIDs []string) (model.Product, bool)
	Len() int
}

// CachedResponse is a stored raw AI provider response.
type CachedResponse struct {
	CreatedAt time.Time
	Key       string
	Provider  string
	Model     string
	Content   string
}

// ResponseStore persists raw AI responses keyed by prompt hash.
type ResponseStore interface {
	// GetResponse returns the stored response for key. Missing keys report false.
	GetResponse(ctx context.Context, key string) (*CachedResponse, bool, error)
	SaveResponse(ctx context.Context, resp *CachedResponse) error
	// PruneResponses deletes entries created before cutoff and returns the count.
	PruneResponses(ctx context.Context, cutoff time.Time) (int64, error)
	Migrate(ctx context.Context) error
	Close() error
}

// BatchStats shows the results of a batch recommendation run.
type BatchStats struct {
	ByStrategy map[model.SelectionStrategy]int
	Requests   int
	Succeeded  int
	Failed     int
	OverBudget int
	Duration   time.Duration
}
