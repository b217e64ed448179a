// Package service defines the interfaces between the CLI layer and its
// collaborators, primarily the local catalog storage.
package service

import (
	"context"

	"github.com/lunaroak/tally-ho/internal/model"
	"github.com/lunaroak/tally-ho/internal/series"
)

// CatalogReader looks up the rows the cost engine consumes. A nil result
// with a nil error means the SKU has no row; the engine degrades rather
// than erroring, so stores must not invent an error for that case.
type CatalogReader interface {
	GetProduct(ctx context.Context, sku string) (*model.ProductMaster, error)
	GetShippingGroup(ctx context.Context, sellerSKU string) (*model.ShippingGroupMapping, error)
	GetComposition(ctx context.Context, parentSKU string) (*model.CompositionSummary, error)
}

// CatalogWriter loads catalog rows, replacing any existing row per SKU.
type CatalogWriter interface {
	SaveProducts(ctx context.Context, products []model.ProductMaster) error
	SaveShippingGroups(ctx context.Context, mappings []model.ShippingGroupMapping) error
	SaveCompositions(ctx context.Context, compositions []model.CompositionSummary) error
}

// ObservationStore persists per-period metric values and reads them back
// oldest first for analysis.
type ObservationStore interface {
	RecordObservation(ctx context.Context, metric string, point series.Point) error
	GetObservations(ctx context.Context, metric string) ([]series.Point, error)
}

// CatalogStore is the full storage surface the CLI wires up.
type CatalogStore interface {
	CatalogReader
	CatalogWriter
	ObservationStore
	Close() error
}
