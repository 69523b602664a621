package search

import (
	"context"

	"github.com/meublia-cloud/furndex/internal/domain/catalog"
	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
	"github.com/meublia-cloud/furndex/internal/domain/search/request"
)

// Extractor produces a structured intent from raw query text.
type Extractor interface {
	Extract(ctx context.Context, query string) (domintent.Intent, error)
}

// Repository retrieves candidate products from the catalog store. Intent
// constraints and explicit filters are both enforced; only in-stock
// products are returned.
type Repository interface {
	FindCandidates(
		ctx context.Context, retailerID string,
		it domintent.Intent, filters request.Filters, limit int,
	) ([]catalog.Product, error)
}
