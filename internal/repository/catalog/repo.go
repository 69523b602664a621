package catalog

import (
	"context"
	"fmt"

	"github.com/meublia-cloud/furndex/internal/db"
	domcatalog "github.com/meublia-cloud/furndex/internal/domain/catalog"
	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
	"github.com/meublia-cloud/furndex/internal/domain/search/filter"
	"github.com/meublia-cloud/furndex/internal/domain/search/request"
)

// DefaultKeyPrefix namespaces all catalog keys.
const DefaultKeyPrefix = "furndex:"

// returnFields lists the product hash fields fetched for scoring.
var returnFields = []string{
	"id", "title", "description", "category", "type", "material",
	"fabric", "color", "style", "room", "price", "stock_qty",
}

// store is the consumer interface for catalog operations (ISP).
type store interface {
	SearchCatalog(ctx context.Context, q *db.CatalogQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/search.Repository over the catalog store, and
// carries the write path used by the import tooling. The search path never
// writes.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a catalog repository.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Repo{store: s, keyPrefix: keyPrefix}
}

func (r *Repo) indexName(retailerID string) string {
	return fmt.Sprintf("%s%s:idx", r.keyPrefix, retailerID)
}

func (r *Repo) productPrefix(retailerID string) string {
	return fmt.Sprintf("%s%s:product:", r.keyPrefix, retailerID)
}

func (r *Repo) productKey(retailerID, id string) string {
	return r.productPrefix(retailerID) + id
}

// FindCandidates retrieves in-stock products matching the intent and the
// explicit filters, both enforced conjunctively.
func (r *Repo) FindCandidates(
	ctx context.Context, retailerID string,
	it domintent.Intent, filters request.Filters, limit int,
) ([]domcatalog.Product, error) {
	expr, err := buildExpression(it, filters)
	if err != nil {
		return nil, fmt.Errorf("build catalog filters: %w", err)
	}

	res, err := r.store.SearchCatalog(ctx, &db.CatalogQuery{
		IndexName:    r.indexName(retailerID),
		Filters:      expr,
		Limit:        limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("search catalog %s: %w", retailerID, err)
	}

	products := make([]domcatalog.Product, 0, len(res.Entries))
	for _, entry := range res.Entries {
		products = append(products, productFromFields(entry.Key, entry.Fields))
	}
	return products, nil
}

// buildExpression translates intent constraints plus explicit filters into
// one filter expression. Both sets land in the must group, so a product has
// to satisfy every predicate even when two predicates bound the same
// attribute. Keywords form the any-of group: at least one has to appear in
// title or description.
func buildExpression(it domintent.Intent, f request.Filters) (filter.Expression, error) {
	var must []filter.Condition

	// Out-of-stock products never surface.
	inStock, err := stockCondition()
	if err != nil {
		return filter.Expression{}, err
	}
	must = append(must, inStock)

	type attrConstraint struct {
		value string
		keys  []string
	}
	constraints := []attrConstraint{
		// Category matches when either type or category contains the value.
		{it.Category, []string{"type", "category"}},
		{it.Color, []string{"color"}},
		{it.Material, []string{"material"}},
		{it.Style, []string{"style"}},
		{it.Room, []string{"room"}},
		{f.Category, []string{"type", "category"}},
		{f.Color, []string{"color"}},
		{f.Material, []string{"material"}},
		{f.Style, []string{"style"}},
		{f.Room, []string{"room"}},
	}
	for _, c := range constraints {
		if c.value == "" {
			continue
		}
		cond, err := filter.NewContains(c.value, c.keys...)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}

	for _, bound := range []struct {
		gte, lte *float64
	}{
		{it.PriceMin, it.PriceMax},
		{f.PriceMin, f.PriceMax},
	} {
		if bound.gte == nil && bound.lte == nil {
			continue
		}
		rng, err := filter.NewRangeFilter(bound.gte, bound.lte)
		if err != nil {
			return filter.Expression{}, err
		}
		cond, err := filter.NewRange("price", rng)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}

	var anyOf []filter.Condition
	for _, kw := range it.Keywords {
		if len(anyOf) == filter.MaxConditionsPerGroup {
			break
		}
		cond, err := filter.NewContains(kw, "title", "description")
		if err != nil {
			return filter.Expression{}, err
		}
		anyOf = append(anyOf, cond)
	}

	return filter.NewExpression(must, anyOf)
}

func stockCondition() (filter.Condition, error) {
	one := 1.0
	rng, err := filter.NewRangeFilter(&one, nil)
	if err != nil {
		return filter.Condition{}, err
	}
	return filter.NewRange("stock_qty", rng)
}

// --- Write path (import tooling only) ---

// EnsureIndex creates the retailer's FT index; an existing index is fine.
func (r *Repo) EnsureIndex(ctx context.Context, retailerID string) error {
	exists, err := r.store.IndexExists(ctx, r.indexName(retailerID))
	if err != nil {
		return fmt.Errorf("check catalog index %s: %w", retailerID, err)
	}
	if exists {
		return nil
	}

	def := db.NewIndex(r.indexName(retailerID)).
		Prefix(r.productPrefix(retailerID)).
		Tag("category").
		Tag("type").
		Tag("material").
		Tag("fabric").
		Tag("color").
		Tag("style").
		Tag("room").
		Text("title").
		Text("description").
		Numeric("price").
		Numeric("stock_qty").
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil && err != db.ErrIndexExists {
		return fmt.Errorf("create catalog index %s: %w", retailerID, err)
	}
	return nil
}

// DropIndex removes the retailer's FT index.
func (r *Repo) DropIndex(ctx context.Context, retailerID string) error {
	if err := r.store.DropIndex(ctx, r.indexName(retailerID)); err != nil && err != db.ErrIndexNotFound {
		return fmt.Errorf("drop catalog index %s: %w", retailerID, err)
	}
	return nil
}

// Count reports how many products the retailer's index currently holds.
func (r *Repo) Count(ctx context.Context, retailerID string) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(retailerID), "*")
	if err != nil {
		return 0, fmt.Errorf("count products %s: %w", retailerID, err)
	}
	return n, nil
}

// Upsert writes products in one pipelined round-trip.
func (r *Repo) Upsert(ctx context.Context, retailerID string, products []domcatalog.Product) error {
	items := make([]db.HashSetItem, 0, len(products))
	for i := range products {
		items = append(items, db.HashSetItem{
			Key:    r.productKey(retailerID, products[i].ID),
			Fields: fieldsFromProduct(&products[i]),
		})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert products %s: %w", retailerID, err)
	}
	return nil
}

// Get reads one product by id.
func (r *Repo) Get(ctx context.Context, retailerID, id string) (domcatalog.Product, error) {
	fields, err := r.store.HGetAll(ctx, r.productKey(retailerID, id))
	if err != nil {
		return domcatalog.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	if len(fields) == 0 {
		return domcatalog.Product{}, db.ErrKeyNotFound
	}
	return productFromFields(r.productKey(retailerID, id), fields), nil
}

// Delete removes one product.
func (r *Repo) Delete(ctx context.Context, retailerID, id string) error {
	if err := r.store.Del(ctx, r.productKey(retailerID, id)); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}
