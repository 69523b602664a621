package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/meublia-cloud/furndex/internal/db"
	"github.com/meublia-cloud/furndex/internal/domain/search/filter"
)

// textFields are indexed as TEXT; every other filterable attribute is a TAG.
var textFields = map[string]bool{
	"title":       true,
	"description": true,
}

// SearchCatalog runs a filtered catalog query via FT.SEARCH.
func (s *Store) SearchCatalog(ctx context.Context, q *db.CatalogQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	queryStr := buildFilterQuery(q.Filters)

	args := []string{q.IndexName, queryStr}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	args = append(args, "LIMIT", "0", strconv.Itoa(q.Limit), "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseSearchResult(raw)
}

// SearchCount returns document count via FT.SEARCH with LIMIT 0 0.
func (s *Store) SearchCount(ctx context.Context, index, query string) (int, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").Args(index, query, "LIMIT", "0", "0", "DIALECT", "2").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// --- Result parsing ---

// parseSearchResult parses the RESP2 FT.SEARCH reply:
// [total, key1, [f1, v1, ...], key2, [f1, v1, ...], ...].
func parseSearchResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	res := &db.SearchResult{Total: int(total)}

	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse entry key: %w", err)
		}

		fieldPairs, err := raw[i+1].ToArray()
		if err != nil {
			return nil, fmt.Errorf("parse entry fields for %s: %w", key, err)
		}

		fields := make(map[string]string, len(fieldPairs)/2)
		for j := 0; j+1 < len(fieldPairs); j += 2 {
			name, err := fieldPairs[j].ToString()
			if err != nil {
				continue
			}
			value, err := fieldPairs[j+1].ToString()
			if err != nil {
				continue
			}
			fields[name] = value
		}

		res.Entries = append(res.Entries, db.SearchEntry{Key: key, Fields: fields})
	}

	return res, nil
}

// --- Query rendering ---

// buildFilterQuery renders a filter expression into FT.SEARCH query syntax.
// Must conditions are space-joined (AND); any-of conditions form one
// pipe-joined group (at least one must hold).
func buildFilterQuery(expr filter.Expression) string {
	if expr.IsEmpty() {
		return "*"
	}

	var parts []string

	for _, cond := range expr.Must() {
		parts = append(parts, buildCondition(cond))
	}

	if group := buildAnyOfGroup(expr.AnyOf()); group != "" {
		parts = append(parts, group)
	}

	return strings.Join(parts, " ")
}

func buildAnyOfGroup(conditions []filter.Condition) string {
	if len(conditions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		parts = append(parts, buildCondition(cond))
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

// buildCondition renders one condition. Contains conditions over several
// keys become a pipe-joined group so that any listed attribute may match.
func buildCondition(cond filter.Condition) string {
	if cond.IsRange() {
		return buildNumericFilter(cond.Keys()[0], *cond.Range())
	}

	keys := cond.Keys()
	clauses := make([]string, 0, len(keys))
	for _, key := range keys {
		clauses = append(clauses, buildContainsFilter(key, cond.Contains()))
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "(" + strings.Join(clauses, " | ") + ")"
}

// buildContainsFilter renders a substring predicate. DIALECT 2 infix
// wildcards supply the contains semantics on both TAG and TEXT fields.
func buildContainsFilter(key, value string) string {
	escaped := escapeToken(value)
	if textFields[key] {
		return fmt.Sprintf("@%s:(*%s*)", key, escaped)
	}
	return fmt.Sprintf("@%s:{*%s*}", key, escaped)
}

func buildNumericFilter(key string, r filter.Range) string {
	lo := "-inf"
	hi := "+inf"
	if v := r.GTE(); v != nil {
		lo = formatNum(*v)
	}
	if v := r.LTE(); v != nil {
		hi = formatNum(*v)
	}
	return fmt.Sprintf("@%s:[%s %s]", key, lo, hi)
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeToken escapes FT.SEARCH query syntax characters in a value.
func escapeToken(s string) string {
	return tokenEscaper.Replace(s)
}

var tokenEscaper = strings.NewReplacer(
	`\`, `\\`,
	` `, `\ `,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`,`, `\,`,
)
