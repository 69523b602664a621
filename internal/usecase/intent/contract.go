package intent

import (
	"context"

	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
)

// Extractor turns raw query text into a structured intent. The search
// pipeline composes extractors so that extraction as a whole never fails:
// a returned error only means this strategy is unusable for the query and
// the next one should run.
type Extractor interface {
	Extract(ctx context.Context, query string) (domintent.Intent, error)
}
