package docstore

import (
	"context"
	"fmt"
	"maps"
	"sort"

	"go.uber.org/zap"

	"github.com/adfharrison1/hashsync/pkg/domain"
	"github.com/adfharrison1/hashsync/pkg/storage"
)

// pageOptions validates opts against the engine's page size cap and fills
// in defaults. A nil opts yields the default page, capped.
func (e *Engine) pageOptions(opts *domain.PaginationOptions) (*domain.PaginationOptions, error) {
	page := *domain.DefaultPaginationOptions()
	if opts != nil {
		page = *opts
		if page.Limit == 0 {
			page.Limit = domain.DefaultPaginationOptions().Limit
		}
	}
	if page.MaxLimit == 0 || page.MaxLimit > e.maxPageSize {
		page.MaxLimit = e.maxPageSize
	}
	if opts == nil || opts.Limit == 0 {
		page.Limit = min(page.Limit, page.MaxLimit)
	}
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPagination, err)
	}
	return &page, nil
}

// Find returns one page of the documents matching every filter field.
// When a filter field is indexed, candidates come from that index and the
// remaining fields are checked per document; otherwise every row is scanned.
func (e *Engine) Find(collName string, filter map[string]interface{}, opts *domain.PaginationOptions) (*domain.PaginationResult, error) {
	page, err := e.pageOptions(opts)
	if err != nil {
		return nil, err
	}
	coll, err := e.getCollection(collName)
	if err != nil {
		return nil, err
	}

	candidates, indexedField := e.indexCandidates(collName, filter)
	if candidates == nil {
		candidates = coll.rows.Snapshot()
	}

	var matches []domain.Document
	for _, doc := range candidates {
		if storage.MatchesFilter(doc, filter) {
			matches = append(matches, doc)
		}
	}

	e.logger.Debug("find",
		zap.String("collection", collName),
		zap.String("index", indexedField),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(matches)))
	return domain.Paginate(cloneAll(matches), page), nil
}

// indexCandidates picks the first indexed filter field (by name) and returns
// the rows it maps the filter value to. It returns nil when no filter field
// is indexed.
func (e *Engine) indexCandidates(collName string, filter map[string]interface{}) ([]domain.Document, string) {
	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if index, ok := e.getIndex(collName, field); ok {
			return index.GetValues(storage.ValueKey(filter[field])), field
		}
	}
	return nil, ""
}

// FindAllStream streams a snapshot of every document in insertion order.
// The channel is closed when the snapshot is exhausted or ctx is done.
func (e *Engine) FindAllStream(ctx context.Context, collName string) (<-chan domain.Document, error) {
	coll, err := e.getCollection(collName)
	if err != nil {
		return nil, err
	}

	snapshot := coll.rows.Snapshot()
	docChan := make(chan domain.Document, 100)
	go func() {
		defer close(docChan)
		for _, doc := range snapshot {
			select {
			case docChan <- maps.Clone(doc):
			case <-ctx.Done():
				return
			}
		}
	}()
	return docChan, nil
}
