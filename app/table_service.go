package app

import (
	"context"
	"sort"
	"strings"
	"time"

	"sheetstore/domain/core"
	"sheetstore/domain/tabular"
	"sheetstore/internal"
	"sheetstore/ports"
)

// PersistResult reports the outcome of one upload write.
type PersistResult struct {
	DocumentID string `json:"id"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

// TableSummary is one entry of the list view.
type TableSummary struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	RowCount   int       `json:"rowCount"`
	UploadedAt time.Time `json:"uploadedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SearchResult carries the matching rows of a single stored table.
type SearchResult struct {
	DocumentID   string     `json:"documentId"`
	FileName     string     `json:"fileName"`
	Headers      []string   `json:"headers"`
	MatchingRows [][]string `json:"matchingRows"`
	MatchCount   int        `json:"matchCount"`
}

// TableService owns the persistence policy for uploaded tables. It keeps
// no state between requests; the injected store is the sole arbiter of
// write ordering per document id.
type TableService struct {
	store ports.DocumentStore
	now   func() time.Time
}

func NewTableService(store ports.DocumentStore) *TableService {
	return &TableService{store: store, now: time.Now}
}

// Upload encodes the dataset and persists it. A caller-supplied id merges
// into the document at that id, preserving fields the write does not
// carry - uploadedAt in particular, which always reflects the first
// persistence. A derived id creates a new document with both timestamps
// set. The derived path performs no collision check: the time suffix
// makes a collision statistically impossible.
func (s *TableService) Upload(ctx context.Context, ds *tabular.Dataset, explicitID string) (PersistResult, error) {
	now := s.now()
	id, explicit := tabular.ResolveIdentity(explicitID, ds.FileName, now)

	fields := ports.Document{
		"fileName":  ds.FileName,
		"headers":   ds.Headers,
		"rowCount":  ds.RowCount,
		"rowsData":  tabular.EncodeRows(ds.Headers, ds.Rows),
		"updatedAt": now,
	}

	var err error
	if explicit {
		err = s.store.Merge(ctx, id, fields, ports.Document{"uploadedAt": now})
	} else {
		fields["uploadedAt"] = now
		err = s.store.Set(ctx, id, fields)
	}
	if err != nil {
		return PersistResult{DocumentID: id, Message: err.Error()}, err
	}

	message := "file stored as new document"
	if explicit {
		message = "file merged into document " + id
	}
	internal.DefaultLogger.Info("[TableService] persisted %s (%d rows, explicit=%t)", id, ds.RowCount, explicit)
	return PersistResult{DocumentID: id, Success: true, Message: message}, nil
}

// Get fetches and decodes one stored table.
func (s *TableService) Get(ctx context.Context, id string) (*tabular.StoredTable, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeStored(id, doc), nil
}

// List returns summaries of every stored table, newest upload first.
func (s *TableService) List(ctx context.Context) ([]TableSummary, error) {
	stored, err := s.store.Query(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]TableSummary, 0, len(stored))
	for _, item := range stored {
		summaries = append(summaries, TableSummary{
			ID:         item.ID,
			FileName:   asString(item.Doc["fileName"]),
			RowCount:   asInt(item.Doc["rowCount"]),
			UploadedAt: asTime(item.Doc["uploadedAt"]),
			UpdatedAt:  asTime(item.Doc["updatedAt"]),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UploadedAt.After(summaries[j].UploadedAt)
	})
	return summaries, nil
}

// Delete removes one stored table. Deleting an absent id succeeds.
func (s *TableService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Search runs a full-collection scan: every stored table is decoded and
// filtered to rows where any cell's lower-cased string form contains the
// lower-cased term. Tables with no matching rows are omitted; results
// follow storage iteration order and rows keep decode order. Linear in
// total stored cells, which is acceptable at the volumes this service
// targets.
func (s *TableService) Search(ctx context.Context, term string) ([]SearchResult, int, error) {
	if strings.TrimSpace(term) == "" {
		return nil, 0, core.ErrMissingSearchTerm
	}
	stored, err := s.store.Query(ctx)
	if err != nil {
		return nil, 0, err
	}

	needle := strings.ToLower(term)
	results := make([]SearchResult, 0)
	total := 0
	for _, item := range stored {
		table := decodeStored(item.ID, item.Doc)
		var matching [][]string
		for _, row := range table.Rows {
			for _, cell := range row {
				if strings.Contains(strings.ToLower(cell), needle) {
					matching = append(matching, row)
					break
				}
			}
		}
		if len(matching) == 0 {
			continue
		}
		results = append(results, SearchResult{
			DocumentID:   item.ID,
			FileName:     table.FileName,
			Headers:      table.Headers,
			MatchingRows: matching,
			MatchCount:   len(matching),
		})
		total += len(matching)
	}
	return results, total, nil
}
