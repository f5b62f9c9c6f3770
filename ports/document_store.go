package ports

import "context"

// Document is a flat storage record holding JSON-native Go values.
type Document = map[string]any

// Stored pairs a document with its identity.
type Stored struct {
	ID  string
	Doc Document
}

// DocumentStore is the single storage-access capability injected into the
// service layer. The store is the sole arbiter of write ordering and
// isolation per document id; callers hold no locks across these calls.
type DocumentStore interface {
	// Get returns the document at id, or an error satisfying
	// core.IsNotFoundError when it is absent.
	Get(ctx context.Context, id string) (Document, error)

	// Set creates or fully replaces the document at id.
	Set(ctx context.Context, id string, doc Document) error

	// Merge shallow-merges fields into the document at id, creating it if
	// absent. Fields not named in the write are preserved. defaults apply
	// only when the document is created, so first-write fields such as
	// uploadedAt survive later merges.
	Merge(ctx context.Context, id string, fields, defaults Document) error

	// Delete removes the document at id. Deleting an absent id is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Query returns every document in storage iteration order.
	Query(ctx context.Context) ([]Stored, error)
}
