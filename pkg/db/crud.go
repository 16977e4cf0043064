package db

import (
	"context"
)

// Page is one page of records with pagination bookkeeping.
//
// RecordCount is the total number of records in the store,
// ignoring pagination. PageCount is how many pages of the
// requested size exist in total.
type Page[E any] struct {
	Records     []E
	RecordCount int
	PageCount   int
}

// SaveOption modifies the behaviour of CrudInterface.Save .
type SaveOption struct {
	// reload the entity from the store after commit,
	// to pick up server-assigned fields (id, timestamps).
	Refresh bool
}

func DefaultSaveOption() SaveOption {
	return SaveOption{Refresh: true}
}

// Save without re-reading the saved entity.
//
// The returned entity carries its server-assigned id,
// but not server-assigned timestamps.
func WithoutRefresh() func(*SaveOption) *SaveOption {
	return func(o *SaveOption) *SaveOption {
		o.Refresh = false
		return o
	}
}

// CrudInterface is the generic data-access contract, bound to one entity
// type. Every method is its own unit of work: it acquires a connection,
// runs inside a single transaction where it mutates, and commits or rolls
// back before returning. No atomicity is provided across calls.
type CrudInterface[E any] interface {
	// GetOrNull finds the entity identified by id.
	//
	// (nil, nil) when no such entity exists.
	GetOrNull(ctx context.Context, id int) (*E, error)

	// Get finds the entity identified by id.
	//
	// When no such entity exists, it returns kerr.Missing .
	Get(ctx context.Context, id int) (*E, error)

	// Save inserts a new entity and commits.
	//
	// On success it returns the saved entity, reloaded from the store
	// unless WithoutRefresh is given.
	//
	// When the insert violates a uniqueness constraint, it rolls back
	// and returns kerr.Conflict . Other store errors roll back and
	// propagate untranslated.
	Save(ctx context.Context, entity E, opts ...func(*SaveOption) *SaveOption) (*E, error)

	// List returns up to pageSize entities from offset
	// pageNumber*pageSize (pageNumber is 0-based), ordered by id
	// ascending.
	List(ctx context.Context, pageNumber int, pageSize int) ([]E, error)

	// ListPaginated is List plus total record count and page count.
	ListPaginated(ctx context.Context, pageNumber int, pageSize int) (Page[E], error)

	// Delete removes the entity identified by id and commits.
	//
	// When no such entity exists, it returns kerr.Missing .
	Delete(ctx context.Context, id int) error
}
