package db

import (
	"context"

	"github.com/ahdhani/boilerplate/pkg/domain"
)

// Database hands out one data-access interface per entity,
// plus schema bookkeeping.
type Database interface {
	Product() CrudInterface[domain.Product]
	Schema() SchemaInterface
	Close() error
}

// SchemaInterface manages the version of the database schema.
type SchemaInterface interface {
	// Version returns the schema version stored in the database.
	//
	// 0 means "no schema at all".
	Version(ctx context.Context) (int, error)

	// Upgrade applies schema definitions newer than Version, in order.
	Upgrade(ctx context.Context) error
}
