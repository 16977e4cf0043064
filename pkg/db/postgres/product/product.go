// Package product binds domain.Product to its postgres table.
package product

import (
	"github.com/jackc/pgx/v4"

	kpool "github.com/ahdhani/boilerplate/pkg/conn/db/postgres/pool"
	"github.com/ahdhani/boilerplate/pkg/db"
	"github.com/ahdhani/boilerplate/pkg/db/postgres/crud"
	"github.com/ahdhani/boilerplate/pkg/domain"
)

const TableName = "product"

// Table is the descriptor the generic repository runs on.
//
// "id", "created_at" and "updated_at" are server-assigned
// (sequence and now() defaults in the schema), so they are
// selected but never inserted.
func Table() crud.Table[domain.Product] {
	return crud.Table[domain.Product]{
		Name: TableName,
		Columns: []string{
			"id", "created_at", "updated_at",
			"name", "description", "price", "stock",
		},
		Scan: func(row pgx.Row) (domain.Product, error) {
			var p domain.Product
			err := row.Scan(
				&p.Id, &p.CreatedAt, &p.UpdatedAt,
				&p.Name, &p.Description, &p.Price, &p.Stock,
			)
			return p, err
		},
		InsertColumns: []string{"name", "description", "price", "stock"},
		InsertArgs: func(p domain.Product) []interface{} {
			return []interface{}{p.Name, p.Description, p.Price, p.Stock}
		},
	}
}

func New(pool kpool.Pool) db.CrudInterface[domain.Product] {
	return crud.New(pool, Table())
}
