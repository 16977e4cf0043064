package domain

import (
	"time"
)

// Product is a sellable item in the catalog.
//
// Id, CreatedAt and UpdatedAt are assigned by the store on insert.
// Id never changes afterwards. UpdatedAt is refreshed by the store on
// every mutation, so UpdatedAt >= CreatedAt holds at all times.
type Product struct {
	Id          int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Description string
	Price       int
	Stock       int
}

func (p Product) Equal(o Product) bool {
	return p.Id == o.Id &&
		p.Name == o.Name &&
		p.Description == o.Description &&
		p.Price == o.Price &&
		p.Stock == o.Stock &&
		p.CreatedAt.Equal(o.CreatedAt) &&
		p.UpdatedAt.Equal(o.UpdatedAt)
}
