package service

import (
	"github.com/ahdhani/boilerplate/pkg/api/types/products"
	kdb "github.com/ahdhani/boilerplate/pkg/db"
	"github.com/ahdhani/boilerplate/pkg/domain"
)

// NewProduct wires the product service: a validated products.Spec
// becomes a transient domain.Product, field by field.
func NewProduct(
	repo kdb.CrudInterface[domain.Product],
) *Service[domain.Product, products.Spec] {
	return New(repo, func(spec products.Spec) domain.Product {
		return domain.Product{
			Name:        spec.Name,
			Description: spec.Description,
			Price:       spec.Price,
			Stock:       spec.Stock,
		}
	})
}
