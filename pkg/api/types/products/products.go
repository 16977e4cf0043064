// Package products declares the wire shapes of the product API.
package products

import (
	apierr "github.com/ahdhani/boilerplate/pkg/api/types/errors"
)

const (
	MaxNameLength        = 128
	MaxDescriptionLength = 1024
)

// Spec is what a caller supplies to create a product.
type Spec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
}

// Validate checks the declarative field constraints.
//
// It returns one FieldViolation per offending field (all of them,
// not just the first), or nil when the spec is acceptable.
// Uniqueness of Name is NOT checked here; the store enforces that.
func (s Spec) Validate() []apierr.FieldViolation {
	violations := []apierr.FieldViolation{}

	if s.Name == "" {
		violations = append(violations, apierr.FieldViolation{
			Field: "name", Reason: apierr.ReasonRequired,
		})
	}
	if MaxNameLength < len(s.Name) {
		violations = append(violations, apierr.FieldViolation{
			Field: "name", Reason: apierr.ReasonMaxLength(MaxNameLength),
		})
	}
	if MaxDescriptionLength < len(s.Description) {
		violations = append(violations, apierr.FieldViolation{
			Field: "description", Reason: apierr.ReasonMaxLength(MaxDescriptionLength),
		})
	}
	if s.Price < 0 {
		violations = append(violations, apierr.FieldViolation{
			Field: "price", Reason: apierr.ReasonNonNegative,
		})
	}
	if s.Stock < 0 {
		violations = append(violations, apierr.FieldViolation{
			Field: "stock", Reason: apierr.ReasonNonNegative,
		})
	}

	if len(violations) == 0 {
		return nil
	}
	return violations
}

// Detail is what the API returns for a product: the Spec fields echoed
// back, plus the server-assigned identity under its public alias.
type Detail struct {
	ProductId   int    `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
}

func (d Detail) Equal(o Detail) bool {
	return d == o
}
