package products

import (
	apiproducts "github.com/ahdhani/boilerplate/pkg/api/types/products"
	"github.com/ahdhani/boilerplate/pkg/domain"
)

func ComposeDetail(p domain.Product) apiproducts.Detail {
	return apiproducts.Detail{
		ProductId:   p.Id,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}
