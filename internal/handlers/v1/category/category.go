package category

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name"`
	Kind      string `json:"kind" doc:"income or expense"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(cat service.Category) Category {
	return Category{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Kind:      cat.Kind.String(),
		CreatedAt: cat.CreatedAt.Format(time.RFC3339),
	}
}
