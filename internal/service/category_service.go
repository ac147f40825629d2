package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// Category represents a category in the service layer.
type Category struct {
	ID        uuid.UUID
	Name      string
	Kind      ledger.Kind
	CreatedAt time.Time
}

// CategoryService handles category business logic.
type CategoryService struct {
	read      *storage.Reader
	processor Processor
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(read *storage.Reader, processor Processor) *CategoryService {
	return &CategoryService{read: read, processor: processor}
}

// Create creates a new category and returns its ID.
func (s *CategoryService) Create(ctx context.Context, ownerID string, cat Category) (uuid.UUID, error) {
	action := &actions.CreateCategory{
		OwnerID: ownerID,
		Name:    cat.Name,
		Kind:    cat.Kind,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// List returns all categories for the owner, optionally narrowed by kind.
func (s *CategoryService) List(ctx context.Context, ownerID string, kind *ledger.Kind) ([]Category, error) {
	rows, err := s.read.Categories.List(ctx, ownerID, &category.CategoryFilter{Kind: kind})
	if err != nil {
		return nil, err
	}
	converted := make([]Category, len(rows))
	for i, row := range rows {
		converted[i] = Category{
			ID:        row.ID,
			Name:      row.Name,
			Kind:      row.Kind,
			CreatedAt: row.CreatedAt,
		}
	}
	return converted, nil
}

// Delete removes the category and cascades to every transaction referencing
// it, adjusting account balances. Destructive; callers confirm first.
func (s *CategoryService) Delete(ctx context.Context, ownerID string, id uuid.UUID) (int, error) {
	action := &actions.DeleteCategory{OwnerID: ownerID, CategoryID: id}
	if err := s.processor.Process(ctx, action); err != nil {
		return 0, err
	}
	return action.DeletedTransactions, nil
}
