package repository

import (
	"database/sql"
	"errors"
	"fmt"

	custom_error "github.com/Djoppie/Djoppie-Inventory-sub000/pkg/errors"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

func (r *Repository) GetCategories() (*[]models.Category, error) {
	var categories []models.Category
	query := r.GoquDBWrapper.Select(
		goqu.I("id").As("category_id"),
		"name",
	).From("categories").Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&categories); err != nil {
		return nil, fmt.Errorf("unable to select categories from database: %w", err)
	}

	return &categories, nil
}

// GetCategoryByName resolves a category label case-insensitively. Returns
// sql.ErrNoRows when the category does not exist.
func (r *Repository) GetCategoryByName(name string) (*models.Category, error) {
	var category models.Category
	query := r.GoquDBWrapper.Select(
		goqu.I("id").As("category_id"),
		"name",
	).From("categories").
		Where(goqu.L("LOWER(name) = LOWER(?)", name))

	found, err := query.Executor().ScanStruct(&category)
	if err != nil {
		return nil, fmt.Errorf("unable to select category from database: %w", err)
	}
	if !found {
		return nil, sql.ErrNoRows
	}

	return &category, nil
}

func (r *Repository) PersistCategory(category models.Category) (*models.Category, error) {
	query := r.GoquDBWrapper.Insert("categories").
		Rows(goqu.Record{"name": category.Name}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&category.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, custom_error.WrapDBError("Duplicate category name", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert category record: %w", err)
	}

	return &category, nil
}

func (r *Repository) DeleteCategoryByID(categoryID string) error {
	result, err := r.GoquDBWrapper.Delete("categories").Where(goqu.Ex{"id": categoryID}).Executor().Exec()

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return custom_error.WrapDBError("category", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no category found with id: %s", categoryID)
	}

	return nil
}
