package primary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tasnif/internal/models"
	"tasnif/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- Taxonomy Management ---

func (s *StoreImpl) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	if category.Slug == "" {
		category.Slug = slugify(category.Name)
	}

	err := s.db.QueryRow(ctx, query,
		category.Name, category.Slug, category.Position, now, now,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("category with name or slug already exists: %w", store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT id, name, slug, position, created_at, updated_at FROM categories WHERE id = $1`
	category := &models.Category{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Slug, &category.Position,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by id %d: %w", id, err)
	}
	return category, nil
}

func (s *StoreImpl) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	query := `SELECT id, name, slug, position, created_at, updated_at FROM categories WHERE LOWER(name) = LOWER($1)`
	category := &models.Category{}
	err := s.db.QueryRow(ctx, query, name).Scan(
		&category.ID, &category.Name, &category.Slug, &category.Position,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by name '%s': %w", name, err)
	}
	return category, nil
}

func (s *StoreImpl) ListCategories(ctx context.Context) ([]*models.Category, error) {
	query := `SELECT id, name, slug, position, created_at, updated_at FROM categories ORDER BY position ASC, id ASC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		err := rows.Scan(
			&category.ID, &category.Name, &category.Slug, &category.Position,
			&category.CreatedAt, &category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func (s *StoreImpl) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	query := `
		INSERT INTO subcategories (category_id, name, slug, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	if sub.Slug == "" {
		sub.Slug = slugify(sub.Name)
	}

	err := s.db.QueryRow(ctx, query,
		sub.CategoryID, sub.Name, sub.Slug, sub.Position, now, now,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return fmt.Errorf("subcategory already exists in category %d: %w", sub.CategoryID, store.ErrDuplicate)
			case "23503": // foreign_key_violation
				return fmt.Errorf("category %d does not exist: %w", sub.CategoryID, store.ErrForeignKeyViolation)
			}
		}
		return fmt.Errorf("failed to insert subcategory: %w", err)
	}
	return nil
}

func (s *StoreImpl) ListSubcategories(ctx context.Context, categoryID int64) ([]*models.Subcategory, error) {
	query := `
		SELECT id, category_id, name, slug, position, created_at, updated_at
		FROM subcategories
		WHERE category_id = $1
		ORDER BY position ASC, id ASC`
	rows, err := s.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	return scanSubcategories(rows)
}

func (s *StoreImpl) ListAllSubcategories(ctx context.Context) ([]*models.Subcategory, error) {
	query := `
		SELECT id, category_id, name, slug, position, created_at, updated_at
		FROM subcategories
		ORDER BY category_id ASC, position ASC, id ASC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	defer rows.Close()

	return scanSubcategories(rows)
}

func scanSubcategories(rows pgx.Rows) ([]*models.Subcategory, error) {
	var subs []*models.Subcategory
	for rows.Next() {
		sub := &models.Subcategory{}
		err := rows.Scan(
			&sub.ID, &sub.CategoryID, &sub.Name, &sub.Slug, &sub.Position,
			&sub.CreatedAt, &sub.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subcategory row: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subcategory rows: %w", err)
	}
	return subs, nil
}

func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

// Ensure StoreImpl satisfies the TaxonomyStore interface
var _ store.TaxonomyStore = (*StoreImpl)(nil)
