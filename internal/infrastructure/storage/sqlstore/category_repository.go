package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/model"
)

func NewCategoryRepository(db *sql.DB, log *slog.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:  db,
		log: log,
	}
}

type CategoryRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *CategoryRepository) List(ctx context.Context, userID int64) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, group_id, name, type, color, is_active, is_hidden
		 FROM categories WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		var groupID sql.NullInt64
		if err := rows.Scan(&c.ID, &groupID, &c.Name, &c.Type, &c.Color, &c.IsActive, &c.IsHidden); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if groupID.Valid {
			c.GroupID = &groupID.Int64
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) ListGroups(ctx context.Context, userID int64) ([]model.CategoryGroup, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, sort_order FROM category_groups
		 WHERE user_id = $1 ORDER BY sort_order, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list category groups: %w", err)
	}
	defer rows.Close()

	groups := make([]model.CategoryGroup, 0)
	for rows.Next() {
		var g model.CategoryGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.SortOrder); err != nil {
			return nil, fmt.Errorf("scan category group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *CategoryRepository) Create(ctx context.Context, userID int64, cat model.Category) (int64, error) {
	var groupID sql.NullInt64
	if cat.GroupID != nil {
		groupID = sql.NullInt64{Int64: *cat.GroupID, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories (user_id, group_id, name, type, color, is_active, is_hidden)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		userID, groupID, cat.Name, cat.Type, cat.Color, cat.IsActive, cat.IsHidden).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	return id, nil
}

func (r *CategoryRepository) CreateGroup(ctx context.Context, userID int64, group model.CategoryGroup) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO category_groups (user_id, name, sort_order)
		 VALUES ($1, $2, $3) RETURNING id`,
		userID, group.Name, group.SortOrder).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create category group: %w", err)
	}
	return id, nil
}
