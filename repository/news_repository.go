package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tipbook/database"
	"tipbook/models"
)

// NewsRepository implements the NewsRepository interface
type NewsRepository struct {
	q queryable
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *database.DB) *NewsRepository {
	return &NewsRepository{q: db.Pool}
}

// newNewsRepositoryWithTx creates a new news repository with a transaction
func newNewsRepositoryWithTx(tx queryable) *NewsRepository {
	return &NewsRepository{q: tx}
}

const newsColumns = `id, title, content, image_url, visibility, status, category, created_by, created_at`

func scanNews(row pgx.Row) (*models.News, error) {
	var n models.News
	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.ImageURL,
		&n.Visibility,
		&n.Status,
		&n.Category,
		&n.CreatedBy,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new article and fills in its ID and CreatedAt
func (r *NewsRepository) Create(ctx context.Context, article *models.News) error {
	query := `
		INSERT INTO news (title, content, image_url, visibility, status, category, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		article.Title,
		article.Content,
		article.ImageURL,
		article.Visibility,
		article.Status,
		article.Category,
		article.CreatedBy,
	).Scan(&article.ID, &article.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create news article: %w", err)
	}

	return nil
}

// GetByID retrieves an article by its ID
func (r *NewsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE id = $1`

	article, err := scanNews(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news article %s: %w", id, err)
	}

	return article, nil
}

// List returns articles limited to the given visibilities, newest first
func (r *NewsRepository) List(ctx context.Context, visibilities []models.Visibility) ([]*models.News, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE visibility = ANY($1) ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, visibilityStrings(visibilities))
	if err != nil {
		return nil, fmt.Errorf("failed to list news articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.News
	for rows.Next() {
		article, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news article: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news articles: %w", err)
	}

	return articles, nil
}

// Update persists the mutable article fields
func (r *NewsRepository) Update(ctx context.Context, article *models.News) error {
	query := `
		UPDATE news
		SET title = $1, content = $2, image_url = $3, visibility = $4, status = $5, category = $6
		WHERE id = $7
	`

	result, err := r.q.Exec(ctx, query,
		article.Title,
		article.Content,
		article.ImageURL,
		article.Visibility,
		article.Status,
		article.Category,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update news article %s: %w", article.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("news article %s not found", article.ID)
	}

	return nil
}

// Delete removes an article by ID
func (r *NewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.q.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news article %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("news article %s not found", id)
	}

	return nil
}
