package repository

import (
	"context"

	"album-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

func (r *PhotoRepo) CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	created := *photo
	query := `INSERT INTO photos (album_id, title, description, taken_at, size, color, file_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		photo.AlbumID, photo.Title, photo.Description, photo.TakenAt, photo.Size, photo.Color, photo.FilePath).
		Scan(&created.ID)
	if err != nil {
		return nil, translate(err)
	}
	return &created, nil
}

func (r *PhotoRepo) ListPhotosByAlbum(ctx context.Context, albumID int) ([]models.Photo, error) {
	query := `SELECT id, album_id, title, description, taken_at, size, color, file_path
		FROM photos WHERE album_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, albumID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.AlbumID, &p.Title, &p.Description, &p.TakenAt, &p.Size, &p.Color, &p.FilePath); err != nil {
			return nil, translate(err)
		}
		photos = append(photos, p)
	}
	return photos, translate(rows.Err())
}

// GetPhoto is scoped to the album: a photo id that exists under another
// album is treated as not found.
func (r *PhotoRepo) GetPhoto(ctx context.Context, albumID, photoID int) (*models.Photo, error) {
	var p models.Photo
	query := `SELECT id, album_id, title, description, taken_at, size, color, file_path
		FROM photos WHERE id = $1 AND album_id = $2`
	err := r.pool.QueryRow(ctx, query, photoID, albumID).
		Scan(&p.ID, &p.AlbumID, &p.Title, &p.Description, &p.TakenAt, &p.Size, &p.Color, &p.FilePath)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// UpdatePhoto applies only non-nil fields; size and file_path are immutable.
func (r *PhotoRepo) UpdatePhoto(ctx context.Context, albumID, photoID int, changes models.PhotoChanges) (*models.Photo, error) {
	var p models.Photo
	query := `UPDATE photos SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			taken_at = COALESCE($5, taken_at),
			color = COALESCE($6, color)
		WHERE id = $1 AND album_id = $2
		RETURNING id, album_id, title, description, taken_at, size, color, file_path`
	err := r.pool.QueryRow(ctx, query, photoID, albumID,
		changes.Title, changes.Description, changes.TakenAt, changes.Color).
		Scan(&p.ID, &p.AlbumID, &p.Title, &p.Description, &p.TakenAt, &p.Size, &p.Color, &p.FilePath)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PhotoRepo) DeletePhoto(ctx context.Context, albumID, photoID int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1 AND album_id = $2`, photoID, albumID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
