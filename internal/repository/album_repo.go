package repository

import (
	"context"

	"album-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AlbumRepo struct {
	pool *pgxpool.Pool
}

func NewAlbumRepo(pool *pgxpool.Pool) *AlbumRepo {
	return &AlbumRepo{pool: pool}
}

func (r *AlbumRepo) CreateAlbum(ctx context.Context, ownerID int, title, description string) (*models.Album, error) {
	var album models.Album
	query := `INSERT INTO albums (user_id, title, description) VALUES ($1, $2, $3)
		RETURNING id, user_id, title, description`
	err := r.pool.QueryRow(ctx, query, ownerID, title, description).
		Scan(&album.ID, &album.UserID, &album.Title, &album.Description)
	if err != nil {
		return nil, translate(err)
	}
	return &album, nil
}

func (r *AlbumRepo) ListAlbumsByOwner(ctx context.Context, ownerID int) ([]models.Album, error) {
	query := `SELECT id, user_id, title, description FROM albums WHERE user_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	albums := []models.Album{}
	for rows.Next() {
		var album models.Album
		if err := rows.Scan(&album.ID, &album.UserID, &album.Title, &album.Description); err != nil {
			return nil, translate(err)
		}
		albums = append(albums, album)
	}
	return albums, translate(rows.Err())
}

func (r *AlbumRepo) GetAlbum(ctx context.Context, id int) (*models.Album, error) {
	var album models.Album
	query := `SELECT id, user_id, title, description FROM albums WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&album.ID, &album.UserID, &album.Title, &album.Description)
	if err != nil {
		return nil, translate(err)
	}
	return &album, nil
}

func (r *AlbumRepo) GetAlbumByOwnerAndTitle(ctx context.Context, ownerID int, title string) (*models.Album, error) {
	var album models.Album
	query := `SELECT id, user_id, title, description FROM albums WHERE user_id = $1 AND title = $2`
	err := r.pool.QueryRow(ctx, query, ownerID, title).
		Scan(&album.ID, &album.UserID, &album.Title, &album.Description)
	if err != nil {
		return nil, translate(err)
	}
	return &album, nil
}

// UpdateAlbum applies only non-nil fields; nil arguments keep the stored value.
func (r *AlbumRepo) UpdateAlbum(ctx context.Context, id int, title, description *string) (*models.Album, error) {
	var album models.Album
	query := `UPDATE albums SET title = COALESCE($2, title), description = COALESCE($3, description)
		WHERE id = $1 RETURNING id, user_id, title, description`
	err := r.pool.QueryRow(ctx, query, id, title, description).
		Scan(&album.ID, &album.UserID, &album.Title, &album.Description)
	if err != nil {
		return nil, translate(err)
	}
	return &album, nil
}

func (r *AlbumRepo) DeleteAlbum(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AlbumRepo) CountAlbumPhotos(ctx context.Context, albumID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM photos WHERE album_id = $1`, albumID).Scan(&count)
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}
