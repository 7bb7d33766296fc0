package services

import (
	"context"
	"errors"

	"album-backend/internal/models"
	"album-backend/internal/repository"
)

type AlbumStore interface {
	CreateAlbum(ctx context.Context, ownerID int, title, description string) (*models.Album, error)
	ListAlbumsByOwner(ctx context.Context, ownerID int) ([]models.Album, error)
	GetAlbum(ctx context.Context, id int) (*models.Album, error)
	GetAlbumByOwnerAndTitle(ctx context.Context, ownerID int, title string) (*models.Album, error)
	UpdateAlbum(ctx context.Context, id int, title, description *string) (*models.Album, error)
	DeleteAlbum(ctx context.Context, id int) error
	CountAlbumPhotos(ctx context.Context, albumID int) (int, error)
}

type AlbumService struct {
	users  UserStore
	albums AlbumStore
}

func NewAlbumService(users UserStore, albums AlbumStore) *AlbumService {
	return &AlbumService{users: users, albums: albums}
}

// Create makes a new album for an existing owner. Titles are unique per
// owner: the lookup gives the friendly conflict answer, the unique index
// closes the race between concurrent creates.
func (s *AlbumService) Create(ctx context.Context, ownerID int, title, description string) (*models.Album, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	_, err := s.albums.GetAlbumByOwnerAndTitle(ctx, ownerID, title)
	if err == nil {
		return nil, ErrDuplicateAlbum
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	album, err := s.albums.CreateAlbum(ctx, ownerID, title, description)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateAlbum
		}
		if errors.Is(err, repository.ErrRestrictViolation) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return album, nil
}

// ListByOwner returns the owner's albums projected without photo data
func (s *AlbumService) ListByOwner(ctx context.Context, ownerID int) ([]models.AlbumListItem, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	albums, err := s.albums.ListAlbumsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]models.AlbumListItem, 0, len(albums))
	for i := range albums {
		items = append(items, albums[i].ListItem())
	}
	return items, nil
}

func (s *AlbumService) Get(ctx context.Context, albumID int) (*models.Album, error) {
	album, err := s.albums.GetAlbum(ctx, albumID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	return album, nil
}

// Update applies only the supplied fields. Nil means omitted; a pointer to
// an empty string is applied verbatim.
func (s *AlbumService) Update(ctx context.Context, albumID int, title, description *string) (*models.Album, error) {
	album, err := s.albums.UpdateAlbum(ctx, albumID, title, description)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateAlbum
		}
		return nil, err
	}
	return album, nil
}

// Delete removes an empty album. An album that still contains photos is a
// conflict; the RESTRICT foreign key backs the pre-check under concurrency.
func (s *AlbumService) Delete(ctx context.Context, albumID int) error {
	if _, err := s.albums.GetAlbum(ctx, albumID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAlbumNotFound
		}
		return err
	}

	count, err := s.albums.CountAlbumPhotos(ctx, albumID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlbumNotEmpty
	}

	if err := s.albums.DeleteAlbum(ctx, albumID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAlbumNotFound
		}
		if errors.Is(err, repository.ErrRestrictViolation) {
			return ErrAlbumNotEmpty
		}
		return err
	}
	return nil
}
