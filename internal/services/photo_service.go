package services

import (
	"context"
	"errors"
	"mime/multipart"
	"path"

	"album-backend/internal/models"
	"album-backend/internal/repository"
	"album-backend/internal/storage"
)

const defaultPhotoColor = "#FFFFFF"

type PhotoStore interface {
	CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	ListPhotosByAlbum(ctx context.Context, albumID int) ([]models.Photo, error)
	GetPhoto(ctx context.Context, albumID, photoID int) (*models.Photo, error)
	UpdatePhoto(ctx context.Context, albumID, photoID int, changes models.PhotoChanges) (*models.Photo, error)
	DeletePhoto(ctx context.Context, albumID, photoID int) error
}

type FileStore interface {
	Save(fileHeader *multipart.FileHeader) (filename string, size int64, err error)
	RemoveQuietly(filename string)
}

type PhotoService struct {
	albums AlbumStore
	photos PhotoStore
	files  FileStore
}

func NewPhotoService(albums AlbumStore, photos PhotoStore, files FileStore) *PhotoService {
	return &PhotoService{albums: albums, photos: photos, files: files}
}

type CreatePhotoInput struct {
	Title       string
	Description string
	Date        string
	Color       string
	File        *multipart.FileHeader
}

// Create validates the metadata and the attachment, writes the file, then
// records the photo. All field validation happens before the file is
// written; if the record insert fails after that, the stored file is
// removed again.
func (s *PhotoService) Create(ctx context.Context, albumID int, in CreatePhotoInput) (*models.PhotoView, error) {
	if in.File == nil {
		return nil, ErrNoFile
	}
	if in.Title == "" || in.Date == "" {
		return nil, ErrMissingFields
	}

	takenAt, err := ParseDate(in.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	color := in.Color
	if color == "" {
		color = defaultPhotoColor
	} else if !ValidHexColor(color) {
		return nil, ErrInvalidColor
	}

	if _, err := s.albums.GetAlbum(ctx, albumID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}

	filename, size, err := s.files.Save(in.File)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidFileType):
			return nil, ErrNoFile
		case errors.Is(err, storage.ErrFileTooLarge):
			return nil, ErrFileTooLarge
		}
		return nil, err
	}

	photo := &models.Photo{
		AlbumID:     albumID,
		Title:       in.Title,
		Description: in.Description,
		TakenAt:     takenAt,
		Size:        size,
		Color:       color,
		FilePath:    "/uploads/" + filename,
	}

	created, err := s.photos.CreatePhoto(ctx, photo)
	if err != nil {
		s.files.RemoveQuietly(filename)
		if errors.Is(err, repository.ErrRestrictViolation) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}

	view := created.View()
	return &view, nil
}

func (s *PhotoService) ListByAlbum(ctx context.Context, albumID int) ([]models.PhotoView, error) {
	if _, err := s.albums.GetAlbum(ctx, albumID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}

	photos, err := s.photos.ListPhotosByAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	views := make([]models.PhotoView, 0, len(photos))
	for i := range photos {
		views = append(views, photos[i].View())
	}
	return views, nil
}

// Get looks a photo up under its album; a photo id belonging to a different
// album is not found.
func (s *PhotoService) Get(ctx context.Context, albumID, photoID int) (*models.PhotoView, error) {
	photo, err := s.photos.GetPhoto(ctx, albumID, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	view := photo.View()
	return &view, nil
}

// Update applies only the supplied fields. Date and color are validated
// when present; size and file path are immutable.
func (s *PhotoService) Update(ctx context.Context, albumID, photoID int, req models.UpdatePhotoRequest) (*models.PhotoView, error) {
	changes := models.PhotoChanges{
		Title:       req.Title,
		Description: req.Description,
	}

	if req.Date != nil {
		takenAt, err := ParseDate(*req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		changes.TakenAt = &takenAt
	}
	if req.Color != nil {
		if !ValidHexColor(*req.Color) {
			return nil, ErrInvalidColor
		}
		changes.Color = req.Color
	}

	photo, err := s.photos.UpdatePhoto(ctx, albumID, photoID, changes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	view := photo.View()
	return &view, nil
}

// Delete removes the record and then the backing file. File removal is
// best-effort; a leftover file is logged, the delete still succeeds.
func (s *PhotoService) Delete(ctx context.Context, albumID, photoID int) error {
	photo, err := s.photos.GetPhoto(ctx, albumID, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	if err := s.photos.DeletePhoto(ctx, albumID, photoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	s.files.RemoveQuietly(path.Base(photo.FilePath))
	return nil
}
