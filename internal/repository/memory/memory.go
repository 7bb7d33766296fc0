// Package memory provides an in-memory implementation of the repository
// surface. It mirrors the storage-level behavior the services rely on
// (unique (owner, title) per album, restrict-delete while photos reference
// an album, album-scoped photo lookups) and backs the service and handler
// test suites, which must run without a database.
package memory

import (
	"context"
	"sync"

	"album-backend/internal/models"
	"album-backend/internal/repository"
)

type Store struct {
	mu     sync.Mutex
	users  map[int]*models.User
	albums map[int]*models.Album
	photos map[int]*models.Photo
	nextID int
}

func NewStore() *Store {
	return &Store{
		users:  make(map[int]*models.User),
		albums: make(map[int]*models.Album),
		photos: make(map[int]*models.Photo),
	}
}

func (m *Store) id() int {
	m.nextID++
	return m.nextID
}

func (m *Store) CreateUser(_ context.Context, email, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return nil, repository.ErrUniqueViolation
		}
	}
	user := &models.User{ID: m.id(), Email: email, PasswordHash: passwordHash}
	m.users[user.ID] = user
	out := *user
	return &out, nil
}

func (m *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Store) GetUserByID(_ context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *Store) CreateAlbum(_ context.Context, ownerID int, title, description string) (*models.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[ownerID]; !ok {
		return nil, repository.ErrRestrictViolation
	}
	for _, a := range m.albums {
		if a.UserID == ownerID && a.Title == title {
			return nil, repository.ErrUniqueViolation
		}
	}
	album := &models.Album{ID: m.id(), UserID: ownerID, Title: title, Description: description}
	m.albums[album.ID] = album
	out := *album
	return &out, nil
}

func (m *Store) ListAlbumsByOwner(_ context.Context, ownerID int) ([]models.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	albums := []models.Album{}
	for _, a := range m.albums {
		if a.UserID == ownerID {
			albums = append(albums, *a)
		}
	}
	return albums, nil
}

func (m *Store) GetAlbum(_ context.Context, id int) (*models.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.albums[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (m *Store) GetAlbumByOwnerAndTitle(_ context.Context, ownerID int, title string) (*models.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.albums {
		if a.UserID == ownerID && a.Title == title {
			out := *a
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Store) UpdateAlbum(_ context.Context, id int, title, description *string) (*models.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.albums[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if title != nil {
		for _, other := range m.albums {
			if other.ID != id && other.UserID == a.UserID && other.Title == *title {
				return nil, repository.ErrUniqueViolation
			}
		}
		a.Title = *title
	}
	if description != nil {
		a.Description = *description
	}
	out := *a
	return &out, nil
}

func (m *Store) DeleteAlbum(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.albums[id]; !ok {
		return repository.ErrNotFound
	}
	for _, p := range m.photos {
		if p.AlbumID == id {
			return repository.ErrRestrictViolation
		}
	}
	delete(m.albums, id)
	return nil
}

func (m *Store) CountAlbumPhotos(_ context.Context, albumID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, p := range m.photos {
		if p.AlbumID == albumID {
			count++
		}
	}
	return count, nil
}

func (m *Store) CreatePhoto(_ context.Context, photo *models.Photo) (*models.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.albums[photo.AlbumID]; !ok {
		return nil, repository.ErrRestrictViolation
	}
	created := *photo
	created.ID = m.id()
	m.photos[created.ID] = &created
	out := created
	return &out, nil
}

func (m *Store) ListPhotosByAlbum(_ context.Context, albumID int) ([]models.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	photos := []models.Photo{}
	for _, p := range m.photos {
		if p.AlbumID == albumID {
			photos = append(photos, *p)
		}
	}
	return photos, nil
}

func (m *Store) GetPhoto(_ context.Context, albumID, photoID int) (*models.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[photoID]
	if !ok || p.AlbumID != albumID {
		return nil, repository.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (m *Store) UpdatePhoto(_ context.Context, albumID, photoID int, changes models.PhotoChanges) (*models.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[photoID]
	if !ok || p.AlbumID != albumID {
		return nil, repository.ErrNotFound
	}
	if changes.Title != nil {
		p.Title = *changes.Title
	}
	if changes.Description != nil {
		p.Description = *changes.Description
	}
	if changes.TakenAt != nil {
		p.TakenAt = *changes.TakenAt
	}
	if changes.Color != nil {
		p.Color = *changes.Color
	}
	out := *p
	return &out, nil
}

func (m *Store) DeletePhoto(_ context.Context, albumID, photoID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[photoID]
	if !ok || p.AlbumID != albumID {
		return repository.ErrNotFound
	}
	delete(m.photos, photoID)
	return nil
}

// PhotoCount reports how many photo records exist in total
func (m *Store) PhotoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.photos)
}
