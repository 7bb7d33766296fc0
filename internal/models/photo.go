package models

import "time"

// ISO-8601 with milliseconds; UTC renders as a trailing "Z"
const photoDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Photo is an image resource belonging to exactly one album. Size and
// FilePath are derived from the stored file and immutable after creation.
type Photo struct {
	ID          int
	AlbumID     int
	Title       string
	Description string
	TakenAt     time.Time
	Size        int64
	Color       string
	FilePath    string
}

// PhotoView is the client-facing projection of a photo. The date is
// canonicalized to ISO-8601 UTC regardless of the input format.
type PhotoView struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Size        int64  `json:"size"`
	Color       string `json:"color"`
	FilePath    string `json:"filePath"`
}

func (p *Photo) View() PhotoView {
	return PhotoView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Date:        p.TakenAt.UTC().Format(photoDateLayout),
		Size:        p.Size,
		Color:       p.Color,
		FilePath:    p.FilePath,
	}
}

// UpdatePhotoRequest uses pointers so an omitted key is distinguishable
// from a key sent with an empty value.
type UpdatePhotoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Color       *string `json:"color"`
}

// PhotoChanges carries the validated, parsed fields of a partial update.
// Nil fields are left untouched by the store.
type PhotoChanges struct {
	Title       *string
	Description *string
	TakenAt     *time.Time
	Color       *string
}
