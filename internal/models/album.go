package models

// Album is a named, user-owned collection of photos.
// (user_id, title) is unique per owner at the storage level.
type Album struct {
	ID          int    `json:"id"`
	UserID      int    `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CreateAlbumRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      *int   `json:"userId"`
}

// UpdateAlbumRequest uses pointers so an omitted key is distinguishable
// from a key sent with an empty value.
type UpdateAlbumRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// AlbumListItem is the projection returned by album listings (no photo data)
type AlbumListItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (a *Album) ListItem() AlbumListItem {
	return AlbumListItem{ID: a.ID, Title: a.Title, Description: a.Description}
}
