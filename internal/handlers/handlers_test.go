package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"album-backend/internal/handlers"
	"album-backend/internal/repository/memory"
	"album-backend/internal/services"
	"album-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	users  *services.UserService
	files  *storage.Store
	token  string
	userID int
}

// newTestEnv wires the full route table against the in-memory store and a
// real upload directory, and registers one logged-in user.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	files, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	userService := services.NewUserService(store, testSecret)
	albumService := services.NewAlbumService(store, store)
	photoService := services.NewPhotoService(store, store, files)

	app := fiber.New()
	app.Post("/users", handlers.RegisterHandler(userService))
	app.Post("/login", handlers.LoginHandler(userService))

	albums := app.Group("/albums", handlers.AuthMiddleware(userService))
	albums.Post("/", handlers.CreateAlbumHandler(albumService))
	albums.Get("/", handlers.ListAlbumsHandler(albumService))
	albums.Get("/:albumId", handlers.GetAlbumHandler(albumService))
	albums.Patch("/:albumId", handlers.UpdateAlbumHandler(albumService))
	albums.Delete("/:albumId", handlers.DeleteAlbumHandler(albumService))
	albums.Post("/:albumId/photos", handlers.CreatePhotoHandler(photoService))
	albums.Get("/:albumId/photos", handlers.ListPhotosHandler(photoService))
	albums.Get("/:albumId/photos/:photoId", handlers.GetPhotoHandler(photoService))
	albums.Patch("/:albumId/photos/:photoId", handlers.UpdatePhotoHandler(photoService))
	albums.Delete("/:albumId/photos/:photoId", handlers.DeletePhotoHandler(photoService))

	user, err := store.CreateUser(context.Background(), "ana@example.com", "irrelevant-hash")
	require.NoError(t, err)
	token, err := userService.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)

	return &testEnv{app: app, store: store, users: userService, files: files, token: token, userID: user.ID}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, authed bool) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) createAlbum(t *testing.T, title string) int {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/albums", fiber.Map{"title": title, "userId": e.userID}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return int(decodeBody(t, resp)["id"].(float64))
}

func TestAuthGate(t *testing.T) {
	env := newTestEnv(t)

	// Missing token
	resp := env.request(t, http.MethodGet, "/albums", nil, false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Access denied, missing token", decodeBody(t, resp)["error"])

	// Bad signature
	forged, err := services.NewUserService(memory.NewStore(), "wrong-secret").GenerateToken(env.userID, "ana@example.com")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/albums", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Invalid token", decodeBody(t, resp)["error"])

	// Valid token
	resp = env.request(t, http.MethodGet, "/albums", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/users", fiber.Map{"email": "bob@example.com", "password": "hunter2"}, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "bob@example.com", body["email"])
	require.NotContains(t, body, "password_hash")

	resp = env.request(t, http.MethodPost, "/users", fiber.Map{"email": "bob@example.com"}, false)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/login", fiber.Map{"email": "bob@example.com", "password": "hunter2"}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, ok := decodeBody(t, resp)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	resp = env.request(t, http.MethodPost, "/login", fiber.Map{"email": "ghost@example.com", "password": "x"}, false)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/login", fiber.Map{"email": "bob@example.com", "password": "wrong"}, false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAlbumEndpoints(t *testing.T) {
	env := newTestEnv(t)

	// Missing fields
	resp := env.request(t, http.MethodPost, "/albums", fiber.Map{"description": "no title"}, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown owner
	resp = env.request(t, http.MethodPost, "/albums", fiber.Map{"title": "Trips", "userId": 9999}, true)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	albumID := env.createAlbum(t, "Trips")

	// Duplicate title for the same owner
	resp = env.request(t, http.MethodPost, "/albums", fiber.Map{"title": "Trips", "userId": env.userID}, true)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Non-integer ids answer 400 before touching the store
	for _, path := range []string{"/albums/abc", "/albums/1.5"} {
		resp = env.request(t, http.MethodGet, path, nil, true)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/albums/%d", albumID), nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "Trips", body["title"])
	require.Equal(t, float64(env.userID), body["userId"])

	// Patch with no fields
	resp = env.request(t, http.MethodPatch, fmt.Sprintf("/albums/%d", albumID), fiber.Map{}, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPatch, fmt.Sprintf("/albums/%d", albumID), fiber.Map{"description": "summer"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	require.Equal(t, "Trips", body["title"])
	require.Equal(t, "summer", body["description"])

	// Listing returns the projection only
	resp = env.request(t, http.MethodGet, "/albums", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	require.NotContains(t, items[0], "userId")

	// Delete, then 404
	resp = env.request(t, http.MethodDelete, fmt.Sprintf("/albums/%d", albumID), nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Album successfully deleted", decodeBody(t, resp)["message"])

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/albums/%d", albumID), nil, true)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, fmt.Sprintf("/albums/%d", albumID), nil, true)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// multipartBody builds a photo-create form; contentType == "" omits the file
func multipartBody(t *testing.T, fields map[string]string, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if contentType != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="photo"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func (e *testEnv) uploadPhoto(t *testing.T, path string, fields map[string]string, filename, contentType string, content []byte) *http.Response {
	t.Helper()
	body, formType := multipartBody(t, fields, filename, contentType, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", formType)
	req.Header.Set("Authorization", "Bearer "+e.token)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestPhotoEndpoints(t *testing.T) {
	env := newTestEnv(t)
	albumID := env.createAlbum(t, "Trips")
	photosPath := fmt.Sprintf("/albums/%d/photos", albumID)

	// No file attached
	resp := env.uploadPhoto(t, photosPath, map[string]string{"title": "Sunset", "date": "2025-01-27"}, "", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "No file uploaded or invalid file type", decodeBody(t, resp)["error"])

	// Disallowed MIME type leaves nothing in the upload dir
	resp = env.uploadPhoto(t, photosPath, map[string]string{"title": "Sunset", "date": "2025-01-27"},
		"notes.txt", "text/plain", []byte("hello"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	entries, err := os.ReadDir(env.files.Dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	// Bad color
	resp = env.uploadPhoto(t, photosPath, map[string]string{"title": "Sunset", "date": "2025-01-27", "color": "#ZZZ"},
		"sunset.png", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown album
	resp = env.uploadPhoto(t, "/albums/9999/photos", map[string]string{"title": "Sunset", "date": "2025-01-27"},
		"sunset.png", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Successful create
	content := []byte("png-bytes")
	resp = env.uploadPhoto(t, photosPath, map[string]string{"title": "Sunset", "date": "2025-01-27"},
		"sunset.png", "image/png", content)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	require.Equal(t, "2025-01-27T00:00:00.000Z", created["date"])
	require.Equal(t, "#FFFFFF", created["color"])
	require.Equal(t, float64(len(content)), created["size"])
	filePath := created["filePath"].(string)
	require.True(t, strings.HasPrefix(filePath, "/uploads/"))
	photoID := int(created["id"].(float64))

	// The stored file exists under the generated name
	entries, err = os.ReadDir(env.files.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Round trip: the projection matches the create response
	resp = env.request(t, http.MethodGet, fmt.Sprintf("%s/%d", photosPath, photoID), nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, created, decodeBody(t, resp))

	// The album cannot be deleted while the photo exists
	resp = env.request(t, http.MethodDelete, fmt.Sprintf("/albums/%d", albumID), nil, true)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Bad ids
	resp = env.request(t, http.MethodGet, fmt.Sprintf("%s/abc", photosPath), nil, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Partial update keeps everything not supplied
	resp = env.request(t, http.MethodPatch, fmt.Sprintf("%s/%d", photosPath, photoID), fiber.Map{"title": "Dawn"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)
	require.Equal(t, "Dawn", updated["title"])
	require.Equal(t, created["date"], updated["date"])
	require.Equal(t, created["color"], updated["color"])
	require.Equal(t, created["size"], updated["size"])
	require.Equal(t, created["filePath"], updated["filePath"])

	// Update validation
	resp = env.request(t, http.MethodPatch, fmt.Sprintf("%s/%d", photosPath, photoID), fiber.Map{"date": "nope"}, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Delete removes the record and the backing file
	resp = env.request(t, http.MethodDelete, fmt.Sprintf("%s/%d", photosPath, photoID), nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Photo successfully deleted", decodeBody(t, resp)["message"])

	entries, err = os.ReadDir(env.files.Dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	resp = env.request(t, http.MethodGet, fmt.Sprintf("%s/%d", photosPath, photoID), nil, true)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Listing no longer includes it
	resp = env.request(t, http.MethodGet, photosPath, nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var views []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Empty(t, views)

	// Once empty, the album delete goes through
	resp = env.request(t, http.MethodDelete, fmt.Sprintf("/albums/%d", albumID), nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func expiredToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"userId": 1,
		"email":  "ana@example.com",
		"exp":    time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestExpiredTokenAnswers401(t *testing.T) {
	env := newTestEnv(t)

	expired := expiredToken(t)
	req := httptest.NewRequest(http.MethodGet, "/albums", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Token expired", decodeBody(t, resp)["error"])
}
