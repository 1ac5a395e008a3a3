package controller_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghiblify_backend/internal/controller"
)

func newUploadFixture(users *fakeUserStore) (*fiber.App, *fakeStorage) {
	st := &fakeStorage{}
	ctrl := controller.NewUploadController(users, st)

	app := fiber.New()
	app.Post("/api/upload", withClaims(1), ctrl.UploadImage)
	return app, st
}

func multipartImage(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestUploadImage_HappyPath(t *testing.T) {
	users := newFakeUserStore(trialUser(1))
	app, st := newUploadFixture(users)

	body, contentType := multipartImage(t, "photo.png", testPNG(t))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decodeJSON(t, resp)

	url, _ := got["url"].(string)
	assert.True(t, strings.HasPrefix(url, "https://cdn.test/users/user1/uploads/"))
	require.Len(t, st.savedKeys, 1)
	assert.NotEmpty(t, st.savedData[0])
}

func TestUploadImage_NoFile(t *testing.T) {
	users := newFakeUserStore(trialUser(1))
	app, st := newUploadFixture(users)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, st.savedKeys)
}

func TestUploadImage_RejectsUnsupportedType(t *testing.T) {
	users := newFakeUserStore(trialUser(1))
	app, st := newUploadFixture(users)

	body, contentType := multipartImage(t, "notes.txt", []byte("hello"))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, st.savedKeys)
}

func TestUploadImage_RejectsHeic(t *testing.T) {
	users := newFakeUserStore(trialUser(1))
	app, st := newUploadFixture(users)

	body, contentType := multipartImage(t, "IMG_0001.heic", []byte{0x00, 0x00, 0x00})

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	got := decodeJSON(t, resp)
	assert.Contains(t, got["error"], "HEIC")
	assert.Empty(t, st.savedKeys)
}
