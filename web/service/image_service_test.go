package service

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookshelf/config"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func pngUpload(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return &buf
}

func TestProcessResizesAndStoresJpeg(t *testing.T) {
	setupTest(t)

	imageService := NewImageService()

	name, err := imageService.Process(pngUpload(t, 1600, 900), "My Cover.png")
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "-My_Cover.jpg"))

	path := filepath.Join(config.GetImagesFolderPath(), name)
	stored, err := imaging.Open(path)
	assert.NoError(t, err)
	assert.Equal(t, 800, stored.Bounds().Dx())
	// Proportional resize keeps the aspect ratio.
	assert.Equal(t, 450, stored.Bounds().Dy())
}

func TestProcessKeepsSmallImages(t *testing.T) {
	setupTest(t)

	imageService := NewImageService()

	name, err := imageService.Process(pngUpload(t, 400, 300), "small.png")
	assert.NoError(t, err)

	stored, err := imaging.Open(filepath.Join(config.GetImagesFolderPath(), name))
	assert.NoError(t, err)
	assert.Equal(t, 400, stored.Bounds().Dx())
}

func TestProcessRejectsGarbage(t *testing.T) {
	setupTest(t)

	_, err := NewImageService().Process(bytes.NewBufferString("not an image"), "junk.png")
	assert.Error(t, err)
}

func TestRemoveIsBestEffort(t *testing.T) {
	setupTest(t)

	imageService := NewImageService()

	name, err := imageService.Process(pngUpload(t, 100, 100), "gone.png")
	assert.NoError(t, err)
	assert.True(t, imageService.Exists(name))

	imageService.Remove(name)
	assert.False(t, imageService.Exists(name))

	// Removing a missing file must not blow up.
	imageService.Remove(name)
	imageService.Remove("")
}

func TestDeleteBookRemovesImageFile(t *testing.T) {
	setupTest(t)
	users := createTestUsers(t, 1)

	imageService := NewImageService()
	bookService := NewBookService()

	name, err := imageService.Process(pngUpload(t, 900, 600), "cover.png")
	assert.NoError(t, err)

	id, err := bookService.CreateBook(users[0],
		&BookPayload{Title: "Dune", Author: "Frank Herbert"},
		"http://localhost:4000/images/"+name)
	assert.NoError(t, err)

	err = bookService.DeleteBook(users[0], id)
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(config.GetImagesFolderPath(), name))
	assert.True(t, os.IsNotExist(err))
}
