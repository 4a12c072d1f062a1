package service

import (
	"path/filepath"
	"testing"

	"bookshelf/database"
	"bookshelf/logger"

	"github.com/op/go-logging"
)

// setupTest points every storage path at a per-test temp dir and opens a
// fresh database.
func setupTest(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("BOOKSHELF_IMAGES_FOLDER", filepath.Join(dir, "images"))
	t.Setenv("BOOKSHELF_LOG_FOLDER", filepath.Join(dir, "log"))

	logger.InitLogger(logging.ERROR)

	if err := database.InitDB(filepath.Join(dir, "test.db")); err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}
