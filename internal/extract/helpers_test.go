package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "mkvmerge", "testdata", "movie.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}
