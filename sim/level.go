package sim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/automoto/slopecollide/shared/leveldata"
	"github.com/pkg/errors"
)

// LoadLevel parses the TMX file at path.
func LoadLevel(path string) (*leveldata.Level, error) {
	if path == "" {
		return nil, errors.New("no level given")
	}
	level, err := leveldata.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return level, nil
}

func hex(digest uint64) string {
	return fmt.Sprintf("%016x", digest)
}

// LoadLevels parses every TMX file in dir.
func LoadLevels(dir string) (map[string]*leveldata.Level, []string, error) {
	return leveldata.LoadAll(os.DirFS(filepath.Dir(dir)), filepath.Base(dir))
}
