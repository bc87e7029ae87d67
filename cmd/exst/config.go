package main

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the optional exst.toml project file, grounded on
// stackedboxes/romualdo's toml.Unmarshal-into-a-tagged-struct idiom
// (cmd/romualdo/cmd_dev_test_.go, pkg/test/testing.go). Command-line flags
// always override values loaded from here.
type fileConfig struct {
	Root   string            `toml:"root"`
	Module string            `toml:"module"`
	Vars   map[string]string `toml:"vars"`
}

// loadFileConfig reads "exst.toml" out of dir, if present. A missing file is
// not an error; the CLI runs fine with flags alone.
func loadFileConfig(dir string) (fileConfig, error) {
	var cfg fileConfig
	src, err := os.ReadFile(filepath.Join(dir, "exst.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(src, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
