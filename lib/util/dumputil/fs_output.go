package dumputil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemOutput writes every message it receives to its own file in a
// directory.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Dir() string {
	return o.directory
}

func (o FilesystemOutput) Write(id string, contents string) {
	name := strings.ReplaceAll(filepath.Base(id), string(filepath.Separator), "_")
	err := os.WriteFile(filepath.Join(o.directory, name), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write dump file", "id", id, "err", err)
	}
}
