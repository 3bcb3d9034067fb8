package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// FilesystemOutput writes every exchange into its own file under a per-run
// directory.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(root string) (FilesystemOutput, error) {
	dir := filepath.Join(root, time.Now().UTC().Format("20060102T150405"))
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return FilesystemOutput{}, fmt.Errorf("create dump directory: %w", err)
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Dir() string {
	return o.directory
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id+".http"), []byte(contents), 0o600)
	if err != nil {
		slog.Warn("failed to write http dump", "id", id, "err", err)
	}
}
