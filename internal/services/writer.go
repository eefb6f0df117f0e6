package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cqroot/openstack-swift-exporter/internal/models"
	"github.com/cqroot/openstack-swift-exporter/internal/utils"
)

// WriteSwiftInfo serializes info as one compact JSON document at path.
// Without atomic the file is truncated and rewritten in place; with atomic
// a synced temp file in the same directory is renamed over path.
func WriteSwiftInfo(path string, info *models.SwiftInfo, atomic bool) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if !atomic {
		if err := os.WriteFile(path, data, utils.OutputFileMode); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		return nil
	}

	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp summary: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp summary: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp summary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp summary: %w", err)
	}
	if err := os.Chmod(tmpName, utils.OutputFileMode); err != nil {
		return fmt.Errorf("failed to chmod temp summary: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace summary: %w", err)
	}
	return nil
}
