package sitemap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileName is the name of the sitemap inside the output directory.
const FileName = "sitemap.xml"

// WriteFile stores data as sitemap.xml in dir, creating dir if needed. The
// file is written under a temporary name and renamed into place, so readers
// never see a partial sitemap.
func WriteFile(dir string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	target := filepath.Join(dir, FileName)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", FileName, uuid.NewString()))

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write sitemap: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move sitemap into place: %w", err)
	}

	return target, nil
}
