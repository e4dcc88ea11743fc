package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
	"github.com/MarianaMaksimiv/ACME-Train/internal/network"
)

// WriteNetwork serializes edges as a YAML network file at path, creating the
// parent directory when needed.
func WriteNetwork(edges []domain.Edge, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return network.WriteFile(path, edges)
}
