package firewall

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/dynfw/firewall-sync/internal/domain"
)

// FileShim is a testing implementation that keeps the allow-list in a local
// JSON file instead of the management API.
type FileShim struct {
	filePath string
	mu       sync.RWMutex
}

// Ensure FileShim implements RuleClient.
var _ RuleClient = (*FileShim)(nil)

// NewFileShim creates a new file-based shim for testing.
func NewFileShim(filePath string) *FileShim {
	return &FileShim{filePath: filePath}
}

// GetRules reads the current allow-list from the file.
func (f *FileShim) GetRules(ctx context.Context) (domain.RuleSet, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Empty allow-list if the file doesn't exist yet
			return domain.RuleSet{}, nil
		}
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var rules domain.RuleSet
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	return rules, nil
}

// ReplaceRules writes the full rule set to the file.
func (f *FileShim) ReplaceRules(ctx context.Context, rules domain.RuleSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}

	if err := os.WriteFile(f.filePath, data, 0644); err != nil {
		return fmt.Errorf("writing rules file: %w", err)
	}

	log.Printf("[FileShim] %d rules written to %s", len(rules), f.filePath)
	return nil
}
