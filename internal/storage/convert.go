package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ConvertLegacyProducts backfills old product snapshots in place so the
// current record shape can load them: a missing price defaults to 1, a
// missing or non-string id is replaced with a fresh uuid, and a missing
// expiresAt becomes an explicit null. Returns the number of records touched.
func (s *Store) ConvertLegacyProducts() (int, error) {
	path := filepath.Join(s.dir, productsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading product snapshot %s: %w", path, err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parsing product snapshot %s: %w", path, err)
	}

	converted := 0
	for _, rec := range records {
		changed := false

		if _, ok := rec["price"]; !ok {
			rec["price"] = 1
			changed = true
		}
		if _, ok := rec["id"].(string); !ok {
			rec["id"] = uuid.NewString()
			changed = true
		}
		if _, ok := rec["expiresAt"]; !ok {
			rec["expiresAt"] = nil
			changed = true
		}

		if changed {
			converted++
		}
	}

	out, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return 0, fmt.Errorf("serializing converted snapshot: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return 0, fmt.Errorf("rewriting product snapshot %s: %w", path, err)
	}

	return converted, nil
}
