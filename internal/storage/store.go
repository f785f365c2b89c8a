package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/edgarsj/warehouse-cli/internal/auth"
	"github.com/edgarsj/warehouse-cli/internal/domain"
	"github.com/hashicorp/go-hclog"
)

const (
	productsFile = "products.json"
	usersFile    = "users.json"
	auditFile    = "products.log"
)

// Store reads and writes the warehouse snapshot files under a single
// directory. Saving always rewrites the whole product collection.
type Store struct {
	dir    string
	loc    *time.Location
	logger hclog.Logger
}

func NewStore(dir string, loc *time.Location, logger hclog.Logger) *Store {
	return &Store{dir: dir, loc: loc, logger: logger}
}

// LoadProducts reads the product snapshot and rebuilds the collection. A
// missing snapshot file yields an empty warehouse; a present but unparseable
// one is an error the caller must treat as fatal.
func (s *Store) LoadProducts() (*domain.ProductList, error) {
	path := filepath.Join(s.dir, productsFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("No product snapshot found, starting empty", "path", path)
		return domain.NewProductList(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("reading product snapshot %s: %w", path, err)
	}

	var records []domain.ProductRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing product snapshot %s: %w", path, err)
	}

	list, err := domain.NewProductList(records)
	if err != nil {
		return nil, fmt.Errorf("rebuilding products from snapshot %s: %w", path, err)
	}

	s.logger.Debug("Loaded product snapshot", "path", path, "products", list.Len())
	return list, nil
}

// SaveProducts rewrites the whole product snapshot. The snapshot is written
// to a temporary file first and moved into place, so a crash mid-write never
// leaves a truncated snapshot behind.
func (s *Store) SaveProducts(list *domain.ProductList) error {
	path := filepath.Join(s.dir, productsFile)

	data, err := json.MarshalIndent(list.Records(s.loc), "", "    ")
	if err != nil {
		return fmt.Errorf("serializing product snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing product snapshot %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing product snapshot %s: %w", path, err)
	}

	s.logger.Debug("Saved product snapshot", "path", path, "products", list.Len())
	return nil
}

// LoadUsers reads the login records. The warehouse cannot run without them.
func (s *Store) LoadUsers() ([]auth.User, error) {
	path := filepath.Join(s.dir, usersFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading users file %s: %w", path, err)
	}

	var users []auth.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing users file %s: %w", path, err)
	}

	return users, nil
}

// AuditLogPath returns the file the audit logger appends to.
func (s *Store) AuditLogPath() string {
	return filepath.Join(s.dir, auditFile)
}
