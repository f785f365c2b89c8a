// Command convert upgrades a legacy product snapshot in place: it backfills
// missing prices, replaces non-string ids with fresh uuids and makes absent
// expiration dates an explicit null. Run it once before pointing the
// warehouse binary at an old snapshot.
package main

import (
	"os"
	"time"

	"github.com/edgarsj/warehouse-cli/internal/storage"
	"github.com/hashicorp/go-hclog"
	"github.com/nicholasjackson/env"
)

var (
	storageDir = env.String("STORAGE_DIR", false,
		"storage", "Directory holding the product snapshot file")
)

func main() {
	env.Parse()

	logger := hclog.New(&hclog.LoggerOptions{Name: "convert"})

	store := storage.NewStore(*storageDir, time.UTC, logger)
	converted, err := store.ConvertLegacyProducts()
	if err != nil {
		logger.Error("Conversion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Converted legacy product snapshot", "records_touched", converted)
}
