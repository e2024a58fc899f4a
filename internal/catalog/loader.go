// backend-go/internal/catalog/loader.go
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/procuresmart/backend-go/internal/schema"
)

const (
	materialsFile = "materials.csv"
	pricesFile    = "material_prices.csv"
	vendorsFile   = "vendors.csv"
)

// Loader reads the three catalog CSV files from a data directory and
// builds normalized snapshots.
type Loader struct {
	dataDir string
}

func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// Load reads and normalizes all three tables concurrently. Any failure
// aborts the whole load so a snapshot is always complete.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	var materials, prices, vendors *Table

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := l.readTable(ctx, "materials", materialsFile, schema.MaterialsAliases)
		materials = t
		return err
	})
	g.Go(func() error {
		t, err := l.readTable(ctx, "prices", pricesFile, schema.PricesAliases)
		prices = t
		return err
	})
	g.Go(func() error {
		t, err := l.readTable(ctx, "vendors", vendorsFile, schema.VendorsAliases)
		vendors = t
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		Materials: materials,
		Prices:    prices,
		Vendors:   vendors,
		LoadedAt:  time.Now(),
	}, nil
}

func (l *Loader) readTable(ctx context.Context, name, filename string, aliases map[string][]string) (*Table, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path := filepath.Join(l.dataDir, filename)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", filename, err)
	}

	columns := schema.Apply(header, aliases)
	for i, col := range columns {
		if cleaned := schema.Clean(header[i]); cleaned != col {
			log.Info().
				Str("table", name).
				Str("from", cleaned).
				Str("to", col).
				Msg("standardized column")
		}
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s record: %w", filename, err)
		}
		rows = append(rows, record)
	}

	log.Info().Str("table", name).Int("rows", len(rows)).Msg("table loaded")
	return NewTable(name, columns, rows), nil
}
