// backend-go/cmd/seed/main.go
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory to write catalog CSV files into",
		Value:   "./data",
		EnvVars: []string{"APP_DATA_DIR"},
	}
}

type sampleMaterial struct {
	id        string
	name      string
	basePrice float64
	slope     float64
}

var sampleMaterials = []sampleMaterial{
	{id: "M1", name: "Steel", basePrice: 100, slope: 1.1},
	{id: "M2", name: "Copper", basePrice: 250, slope: -0.6},
	{id: "M3", name: "Aluminum", basePrice: 80, slope: 0.3},
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Generate sample catalog data for local runs",
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "Write demo materials, price history and vendor CSVs",
				Flags: []cli.Flag{
					newDataDirFlag(),
					&cli.IntFlag{
						Name:  "days",
						Usage: "Days of price history to generate per material",
						Value: 30,
					},
				},
				Action: runDemo,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runDemo(c *cli.Context) error {
	dataDir := c.String("data-dir")
	days := c.Int("days")
	if days < 2 {
		days = 2
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	if err := writeMaterials(dataDir); err != nil {
		return err
	}
	if err := writePrices(dataDir, days); err != nil {
		return err
	}
	if err := writeVendors(dataDir); err != nil {
		return err
	}

	log.Printf("demo catalog written to %s", dataDir)
	return nil
}

// Headers deliberately use alias names so loading exercises the
// column normalizer the same way messy production exports do.
func writeMaterials(dataDir string) error {
	rows := [][]string{{"Material", "Description"}}
	for _, m := range sampleMaterials {
		rows = append(rows, []string{m.id, m.name})
	}
	return writeCSV(filepath.Join(dataDir, "materials.csv"), rows)
}

func writePrices(dataDir string, days int) error {
	rows := [][]string{{"material", "date", "price", "vendor"}}
	start := time.Now().UTC().AddDate(0, 0, -days)
	for _, m := range sampleMaterials {
		for i := 0; i < days; i++ {
			date := start.AddDate(0, 0, i)
			// linear trend with a small deterministic wave
			price := m.basePrice + m.slope*float64(i) + 2*math.Sin(float64(i)/3)
			rows = append(rows, []string{
				m.id,
				date.Format("2006-01-02"),
				fmt.Sprintf("%.2f", price),
				fmt.Sprintf("V%d", i%3+1),
			})
		}
	}
	return writeCSV(filepath.Join(dataDir, "material_prices.csv"), rows)
}

func writeVendors(dataDir string) error {
	rows := [][]string{{"material_id", "vendor_id", "reliability_score", "avg_delivery_days", "price_per_unit"}}
	for _, m := range sampleMaterials {
		rows = append(rows,
			[]string{m.id, "V1", "4", "3", fmt.Sprintf("%.2f", m.basePrice*1.05)},
			[]string{m.id, "V2", "5", "10", fmt.Sprintf("%.2f", m.basePrice*0.85)},
			[]string{m.id, "V3", "3.5", "6", fmt.Sprintf("%.2f", m.basePrice*0.95)},
		)
	}
	return writeCSV(filepath.Join(dataDir, "vendors.csv"), rows)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}
