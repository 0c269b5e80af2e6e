package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"burnoutlab/adapters/ingest"
	statsengine "burnoutlab/adapters/stats/engine"
	"burnoutlab/domain/dataset"
	"burnoutlab/internal/testkit"
)

// analyze runs the full statistical battery over a cohort file or a seeded
// synthetic cohort and prints the report as JSON.
func main() {
	var (
		file      = flag.String("file", "", "cohort file (CSV or XLSX)")
		sheet     = flag.String("sheet", "Sheet1", "worksheet name for XLSX files")
		synthetic = flag.Bool("synthetic", false, "analyze a generated synthetic cohort")
		rows      = flag.Int("rows", 500, "synthetic cohort size")
		seed      = flag.Int64("seed", 42, "synthetic cohort seed")
		alpha     = flag.Float64("alpha", statsengine.DefaultAlpha, "ANOVA significance level")
	)
	flag.Parse()

	ds, err := loadDataset(*file, *sheet, *synthetic, *rows, *seed)
	if err != nil {
		log.Fatalf("Failed to load cohort: %v", err)
	}

	report, err := statsengine.NewWithAlpha(*alpha).Run(context.Background(), ds)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
}

func loadDataset(file, sheet string, synthetic bool, rows int, seed int64) (*dataset.Dataset, error) {
	switch {
	case synthetic:
		return testkit.GenerateCohort(testkit.CohortConfig{Rows: rows, Seed: seed, ScoreNoise: 0.05})
	case file != "":
		observations, err := ingest.NewDataReader(file, sheet).ReadObservations()
		if err != nil {
			return nil, err
		}
		return dataset.New(observations)
	default:
		return nil, fmt.Errorf("either -file or -synthetic is required")
	}
}
