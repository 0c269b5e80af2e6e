package ingest

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading cohort files in Excel and CSV formats
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath, sheet string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheet: sheet}
}

// ReadObservations reads the cohort file into validated observations. Rows
// with missing or non-numeric cells are dropped and counted, not fatal.
func (r *DataReader) ReadObservations() ([]dataset.Observation, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("cohort file must have a header row and at least one data row")
	}
	return r.processRows(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.sheet, err)
	}
	log.Printf("[DataReader] read %d rows from %s", len(rows), r.filePath)
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are dropped per-row below
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] read %d rows from %s", len(rows), r.filePath)
	return rows, nil
}

// processRows maps header names to schema columns and converts each data row
// into a validated observation. Column matching is exact and case-sensitive;
// extra columns such as student identifiers are ignored.
func (r *DataReader) processRows(rows [][]string) ([]dataset.Observation, error) {
	index := make(map[core.ColumnKey]int)
	for i, header := range rows[0] {
		index[core.ColumnKey(strings.TrimSpace(header))] = i
	}
	for _, key := range dataset.SchemaKeys() {
		if _, ok := index[key]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", core.ErrSchemaMismatch, key)
		}
	}

	observations := make([]dataset.Observation, 0, len(rows)-1)
	dropped := 0
	for _, row := range rows[1:] {
		obs, ok := r.parseRow(row, index)
		if !ok {
			dropped++
			continue
		}
		observations = append(observations, obs)
	}

	if dropped > 0 {
		log.Printf("[DataReader] dropped %d of %d data rows", dropped, len(rows)-1)
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: no usable data rows", core.ErrEmptyDataset)
	}
	return observations, nil
}

func (r *DataReader) parseRow(row []string, index map[core.ColumnKey]int) (dataset.Observation, bool) {
	cell := func(key core.ColumnKey) (float64, bool) {
		i := index[key]
		if i >= len(row) {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	values := make(map[core.ColumnKey]float64, len(dataset.SchemaKeys()))
	for _, key := range dataset.SchemaKeys() {
		v, ok := cell(key)
		if !ok {
			return dataset.Observation{}, false
		}
		values[key] = v
	}
	if label := values[dataset.ColLabel]; label != 0 && label != 1 {
		return dataset.Observation{}, false
	}

	obs := dataset.Observation{
		ID:                core.RecordID(core.NewID()),
		Stress:            values[dataset.ColStress],
		Sleep:             values[dataset.ColSleep],
		StudyHours:        values[dataset.ColStudy],
		ScreenTime:        values[dataset.ColScreen],
		PhysicalActivity:  values[dataset.ColPhysical],
		SocialInteraction: values[dataset.ColSocial],
		BurnoutScore:      values[dataset.ColScore],
		BurnoutLabel:      int(values[dataset.ColLabel]),
		CreatedAt:         core.Now(),
	}
	if err := obs.Validate(); err != nil {
		return dataset.Observation{}, false
	}
	return obs, true
}
