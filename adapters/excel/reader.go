package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mosaic/domain/dataset"
	"mosaic/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	config   ReaderConfig
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles .xlsx, .csv and .tsv files
func NewDataReader(config ReaderConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "csv"
	switch ext {
	case ".xlsx", ".xlsm":
		fileType = "xlsx"
	case ".tsv":
		if config.Delimiter == 0 {
			config.Delimiter = '\t'
		}
	}
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}
	return &DataReader{config: config, fileType: fileType}
}

// Load reads the file and discovers its schema
func Load(config ReaderConfig) (*dataset.Table, error) {
	return NewDataReader(config).Load()
}

// Load reads the file into an immutable table
func (r *DataReader) Load() (*dataset.Table, error) {
	raw, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	table, err := dataset.FromStrings(raw.Headers, raw.Rows)
	if err != nil {
		return nil, errors.DataLoadError(r.config.FilePath, err)
	}
	log.Printf("[DataReader] %s loaded: %d columns, %d rows", filepath.Base(r.config.FilePath), len(table.Columns()), table.Len())
	return table, nil
}

// ReadData reads data from Excel or CSV files into raw string rows
func (r *DataReader) ReadData() (*ExcelData, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); os.IsNotExist(err) {
		return nil, errors.DataLoadError(r.config.FilePath, errors.NotFound(strings.ToUpper(r.fileType)+" file"))
	}

	var (
		data *ExcelData
		err  error
	)
	switch r.fileType {
	case "csv":
		data, err = r.readCSVData()
	case "xlsx":
		data, err = r.readExcelData()
	default:
		err = fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, errors.DataLoadError(r.config.FilePath, err)
	}
	return data, nil
}

// readExcelData reads the configured sheet, or the first one
func (r *DataReader) readExcelData() (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	log.Printf("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) < 1 {
		return nil, fmt.Errorf("sheet %s has no header row", sheet)
	}

	data := r.processRows(rows)
	data.Sheet = sheet
	return data, nil
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = r.config.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) < 1 {
		return nil, fmt.Errorf("CSV file has no header row")
	}

	return r.processRows(rows), nil
}

// processRows splits off the header and drops fully blank lines
func (r *DataReader) processRows(rows [][]string) *ExcelData {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		dataRows = append(dataRows, row)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
