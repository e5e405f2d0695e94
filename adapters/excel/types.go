package excel

// ExcelData is the raw sheet: the header row plus data rows as read from the file
type ExcelData struct {
	Headers []string   // Column headers
	Rows    [][]string // Data rows, possibly ragged
	Sheet   string     // Sheet name for workbooks, empty for CSV
}
