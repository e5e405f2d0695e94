package excel

// ReaderConfig holds configuration for a tabular data source
type ReaderConfig struct {
	FilePath  string `json:"file_path"`
	SheetName string `json:"sheet_name"` // xlsx only; empty selects the first sheet
	Delimiter rune   `json:"delimiter"`  // csv only; 0 picks ',' or '\t' from the extension
}

// DefaultReaderConfig returns defaults for the given file
func DefaultReaderConfig(filePath string) ReaderConfig {
	return ReaderConfig{FilePath: filePath}
}
