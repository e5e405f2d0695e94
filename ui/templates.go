package ui

import (
	"html/template"

	"mosaic/domain/analysis"
	"mosaic/internal/dashboard"
)

// ModeOption is one radio button of the analysis selector
type ModeOption struct {
	Value   analysis.Mode
	Checked bool
}

// IndexPage is the view model of the dashboard page
type IndexPage struct {
	Title   string
	Notes   template.HTML
	Source  string
	Rows    int
	Columns []dashboard.ColumnProfile
	Modes   []ModeOption
}

func (s *Server) indexPage() IndexPage {
	info := s.app.Info()
	modes := make([]ModeOption, len(analysis.Modes))
	for i, m := range analysis.Modes {
		modes[i] = ModeOption{Value: m, Checked: m == analysis.ModeDescriptive}
	}
	return IndexPage{
		Title:   s.config.Title,
		Notes:   s.notes,
		Source:  info.Source,
		Rows:    info.Rows,
		Columns: s.app.Schema(),
		Modes:   modes,
	}
}
