package ui

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"mosaic/internal/dashboard"

	"github.com/gin-gonic/gin"
)

// bindSelection reads a selection from a JSON body (POST) or the query string (GET)
func bindSelection(c *gin.Context) (dashboard.Selection, error) {
	if c.Request.Method != "POST" {
		return selectionFromQuery(c), nil
	}

	var body struct {
		Columns []string    `json:"columns"`
		Mode    string      `json:"mode"`
		Filter  interface{} `json:"filter"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return dashboard.Selection{}, fmt.Errorf("invalid selection: %w", err)
	}
	return dashboard.Selection{
		Columns: compactColumns(body.Columns),
		Mode:    body.Mode,
		Filter:  floatFromAny(body.Filter),
	}, nil
}

// selectionFromQuery reads one ?columns= parameter per column. Values are
// taken whole since column names may contain commas.
func selectionFromQuery(c *gin.Context) dashboard.Selection {
	return dashboard.Selection{
		Columns: compactColumns(c.QueryArray("columns")),
		Mode:    c.Query("mode"),
		Filter:  floatFromAny(c.Query("filter")),
	}
}

func compactColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if col = strings.TrimSpace(col); col != "" {
			out = append(out, col)
		}
	}
	return out
}

// floatFromAny converts a JSON or query value to a filter; blanks and
// non-numeric input read as "no value"
func floatFromAny(v interface{}) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return pointer(f)
}

// pointer returns a pointer to the given value
func pointer[T any](v T) *T {
	return &v
}
