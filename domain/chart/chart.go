// Package chart builds bar chart descriptions from a dataset.
package chart

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"mosaic/domain/dataset"
	"mosaic/internal/errors"
)

// Dashboard chart defaults
const (
	DefaultTitle        = "Airdrop Criteria Analysis"
	DefaultYAxisLabel   = "Count"
	DefaultBottomMargin = 100
)

// Options controls chart labelling
type Options struct {
	Title        string
	YAxisLabel   string
	BottomMargin int
}

// DefaultOptions returns the dashboard defaults
func DefaultOptions() Options {
	return Options{
		Title:        DefaultTitle,
		YAxisLabel:   DefaultYAxisLabel,
		BottomMargin: DefaultBottomMargin,
	}
}

// Spec describes a single bar chart
type Spec struct {
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	XColumn      string    `json:"x_column"`
	YColumn      string    `json:"y_column"`
	XAxisLabel   string    `json:"x_axis_label"`
	YAxisLabel   string    `json:"y_axis_label"`
	BottomMargin int       `json:"bottom_margin"`
	Categories   []string  `json:"categories"`
	Values       []float64 `json:"values"`
}

// Build groups t by x and measures y per group. Numeric y is summed; any other
// y counts its present cells. Groups keep first-appearance order and a missing
// x value becomes the "" category. A non-finite sum fails with INTERNAL_ERROR.
func Build(t *dataset.Table, x, y string, opts Options) (*Spec, error) {
	xs, err := t.Values(x)
	if err != nil {
		return nil, err
	}
	ys, err := t.Values(y)
	if err != nil {
		return nil, err
	}
	yCol, err := t.Column(y)
	if err != nil {
		return nil, err
	}
	opts = withDefaults(opts)

	var categories []string
	groups := make(map[string][]float64)
	for i, xv := range xs {
		key := xv.String()
		if _, ok := groups[key]; !ok {
			categories = append(categories, key)
			groups[key] = []float64{}
		}
		yv := ys[i]
		if yCol.Kind == dataset.KindNumeric {
			if f, ok := yv.Float(); ok {
				groups[key] = append(groups[key], f)
			}
		} else if !yv.IsMissing() {
			groups[key] = append(groups[key], 1)
		}
	}

	values := make([]float64, len(categories))
	for i, key := range categories {
		sum, err := stats.Sum(groups[key])
		if err != nil {
			// stats.Sum only fails on empty input
			sum = 0
		}
		if math.IsInf(sum, 0) || math.IsNaN(sum) {
			return nil, errors.InternalError(fmt.Sprintf("sum of %s for %s=%q is not a finite number", y, x, key))
		}
		values[i] = sum
	}
	if categories == nil {
		categories = []string{}
	}

	return &Spec{
		Type:         "bar",
		Title:        opts.Title,
		XColumn:      x,
		YColumn:      y,
		XAxisLabel:   x,
		YAxisLabel:   opts.YAxisLabel,
		BottomMargin: opts.BottomMargin,
		Categories:   categories,
		Values:       values,
	}, nil
}

func withDefaults(opts Options) Options {
	d := DefaultOptions()
	if opts.Title == "" {
		opts.Title = d.Title
	}
	if opts.YAxisLabel == "" {
		opts.YAxisLabel = d.YAxisLabel
	}
	if opts.BottomMargin <= 0 {
		opts.BottomMargin = d.BottomMargin
	}
	return opts
}

// Figure renders the spec as a Plotly figure (data + layout)
func (s *Spec) Figure() map[string]interface{} {
	if s == nil {
		return nil
	}
	return map[string]interface{}{
		"data": []map[string]interface{}{{
			"type": "bar",
			"x":    s.Categories,
			"y":    s.Values,
			"name": s.YColumn,
		}},
		"layout": map[string]interface{}{
			"title":  map[string]interface{}{"text": s.Title},
			"xaxis":  map[string]interface{}{"title": map[string]interface{}{"text": s.XAxisLabel}},
			"yaxis":  map[string]interface{}{"title": map[string]interface{}{"text": s.YAxisLabel}},
			"margin": map[string]interface{}{"b": s.BottomMargin},
		},
	}
}
