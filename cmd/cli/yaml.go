package main

import (
	"io"
	"strconv"

	"mosaic/domain/dataset"
	"mosaic/internal/dashboard"

	"gopkg.in/yaml.v3"
)

// writeYAML renders an evaluation as YAML, keeping row keys in column order
func writeYAML(out io.Writer, result *dashboard.Output) error {
	doc := mapping(
		"state", scalar(string(result.State)),
		"columns", columnsNode(result.Columns),
		"data", rowsNode(result.Rows),
	)
	if result.Chart != nil {
		cats := &yaml.Node{Kind: yaml.SequenceNode}
		vals := &yaml.Node{Kind: yaml.SequenceNode}
		for i, c := range result.Chart.Categories {
			cats.Content = append(cats.Content, scalar(c))
			vals.Content = append(vals.Content, floatNode(result.Chart.Values[i]))
		}
		doc.Content = append(doc.Content, scalar("chart"), mapping(
			"title", scalar(result.Chart.Title),
			"x_column", scalar(result.Chart.XColumn),
			"y_column", scalar(result.Chart.YColumn),
			"categories", cats,
			"values", vals,
		))
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func columnsNode(cols []dashboard.ColumnDescriptor) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, c := range cols {
		seq.Content = append(seq.Content, scalar(c.Name))
	}
	return seq
}

func rowsNode(rows []dataset.Record) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range rows {
		row := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range rec.Keys() {
			v, _ := rec.Get(key)
			row.Content = append(row.Content, scalar(key), valueNode(v))
		}
		seq.Content = append(seq.Content, row)
	}
	return seq
}

func valueNode(v dataset.Value) *yaml.Node {
	if v.IsMissing() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	if f, ok := v.Float(); ok {
		return floatNode(f)
	}
	return scalar(v.String())
}

func floatNode(f float64) *yaml.Node {
	tag := "!!float"
	if f == float64(int64(f)) {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: strconv.FormatFloat(f, 'f', -1, 64)}
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func mapping(pairs ...interface{}) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Content = append(m.Content, scalar(pairs[i].(string)), pairs[i+1].(*yaml.Node))
	}
	return m
}
