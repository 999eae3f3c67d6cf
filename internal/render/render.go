// Package render prints command results as tables, JSON or YAML.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json or yaml (yml too), case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

// Generic turns v into plain maps, slices and scalars by way of its JSON form.
func Generic(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return out, nil
}

// Query evaluates a JSONPath expression such as "$.keywords[*].text" against v.
func Query(v interface{}, expr string) (interface{}, error) {
	doc, err := Generic(v)
	if err != nil {
		return nil, err
	}
	res, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", expr, err)
	}
	return res, nil
}

// JSON writes v indented.
func JSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// YAML writes v with JSON field names as keys.
func YAML(w io.Writer, v interface{}) error {
	doc, err := Generic(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Table writes rows under headers, left aligned and borderless.
func Table(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

// Tabular is implemented by results that know how to lay themselves out as a table.
type Tabular interface {
	Headers() []string
	Rows() [][]string
}

// Write prints v in format f. A non-empty query is applied first; query
// results have no table layout and print as JSON in table mode.
func Write(w io.Writer, f Format, v interface{}, query string) error {
	if query != "" {
		res, err := Query(v, query)
		if err != nil {
			return err
		}
		if f == FormatYAML {
			return YAML(w, res)
		}
		return JSON(w, res)
	}
	switch f {
	case FormatJSON:
		return JSON(w, v)
	case FormatYAML:
		return YAML(w, v)
	}
	if t, ok := v.(Tabular); ok {
		Table(w, t.Headers(), t.Rows())
		return nil
	}
	return JSON(w, v)
}

// Status colors an analysis status for terminals.
func Status(s string) string {
	switch s {
	case "succeeded", "OK", "enqueued":
		return color.GreenString(s)
	case "failed", "ERROR":
		return color.RedString(s)
	}
	return color.YellowString(s)
}

// KeyValues lays out any value as a two-column table of flattened paths,
// e.g. "authors.names[0]" -> "Ada".
type KeyValues struct {
	rows [][]string
}

// Flatten builds a KeyValues table for v.
func Flatten(v interface{}) (KeyValues, error) {
	doc, err := Generic(v)
	if err != nil {
		return KeyValues{}, err
	}
	var kv KeyValues
	flatten("", doc, &kv.rows)
	return kv, nil
}

func (kv KeyValues) Headers() []string { return []string{"Field", "Value"} }
func (kv KeyValues) Rows() [][]string  { return kv.rows }

func flatten(prefix string, v interface{}, rows *[][]string) {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			flatten(path, t[k], rows)
		}
	case []interface{}:
		for i, item := range t {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), item, rows)
		}
	case nil:
		*rows = append(*rows, []string{prefix, ""})
	default:
		*rows = append(*rows, []string{prefix, fmt.Sprint(t)})
	}
}
