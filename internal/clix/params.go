package clix

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

type PaginationParams struct {
	Limit  int
	Offset int
}

func ParsePagination(flags *pflag.FlagSet) (PaginationParams, error) {
	limit, _ := flags.GetInt("limit")
	offset, _ := flags.GetInt("offset")
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		return PaginationParams{}, fmt.Errorf("--offset must not be negative")
	}
	return PaginationParams{Limit: limit, Offset: offset}, nil
}

// ParseList reads a comma-separated string flag, dropping blanks.
func ParseList(flags *pflag.FlagSet, name string) ([]string, error) {
	raw, err := flags.GetString(name)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

// ParseFilters reads a repeated key=value flag. Keys without the "q." prefix
// get it added, so "enriched.url.title=IBM" becomes a news query filter.
func ParseFilters(flags *pflag.FlagSet, name string) (map[string]string, error) {
	raw, err := flags.GetStringArray(name)
	if err != nil {
		return nil, err
	}
	filters := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --%s %q (want key=value)", name, kv)
		}
		if !strings.HasPrefix(key, "q.") {
			key = "q." + key
		}
		filters[key] = strings.TrimSpace(value)
	}
	return filters, nil
}
