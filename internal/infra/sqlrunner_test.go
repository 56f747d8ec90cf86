package infra

import (
	"context"
	"strings"
	"testing"
)

func TestExtractMarker(t *testing.T) {
	query := "--sql bdd56a7c-97b0-4b50-95bd-6a540f6c30f6\nselect 1;"
	marker, trimmed, err := extractMarker(query)
	if err != nil {
		t.Fatalf("extractMarker() error: %v", err)
	}
	if marker != "bdd56a7c-97b0-4b50-95bd-6a540f6c30f6" {
		t.Fatalf("extractMarker() marker = %q", marker)
	}
	if strings.TrimSpace(trimmed) != "select 1;" {
		t.Fatalf("extractMarker() trimmed = %q", trimmed)
	}
}

func TestExtractMarkerRejectsUnmarkedQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "no marker", query: "select 1;"},
		{name: "malformed uuid", query: "--sql not-a-uuid\nselect 1;"},
		{name: "marker not first", query: "select 1;\n--sql bdd56a7c-97b0-4b50-95bd-6a540f6c30f6"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := extractMarker(tc.query); err == nil {
				t.Fatalf("extractMarker() expected error for %q", tc.query)
			}
		})
	}
}

func TestErrorRowPropagatesError(t *testing.T) {
	runner := &SQLRunner{}
	row := runner.QueryRow(context.Background(), "select 1 without marker")
	var out int
	if err := row.Scan(&out); err == nil {
		t.Fatalf("Scan() expected marker error")
	}
}
