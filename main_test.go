package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lifespanchart/internal/config"
	"lifespanchart/internal/metrics"
	"lifespanchart/internal/record"
)

func TestGetOutputFilename(t *testing.T) {
	cases := []struct {
		data, output, format, want string
	}{
		{"data.json", "", "html", "data.html"},
		{"dir/people.csv", "", "svg", "people.svg"},
		{"data.json", "chart.html", "svg", "chart.html"},
		{"sqlite://var/people.db?table=people", "", "html", "people.html"},
		{"postgres://u:p@db.local/history?table=t", "", "html", "history.html"},
		{"s3://bucket/exports/lives.json", "", "svg", "lives.svg"},
		{"s3://bucket/", "", "html", "bucket.html"},
	}
	for _, tc := range cases {
		if got := getOutputFilename(tc.data, tc.output, tc.format); got != tc.want {
			t.Errorf("getOutputFilename(%q, %q, %q) = %q, want %q", tc.data, tc.output, tc.format, got, tc.want)
		}
	}
}

func TestLoadRecordsMergesInOrder(t *testing.T) {
	run := metrics.New()
	recs, rep, err := loadRecords(context.Background(),
		[]string{"testdata/data.json", "testdata/data.csv"}, config.Default(), run)
	if err != nil {
		t.Fatalf("loadRecords: %v", err)
	}
	if len(recs) != 7 || rep.Loaded != 7 || len(rep.Skipped) != 2 {
		t.Fatalf("records=%d report=%s", len(recs), rep)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Start < recs[i-1].Start {
			t.Fatalf("records not sorted at %d: %v", i, recs)
		}
	}
	if rep.Skipped[0].Source != "testdata/data.json" || rep.Skipped[1].Source != "testdata/data.csv" {
		t.Fatalf("skips out of flag order: %v", rep.Skipped)
	}
	if recs[0].Name != "Ashoka" || !recs[0].Highlighted || recs[1].Name != "Maurya Empire" {
		t.Fatalf("first records = %+v, %+v", recs[0], recs[1])
	}
}

func TestLoadRecordsErrors(t *testing.T) {
	run := metrics.New()
	_, _, err := loadRecords(context.Background(),
		[]string{"testdata/data.json", "testdata/absent.json"}, config.Default(), run)
	if err == nil {
		t.Fatalf("missing source should fail the load")
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte(`[{"name": ""}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, rep, err := loadRecords(context.Background(), []string{empty}, config.Default(), run)
	if !errors.Is(err, record.ErrNoRecords) || len(rep.Skipped) != 1 {
		t.Fatalf("err=%v report=%s", err, rep)
	}
}

func TestRunWritesHTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.html")
	prom := filepath.Join(t.TempDir(), "run.prom")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--data", "testdata/data.json", "--output", out, "--metrics-file", prom}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Loaded 5 records from 1 source(s), 1 skipped") {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Warning: skipped testdata/data.json row 5") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	doc, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<!DOCTYPE html>", `id="overlay"`, "Younger Dryas", "var DATA = {"} {
		if !strings.Contains(string(doc), want) {
			t.Fatalf("page lacks %q", want)
		}
	}
	text, err := os.ReadFile(prom)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(text), `lifespanchart_records_loaded_total{source="testdata/data.json"} 5`) {
		t.Fatalf("metrics file:\n%s", text)
	}
}

func TestRunWritesSVG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.svg")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--data", "testdata/data.csv", "--format", "SVG", "--output", out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	doc, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(doc), "<?xml") || strings.Contains(string(doc), "<script") {
		t.Fatalf("not a static SVG:\n%s", doc)
	}
}

func TestRunFailures(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"no data", nil, "a data source is required"},
		{"bad source", []string{"--data", "testdata/absent.json"}, "Error loading data:"},
		{"unsupported", []string{"--data", "ftp://host/x.json"}, "Error loading data:"},
		{"bad format", []string{"--data", "testdata/data.json", "--format", "png"}, "unknown output format"},
		{"bad config", []string{"--data", "testdata/data.json", "--config", "testdata/absent.yaml"}, "Error loading configuration:"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tc.args, &stdout, &stderr); code != 1 {
				t.Fatalf("exit %d", code)
			}
			if !strings.Contains(stderr.String(), tc.want) {
				t.Fatalf("stderr = %q, want %q", stderr.String(), tc.want)
			}
		})
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if strings.TrimSpace(stdout.String()) != "Version: "+Version {
		t.Fatalf("stdout = %q", stdout.String())
	}
}
