package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fleacr/WebScraperYCombinator/models"
)

func readAll(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	return rows
}

func TestCSVWriter_HeaderOnlyWhenNoRecords(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, Columns{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	rows := readAll(t, &buf)
	if len(rows) != 1 {
		t.Fatalf("expected only the header row, got %d rows", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []string{"name", "profileUrl"}) {
		t.Errorf("header = %v", rows[0])
	}
}

func TestCSVWriter_BaseColumns(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, Columns{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records := []models.Company{
		{Name: "Acme Inc", ProfileURL: "https://ycombinator.com/companies/acme"},
		{Name: "Beta Co", ProfileURL: "https://ycombinator.com/companies/beta"},
	}
	for _, r := range records {
		if err := w.Write(r); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if w.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", w.Rows())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	rows := readAll(t, &buf)
	want := [][]string{
		{"name", "profileUrl"},
		{"Acme Inc", "https://ycombinator.com/companies/acme"},
		{"Beta Co", "https://ycombinator.com/companies/beta"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestCSVWriter_AllColumns(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, Columns{Details: true, Profiles: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = w.Write(models.Company{
		Name:            "Acme Inc",
		ProfileURL:      "https://ycombinator.com/companies/acme",
		Location:        "San Francisco, CA",
		Description:     "Anvils as a service",
		Website:         "https://acme.example",
		LinkedIn:        "https://www.linkedin.com/company/acme-inc",
		FounderLinkedIn: []string{"https://www.linkedin.com/in/jane", "https://www.linkedin.com/in/john"},
	})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	rows := readAll(t, &buf)
	wantHeader := []string{"name", "profileUrl", "location", "description", "companyWebsite", "companyLinkedin", "founderLinkedin"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}
	if rows[1][6] != "https://www.linkedin.com/in/jane;https://www.linkedin.com/in/john" {
		t.Errorf("founder cell = %q", rows[1][6])
	}
}

func TestCreate_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := Create(path, Columns{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := w.Write(models.Company{Name: "Acme Inc", ProfileURL: "https://ycombinator.com/companies/acme"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output file is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected header + 1 data row, got %d rows", len(rows))
	}
}

func TestCreate_BadPathIsSinkFailure(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing", "out.csv"), Columns{})
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
	if models.CodeOf(err) != models.ErrCodeSink {
		t.Errorf("error code = %q, want %q", models.CodeOf(err), models.ErrCodeSink)
	}
}
