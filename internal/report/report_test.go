package report

import (
	"testing"

	"github.com/spf13/afero"
)

const sampleJSON = `{
  "value": [
    {
      "Media": [
        {
          "RelativeFilePath": "files\\IMG001.jpg",
          "MediaFiles": [{"FileName": "photo.jpg"}]
        },
        {
          "RelativeFilePath": "files\\IMG002.jpg",
          "MediaFiles": [{"FileName": "photo.jpg"}, {"FileName": "ignored.jpg"}]
        },
        {
          "RelativeFilePath": "",
          "MediaFiles": [{"FileName": "orphan.jpg"}]
        },
        {
          "RelativeFilePath": "files\\IMG003.dat",
          "MediaFiles": []
        }
      ]
    }
  ]
}`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []Entry{
		{RelativePath: "files/IMG001.jpg", OriginalName: "photo.jpg"},
		{RelativePath: "files/IMG002.jpg", OriginalName: "photo.jpg"},
	}
	if len(m.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(m.Entries), len(want))
	}
	for i, e := range m.Entries {
		if e != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, e, want[i])
		}
	}
	if m.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", m.Skipped)
	}
}

func TestParse_OnlyFirstMediaFileUsed(t *testing.T) {
	m, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Entries[1].OriginalName != "photo.jpg" {
		t.Errorf("OriginalName = %q, want first MediaFiles entry", m.Entries[1].OriginalName)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Error("Parse of invalid JSON should fail")
	}
}

func TestParse_EmptyReport(t *testing.T) {
	m, err := Parse([]byte(`{"value": []}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Entries) != 0 || m.Skipped != 0 {
		t.Errorf("got %d entries / %d skipped, want 0 / 0", len(m.Entries), m.Skipped)
	}
}

func TestNormalizeRelPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"backslashes", `files\sub\a.jpg`, "files/sub/a.jpg"},
		{"forward slashes kept", "files/a.jpg", "files/a.jpg"},
		{"leading separator stripped", `\files\a.jpg`, "files/a.jpg"},
		{"dot segments collapsed", "files/./a.jpg", "files/a.jpg"},
		{"escaping path rejected", `..\..\etc\passwd`, ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeRelPath(tt.in)
			if got != tt.want {
				t.Errorf("normalizeRelPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "case.json", []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(fs, "case.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(m.Entries))
	}

	if _, err := Load(fs, "missing.json"); err == nil {
		t.Error("Load of missing file should fail")
	}
}
