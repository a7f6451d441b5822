package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/session"
	"github.com/iksnae/dm-insights/testutil"
)

func TestExportSelection(t *testing.T) {
	state := testState(t)

	tests := []struct {
		name      string
		partner   string
		weeks     []string
		wantNames []string
		wantErr   error
	}{
		{name: "empty selection", partner: "carol", weeks: nil},
		{name: "single week", partner: "bob", weeks: []string{"2024-W03"}, wantNames: []string{"bob_2024-W03.md"}},
		{
			name:      "sorted and deduplicated",
			partner:   "carol",
			weeks:     []string{"2024-W05", "2023-W44", "2024-W05"},
			wantNames: []string{"carol_2023-W44.md", "carol_2024-W05.md"},
		},
		{name: "unknown partner", partner: "zed", weeks: []string{"2024-W03"}, wantErr: session.ErrUnknownPartner},
		{name: "week without messages", partner: "bob", weeks: []string{"2024-W10"}, wantErr: ErrUnknownWeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := ExportSelection(state, tt.partner, tt.weeks)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExportSelection() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExportSelection() error = %v", err)
			}
			if len(files) != len(tt.wantNames) {
				t.Fatalf("ExportSelection() returned %d files, want %d", len(files), len(tt.wantNames))
			}
			for i, f := range files {
				if f.Name != tt.wantNames[i] {
					t.Errorf("files[%d] = %s, want %s", i, f.Name, tt.wantNames[i])
				}
				if len(f.Content) == 0 {
					t.Errorf("files[%d] is empty", i)
				}
			}
		})
	}
}

func TestExportSelection_MalformedKey(t *testing.T) {
	_, err := ExportSelection(testState(t), "bob", []string{"last week"})
	var parseErr *internal.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("ExportSelection() error = %v, want ParseError", err)
	}
}

func TestBundle(t *testing.T) {
	one := File{Name: "bob_2024-W03.md", Content: []byte("a")}
	two := File{Name: "bob_2024-W04.md", Content: []byte("b")}

	if got, err := Bundle("bob", nil); err != nil || got != nil {
		t.Errorf("Bundle(none) = %v, %v, want nil", got, err)
	}

	got, err := Bundle("bob", []File{one})
	if err != nil || got.Name != one.Name || string(got.Content) != "a" {
		t.Errorf("Bundle(one) = %+v, %v", got, err)
	}

	got, err = Bundle("bob/alice", []File{one, two})
	if err != nil {
		t.Fatalf("Bundle(two) error = %v", err)
	}
	if got.Name != "bob_alice_export.zip" {
		t.Errorf("bundle name = %s", got.Name)
	}

	zr, err := zip.NewReader(bytes.NewReader(got.Content), int64(len(got.Content)))
	if err != nil {
		t.Fatalf("bundle is not a zip: %v", err)
	}
	if len(zr.File) != 2 || zr.File[0].Name != one.Name || zr.File[1].Name != two.Name {
		t.Errorf("zip entries = %v", zr.File)
	}
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bob", "bob"},
		{"a/b\\c", "a_b_c"},
		{"what?", "what_"},
		{"  ", "conversation"},
		{"..", "conversation"},
	}
	for _, tt := range tests {
		if got := SafeFileName(tt.in); got != tt.want {
			t.Errorf("SafeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(testutil.CreateTempDir(t), "out")
	files := []File{
		{Name: "a.md", Content: []byte("first")},
		{Name: "b.md", Content: []byte("second")},
	}

	paths, err := WriteFiles(context.Background(), dir, files)
	if err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}
	if len(paths) != 2 || !strings.HasSuffix(paths[1], "b.md") {
		t.Errorf("paths = %v", paths)
	}
	if got := testutil.ReadFile(t, paths[0]); got != "first" {
		t.Errorf("a.md = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.md")); err != nil {
		t.Errorf("b.md missing: %v", err)
	}
}
