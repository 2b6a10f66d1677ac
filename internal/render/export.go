package render

import (
	"fmt"
	"os"
	"path/filepath"

	"umlwizard/internal/domain"
)

// ExportedFile is one image written by ExportPNGs.
type ExportedFile struct {
	Kind  string // use-case, sequence or activity
	Label string
	Path  string
}

// ExportPNGs writes every image held by state into dir and returns what it
// wrote, in wizard order. Files are named <kind>-<nn>-<label>.png.
func ExportPNGs(state domain.SessionState, dir string) ([]ExportedFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var out []ExportedFile
	write := func(kind string, n int, label string, img domain.DataURI) error {
		png, err := img.PNG()
		if err != nil {
			return fmt.Errorf("decode %s image %q: %w", kind, label, err)
		}
		name := fmt.Sprintf("%s-%02d", kind, n)
		if slug := Slug(label); slug != "" {
			name += "-" + slug
		}
		path := filepath.Join(dir, name+".png")
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return err
		}
		out = append(out, ExportedFile{Kind: kind, Label: label, Path: path})
		return nil
	}

	if uc := state.UseCase; uc != nil {
		if err := write("use-case", 1, "Use Case Diagram", uc.Diagram); err != nil {
			return out, err
		}
	}
	for i, d := range state.Sequence {
		label := Label(d.Label, fmt.Sprintf("Sequence %d", i+1))
		if err := write("sequence", i+1, label, d.Image); err != nil {
			return out, err
		}
	}
	for i, d := range state.Activity {
		label := Label(d.Label, fmt.Sprintf("Activity %d", i+1))
		if err := write("activity", i+1, label, d.Image); err != nil {
			return out, err
		}
	}
	return out, nil
}
