package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlwizard/internal/domain"
	"umlwizard/internal/render"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "Login Sequence", render.Label("  Login   Sequence ", "x"))
	assert.Equal(t, "Login", render.Label(`<script>alert(1)</script><b>Login</b>`, "x"))
	assert.Equal(t, "Tom & Jerry", render.Label("Tom &amp; Jerry", "x"))
	assert.Equal(t, "fallback", render.Label("<img src=x>", "fallback"))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "login-sequence", render.Slug("Login Sequence"))
	assert.Equal(t, "reset-password", render.Slug("  Reset / Password!! "))
	assert.Equal(t, "", render.Slug("///"))
}

func TestExportPNGs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	state := domain.SessionState{
		Step: domain.StepActivity,
		UseCase: &domain.UseCaseResult{
			Diagram: domain.PNGDataURI("Zm9v"),
		},
		Sequence: []domain.LabeledDiagram{{Label: "Login Sequence", Image: domain.PNGDataURI("YmFy")}},
		Activity: []domain.LabeledDiagram{{Label: "", Image: domain.PNGDataURI("YmF6")}},
	}

	files, err := render.ExportPNGs(state, dir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	want := []struct{ name, body string }{
		{"use-case-01-use-case-diagram.png", "foo"},
		{"sequence-01-login-sequence.png", "bar"},
		{"activity-01-activity-1.png", "baz"},
	}
	for i, w := range want {
		assert.Equal(t, filepath.Join(dir, w.name), files[i].Path)
		b, err := os.ReadFile(files[i].Path)
		require.NoError(t, err)
		assert.Equal(t, w.body, string(b))
	}
}

func TestExportPNGs_BadPayload(t *testing.T) {
	state := domain.SessionState{
		UseCase: &domain.UseCaseResult{Diagram: domain.PNGDataURI("not base64!")},
	}
	_, err := render.ExportPNGs(state, t.TempDir())
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	state := domain.SessionState{
		ID:           "abc",
		Requirements: "A user logs in.",
		Step:         domain.StepSequence,
		Phase:        domain.PhaseFailed,
		Failure:      &domain.Failure{Op: "generateSequenceDiagram", Message: "boom"},
		UseCase: &domain.UseCaseResult{
			Diagram:  domain.PNGDataURI("Zm9v"),
			UseCases: []string{"Login"},
			Actors:   []string{"User"},
		},
	}
	require.NoError(t, render.Summary(&buf, state))
	out := buf.String()
	assert.Contains(t, out, "Step:     3 of 4 (sequence)")
	assert.Contains(t, out, "Status:   failed")
	assert.Contains(t, out, "generateSequenceDiagram")
	assert.Contains(t, out, "use cases: Login")
	assert.Contains(t, out, "Next:     generate the sequence diagrams")
}
