package store_test

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"umlwizard/internal/domain"
	"umlwizard/internal/store"
)

// fastKDF keeps sealing cheap in tests.
var fastKDF = store.KDFParams{N: 1 << 10, R: 8, P: 1}

func sampleState() domain.SessionState {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return domain.SessionState{
		ID:           "6f1c2b8e-0000-4000-8000-000000000001",
		Requirements: "A user logs in.",
		Step:         domain.StepActivity,
		Phase:        domain.PhaseFailed,
		Failure:      &domain.Failure{Op: "generateActivityDiagram", Message: "502 Bad Gateway", At: at},
		UseCase: &domain.UseCaseResult{
			Diagram:  domain.PNGDataURI("Zm9v"),
			Code:     "classDiagram...",
			UseCases: []string{"Login"},
			Actors:   []string{"User"},
		},
		Sequence:  []domain.LabeledDiagram{{Label: "Login Sequence", Image: domain.PNGDataURI("YmFy")}},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestSession_LoadMissing(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())
	_, ok, err := s.LoadSession("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("expected no session")
	}
}

func TestSession_SaveLoad_Plain(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())
	want := sampleState()

	if err := s.SaveSession(want, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.LoadSession("")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("mode = %o, want 600", perm)
	}
}

func TestSession_OverwriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := store.NewSessionFileStore(dir)
	first := sampleState()
	second := sampleState()
	second.Requirements = "An admin bans a user."

	for _, st := range []domain.SessionState{first, second} {
		if err := s.SaveSession(st, ""); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "session.json" {
		t.Fatalf("dir holds %v, want only session.json", entries)
	}
	got, _, err := s.LoadSession("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Requirements != second.Requirements {
		t.Fatalf("requirements = %q, want the second save", got.Requirements)
	}
}

func TestSession_SaveLoad_Sealed(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir()).WithKDF(fastKDF)
	want := sampleState()

	if err := s.SaveSession(want, "correct horse"); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if bytes.Contains(raw, []byte("A user logs in.")) {
		t.Fatal("sealed snapshot leaks plaintext")
	}

	got, ok, err := s.LoadSession("correct horse")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_WrongPassphrase_Fails(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir()).WithKDF(fastKDF)
	if err := s.SaveSession(sampleState(), "correct"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, _, err := s.LoadSession("wrong"); err != store.ErrWrongPassphrase {
		t.Fatalf("err = %v, want ErrWrongPassphrase", err)
	}
	if _, _, err := s.LoadSession(""); err != store.ErrPassphraseRequired {
		t.Fatalf("err = %v, want ErrPassphraseRequired", err)
	}
}

func TestSession_Delete(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())
	if err := s.DeleteSession(); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if err := s.SaveSession(sampleState(), ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.DeleteSession(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.LoadSession(""); ok {
		t.Fatal("session survived delete")
	}
}
