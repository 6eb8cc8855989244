package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"imgspace/internal/domain"
	appErrors "imgspace/internal/errors"

	tea "github.com/charmbracelet/bubbletea"
)

type recorder struct {
	scans   int
	deleted []string
	renamed [][2]string
	moved   [][2]string
}

func (r *recorder) config() Config {
	return Config{
		WorkspacePath: "/ws",
		Scan: func() tea.Cmd {
			r.scans++
			return func() tea.Msg { return nil }
		},
		Delete: func(rel string) tea.Cmd {
			r.deleted = append(r.deleted, rel)
			return func() tea.Msg { return MutationDoneMsg{Summary: "Deleted " + rel} }
		},
		Rename: func(rel, newName string) tea.Cmd {
			r.renamed = append(r.renamed, [2]string{rel, newName})
			return nil
		},
		Move: func(rel, newPath string) tea.Cmd {
			r.moved = append(r.moved, [2]string{rel, newPath})
			return nil
		},
	}
}

func images(paths ...string) []domain.ImageFile {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	out := make([]domain.ImageFile, 0, len(paths))
	for _, p := range paths {
		out = append(out, domain.NewImageFile(p, 100, ts, ts))
	}
	return out
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func browsing(t *testing.T, rec *recorder, paths ...string) Model {
	t.Helper()
	m := NewModel(rec.config())
	m, _ = update(t, m, ScanDoneMsg{Images: images(paths...)})
	if m.Phase != PhaseBrowse {
		t.Fatalf("expected browse phase, got %v", m.Phase)
	}
	return m
}

func TestInitStartsScan(t *testing.T) {
	rec := &recorder{}
	m := NewModel(rec.config())
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("expected init command")
	}
	if rec.scans != 1 {
		t.Fatalf("expected one scan, got %d", rec.scans)
	}
	if m.Phase != PhaseScanning {
		t.Fatalf("expected scanning phase")
	}
}

func TestCursorStaysInRange(t *testing.T) {
	m := browsing(t, &recorder{}, "a.png", "b.png")

	m, _ = update(t, m, key("k"))
	if m.Cursor != 0 {
		t.Fatalf("cursor moved above the list: %d", m.Cursor)
	}
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("j"))
	if m.Cursor != 1 {
		t.Fatalf("cursor moved below the list: %d", m.Cursor)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	rec := &recorder{}
	m := browsing(t, rec, "a.png", "b.png")
	m, _ = update(t, m, key("j"))

	m, _ = update(t, m, key("d"))
	if m.Phase != PhaseConfirmDelete {
		t.Fatalf("expected confirm phase, got %v", m.Phase)
	}

	// default answer is no
	m, _ = update(t, m, key("enter"))
	if len(rec.deleted) != 0 || m.Phase != PhaseBrowse {
		t.Fatalf("delete must not run without confirmation")
	}

	m, _ = update(t, m, key("d"))
	m, _ = update(t, m, key("y"))
	m, cmd := update(t, m, key("enter"))
	if len(rec.deleted) != 1 || rec.deleted[0] != "b.png" {
		t.Fatalf("expected b.png deleted, got %v", rec.deleted)
	}

	m, _ = update(t, m, cmd())
	if m.Phase != PhaseScanning || m.Status != "Deleted b.png" {
		t.Fatalf("expected rescan after delete, got phase %v status %q", m.Phase, m.Status)
	}
	if rec.scans != 1 {
		t.Fatalf("expected a rescan, got %d scans", rec.scans)
	}

	m, _ = update(t, m, ScanDoneMsg{Images: images("a.png")})
	if m.Cursor != 0 {
		t.Fatalf("cursor must be clamped after rescan, got %d", m.Cursor)
	}
}

func TestRenameUsesTextInput(t *testing.T) {
	rec := &recorder{}
	m := browsing(t, rec, "trip/a.png")

	m, _ = update(t, m, key("r"))
	if m.Phase != PhaseRenaming {
		t.Fatalf("expected renaming phase")
	}
	if m.input.Value() != "a.png" {
		t.Fatalf("expected prefilled name, got %q", m.input.Value())
	}

	m, _ = update(t, m, key("ctrl+u"))
	m = typeText(t, m, "beach.png")
	m, _ = update(t, m, key("enter"))

	if len(rec.renamed) != 1 || rec.renamed[0] != [2]string{"trip/a.png", "beach.png"} {
		t.Fatalf("unexpected rename calls %v", rec.renamed)
	}
	if m.Phase != PhaseBrowse {
		t.Fatalf("expected browse phase after submit")
	}
}

func TestRenameCancelAndUnchangedName(t *testing.T) {
	rec := &recorder{}
	m := browsing(t, rec, "a.png")

	m, _ = update(t, m, key("r"))
	m = typeText(t, m, "q")
	m, _ = update(t, m, key("esc"))
	if m.Phase != PhaseBrowse || m.Quitting {
		t.Fatalf("esc must only cancel the prompt")
	}

	m, _ = update(t, m, key("r"))
	m, _ = update(t, m, key("enter"))
	if len(rec.renamed) != 0 {
		t.Fatalf("unchanged name must not trigger a rename")
	}
}

func TestMovePrefillsRelativePath(t *testing.T) {
	rec := &recorder{}
	m := browsing(t, rec, "a/x.png")

	m, _ = update(t, m, key("m"))
	if m.Phase != PhaseMoving || m.input.Value() != "a/x.png" {
		t.Fatalf("unexpected state %v %q", m.Phase, m.input.Value())
	}
	m, _ = update(t, m, key("ctrl+u"))
	m = typeText(t, m, "b/y.png")
	_, _ = update(t, m, key("enter"))

	if len(rec.moved) != 1 || rec.moved[0] != [2]string{"a/x.png", "b/y.png"} {
		t.Fatalf("unexpected move calls %v", rec.moved)
	}
}

func TestRescanSelectsMovedFile(t *testing.T) {
	m := browsing(t, &recorder{}, "a.png", "z.png")

	m, _ = update(t, m, MutationDoneMsg{Summary: "Moved", Path: "b/z.png"})
	m, _ = update(t, m, ScanDoneMsg{Images: images("a.png", "b/z.png")})
	if m.Cursor != 1 {
		t.Fatalf("expected moved file selected, got cursor %d", m.Cursor)
	}
}

func TestMutationFailureKeepsBrowsing(t *testing.T) {
	m := browsing(t, &recorder{}, "a.png")

	err := appErrors.New(appErrors.TargetExists, "rename", "b.png", "destination already exists")
	m, _ = update(t, m, MutationFailedMsg{Err: err})
	if m.Phase != PhaseBrowse {
		t.Fatalf("expected browse phase, got %v", m.Phase)
	}
	if !strings.Contains(m.View(), "already exists: b.png") {
		t.Fatalf("expected error in view:\n%s", m.View())
	}
}

func TestScanErrorIsFatal(t *testing.T) {
	m := NewModel((&recorder{}).config())
	m, _ = update(t, m, ErrorMsg{Err: errors.New("boom")})
	if m.Phase != PhaseError {
		t.Fatalf("expected error phase")
	}
	m, cmd := update(t, m, key("enter"))
	if !m.Quitting || cmd == nil {
		t.Fatalf("expected quit after error")
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		cursor, total, size int
		start, end          int
	}{
		{0, 3, 5, 0, 3},
		{0, 20, 5, 0, 5},
		{10, 20, 5, 8, 13},
		{19, 20, 5, 15, 20},
	}
	for _, tt := range tests {
		start, end := visibleRange(tt.cursor, tt.total, tt.size)
		if start != tt.start || end != tt.end {
			t.Fatalf("visibleRange(%d,%d,%d) = %d,%d; want %d,%d", tt.cursor, tt.total, tt.size, start, end, tt.start, tt.end)
		}
	}
}
