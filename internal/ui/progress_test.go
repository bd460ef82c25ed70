package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"coral/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("coral fmt", []string{"a.py"}, events).(*progressModel)

	steps := []driver.Event{
		{File: "a.py", Stage: driver.StageRead, Status: driver.StatusWorking},
		{File: "b.py", Status: driver.StatusQueued},
		{File: "a.py", Status: driver.StatusDone, Changed: true},
		{File: "b.py", Status: driver.StatusError},
		{File: "b.py", Stage: driver.StageFormat, Status: driver.StatusWorking},
	}
	for _, ev := range steps {
		m.Update(eventMsg(ev))
	}

	if got := m.items[0].status; got != "changed" {
		t.Fatalf("a.py: got %q, want changed", got)
	}
	if got := m.items[1].status; got != "error" {
		t.Fatalf("b.py: a late event must not reopen a failed file, got %q", got)
	}
	if m.changed != 1 || m.failed != 1 {
		t.Fatalf("counts: changed=%d failed=%d", m.changed, m.failed)
	}
	if p := m.percent(); p != 1 {
		t.Fatalf("percent = %v, want 1", p)
	}

	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: coral fmt: 2/2 files", "a.py", "b.py", "1 changed, 1 failed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestVisibleKeepsRunningFiles(t *testing.T) {
	m := NewProgressModel("fmt", nil, nil).(*progressModel)
	for i := range maxRows + 5 {
		path := string(rune('a'+i)) + ".py"
		m.applyEvent(driver.Event{File: path, Status: driver.StatusDone})
	}
	m.applyEvent(driver.Event{File: "z.py", Stage: driver.StageFormat, Status: driver.StatusWorking})
	rows := m.visible()
	if len(rows) != maxRows {
		t.Fatalf("got %d rows, want %d", len(rows), maxRows)
	}
	if rows[0].path != "z.py" || rows[0].status != "formatting" {
		t.Fatalf("running file should lead, got %+v", rows[0])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 5); got != "ab..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestCtrlCInterrupts(t *testing.T) {
	m := NewProgressModel("fmt", nil, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !Interrupted(m) {
		t.Fatalf("expected the model to record the interrupt")
	}
}
