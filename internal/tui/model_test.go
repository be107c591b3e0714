package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"scoresync/internal/home"
)

func testModel(t *testing.T, fuser Fuser) *Model {
	t.Helper()
	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(Config{Fuser: fuser, Home: h, CanvasIndex: 0})
}

func fillForm(m *Model) {
	for i := 0; i < 4; i++ {
		m.inputs[i].SetValue("https://example.org/doc" + string(rune('a'+i)))
	}
	m.inputs[4].SetValue("2")
}

func pressEnter(m *Model) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmitRequiresAllResources(t *testing.T) {
	m := testModel(t, nil)
	fillForm(m)
	m.inputs[2].SetValue("")

	_, cmd := pressEnter(m)
	if cmd != nil {
		t.Error("expected no command for incomplete form")
	}
	if m.err == nil || !strings.Contains(m.err.Error(), "Temporal") {
		t.Errorf("err: got %v", m.err)
	}
	if m.phase != phaseForm {
		t.Error("phase must stay on the form")
	}
}

func TestSubmitRejectsNonIntegerIndex(t *testing.T) {
	m := testModel(t, nil)
	fillForm(m)
	m.inputs[4].SetValue("two")

	if _, cmd := pressEnter(m); cmd != nil {
		t.Error("expected no command for bad canvas index")
	}
	if m.err == nil {
		t.Error("expected canvas index error")
	}
}

func TestSubmitRunsFuser(t *testing.T) {
	var gotRefs []string
	var gotIndex int
	fuser := func(ctx context.Context, refs []string, canvasIndex int) ([]byte, error) {
		gotRefs = append([]string(nil), refs...)
		gotIndex = canvasIndex
		return []byte(`{"id": "doc"}`), nil
	}

	m := testModel(t, fuser)
	fillForm(m)

	_, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if m.phase != phaseRunning {
		t.Error("expected running phase after submit")
	}

	// The batch contains the spinner tick and the fuse command; drive
	// the fuse result through Update directly.
	msg := findFuseMsg(t, cmd)
	m.Update(msg)

	if m.phase != phaseResult {
		t.Errorf("phase: got %v, want result", m.phase)
	}
	if string(m.document) != `{"id": "doc"}` {
		t.Errorf("document: got %q", m.document)
	}
	if len(gotRefs) != 4 || gotIndex != 2 {
		t.Errorf("fuser inputs: refs=%v index=%d", gotRefs, gotIndex)
	}
}

func TestFuserErrorReturnsToForm(t *testing.T) {
	fuser := func(ctx context.Context, refs []string, canvasIndex int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	m := testModel(t, fuser)
	fillForm(m)

	_, cmd := pressEnter(m)
	msg := findFuseMsg(t, cmd)
	m.Update(msg)

	if m.phase != phaseForm {
		t.Error("expected return to form on error")
	}
	if m.err == nil || m.err.Error() != "boom" {
		t.Errorf("err: got %v", m.err)
	}
}

func TestSaveWritesDocument(t *testing.T) {
	m := testModel(t, nil)
	m.document = []byte(`{"id": "doc"}`)
	m.phase = phaseResult

	path, err := m.save()
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != `{"id": "doc"}` {
		t.Errorf("saved content: got %q", data)
	}
}

// findFuseMsg executes the submit command tree until it produces a
// fuse result message.
func findFuseMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case fuseDoneMsg, fuseErrMsg:
			return msg
		}
	}
	t.Fatal("no fuse message produced")
	return nil
}
