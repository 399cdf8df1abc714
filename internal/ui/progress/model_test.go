package progress

import (
	"errors"
	"testing"
)

func TestModelStepLifecycle(t *testing.T) {
	m := NewModel("Updating @CF", "Fetching and applying changes")

	next, _ := m.Update(StartStepMsg{})
	m = next.(Model)
	if got := m.GetProgress().Steps[0].State; got != StateInProgress {
		t.Errorf("step state after start = %v, want %v", got, StateInProgress)
	}

	next, _ = m.Update(SubProgressMsg{Percent: 40, Detail: "Receiving objects: 4/10"})
	m = next.(Model)
	if m.GetProgress().SubProgress != 40 {
		t.Errorf("SubProgress = %v, want 40", m.GetProgress().SubProgress)
	}

	next, cmd := m.Update(CompleteStepMsg{})
	m = next.(Model)
	if !m.IsDone() {
		t.Error("model not done after the last step completed")
	}
	if cmd == nil {
		t.Error("no quit command after completion")
	}
}

func TestModelDoneWithError(t *testing.T) {
	m := NewModel("Updating @CF", "Fetching and applying changes")

	next, _ := m.Update(DoneMsg{Err: errors.New("no remote configured")})
	m = next.(Model)

	if !m.IsDone() {
		t.Error("model not done after DoneMsg")
	}
	if m.GetError() == nil {
		t.Error("error lost on DoneMsg")
	}
}
