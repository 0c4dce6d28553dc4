package memory

import (
	"strings"
	"testing"
)

func TestRenderHistoryFormatsTurns(t *testing.T) {
	t.Parallel()

	m := New()
	m.AppendUser("hello")
	m.AppendAgent("namaste! kya chahiye?")
	m.AppendUser("laptop dikhao")

	got := m.RenderHistory(DefaultHistoryWindow)
	want := "Customer: hello\nAssistant: namaste! kya chahiye?\nCustomer: laptop dikhao\n"
	if got != want {
		t.Fatalf("unexpected history:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderHistoryFewerTurnsThanWindow(t *testing.T) {
	t.Parallel()

	m := New()
	m.AppendUser("one")
	m.AppendAgent("two")
	m.AppendUser("three")

	got := m.RenderHistory(6)
	if strings.Count(got, "\n") != 3 {
		t.Fatalf("expected all 3 turns, got:\n%q", got)
	}
}

func TestRenderHistoryBoundsAndOrder(t *testing.T) {
	t.Parallel()

	m := New()
	m.AppendUser("t1")
	m.AppendAgent("t2")
	m.AppendUser("t3")
	m.AppendAgent("t4")
	m.AppendUser("t5")

	got := m.RenderHistory(2)
	if strings.Count(got, "\n") != 2 {
		t.Fatalf("expected 2 turns, got:\n%q", got)
	}
	if got != "Assistant: t4\nCustomer: t5\n" {
		t.Fatalf("expected the most recent turns oldest-first, got:\n%q", got)
	}
	if strings.Contains(got, "t1") {
		t.Fatal("oldest turn must be excluded")
	}
}

func TestContextBag(t *testing.T) {
	t.Parallel()

	m := New()
	if got := m.GetContext("missing", "default"); got != "default" {
		t.Fatalf("expected default, got %v", got)
	}

	m.SetContext("last_purchase", 42)
	if got := m.GetContext("last_purchase", nil); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}

	m.SetContext("last_purchase", 43)
	if got := m.GetContext("last_purchase", nil); got != 43 {
		t.Fatalf("expected overwrite to 43, got %v", got)
	}
}

func TestTurnsReturnsCopy(t *testing.T) {
	t.Parallel()

	m := New()
	m.AppendUser("original")

	turns := m.Turns()
	turns[0].Text = "mutated"

	if m.Turns()[0].Text != "original" {
		t.Fatal("Turns must return a copy")
	}
}
