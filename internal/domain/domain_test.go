package domain

import "testing"

func TestStatus_Line(t *testing.T) {
	cases := []struct {
		in   Status
		want string
	}{
		{Status{Target: "google.com", State: Up}, "UP google.com The server is up and running"},
		{Status{Target: "punchng.com", State: Down}, "DOWN punchng.com The server is down, contact your Network Administrator"},
	}
	for _, c := range cases {
		if got := c.in.Line(); got != c.want {
			t.Fatalf("Line()=%q want %q", got, c.want)
		}
	}
}

func TestState_ZeroValueIsDown(t *testing.T) {
	var s State
	if s != Down || s.String() != "DOWN" {
		t.Fatalf("zero State should be DOWN, got %v", s)
	}
	if Up.String() != "UP" {
		t.Fatalf("want UP, got %q", Up.String())
	}
}

func TestDefaultTargets_OrderAndCopy(t *testing.T) {
	got := DefaultTargets()
	want := []Target{"google.com", "facebook.com", "punchng.com"}
	if len(got) != len(want) {
		t.Fatalf("want %d targets, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("target %d: want %q got %q", i, want[i], got[i])
		}
	}

	// mutating the returned slice must not leak into the next call
	got[0] = "changed.example"
	if again := DefaultTargets(); again[0] != "google.com" {
		t.Fatalf("default list was mutated: %v", again)
	}
}
