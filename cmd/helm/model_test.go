package main

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unklstewy/shipcommand/internal/logging"
	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/config"
)

func newTestModel(t *testing.T) (model, *sim.World) {
	t.Helper()
	w, _, err := sim.FromConfig(config.DefaultConfig(), logging.Discard())
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	w.Advance(0)
	return newModel(w, 0), w
}

func press(m model, key string) model {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(model)
}

func TestSelection(t *testing.T) {
	m, _ := newTestModel(t)

	if m.refresh != 100*time.Millisecond {
		t.Errorf("Expected refresh floor of 100ms, got %v", m.refresh)
	}

	m = press(m, "up")
	if m.selected != 0 {
		t.Errorf("Expected selection to stay at 0, got %d", m.selected)
	}
	for i := 0; i < 5; i++ {
		m = press(m, "down")
	}
	if m.selected != 2 {
		t.Errorf("Expected selection to stop at the last vessel, got %d", m.selected)
	}

	v, ok := m.current()
	if !ok || v.Name != "Salta" {
		t.Errorf("Expected Salta selected, got %+v", v)
	}
}

func TestControlKeys(t *testing.T) {
	m, w := newTestModel(t)

	// Vessels are ordered by name: Espora, Indomita, Salta
	v, _ := m.current()
	startThrottle := v.Throttle

	tests := []struct {
		name  string
		keys  []string
		check func(t *testing.T, throttle, rudder, planes float64)
	}{
		{
			name: "throttle up",
			keys: []string{"w"},
			check: func(t *testing.T, throttle, _, _ float64) {
				if math.Abs(throttle-(startThrottle+throttleStep)) > 1e-9 {
					t.Errorf("Expected throttle %.2f, got %.2f", startThrottle+throttleStep, throttle)
				}
			},
		},
		{
			name: "full starboard rudder clamps",
			keys: []string{"d", "d", "d", "d", "d", "d"},
			check: func(t *testing.T, _, rudder, _ float64) {
				if rudder != 1 {
					t.Errorf("Expected rudder 1, got %f", rudder)
				}
			},
		},
		{
			name: "center",
			keys: []string{"r", "c"},
			check: func(t *testing.T, _, rudder, planes float64) {
				if rudder != 0 || planes != 0 {
					t.Errorf("Expected centered rudder and planes, got %f/%f", rudder, planes)
				}
			},
		},
		{
			name: "stop",
			keys: []string{"0"},
			check: func(t *testing.T, throttle, _, _ float64) {
				if throttle != 0 {
					t.Errorf("Expected throttle 0, got %f", throttle)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range tt.keys {
				m = press(m, key)
				w.Advance(0)
			}
			if m.err != nil {
				t.Fatalf("Unexpected error: %v", m.err)
			}
			got, _ := w.Snapshot().Vehicle(v.ID)
			tt.check(t, got.Throttle, got.Rudder, got.Planes)
		})
	}
}

func TestPauseKey(t *testing.T) {
	m, w := newTestModel(t)

	m = press(m, " ")
	if !w.Paused() {
		t.Error("Expected space to pause")
	}
	m = press(m, "p")
	if w.Paused() {
		t.Error("Expected p to resume")
	}
}

func TestTickRefreshesFrame(t *testing.T) {
	m, w := newTestModel(t)
	w.Advance(30)

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(model)
	if m.frame.Tick != 30 {
		t.Errorf("Expected tick 30 after refresh, got %d", m.frame.Tick)
	}
	if cmd == nil {
		t.Error("Expected the next tick to be scheduled")
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()

	for _, want := range []string{"Espora", "Indomita", "Salta", "Controls: Espora", "Contacts", "CPA"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestGauge(t *testing.T) {
	tests := []struct {
		value, lo, hi float64
		want          int
	}{
		{0, 0, 1, 0},
		{1, 0, 1, 20},
		{0, -1, 1, 10},
		{-5, -1, 1, 0},
	}
	for _, tt := range tests {
		runes := []rune(gauge(tt.value, tt.lo, tt.hi))
		if got := indexOf(runes, '●') - 1; got != tt.want {
			t.Errorf("gauge(%v, %v, %v) marker at %d, want %d", tt.value, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func indexOf(runes []rune, r rune) int {
	for i, c := range runes {
		if c == r {
			return i
		}
	}
	return -1
}
