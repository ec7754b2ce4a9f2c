package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/frames"
)

const resetScript = `{"steps": [
	{"action": "drag", "fromX": 128, "fromY": 128, "toX": 168, "toY": 128, "frames": 6},
	{"action": "wait", "frames": 30},
	{"action": "click", "x": 168, "y": 128},
	{"action": "click", "x": 168, "y": 128}
]}`

func mustRunner(t *testing.T, script string) *frames.TestRunner {
	t.Helper()
	r, err := frames.LoadTestScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestReplayDragAndReset(t *testing.T) {
	report, err := replay(DefaultConfig(), mustRunner(t, resetScript), defaultMaxTick, log.New(io.Discard))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(report.Instances) != 1 {
		t.Fatalf("instances = %d, want 1", len(report.Instances))
	}
	st := report.Instances[0]
	if st.Shifts == 0 || st.Swings != 0 {
		t.Errorf("drag stats = %+v", st)
	}
	if st.DoubleClicks != 1 || st.Resets != 1 {
		t.Errorf("reset stats = %+v", st)
	}
	// One click ends the drag, two more make the double click.
	if report.Hits["yellow"] != 3 {
		t.Errorf("hits = %v, want 3 on yellow", report.Hits)
	}
	// The script is 40 frames; the reset needs more ticks to settle.
	if report.Ticks <= 40 {
		t.Errorf("ticks = %d, want the reset to run past the script", report.Ticks)
	}
}

func TestReplayInstancesAreIndependent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Instances = 2
	script := `{"steps": [{"action": "drag", "fromX": 384, "fromY": 128, "toX": 400, "toY": 128, "frames": 3}]}`
	report, err := replay(cfg, mustRunner(t, script), defaultMaxTick, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	if report.Instances[0].Shifts != 0 {
		t.Errorf("first instance shifted: %+v", report.Instances[0])
	}
	if report.Instances[1].Shifts == 0 {
		t.Errorf("second instance did not shift: %+v", report.Instances[1])
	}
}

func TestReplayGivesUp(t *testing.T) {
	_, err := replay(DefaultConfig(), mustRunner(t, resetScript), 5, log.New(io.Discard))
	if err == nil || !strings.Contains(err.Error(), "still running") {
		t.Errorf("err = %v, want a tick limit error", err)
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, replayReport{Ticks: 7, Hits: map[string]int{"yellow": 2, "(none)": 1}})
	out := buf.String()
	for _, want := range []string{"replay finished", "ticks", "7", "yellow", "(none)"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "(none)") > strings.Index(out, "yellow") {
		t.Error("hit keys not sorted")
	}
}

func TestReplayCommand(t *testing.T) {
	path := writeFile(t, "script.json", resetScript)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"replay", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("replay command: %v", err)
	}
	if !strings.Contains(out.String(), "replay finished") {
		t.Errorf("output = %q", out.String())
	}
}

func TestReplayCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"no script", []string{"replay"}, errNoScript},
		{"bad script", []string{"replay", writeFile(t, "bad.json", `{"steps": []}`)}, frames.ErrInvalidScript},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); !errors.Is(err, tt.is) {
				t.Errorf("err = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestVersionFlag(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	defer SetVersion("", "", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "framedemo 1.2.3") || !strings.Contains(out.String(), "abc123") {
		t.Errorf("version output = %q", out.String())
	}
}
