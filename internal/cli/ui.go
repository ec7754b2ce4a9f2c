package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/frames/internal/orbit"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorGray  = lipgloss.Color("245")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel  = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	styleOK     = lipgloss.NewStyle().Foreground(colorGreen)
)

// replayReport is what the replay command prints.
type replayReport struct {
	Ticks     int
	Instances []orbit.Stats
	Hits      map[string]int
}

func printReport(w io.Writer, r replayReport) {
	fmt.Fprintln(w, styleTitle.Render("replay finished"))
	row := func(label string, v int) {
		fmt.Fprintf(w, "  %s %s\n", styleLabel.Render(label), styleNumber.Render(fmt.Sprint(v)))
	}
	row("ticks", r.Ticks)
	for i, st := range r.Instances {
		fmt.Fprintln(w, styleOK.Render(fmt.Sprintf("› instance %d", i)))
		row("shifts", st.Shifts)
		row("swings", st.Swings)
		row("zooms", st.Zooms)
		row("double clicks", st.DoubleClicks)
		row("resets", st.Resets)
	}
	if len(r.Hits) == 0 {
		return
	}
	fmt.Fprintln(w, styleOK.Render("› clicks by frame"))
	keys := make([]string, 0, len(r.Hits))
	for k := range r.Hits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		row(k, r.Hits[k])
	}
}
