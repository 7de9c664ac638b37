// Package render builds dashboard frames from state snapshots.
//
// Rendering is pure: Render reads a View and returns a Frame of plain-text
// lines tagged with a Style and Tone. Color is applied later by a display,
// so frames can be asserted as plain text.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/nerdminer/internal/miner"
	"github.com/rileyhilliard/nerdminer/internal/network"
)

// ScreenOffMessage is shown instead of the dashboard while the screen is off.
const ScreenOffMessage = "Screen OFF - Press P to turn on"

const idleUptime = "00:00:00"

var banner = []string{
	"╔══════════════════════════════════════════════════╗",
	"║              NERDMINER v2 - TERMINAL             ║",
	"╚══════════════════════════════════════════════════╝",
}

var buttonLegend = []string{
	"[P] Power Button (Screen ON/OFF)",
	"[V] Volume Button x2 (Start/Stop Mining)",
	"[R] Refresh Network Data",
	"[Q] Quit",
}

// View is everything one frame shows, captured under a single lock.
type View struct {
	Stats       miner.Snapshot
	Network     network.Snapshot
	Temperature int
	Now         time.Time
}

// Renderer lays out frames with a fixed graph size.
type Renderer struct {
	graphWidth  int
	graphHeight int
}

// NewRenderer creates a renderer. Non-positive sizes fall back to 40x8.
func NewRenderer(graphWidth, graphHeight int) *Renderer {
	if graphWidth <= 0 {
		graphWidth = DefaultGraphWidth
	}
	if graphHeight <= 0 {
		graphHeight = DefaultGraphHeight
	}
	return &Renderer{graphWidth: graphWidth, graphHeight: graphHeight}
}

// Render builds the full dashboard frame.
func (r *Renderer) Render(v View) Frame {
	lines := make([]Line, 0, 32+r.graphHeight)

	for _, b := range banner {
		lines = append(lines, Line{Style: StyleBanner, Value: b})
	}
	lines = append(lines, Line{})

	status, tone := "STOPPED", ToneBad
	if v.Stats.Running {
		status, tone = "MINING", ToneGood
	}
	lines = append(lines,
		Line{Style: StyleField, Label: "STATUS:", Value: status, Tone: tone},
		Line{Style: StyleField, Label: "HASHRATE:", Value: FormatRate(v.Stats.CurrentRate), Tone: ToneRate},
		Line{Style: StyleField, Label: "SHARES:", Value: strconv.FormatUint(v.Stats.AcceptedShares, 10)},
		Line{Style: StyleField, Label: "TOTAL HASHES:", Value: FormatCount(float64(v.Stats.TotalHashes))},
		Line{Style: StyleField, Label: "UPTIME:", Value: uptime(v), Tone: ToneTime},
		Line{Style: StyleField, Label: "TEMPERATURE:", Value: fmt.Sprintf("%d°C", v.Temperature), Tone: HeatTone(v.Temperature)},
		Line{},
	)

	lines = append(lines, Line{Style: StyleHeading, Value: "HASHRATE GRAPH:"})
	graph := Sparkline(v.Stats.RateHistory, r.graphWidth, r.graphHeight)
	for _, row := range strings.Split(graph, "\n") {
		lines = append(lines, Line{Style: StyleGraph, Value: row})
	}
	lines = append(lines, Line{})

	lines = append(lines,
		Line{Style: StyleHeading, Value: "NETWORK DATA:"},
		Line{Style: StyleSubField, Label: "BLOCK:", Value: FormatHeight(v.Network.BlockHeight)},
		Line{Style: StyleSubField, Label: "BTC PRICE:", Value: FormatPrice(v.Network.BTCPriceUSD), Tone: TonePrice},
		Line{Style: StyleSubField, Label: "DIFFICULTY:", Value: v.Network.DifficultyLabel},
		Line{Style: StyleSubField, Label: "NETWORK HASHRATE:", Value: v.Network.NetworkHashrateLabel, Tone: ToneRate},
		Line{},
	)

	lines = append(lines, Line{Style: StyleHeading, Value: "PHONE BUTTON EMULATION:"})
	for _, l := range buttonLegend {
		lines = append(lines, Line{Style: StyleHint, Value: l})
	}

	return Frame{Lines: lines}
}

func uptime(v View) string {
	if !v.Stats.Running || v.Stats.StartTime.IsZero() {
		return idleUptime
	}
	d := v.Now.Sub(v.Stats.StartTime)
	return FormatUptime(d)
}
