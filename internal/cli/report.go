package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/shinji-kodama/devserve/internal/model"
	"github.com/shinji-kodama/devserve/internal/port"
)

// reporter prints the operator-facing status lines of a serve run. The text
// form is for humans and is not a stable interface; the JSON form emits one
// object per event.
type reporter struct {
	out  io.Writer
	json bool
}

func newReporter(out io.Writer) *reporter {
	return &reporter{out: out, json: IsJSONOutput()}
}

// event is the JSON shape of every report.
type event struct {
	Event string `json:"event"`
	Port  int    `json:"port,omitempty"`
	Dir   string `json:"dir,omitempty"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

func (r *reporter) emit(e event) {
	data, _ := json.Marshal(e)
	fmt.Fprintln(r.out, string(data))
}

func (r *reporter) listening(portNum int, dir, url string) {
	if r.json {
		r.emit(event{Event: "listening", Port: portNum, Dir: dir, URL: url})
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintf(r.out, "🚀 Server started: %s\n", url)
	fmt.Fprintf(r.out, "📂 Directory: %s\n", dir)
	fmt.Fprintf(r.out, "🌐 Open %s in your browser\n", url)
	fmt.Fprintln(r.out, "🛑 Press Ctrl+C to stop")
	fmt.Fprintln(r.out, strings.Repeat("-", 50))
}

func (r *reporter) portUnavailable(e *model.PortUnavailableError) {
	if r.json {
		r.emit(event{Event: "port_unavailable", Port: e.Port, Error: e.Err.Error()})
		return
	}
	color.New(color.FgYellow).Fprintf(r.out, "❌ Port %d unavailable: %v\n", e.Port, e.Err)
}

func (r *reporter) exhausted(e *model.AllPortsExhaustedError) {
	if r.json {
		r.emit(event{Event: "ports_exhausted", Error: e.Error()})
		return
	}
	color.New(color.FgRed).Fprintf(r.out, "😢 No available port among %s\n", port.FormatCandidates(e.Ports))
}

func (r *reporter) stopped(portNum int) {
	if r.json {
		r.emit(event{Event: "stopped", Port: portNum})
		return
	}
	fmt.Fprintln(r.out)
	color.New(color.FgGreen).Fprintf(r.out, "✅ Server stopped (port %d)\n", portNum)
}
