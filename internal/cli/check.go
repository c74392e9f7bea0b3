package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/shinji-kodama/devserve/internal/port"
)

// checkJSON is the JSON output structure of --check.
type checkJSON struct {
	Port      int  `json:"port"`
	Available bool `json:"available"`
}

// printCheckResult outputs candidate availability in text or JSON format,
// depending on the global --json flag.
func printCheckResult(out io.Writer, rows []port.Availability) {
	if IsJSONOutput() {
		printCheckResultJSON(out, rows)
	} else {
		printCheckResultText(out, rows)
	}
}

func printCheckResultJSON(out io.Writer, rows []port.Availability) {
	result := struct {
		Candidates []checkJSON `json:"candidates"`
	}{
		// Empty slice instead of nil so the output shows [] not null.
		Candidates: make([]checkJSON, 0, len(rows)),
	}
	for _, r := range rows {
		result.Candidates = append(result.Candidates, checkJSON{Port: r.Port, Available: r.Available})
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(out, string(data))
}

// printCheckResultText renders a table in candidate order. The first free
// port is marked as the one a serve run would pick.
//
//	+------+--------+------+
//	| PORT | STATUS | USED |
//	+------+--------+------+
//	| 8000 | in use |      |
//	| 8080 | free   | *    |
//	+------+--------+------+
func printCheckResultText(out io.Writer, rows []port.Availability) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Port", "Status", "Used"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	picked := false
	for _, r := range rows {
		status := "in use"
		mark := ""
		if r.Available {
			status = "free"
			if !picked {
				mark = "*"
				picked = true
			}
		}
		table.Append([]string{strconv.Itoa(r.Port), status, mark})
	}
	table.Render()

	if !picked {
		fmt.Fprintln(out, "No candidate port is free.")
	}
}
