package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"geomeasure/internal/measure"
)

// refreshLegs rebuilds the legs table from the live session.
func (m *Model) refreshLegs() {
	legs := m.ctl.Legs()
	u := m.ctl.Units().Distance
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "From", Width: 22},
		{Title: "To", Width: 22},
		{Title: "Distance", Width: 16},
	}
	rows := make([]table.Row, 0, len(legs)+1)
	for i, l := range legs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.5f, %.5f", l.From.Lon(), l.From.Lat()),
			fmt.Sprintf("%.5f, %.5f", l.To.Lon(), l.To.Lat()),
			measure.FormatDistance(l.Meters, u),
		})
	}
	if snap := m.ctl.Session(); snap.Mode != measure.ModeNone && len(snap.Points) > 0 {
		total := measure.FormatDistance(snap.Total, u)
		if snap.Mode == measure.ModeArea {
			total = measure.FormatArea(snap.Total, m.ctl.Units().Area)
		}
		rows = append(rows, table.Row{"", "", snap.Mode.String(), total})
	}
	// clear rows first so SetColumns never sees a mismatched row
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

func (m *Model) toggleLegs() {
	if m.showLegs {
		m.showLegs = false
		return
	}
	if len(m.ctl.Session().Points) == 0 {
		m.status = "no measurement to tabulate"
		return
	}
	m.showLegs = true
	m.refreshLegs()
}
