package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
	"github.com/alfredjeanlab/brewlog/internal/model"
	"github.com/alfredjeanlab/brewlog/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// fmtGravity renders a specific gravity with brewing's customary three
// decimals.
func fmtGravity(g float64) string {
	return fmt.Sprintf("%.3f", g)
}

func fmtOptGravity(g *float64) string {
	if g == nil {
		return "-"
	}
	return fmtGravity(*g)
}

// fmtABV renders the ABV when the final gravity is known, "-" otherwise.
func fmtABV(b *model.Brew) string {
	abv, err := b.ABV()
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", abv)
}

func fmtAttenuation(b *model.Brew) string {
	att, err := b.Attenuation()
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", att)
}

func printSlotTable(slots []*model.Slot) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tNAME\tBREW\tCATEGORY\tSTAGE\tOG\tFG\tABV\tDAYS")
	for i, s := range slots {
		if s.Empty() {
			fmt.Fprintf(w, "%d\t%s\t%s\t\t\t\t\t\t\n", i+1, s.Name, ui.RenderMuted("(empty)"))
			continue
		}
		b := s.Brew
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			s.Name,
			b.Name,
			b.Category,
			ui.RenderStage(b.Stage),
			fmtGravity(b.OG),
			fmtOptGravity(b.FG),
			fmtABV(b),
			mgr.Clock().DaysSince(b.CreatedAt),
		)
	}
	w.Flush()
}

func printBrewDetail(slotName string, b *model.Brew) {
	clk := mgr.Clock()
	fmt.Println(ui.RenderHeader(fmt.Sprintf("%s: %s", slotName, b.Name)))
	fmt.Printf("ID:           %s\n", b.ID)
	fmt.Printf("Category:     %s\n", b.Category)
	fmt.Printf("Stage:        %s\n", ui.RenderStage(b.Stage))
	fmt.Printf("Vessel:       %s\n", b.Vessel)
	fmt.Printf("Started:      %s (%s ago)\n", clk.Format(b.CreatedAt), clk.DaysSince(b.CreatedAt))
	fmt.Printf("OG:           %s\n", fmtGravity(b.OG))
	fmt.Printf("FG:           %s\n", fmtOptGravity(b.FG))
	fmt.Printf("ABV:          %s\n", fmtABV(b))
	fmt.Printf("Attenuation:  %s\n", fmtAttenuation(b))
	fmt.Printf("Volume:       %gL (started at %gL)\n", b.Volume, b.OriginalVolume)
	if b.PH != nil {
		fmt.Printf("pH:           %.2f\n", *b.PH)
	}
	if b.Temp != nil {
		fmt.Printf("Temp:         %.1f°C\n", *b.Temp)
	}
	if b.Recipe != "" {
		fmt.Printf("Recipe:       %s\n", b.Recipe)
	}
	if b.Notes != "" {
		fmt.Printf("Notes:        %s\n", b.Notes)
	}
}

func printEventTable(entries []*model.Event) {
	clk := mgr.Clock()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tTYPE\tDETAIL")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, clk.Format(e.At), e.Type, e.Text)
	}
	w.Flush()
}

func printHistoryTable(records []*model.ArchiveRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tOG\tFG\tABV\tARCHIVED\tFROM")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Name,
			r.Category,
			fmtGravity(r.OG),
			fmtOptGravity(r.FG),
			fmtABV(&r.Brew),
			mgr.Clock().Format(r.ArchivedAt),
			r.ArchivedFrom,
		)
	}
	w.Flush()
	fmt.Printf("\n%d records\n", len(records))
}

func printHistoryDetail(r *model.ArchiveRecord) {
	clk := mgr.Clock()
	fmt.Println(ui.RenderHeader(r.Name))
	fmt.Printf("ID:           %s\n", r.ID)
	fmt.Printf("Category:     %s\n", r.Category)
	fmt.Printf("OG:           %s\n", fmtGravity(r.OG))
	fmt.Printf("FG:           %s\n", fmtOptGravity(r.FG))
	fmt.Printf("ABV:          %s\n", fmtABV(&r.Brew))
	fmt.Printf("Attenuation:  %s\n", fmtAttenuation(&r.Brew))
	fmt.Printf("Volume:       %gL\n", r.Volume)
	fmt.Printf("Started:      %s\n", clk.Format(r.CreatedAt))
	fmt.Printf("Archived:     %s (from %s)\n", clk.Format(r.ArchivedAt), r.ArchivedFrom)
	fmt.Printf("Time in tank: %s\n", cellar.ArchiveElapsed(r))
	if r.Recipe != "" {
		fmt.Printf("Recipe:       %s\n", r.Recipe)
	}
	if r.Notes != "" {
		fmt.Printf("Notes:        %s\n", r.Notes)
	}
	if r.Log.Len() > 0 {
		fmt.Println()
		printEventTable(r.Log.Entries)
	}
}
