package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

func writeReport(w io.Writer, results []result) {
	x := table.NewWriter()
	x.SetOutputMirror(w)
	x.AppendHeader(table.Row{"pattern", "cache", "capacity", "accesses", "hits", "hit ratio", "elapsed"})
	var previous string
	for _, res := range results {
		if previous != "" && res.pattern != previous {
			x.AppendSeparator()
		}
		previous = res.pattern
		x.AppendRow(table.Row{
			res.pattern,
			res.cache,
			humanize.Comma(int64(res.capacity)),
			humanize.Comma(res.accesses),
			humanize.Comma(res.hits),
			fmt.Sprintf("%.2f%%", res.hitRatio()),
			res.elapsed.Round(time.Microsecond),
		})
	}
	x.Render()
}

func (res result) hitRatio() float64 {
	if res.accesses == 0 {
		return 0
	}
	return float64(res.hits) / float64(res.accesses) * 100
}
