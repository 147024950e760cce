package console

import (
	"fmt"
	"io"
	"strconv"

	"rpc-speed-bot/internal/domain/entity"
	domainService "rpc-speed-bot/internal/domain/service"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Compile-time check
var _ domainService.Reporter = (*TableReporter)(nil)

// NoData is printed in place of a latency or block number that was not measured.
const NoData = "--"

var header = table.Row{
	"RPC Name",
	"Request Total Count",
	"Request Success Count",
	"Request Failed Count",
	"Success Rate",
	"Response Time",
	"Latest Block Number",
}

// TableReporter redraws the whole snapshot as a table on every call.
type TableReporter struct {
	out   io.Writer
	title string
}

// NewTableReporter creates a reporter writing to out under the given title.
func NewTableReporter(out io.Writer, title string) *TableReporter {
	return &TableReporter{out: out, title: title}
}

// Render writes snapshot as a table. Rows keep the snapshot order.
func (r *TableReporter) Render(snapshot entity.Snapshot) error {
	t := table.NewWriter()
	t.SetTitle("%s", r.title)
	t.Style().Title.Align = text.AlignCenter
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(header)

	for _, row := range snapshot.Rows {
		t.AppendRow(table.Row{
			row.Name,
			row.RequestTotalCount,
			row.SuccessCount,
			row.FailedCount,
			FormatSuccessRate(row.SuccessRate),
			FormatLatency(row.LatencyMs),
			FormatBlockNumber(row.BlockNumber),
		})
	}

	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

// FormatSuccessRate renders a percentage with two decimals.
func FormatSuccessRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 2, 64) + "%"
}

// FormatLatency renders milliseconds or NoData.
func FormatLatency(ms *int64) string {
	if ms == nil {
		return NoData
	}
	return strconv.FormatInt(*ms, 10) + "ms"
}

// FormatBlockNumber renders a block height or NoData.
func FormatBlockNumber(n *uint64) string {
	if n == nil {
		return NoData
	}
	return strconv.FormatUint(*n, 10)
}
