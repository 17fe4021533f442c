package receiptform

import (
	"math"
	"strconv"
	"strings"

	"github.com/victorlai/deliverydesk/constants"
	"github.com/victorlai/deliverydesk/internal/entity"
)

// PrintItem is one entry projected for the printable page.
type PrintItem struct {
	Entry       entity.ReceiptEntry `json:"entry"`
	Amount      float64             `json:"amount"`
	PrintHeight int                 `json:"print_height"`
}

// PrintSummary is the derived view backing the printable page: every entry at
// print scale plus the running totals.
type PrintSummary struct {
	Count       int         `json:"count"`
	TotalAmount float64     `json:"total_amount"`
	Items       []PrintItem `json:"items"`
}

// ProjectPrint derives the print view from the entry list. Pure; recomputed
// on every request. Amounts that fail to parse count as zero.
func ProjectPrint(entries []entity.ReceiptEntry) PrintSummary {
	summary := PrintSummary{
		Count: len(entries),
		Items: make([]PrintItem, len(entries)),
	}
	for i, e := range entries {
		amount := parseAmount(e.Amount)
		summary.TotalAmount += amount
		summary.Items[i] = PrintItem{
			Entry:       e,
			Amount:      amount,
			PrintHeight: int(math.Round(float64(e.ImageHeight) * constants.PrintImageScale)),
		}
	}
	return summary
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
