package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/edgarsj/warehouse-cli/internal/domain"
)

const displayTimeLayout = "2006-01-02 15:04:05"

// Display renders the warehouse contents as a terminal table. Timestamps are
// shown in the display timezone; stored state stays in UTC.
type Display struct {
	out io.Writer
	loc *time.Location
}

func NewDisplay(out io.Writer, loc *time.Location) *Display {
	return &Display{out: out, loc: loc}
}

// Warehouse prints one row per product.
func (d *Display) Warehouse(products []*domain.Product) {
	fmt.Fprintln(d.out, "Warehouse")

	w := tabwriter.NewWriter(d.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTOCK\tPRICE\tCREATED\tLAST UPDATED\tEXPIRATION DATE")
	for _, p := range products {
		expires := "None"
		if t := p.ExpiresAt(); t != nil {
			expires = t.In(d.loc).Format(displayTimeLayout)
		}

		fmt.Fprintf(w, "%s\t%d\t%d$\t%s\t%s\t%s\n",
			p.Name(),
			p.Quantity(),
			p.Price(),
			p.CreatedAt().In(d.loc).Format(displayTimeLayout),
			p.UpdatedAt().In(d.loc).Format(displayTimeLayout),
			expires,
		)
	}
	w.Flush()
}

// Report prints the stock totals across the whole warehouse.
func (d *Display) Report(totalQuantity, totalValue int) {
	fmt.Fprintf(d.out, "The total amount of products is %d and the total sum is %d$\n",
		totalQuantity, totalValue)
}
