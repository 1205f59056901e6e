package pdf

import (
	"context"
	"errors"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var ErrMissingRentalID = errors.New("receipt_missing_rental_id")

// ReceiptData is already formatted for print; amounts carry two decimals.
type ReceiptData struct {
	CompanyName    string
	CompanyAddress string

	RentalID     string
	AccountName  string
	AccountEmail string
	ScooterID    string
	ScooterModel string
	RentalType   string

	StartedAt string
	EndedAt   string
	Hours     string
	Distance  string
	Total     string
	Balance   string
}

func (p *PDFProvider) GenerateRentalReceipt(ctx context.Context, receipt ReceiptData) ([]byte, error) {
	if receipt.RentalID == "" {
		return nil, ErrMissingRentalID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(6, "Ride receipt", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		col.New(6).Add(
			text.New(receipt.CompanyName, props.Text{Style: fontstyle.Bold, Align: align.Right}),
			text.New(receipt.CompanyAddress, props.Text{Top: 5, Align: align.Right, Size: 9}),
		),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Rental: "+receipt.RentalID, props.Text{Top: 0, Size: 9}),
			text.New("Type: "+receipt.RentalType, props.Text{Top: 5, Size: 9}),
		),
		col.New(6).Add(
			text.New(receipt.AccountName, props.Text{Style: fontstyle.Bold, Align: align.Right}),
			text.New(receipt.AccountEmail, props.Text{Top: 5, Align: align.Right, Size: 9}),
		),
	)

	m.AddRow(4, col.New(12))

	addLine := func(label, value string) {
		m.AddRow(8,
			text.NewCol(6, label, props.Text{Size: 9}),
			text.NewCol(6, value, props.Text{Size: 9, Align: align.Right}),
		)
	}
	addLine("Scooter", receipt.ScooterModel+" ("+receipt.ScooterID+")")
	addLine("Started", receipt.StartedAt)
	addLine("Ended", receipt.EndedAt)
	addLine("Billed hours", receipt.Hours)
	addLine("Distance (km)", receipt.Distance)

	m.AddRow(4, col.New(12))

	m.AddRow(12,
		col.New(6),
		text.NewCol(3, "Total", props.Text{Style: fontstyle.Bold, Size: 11}),
		text.NewCol(3, receipt.Total, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
	)
	if receipt.Balance != "" {
		m.AddRow(8,
			col.New(6),
			text.NewCol(3, "Balance after ride", props.Text{Size: 9}),
			text.NewCol(3, receipt.Balance, props.Text{Size: 9, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
