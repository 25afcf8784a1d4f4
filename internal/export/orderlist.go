package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	docx "github.com/fumiama/go-docx"
)

// OrdersDOCX renders the daily order list handed to the kitchen staff.
func OrdersDOCX(orders []domain.Order, day time.Time) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText("SVCE Cafeteria - Orders List").Size("36").Bold()

	subtitle := doc.AddParagraph()
	subtitle.AddText(day.Format("Monday, 02 Jan 2006")).Size("24")

	doc.AddParagraph()

	if len(orders) == 0 {
		doc.AddParagraph().AddText("No orders for this day.")
	}

	for _, order := range orders {
		header := doc.AddParagraph()
		header.AddText(fmt.Sprintf("Order #%s - %s - %s", order.OrderNumber, order.Customer.Name, order.Status)).
			Size("28").
			Bold()

		placed := doc.AddParagraph()
		placed.AddText(fmt.Sprintf("Placed at %s, payment: %s", order.CreatedAt.Format("15:04"), order.PaymentMethod))

		for _, item := range order.Items {
			line := doc.AddParagraph()
			line.AddText(fmt.Sprintf("    %dx %s (Rs. %.2f)", item.Quantity, item.Name, item.Price))
		}

		total := doc.AddParagraph()
		total.AddText(fmt.Sprintf("Total: Rs. %.2f", order.Total)).Bold()

		doc.AddParagraph()
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render order list: %w", err)
	}

	return buf.Bytes(), nil
}
