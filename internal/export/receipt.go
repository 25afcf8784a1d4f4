// Package export renders orders into downloadable documents. Everything here
// is derived and stateless: documents are built from the order snapshot alone.
package export

import (
	"bytes"
	"fmt"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/go-pdf/fpdf"
)

// ReceiptPDF renders a printable receipt for a single order.
func ReceiptPDF(order *domain.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "SVCE Cafeteria", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Order Number: #%s", order.OrderNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Customer: %s (%s)", order.Customer.Name, order.Customer.Email), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Status: %s", order.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Payment Method: %s", order.PaymentMethod), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(80, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(80, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("Rs. %.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("Rs. %.2f", item.Price*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(145, 8, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("Rs. %.2f", order.Subtotal()), "1", 1, "R", false, 0, "")
	pdf.CellFormat(145, 8, "Tax (5%)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("Rs. %.2f", order.Tax()), "1", 1, "R", false, 0, "")
	pdf.CellFormat(145, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("Rs. %.2f", order.Total), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 6, "Thank you for ordering from SVCE Cafeteria!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}

	return buf.Bytes(), nil
}
