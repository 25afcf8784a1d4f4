package mailer

import (
	"fmt"
	"strings"

	"github.com/Saipoo/foodorder/internal/domain"
)

// statusMessages maps an order status to the line shown in the update email.
var statusMessages = map[domain.OrderStatus]string{
	domain.StatusPreparing: "Your order is now being prepared.",
	domain.StatusReady:     "Your order is ready for pickup at the cafeteria counter.",
	domain.StatusCompleted: "Your order has been completed. Thank you for your order!",
	domain.StatusCancelled: "Your order has been cancelled. If you have any questions, please contact the cafeteria staff.",
}

func statusUpdateBody(msg domain.OrderNotificationMessage) string {
	statusMessage, ok := statusMessages[msg.Status]
	if !ok {
		statusMessage = "Your order status has been updated."
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString("<h2>Order Status Update</h2>")
	fmt.Fprintf(&b, "<p>Your order #%s status has been updated.</p>", msg.OrderNumber)
	b.WriteString(`<div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">`)
	fmt.Fprintf(&b, `<h3 style="margin-top: 0;">Order Status: %s</h3>`, strings.ToUpper(string(msg.Status)))
	fmt.Fprintf(&b, "<p>%s</p>", statusMessage)
	b.WriteString("</div>")
	writeFooter(&b)
	b.WriteString("</div>")

	return b.String()
}

func confirmationBody(msg domain.OrderNotificationMessage) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString("<h2>Order Confirmation</h2>")
	b.WriteString("<p>Thank you for your order! Your order has been received and is being processed.</p>")

	b.WriteString(`<div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">`)
	b.WriteString(`<h3 style="margin-top: 0;">Order Details</h3>`)
	fmt.Fprintf(&b, "<p><strong>Order Number:</strong> #%s</p>", msg.OrderNumber)
	fmt.Fprintf(&b, "<p><strong>Date:</strong> %s</p>", msg.CreatedAt.Format("02 Jan 2006 15:04"))
	fmt.Fprintf(&b, "<p><strong>Payment Method:</strong> %s</p>", strings.ToUpper(msg.PaymentMethod))
	b.WriteString("</div>")

	b.WriteString("<h3>Order Summary</h3>")
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;">`)
	b.WriteString("<thead><tr><th>Item</th><th>Quantity</th><th>Price</th><th>Total</th></tr></thead><tbody>")
	for _, item := range msg.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>₹%.2f</td><td>₹%.2f</td></tr>",
			item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}
	b.WriteString("</tbody><tfoot>")

	// total is the source of truth; subtotal and tax are derived for display
	subtotal := msg.Total / domain.TaxRate
	fmt.Fprintf(&b, "<tr><td colspan=\"3\">Subtotal:</td><td>₹%.2f</td></tr>", subtotal)
	fmt.Fprintf(&b, "<tr><td colspan=\"3\">Tax (5%%):</td><td>₹%.2f</td></tr>", msg.Total-subtotal)
	fmt.Fprintf(&b, "<tr><td colspan=\"3\"><strong>Total:</strong></td><td><strong>₹%.2f</strong></td></tr>", msg.Total)
	b.WriteString("</tfoot></table>")

	writeFooter(&b)
	b.WriteString("</div>")

	return b.String()
}

func writeFooter(b *strings.Builder) {
	b.WriteString(`<div style="margin-top: 30px; text-align: center; color: #777;">`)
	b.WriteString("<p>If you have any questions about your order, please contact us at cafeteria@svce.edu.in</p>")
	b.WriteString("<p>Thank you for ordering from SVCE Cafeteria!</p>")
	b.WriteString("</div>")
}
