package export

import (
	"testing"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:          primitive.NewObjectID(),
		OrderNumber: "ORD0042",
		Customer: domain.CustomerRef{
			ID:    primitive.NewObjectID(),
			Name:  "Priya",
			Email: "priya@svce.ac.in",
		},
		Items: []domain.OrderItem{
			{ID: primitive.NewObjectID(), Name: "Tea", Quantity: 2, Price: 15},
			{ID: primitive.NewObjectID(), Name: "Samosa", Quantity: 1, Price: 12},
		},
		Total:         44.10,
		Status:        domain.StatusCompleted,
		PaymentMethod: domain.PaymentMethodUPI,
		CreatedAt:     time.Now(),
	}
}

func TestReceiptPDF(t *testing.T) {
	data, err := ReceiptPDF(sampleOrder())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestOrdersDOCX(t *testing.T) {
	orders := []domain.Order{*sampleOrder()}

	data, err := OrdersDOCX(orders, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// docx files are zip archives
	assert.Equal(t, "PK", string(data[:2]))
}

func TestOrdersDOCXEmptyDay(t *testing.T) {
	data, err := OrdersDOCX(nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
