package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casahub/backend/internal/models"
)

func TestInvoiceRender(t *testing.T) {
	svc := NewInvoiceService("", "")

	order := &models.Order{
		ID:     "ord-1",
		UserID: "u1",
		Product: models.OrderProduct{
			ProductID: "pr1",
			Price:     1200,
			Quantity:  2,
			Product:   &models.Product{ID: "pr1", Name: "Teak Chair"},
		},
		TotalAmount:       2400,
		OrderStatus:       models.OrderStatusPaid,
		RazorpayPaymentID: "pay_123",
		DeliveryAddress: &models.DeliveryAddress{
			ID:       "a1",
			FullName: "Maya Nair",
			Mobile:   "9876543210",
			Pincode:  "682001",
			City:     "Kochi",
			District: "Ernakulam",
			Address:  "12 Marine Drive",
		},
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	pdf, err := svc.Render(order)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestInvoiceRenderWithoutAddress(t *testing.T) {
	svc := NewInvoiceService("CasaHub", "Kochi, Kerala")

	pdf, err := svc.Render(&models.Order{
		ID:          "ord-2",
		Product:     models.OrderProduct{ProductID: "pr9", Price: 100, Quantity: 1},
		TotalAmount: 100,
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
