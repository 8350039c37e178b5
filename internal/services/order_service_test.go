package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casahub/backend/internal/models"
)

func TestVerifyRazorpaySignature(t *testing.T) {
	secret := "test-secret"
	orderID := "order_abc123"
	paymentID := "pay_xyz789"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	valid := hex.EncodeToString(mac.Sum(nil))

	t.Run("valid signature accepted", func(t *testing.T) {
		assert.True(t, VerifyRazorpaySignature(orderID, paymentID, valid, secret))
	})

	t.Run("tampered payment id rejected", func(t *testing.T) {
		assert.False(t, VerifyRazorpaySignature(orderID, "pay_other", valid, secret))
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		assert.False(t, VerifyRazorpaySignature(orderID, paymentID, valid, "other-secret"))
	})

	t.Run("garbage signature rejected", func(t *testing.T) {
		assert.False(t, VerifyRazorpaySignature(orderID, paymentID, "not-hex", secret))
	})
}

func TestDeliveryAddress(t *testing.T) {
	user := &models.User{
		Delivery: []models.DeliveryAddress{
			{ID: "a1", City: "Kochi"},
			{ID: "a2", City: "Chennai"},
		},
	}

	addr := deliveryAddress(user, "a2")
	if assert.NotNil(t, addr) {
		assert.Equal(t, "Chennai", addr.City)
	}

	assert.Nil(t, deliveryAddress(user, "missing"))
	assert.Nil(t, deliveryAddress(&models.User{}, "a1"))
}
