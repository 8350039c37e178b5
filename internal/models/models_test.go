package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveLastPrice(t *testing.T) {
	p := Product{Price: 1000, DiscountPrice: 150}
	p.ResolveLastPrice()
	assert.Equal(t, 850.0, p.LastPrice)

	noDiscount := Product{Price: 500}
	noDiscount.ResolveLastPrice()
	assert.Equal(t, 500.0, noDiscount.LastPrice)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("maya@example.com"))
	assert.False(t, ValidEmail("maya@"))
	assert.False(t, ValidEmail("not an email"))
	assert.False(t, ValidEmail(""))
}

func TestPremiumExpiry(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), PremiumExpiry("1 Month", now))
	assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), PremiumExpiry("6 Months", now))
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), PremiumExpiry("12 Months", now))
	assert.Equal(t, now, PremiumExpiry("unknown", now))
}

func TestCreateOrderRequestValidate(t *testing.T) {
	valid := CreateOrderRequest{ProductID: "p1", DeliveryAddressID: "a1", Quantity: 2}
	assert.Empty(t, valid.Validate())

	invalid := CreateOrderRequest{Quantity: 0}
	errs := invalid.Validate()
	assert.Contains(t, errs, "productId")
	assert.Contains(t, errs, "deliveryAddressId")
	assert.Contains(t, errs, "quantity")
}

func TestCreateProductRequestValidate(t *testing.T) {
	valid := CreateProductRequest{Name: "Chair", Category: "Furniture", Price: 100, DiscountPrice: 10}
	assert.Empty(t, valid.Validate())

	t.Run("discount larger than price rejected", func(t *testing.T) {
		r := CreateProductRequest{Name: "Chair", Category: "Furniture", Price: 100, DiscountPrice: 150}
		assert.Contains(t, r.Validate(), "discountPrice")
	})

	t.Run("missing fields reported together", func(t *testing.T) {
		errs := (&CreateProductRequest{}).Validate()
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "category")
		assert.Contains(t, errs, "price")
	})
}

func TestFlagRequestValidate(t *testing.T) {
	assert.Empty(t, (&FlagRequest{Reason: "spam"}).Validate())
	assert.Contains(t, (&FlagRequest{}).Validate(), "reason")
}

func TestHandleFlaggedPostRequestValidate(t *testing.T) {
	assert.Empty(t, (&HandleFlaggedPostRequest{PostID: "p1", Action: FlagActionDelete}).Validate())
	assert.Empty(t, (&HandleFlaggedPostRequest{PostID: "p1", Action: FlagActionIgnore}).Validate())

	errs := (&HandleFlaggedPostRequest{Action: "archive"}).Validate()
	assert.Contains(t, errs, "postId")
	assert.Contains(t, errs, "action")
}

func TestOrderInstantServiceRequestValidate(t *testing.T) {
	valid := OrderInstantServiceRequest{
		DeliveryAddressID: "a1",
		CategoryName:      "Appliances",
		SubcategoryName:   "AC",
		ServiceType:       "Installation",
		Date:              time.Now().Add(24 * time.Hour),
	}
	assert.Empty(t, valid.Validate())

	errs := (&OrderInstantServiceRequest{}).Validate()
	assert.Contains(t, errs, "deliveryAddressId")
	assert.Contains(t, errs, "categoryName")
	assert.Contains(t, errs, "subcategoryName")
	assert.Contains(t, errs, "serviceType")
	assert.Contains(t, errs, "date")
}

func TestCreateEnquiryRequestValidate(t *testing.T) {
	valid := CreateEnquiryRequest{Type: []string{"Construction"}, Category: "Villa", Pincode: "682001"}
	assert.Empty(t, valid.Validate())

	errs := (&CreateEnquiryRequest{}).Validate()
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "pincode")
}

func TestCanonicalDuration(t *testing.T) {
	assert.Equal(t, "1 Month", CanonicalDuration("1 month"))
	assert.Equal(t, "6 Months", CanonicalDuration(" 6 MONTHS "))
	assert.Equal(t, "12 Months", CanonicalDuration("12 Months"))
	assert.Equal(t, "", CanonicalDuration("free"))
	assert.Equal(t, "", CanonicalDuration("3 months"))
	assert.Equal(t, "", CanonicalDuration(""))
}

func TestCompleteRegistrationRequestValidate(t *testing.T) {
	valid := CompleteRegistrationRequest{
		FirstName: "Asha",
		LastName:  "Nair",
		Role:      RoleHomeOwner,
		Email:     "asha@example.com",
		Address:   &Address{Place: "Kochi", Pincode: "682001"},
	}
	assert.Empty(t, valid.Validate())

	t.Run("bad email rejected", func(t *testing.T) {
		r := valid
		r.Email = "not-an-email"
		assert.Contains(t, r.Validate(), "email")
	})

	t.Run("missing fields reported together", func(t *testing.T) {
		errs := (&CompleteRegistrationRequest{}).Validate()
		assert.Contains(t, errs, "fname")
		assert.Contains(t, errs, "lname")
		assert.Contains(t, errs, "role")
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "address")
	})
}
