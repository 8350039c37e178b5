package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type OrderProduct struct {
	ProductID string   `json:"productId" bson:"product_id"`
	Price     float64  `json:"price" bson:"price"`
	Quantity  int      `json:"quantity" bson:"quantity"`
	Product   *Product `json:"product,omitempty" bson:"-"`
}

type Order struct {
	ID                string           `json:"id" bson:"_id"`
	UserID            string           `json:"userId" bson:"user_id"`
	DeliveryAddressID string           `json:"deliveryAddressId" bson:"delivery_address_id"`
	DeliveryAddress   *DeliveryAddress `json:"deliveryAddress,omitempty" bson:"-"`
	Product           OrderProduct     `json:"product" bson:"product"`
	TotalAmount       float64          `json:"totalAmount" bson:"total_amount"` // rupees
	OrderStatus       string           `json:"orderStatus" bson:"order_status"`
	PaymentMethod     string           `json:"paymentMethod" bson:"payment_method"`
	RazorpayOrderID   string           `json:"razorpayOrderId,omitempty" bson:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string           `json:"razorpayPaymentId,omitempty" bson:"razorpay_payment_id,omitempty"`
	ReasonToCancel    string           `json:"reasonToCancel,omitempty" bson:"reason_to_cancel,omitempty"`
	CreatedAt         time.Time        `json:"createdAt" bson:"created_at"`
}

type CreateOrderRequest struct {
	ProductID         string `json:"productId"`
	DeliveryAddressID string `json:"deliveryAddressId"`
	Quantity          int    `json:"quantity"`
}

func (r *CreateOrderRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.ProductID == "" {
		errors["productId"] = "Product ID is required"
	}
	if r.DeliveryAddressID == "" {
		errors["deliveryAddressId"] = "Delivery address ID is required"
	}
	if r.Quantity < 1 {
		errors["quantity"] = "Quantity must be at least 1"
	}

	return errors
}

type UpdateOrderRequest struct {
	Quantity       int    `json:"quantity"`
	OrderStatus    string `json:"orderStatus"`
	ReasonToCancel string `json:"reasonToCancel"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

func (r *VerifyPaymentRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.RazorpayOrderID == "" {
		errors["razorpayOrderId"] = "Order ID is required"
	}
	if r.RazorpayPaymentID == "" {
		errors["razorpayPaymentId"] = "Payment ID is required"
	}
	if r.RazorpaySignature == "" {
		errors["razorpaySignature"] = "Signature is required"
	}

	return errors
}

// OrderCounts summarizes order totals for the current query.
type OrderCounts struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}
