package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/razorpay/razorpay-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/query"
)

// OrderService handles product orders and their Razorpay payment lifecycle.
type OrderService struct {
	orders     *mongo.Collection
	razorpay   *razorpay.Client
	keySecret  string
	productSvc *ProductService
	userSvc    *UserService
}

func NewOrderService(db *mongo.Database, client *razorpay.Client, keySecret string, products *ProductService, users *UserService) *OrderService {
	return &OrderService{
		orders:     db.Collection(colOrders),
		razorpay:   client,
		keySecret:  keySecret,
		productSvc: products,
		userSvc:    users,
	}
}

// Create places an order for a single product, registers it with Razorpay,
// and stores it as pending until the payment is verified.
func (s *OrderService) Create(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error) {
	product, err := s.productSvc.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	user, err := s.userSvc.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	address := deliveryAddress(user, req.DeliveryAddressID)
	if address == nil {
		return nil, ErrAddressNotFound
	}

	unit := product.LastPrice
	if unit <= 0 {
		unit = product.Price
	}
	total := unit * float64(req.Quantity)

	order := &models.Order{
		ID:                uuid.New().String(),
		UserID:            userID,
		DeliveryAddressID: req.DeliveryAddressID,
		Product: models.OrderProduct{
			ProductID: product.ID,
			Price:     unit,
			Quantity:  req.Quantity,
		},
		TotalAmount:   total,
		OrderStatus:   models.OrderStatusPending,
		PaymentMethod: "razorpay",
		CreatedAt:     time.Now().UTC(),
	}

	// Razorpay amounts are in paise.
	rzpOrder, err := s.razorpay.Order.Create(map[string]interface{}{
		"amount":   int64(total * 100),
		"currency": "INR",
		"receipt":  order.ID,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("creating payment order: %w", err)
	}
	if id, ok := rzpOrder["id"].(string); ok {
		order.RazorpayOrderID = id
	}

	if _, err := s.orders.InsertOne(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("[Orders] Created order %s for user %s, amount %.2f", order.ID, userID, total)
	order.Product.Product = product
	order.DeliveryAddress = address
	return order, nil
}

// VerifyPayment checks the Razorpay callback signature and marks the order
// paid. The signature is HMAC-SHA256 over "<orderID>|<paymentID>" keyed with
// the API secret.
func (s *OrderService) VerifyPayment(ctx context.Context, userID string, req *models.VerifyPaymentRequest) (*models.Order, error) {
	if !VerifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.keySecret) {
		return nil, ErrBadSignature
	}

	var order models.Order
	err := s.orders.FindOneAndUpdate(ctx,
		bson.M{"razorpay_order_id": req.RazorpayOrderID, "user_id": userID},
		bson.M{"$set": bson.M{
			"order_status":        models.OrderStatusPaid,
			"razorpay_payment_id": req.RazorpayPaymentID,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[Orders] Payment verified for order %s", order.ID)
	batch := []models.Order{order}
	if err := s.populate(ctx, batch); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

// VerifyRazorpaySignature reports whether sig is a valid payment signature
// for the order/payment pair under the given secret.
func VerifyRazorpaySignature(orderID, paymentID, sig, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	batch := []models.Order{order}
	if err := s.populate(ctx, batch); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

// ListMine returns the calling buyer's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, userID, status string, p query.Pagination) ([]models.Order, models.PageInfo, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["order_status"] = status
	}
	return s.page(ctx, filter, p)
}

// ListForSeller returns orders whose product belongs to the given seller.
func (s *OrderService) ListForSeller(ctx context.Context, sellerID, status string, p query.Pagination) ([]models.Order, models.PageInfo, error) {
	productIDs, err := s.productSvc.IDsByOwner(ctx, sellerID)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	filter := bson.M{"product.product_id": bson.M{"$in": productIDs}}
	if status != "" {
		filter["order_status"] = status
	}
	return s.page(ctx, filter, p)
}

// Counts groups a seller's orders by status.
func (s *OrderService) Counts(ctx context.Context, sellerID string) (*models.OrderCounts, error) {
	productIDs, err := s.productSvc.IDsByOwner(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	cur, err := s.orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product.product_id": bson.M{"$in": productIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$order_status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := &models.OrderCounts{ByStatus: make(map[string]int64)}
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts.ByStatus[row.Status] = row.Count
		counts.Total += row.Count
	}
	return counts, cur.Err()
}

// Update changes order status or quantity. Buyers cancel with a reason;
// quantity changes recompute the total from the stored unit price.
func (s *OrderService) Update(ctx context.Context, orderID string, req *models.UpdateOrderRequest) (*models.Order, error) {
	set := bson.M{}
	if req.OrderStatus != "" {
		set["order_status"] = req.OrderStatus
	}
	if req.ReasonToCancel != "" {
		set["order_status"] = models.OrderStatusCancelled
		set["reason_to_cancel"] = req.ReasonToCancel
	}
	if req.Quantity > 0 {
		var existing models.Order
		err := s.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&existing)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		if err != nil {
			return nil, err
		}
		set["product.quantity"] = req.Quantity
		set["total_amount"] = existing.Product.Price * float64(req.Quantity)
	}
	if len(set) == 0 {
		return s.GetByID(ctx, orderID)
	}

	var order models.Order
	err := s.orders.FindOneAndUpdate(ctx, bson.M{"_id": orderID}, bson.M{"$set": set}, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	batch := []models.Order{order}
	if err := s.populate(ctx, batch); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

// Delete removes a buyer's own order.
func (s *OrderService) Delete(ctx context.Context, orderID, userID string) error {
	res, err := s.orders.DeleteOne(ctx, bson.M{"_id": orderID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrOrderNotFound
	}
	log.Printf("[Orders] Deleted order %s", orderID)
	return nil
}

func (s *OrderService) page(ctx context.Context, filter bson.M, p query.Pagination) ([]models.Order, models.PageInfo, error) {
	total, err := s.orders.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	info := models.PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   query.TotalPages(total, p.Limit),
		TotalResults: total,
	}
	if p.OutOfRange(info.TotalPages) {
		return []models.Order{}, info, ErrPageOutOfRange
	}

	cur, err := s.orders.Find(ctx, filter, p.FindOptions(query.ParseSort("", "")))
	if err != nil {
		return nil, info, err
	}
	defer cur.Close(ctx)

	orders := make([]models.Order, 0, p.Limit)
	for cur.Next(ctx) {
		var order models.Order
		if err := cur.Decode(&order); err != nil {
			return nil, info, err
		}
		orders = append(orders, order)
	}
	if err := cur.Err(); err != nil {
		return nil, info, err
	}
	if err := s.populate(ctx, orders); err != nil {
		return nil, info, err
	}
	return orders, info, nil
}

// populate fills the product snapshot and the buyer's delivery address on
// each order. Missing references are left nil rather than failing the list.
func (s *OrderService) populate(ctx context.Context, orders []models.Order) error {
	for i := range orders {
		product, err := s.productSvc.GetByID(ctx, orders[i].Product.ProductID)
		if err == nil {
			orders[i].Product.Product = product
		} else if !errors.Is(err, ErrProductNotFound) {
			return err
		}

		user, err := s.userSvc.GetByID(ctx, orders[i].UserID)
		if err == nil {
			orders[i].DeliveryAddress = deliveryAddress(user, orders[i].DeliveryAddressID)
		} else if !errors.Is(err, ErrUserNotFound) {
			return err
		}
	}
	return nil
}

func deliveryAddress(user *models.User, id string) *models.DeliveryAddress {
	for i := range user.Delivery {
		if user.Delivery[i].ID == id {
			return &user.Delivery[i]
		}
	}
	return nil
}
