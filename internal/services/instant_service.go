package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/query"
)

// InstantServiceService books on-demand home services from the instant
// catalog and notifies professionals registered in the booking's pincode.
type InstantServiceService struct {
	categories *mongo.Collection
	bookings   *mongo.Collection
	userSvc    *UserService
	pushSvc    *PushService
}

func NewInstantServiceService(db *mongo.Database, users *UserService, push *PushService) *InstantServiceService {
	return &InstantServiceService{
		categories: db.Collection(colInstantCategories),
		bookings:   db.Collection(colInstantServices),
		userSvc:    users,
		pushSvc:    push,
	}
}

// ListCategories returns the whole instant-service catalog.
func (s *InstantServiceService) ListCategories(ctx context.Context) ([]models.InstantCategory, error) {
	cur, err := s.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	categories := []models.InstantCategory{}
	for cur.Next(ctx) {
		var category models.InstantCategory
		if err := cur.Decode(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, cur.Err()
}

// Book creates an instant-service booking. The subcategory's title, image,
// and price are snapshotted onto the booking so later catalog edits cannot
// change what was ordered.
func (s *InstantServiceService) Book(ctx context.Context, userID string, req *models.OrderInstantServiceRequest) (*models.InstantService, error) {
	var category models.InstantCategory
	err := s.categories.FindOne(ctx, bson.M{"category_name": req.CategoryName}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	sub := findSubcategory(category.Subcategories, req.SubcategoryName)
	if sub == nil {
		return nil, ErrInvalidService
	}
	price, ok := servicePrice(sub, req.ServiceType)
	if !ok {
		return nil, ErrInvalidService
	}

	user, err := s.userSvc.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	address := deliveryAddress(user, req.DeliveryAddressID)
	if address == nil {
		return nil, ErrAddressNotFound
	}

	booking := &models.InstantService{
		ID:              uuid.New().String(),
		UserID:          userID,
		DeliveryAddress: *address,
		ServiceDetails: models.InstantServiceDetails{
			Category:    category.CategoryName,
			Title:       sub.Title,
			Image:       sub.Image,
			Description: sub.Description,
			ServiceType: req.ServiceType,
			Price:       price,
		},
		Date:            req.Date,
		UserDescription: req.UserDescription,
		CreatedAt:       time.Now().UTC(),
	}

	if _, err := s.bookings.InsertOne(ctx, booking); err != nil {
		return nil, err
	}
	log.Printf("[InstantServices] Booked %s / %s for user %s", category.CategoryName, sub.Title, userID)

	s.notifyProfessionals(ctx, booking)
	return booking, nil
}

// ListMine returns the caller's bookings, newest first.
func (s *InstantServiceService) ListMine(ctx context.Context, userID string, p query.Pagination) ([]models.InstantService, models.PageInfo, error) {
	filter := bson.M{"user_id": userID}
	total, err := s.bookings.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	info := models.PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   query.TotalPages(total, p.Limit),
		TotalResults: total,
	}
	if p.OutOfRange(info.TotalPages) {
		return []models.InstantService{}, info, ErrPageOutOfRange
	}

	cur, err := s.bookings.Find(ctx, filter, p.FindOptions(query.ParseSort("", "")))
	if err != nil {
		return nil, info, err
	}
	defer cur.Close(ctx)

	bookings := make([]models.InstantService, 0, p.Limit)
	for cur.Next(ctx) {
		var booking models.InstantService
		if err := cur.Decode(&booking); err != nil {
			return nil, info, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, info, cur.Err()
}

// notifyProfessionals pushes the booking to professionals in the delivery
// pincode. Failures are logged, never surfaced to the caller.
func (s *InstantServiceService) notifyProfessionals(ctx context.Context, booking *models.InstantService) {
	pincode, err := strconv.Atoi(booking.DeliveryAddress.Pincode)
	if err != nil {
		return
	}
	tokens, err := s.userSvc.ProfessionalTokensByPincode(ctx, pincode)
	if err != nil {
		log.Printf("[InstantServices] Token lookup failed for pincode %d: %v", pincode, err)
		return
	}
	s.pushSvc.Notify(ctx, tokens,
		"New service request near you",
		fmt.Sprintf("%s: %s requested in %s", booking.ServiceDetails.Category, booking.ServiceDetails.Title, booking.DeliveryAddress.City),
		map[string]string{"bookingId": booking.ID},
	)
}

func findSubcategory(subs []models.InstantSubcategory, title string) *models.InstantSubcategory {
	for i := range subs {
		if subs[i].Title == title {
			return &subs[i]
		}
	}
	return nil
}

// servicePrice resolves the price for one service type, checking the type is
// actually offered by the subcategory.
func servicePrice(sub *models.InstantSubcategory, serviceType string) (string, bool) {
	offered := false
	for _, t := range sub.ServiceType {
		if t == serviceType {
			offered = true
			break
		}
	}
	if !offered {
		return "", false
	}
	price, ok := sub.Price[serviceType]
	if !ok || price == "" {
		return "", false
	}
	return price, true
}
