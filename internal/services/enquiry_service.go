package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/query"
)

// enquiryWindow is how long a posted enquiry stays visible to professionals.
const enquiryWindow = 24 * time.Hour

// EnquiryService records home-owner requirement enquiries and serves the
// recent ones to professionals working the same pincode.
type EnquiryService struct {
	enquiries *mongo.Collection
}

func NewEnquiryService(db *mongo.Database) *EnquiryService {
	return &EnquiryService{enquiries: db.Collection(colEnquiries)}
}

func (s *EnquiryService) Create(ctx context.Context, userID string, req *models.CreateEnquiryRequest) (*models.Enquiry, error) {
	enquiry := &models.Enquiry{
		ID:                uuid.New().String(),
		Type:              req.Type,
		Category:          req.Category,
		BHKCount:          req.BHKCount,
		AreaSqFt:          req.AreaSqFt,
		BudgetINR:         req.BudgetINR,
		LookingFor:        req.LookingFor,
		ServiceLookingFor: req.ServiceLookingFor,
		TimelineMonths:    req.TimelineMonths,
		Pincode:           req.Pincode,
		Interested:        req.Interested,
		MoreDetails:       req.MoreDetails,
		Scopes:            req.Scopes,
		Quantity:          req.Quantity,
		DoorsType:         req.DoorsType,
		Materials:         req.Materials,
		PlanToBuyInMonths: req.PlanToBuyInMonths,
		CreatedByID:       userID,
		CreatedAt:         time.Now().UTC(),
	}

	if _, err := s.enquiries.InsertOne(ctx, enquiry); err != nil {
		return nil, err
	}
	log.Printf("[Enquiries] User %s posted a %s enquiry in %s", userID, enquiry.Category, enquiry.Pincode)
	return enquiry, nil
}

// openEnquiryFilter builds the visibility filter for professionals browsing
// enquiries. Anything created before the cutoff is open to everyone; anything
// newer is reserved for the given pincode, so an empty pincode sees older
// enquiries only.
func openEnquiryFilter(pincode, enquiryType string, cutoff time.Time) bson.M {
	visible := []bson.M{{"created_at": bson.M{"$lt": cutoff}}}
	if pincode != "" {
		visible = append(visible, bson.M{
			"created_at": bson.M{"$gte": cutoff},
			"pincode":    pincode,
		})
	}
	filter := bson.M{"$or": visible}
	if enquiryType != "" {
		filter["type"] = enquiryType
	}
	return filter
}

// ListOpen returns the enquiries the caller may act on. Enquiries inside the
// visibility window are reserved for professionals in the same pincode; once
// the window passes they open up to everyone. An optional type narrows the
// result to one enquiry category.
func (s *EnquiryService) ListOpen(ctx context.Context, pincode, enquiryType string, p query.Pagination) ([]models.Enquiry, models.PageInfo, error) {
	filter := openEnquiryFilter(pincode, enquiryType, time.Now().UTC().Add(-enquiryWindow))

	total, err := s.enquiries.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	info := models.PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   query.TotalPages(total, p.Limit),
		TotalResults: total,
	}
	if p.OutOfRange(info.TotalPages) {
		return []models.Enquiry{}, info, ErrPageOutOfRange
	}

	cur, err := s.enquiries.Find(ctx, filter, p.FindOptions(query.ParseSort("", "")))
	if err != nil {
		return nil, info, err
	}
	defer cur.Close(ctx)

	enquiries := make([]models.Enquiry, 0, p.Limit)
	for cur.Next(ctx) {
		var enquiry models.Enquiry
		if err := cur.Decode(&enquiry); err != nil {
			return nil, info, err
		}
		enquiries = append(enquiries, enquiry)
	}
	return enquiries, info, cur.Err()
}

// ListMine returns the caller's own enquiries regardless of age.
func (s *EnquiryService) ListMine(ctx context.Context, userID string, p query.Pagination) ([]models.Enquiry, models.PageInfo, error) {
	filter := bson.M{"created_by": userID}

	total, err := s.enquiries.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	info := models.PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   query.TotalPages(total, p.Limit),
		TotalResults: total,
	}
	if p.OutOfRange(info.TotalPages) {
		return []models.Enquiry{}, info, ErrPageOutOfRange
	}

	cur, err := s.enquiries.Find(ctx, filter, p.FindOptions(query.ParseSort("", "")))
	if err != nil {
		return nil, info, err
	}
	defer cur.Close(ctx)

	enquiries := make([]models.Enquiry, 0, p.Limit)
	for cur.Next(ctx) {
		var enquiry models.Enquiry
		if err := cur.Decode(&enquiry); err != nil {
			return nil, info, err
		}
		enquiries = append(enquiries, enquiry)
	}
	return enquiries, info, cur.Err()
}
