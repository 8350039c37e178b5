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

type ProductService struct {
	products   *mongo.Collection
	brands     *mongo.Collection
	categories *mongo.Collection
	users      *UserService
}

func NewProductService(db *mongo.Database, users *UserService) *ProductService {
	return &ProductService{
		products:   db.Collection(colProducts),
		brands:     db.Collection(colBrands),
		categories: db.Collection(colCategories),
		users:      users,
	}
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	product.ResolveLastPrice()
	return &product, nil
}

// IDsByOwner lists the product ids a seller has created, for filtering orders
// down to a seller's inventory.
func (s *ProductService) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	cur, err := s.products.Find(ctx, bson.M{"created_by": ownerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []string{}
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// Populate fills brand and creator references on a batch of products and
// derives the effective price.
func (s *ProductService) Populate(ctx context.Context, products []models.Product) error {
	brandIDs := make([]string, 0, len(products))
	ownerIDs := make([]string, 0, len(products))
	for i := range products {
		products[i].ResolveLastPrice()
		if products[i].BrandID != "" {
			brandIDs = append(brandIDs, products[i].BrandID)
		}
		ownerIDs = append(ownerIDs, products[i].CreatedByID)
	}

	brands, err := s.brandMap(ctx, brandIDs)
	if err != nil {
		return err
	}
	owners, err := s.users.UserMap(ctx, ownerIDs)
	if err != nil {
		return err
	}

	for i := range products {
		products[i].Brand = brands[products[i].BrandID]
		products[i].CreatedBy = owners[products[i].CreatedByID]
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, userID string, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		ID:            uuid.New().String(),
		Name:          req.Name,
		About:         req.About,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Type:          req.Type,
		Subtype:       req.Subtype,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Images:        req.Images,
		BrandID:       req.BrandID,
		CreatedByID:   userID,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.products.InsertOne(ctx, product); err != nil {
		return nil, err
	}
	log.Printf("[Products] User %s listed %q", userID, product.Name)
	batch := []models.Product{*product}
	if err := s.Populate(ctx, batch); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

// Delete removes a product its creator owns.
func (s *ProductService) Delete(ctx context.Context, userID, productID string) error {
	res, err := s.products.DeleteOne(ctx, bson.M{"_id": productID, "created_by": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// List returns the catalog, optionally narrowed by category, brand, or a
// fuzzy name query.
func (s *ProductService) List(ctx context.Context, category, brandID, q string, p query.Pagination) ([]models.Product, models.PageInfo, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if brandID != "" {
		filter["brand"] = brandID
	}
	if q != "" {
		filter["$or"] = query.FuzzyOr(q, "name", "about")["$or"]
	}
	return s.page(ctx, filter, p)
}

// ListMine returns the calling seller's products.
func (s *ProductService) ListMine(ctx context.Context, userID string, p query.Pagination) ([]models.Product, models.PageInfo, error) {
	return s.page(ctx, bson.M{"created_by": userID}, p)
}

func (s *ProductService) page(ctx context.Context, filter bson.M, p query.Pagination) ([]models.Product, models.PageInfo, error) {
	total, err := s.products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	info := models.PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   query.TotalPages(total, p.Limit),
		TotalResults: total,
	}
	if p.OutOfRange(info.TotalPages) {
		return []models.Product{}, info, ErrPageOutOfRange
	}

	cur, err := s.products.Find(ctx, filter, p.FindOptions(query.ParseSort("", "")))
	if err != nil {
		return nil, info, err
	}
	defer cur.Close(ctx)

	products := make([]models.Product, 0, p.Limit)
	for cur.Next(ctx) {
		var product models.Product
		if err := cur.Decode(&product); err != nil {
			return nil, info, err
		}
		products = append(products, product)
	}
	if err := cur.Err(); err != nil {
		return nil, info, err
	}
	if err := s.Populate(ctx, products); err != nil {
		return nil, info, err
	}
	return products, info, nil
}

// ListCategories returns every product category.
func (s *ProductService) ListCategories(ctx context.Context) ([]models.Category, error) {
	cur, err := s.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	categories := []models.Category{}
	for cur.Next(ctx) {
		var category models.Category
		if err := cur.Decode(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, cur.Err()
}

// ListBrands returns every brand.
func (s *ProductService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	cur, err := s.brands.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	brands := []models.Brand{}
	for cur.Next(ctx) {
		var brand models.Brand
		if err := cur.Decode(&brand); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, cur.Err()
}

func (s *ProductService) brandMap(ctx context.Context, ids []string) (map[string]*models.Brand, error) {
	out := map[string]*models.Brand{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.brands.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var brand models.Brand
		if err := cur.Decode(&brand); err != nil {
			return nil, err
		}
		out[brand.ID] = &brand
	}
	return out, cur.Err()
}
