package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/query"
)

// Searchable field sets per section.
var (
	userFuzzyFields = []string{
		"fname",
		"lname",
		"company_details.company_name",
		"company_details.company_address.place",
		"company_details.company_phone",
		"company_details.company_email",
		"company_details.company_gst_number",
	}
	productFuzzyFields = []string{"name", "category", "subcategory", "type", "subtype"}
	projectFuzzyFields = []string{"project_type", "title", "project_location.place", "construction_type", "style"}
)

// SearchService fans one fuzzy query out across every entity category and
// assembles a single multi-section result. All category queries run
// concurrently; any failure fails the whole search — partial results are
// never returned.
type SearchService struct {
	categories *mongo.Collection
	brands     *mongo.Collection
	products   *mongo.Collection
	projects   *mongo.Collection
	users      *mongo.Collection
	visibility *VisibilityService
	productSvc *ProductService
	userSvc    *UserService
}

func NewSearchService(db *mongo.Database, visibility *VisibilityService, products *ProductService, users *UserService) *SearchService {
	return &SearchService{
		categories: db.Collection(colCategories),
		brands:     db.Collection(colBrands),
		products:   db.Collection(colProducts),
		projects:   db.Collection(colProjects),
		users:      db.Collection(colUsers),
		visibility: visibility,
		productSvc: products,
		userSvc:    users,
	}
}

func (s *SearchService) Search(ctx context.Context, q, viewerID string, p query.Pagination) (*models.SearchResults, error) {
	q = strings.TrimSpace(q)
	vis := s.visibility.Compute(ctx, viewerID)

	var (
		categories      []models.Category
		categoriesTotal int64
		brands          []models.Brand
		brandsTotal     int64
		products        []models.Product
		productsTotal   int64
		projects        []models.Project
		projectsTotal   int64
		users           []models.User
		usersTotal      int64
		sellers         []models.User
		sellersTotal    int64
	)

	categoryFilter := query.FuzzyOr(q, "name")
	brandFilter := query.FuzzyOr(q, "name")
	productFilter := query.FuzzyOr(q, productFuzzyFields...)
	projectFilter := bson.M{
		"$or":         query.FuzzyOr(q, projectFuzzyFields...)["$or"],
		"is_violated": bson.M{"$ne": true},
	}
	// Role membership is part of the filter so section totals always match
	// the returned data.
	userFilter := vis.Apply(bson.M{
		"$or":  query.FuzzyOr(q, userFuzzyFields...)["$or"],
		"role": bson.M{"$ne": models.RoleProductSeller},
	}, "_id")
	sellerFilter := vis.Apply(bson.M{
		"$or":  query.FuzzyOr(q, userFuzzyFields...)["$or"],
		"role": models.RoleProductSeller,
	}, "_id")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		categories, categoriesTotal, err = findPage[models.Category](gctx, s.categories, categoryFilter, p)
		return err
	})
	g.Go(func() (err error) {
		brands, brandsTotal, err = findPage[models.Brand](gctx, s.brands, brandFilter, p)
		return err
	})
	g.Go(func() (err error) {
		products, productsTotal, err = findPage[models.Product](gctx, s.products, productFilter, p)
		return err
	})
	g.Go(func() (err error) {
		projects, projectsTotal, err = findPage[models.Project](gctx, s.projects, projectFilter, p)
		return err
	})
	g.Go(func() (err error) {
		users, usersTotal, err = findPage[models.User](gctx, s.users, userFilter, p)
		return err
	})
	g.Go(func() (err error) {
		sellers, sellersTotal, err = findPage[models.User](gctx, s.users, sellerFilter, p)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Child fetches key off the already visibility-filtered owner sets, so a
	// blocked owner's projects or products can never surface through a join.
	ownerIDs := make([]string, 0, len(users))
	for _, u := range users {
		if u.Role == models.RoleRealtor || u.Role == models.RoleProfessional {
			ownerIDs = append(ownerIDs, u.ID)
		}
	}
	sellerIDs := make([]string, 0, len(sellers))
	for _, u := range sellers {
		sellerIDs = append(sellerIDs, u.ID)
	}

	var (
		ownerProjects  []models.Project
		sellerProducts []models.Product
	)

	g2, g2ctx := errgroup.WithContext(ctx)

	g2.Go(func() (err error) {
		if len(ownerIDs) == 0 {
			return nil
		}
		ownerProjects, _, err = findPage[models.Project](g2ctx, s.projects, bson.M{
			"created_by":  bson.M{"$in": ownerIDs},
			"is_violated": bson.M{"$ne": true},
		}, p)
		return err
	})
	g2.Go(func() (err error) {
		if len(sellerIDs) == 0 {
			return nil
		}
		sellerProducts, _, err = findPage[models.Product](g2ctx, s.products, bson.M{
			"created_by": bson.M{"$in": sellerIDs},
			"$or":        query.FuzzyOr(q, "name", "about")["$or"],
		}, p)
		return err
	})

	if err := g2.Wait(); err != nil {
		return nil, err
	}

	if err := s.productSvc.Populate(ctx, products); err != nil {
		return nil, err
	}
	if err := s.productSvc.Populate(ctx, sellerProducts); err != nil {
		return nil, err
	}
	if err := s.populateProjectOwners(ctx, projects); err != nil {
		return nil, err
	}

	usersWithListings := attachProjects(users, ownerProjects)
	sellersWithListings := attachProducts(sellers, sellerProducts)

	return &models.SearchResults{
		Categories:     section(categories, p, categoriesTotal),
		Brands:         section(brands, p, brandsTotal),
		Products:       section(products, p, productsTotal),
		Projects:       section(projects, p, projectsTotal),
		Users:          section(usersWithListings, p, usersTotal),
		ProductSellers: section(sellersWithListings, p, sellersTotal),
	}, nil
}

func (s *SearchService) populateProjectOwners(ctx context.Context, projects []models.Project) error {
	ids := make([]string, 0, len(projects))
	for i := range projects {
		ids = append(ids, projects[i].CreatedByID)
	}
	owners, err := s.userSvc.UserMap(ctx, ids)
	if err != nil {
		return err
	}
	for i := range projects {
		projects[i].CreatedBy = owners[projects[i].CreatedByID]
	}
	return nil
}

// attachProjects groups projects by owner and attaches them to the matching
// users. Owners with no matching projects get an empty slice, never a missing
// attribute.
func attachProjects(users []models.User, projects []models.Project) []models.UserWithListings {
	byOwner := make(map[string][]models.Project)
	for _, project := range projects {
		byOwner[project.CreatedByID] = append(byOwner[project.CreatedByID], project)
	}

	out := make([]models.UserWithListings, 0, len(users))
	for _, user := range users {
		owned := byOwner[user.ID]
		if owned == nil {
			owned = []models.Project{}
		}
		out = append(out, models.UserWithListings{
			User:     user,
			Projects: owned,
			Products: []models.Product{},
		})
	}
	return out
}

// attachProducts is attachProjects for product sellers.
func attachProducts(sellers []models.User, products []models.Product) []models.UserWithListings {
	byOwner := make(map[string][]models.Product)
	for _, product := range products {
		byOwner[product.CreatedByID] = append(byOwner[product.CreatedByID], product)
	}

	out := make([]models.UserWithListings, 0, len(sellers))
	for _, seller := range sellers {
		owned := byOwner[seller.ID]
		if owned == nil {
			owned = []models.Product{}
		}
		out = append(out, models.UserWithListings{
			User:     seller,
			Projects: []models.Project{},
			Products: owned,
		})
	}
	return out
}

func section[T any](data []T, p query.Pagination, total int64) models.SearchSection {
	if data == nil {
		data = []T{}
	}
	return models.SearchSection{
		Data:         data,
		CurrentPage:  p.Page,
		TotalPages:   query.TotalPages(total, p.Limit),
		TotalResults: total,
	}
}

// findPage runs the find and count for one section with the section's own
// skip and limit.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter bson.M, p query.Pagination) ([]T, int64, error) {
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := col.Find(ctx, filter, options.Find().SetSkip(p.Skip).SetLimit(int64(p.Limit)))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]T, 0, p.Limit)
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}
	return out, total, cur.Err()
}
