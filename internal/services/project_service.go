package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/query"
)

type ProjectService struct {
	projects *mongo.Collection
	users    *UserService
}

func NewProjectService(db *mongo.Database, users *UserService) *ProjectService {
	return &ProjectService{
		projects: db.Collection(colProjects),
		users:    users,
	}
}

func (s *ProjectService) Create(ctx context.Context, userID string, req *models.CreateProjectRequest) (*models.Project, error) {
	project := models.Project{
		ID:               uuid.New().String(),
		Title:            req.Title,
		SellerName:       req.SellerName,
		SellerPhone:      req.SellerPhone,
		ProjectType:      req.ProjectType,
		Location:         req.Location,
		ConstructionType: req.ConstructionType,
		HouseType:        req.HouseType,
		Style:            req.Style,
		Layout:           req.Layout,
		Bathrooms:        req.Bathrooms,
		AreaSquareFeet:   req.AreaSquareFeet,
		PlotSize:         req.PlotSize,
		Scope:            req.Scope,
		Cost:             req.Cost,
		About:            req.About,
		Images:           req.Images,
		Floors:           req.Floors,
		Parkings:         req.Parkings,
		Ownership:        req.Ownership,
		TransactionType:  req.TransactionType,
		PlotSizeProperty: req.PlotSizeProperty,
		BoundaryWall:     req.BoundaryWall,
		CornerProperty:   req.CornerProperty,
		PropertyAge:      req.PropertyAge,
		Tags:             req.Tags,
		CreatedByID:      userID,
		FlagState:        models.FlagState{Flags: []models.Flag{}},
		CreatedAt:        time.Now().UTC(),
	}

	if _, err := s.projects.InsertOne(ctx, project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := s.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns visibility-filtered projects. Pagination totals come from the
// filtered count.
func (s *ProjectService) List(ctx context.Context, vis Visibility, p query.Pagination, sortBy, order string) ([]models.Project, models.PageInfo, error) {
	filter := vis.Apply(bson.M{}, "created_by")
	return s.page(ctx, filter, p, query.ParseSort(sortBy, order))
}

// ListMine returns the caller's own projects, violated ones excluded.
func (s *ProjectService) ListMine(ctx context.Context, userID string, p query.Pagination, sortBy, order string) ([]models.Project, models.PageInfo, error) {
	filter := bson.M{
		"created_by":  userID,
		"is_violated": bson.M{"$ne": true},
	}
	return s.page(ctx, filter, p, query.ParseSort(sortBy, order))
}

// Filter applies the typed filter dimensions plus the viewer's visibility.
func (s *ProjectService) Filter(ctx context.Context, f query.ProjectFilter, vis Visibility, p query.Pagination, sortBy, order string) ([]models.Project, models.PageInfo, error) {
	filter := vis.Apply(f.BSON(), "created_by")
	return s.page(ctx, filter, p, query.ParseSort(sortBy, order))
}

// ListByIDs resolves the requested ids, drops the missing and the violated,
// then sorts and paginates in memory since the caller dictates the order of
// an explicit id set.
func (s *ProjectService) ListByIDs(ctx context.Context, ids []string, p query.Pagination, sortBy, order string) ([]models.Project, models.PageInfo, error) {
	projects := []models.Project{}
	if len(ids) > 0 {
		cur, err := s.projects.Find(ctx, bson.M{
			"_id":         bson.M{"$in": ids},
			"is_violated": bson.M{"$ne": true},
		})
		if err != nil {
			return nil, models.PageInfo{}, err
		}
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var project models.Project
			if err := cur.Decode(&project); err != nil {
				return nil, models.PageInfo{}, err
			}
			projects = append(projects, project)
		}
		if err := cur.Err(); err != nil {
			return nil, models.PageInfo{}, err
		}
	}

	asc := order == "asc"
	sort.Slice(projects, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "title":
			less = projects[i].Title < projects[j].Title
		case "cost":
			less = projects[i].Cost < projects[j].Cost
		default:
			less = projects[i].CreatedAt.Before(projects[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(projects))
	info := models.PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   query.TotalPages(total, p.Limit),
		TotalResults: total,
	}
	if p.OutOfRange(info.TotalPages) {
		return []models.Project{}, info, ErrPageOutOfRange
	}

	start := int(p.Skip)
	if start > len(projects) {
		start = len(projects)
	}
	end := start + p.Limit
	if end > len(projects) {
		end = len(projects)
	}
	pageSlice := projects[start:end]

	if err := s.populateOwners(ctx, pageSlice); err != nil {
		return nil, info, err
	}
	return pageSlice, info, nil
}

func (s *ProjectService) page(ctx context.Context, filter bson.M, p query.Pagination, sortDoc bson.D) ([]models.Project, models.PageInfo, error) {
	total, err := s.projects.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	info := models.PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   query.TotalPages(total, p.Limit),
		TotalResults: total,
	}
	if p.OutOfRange(info.TotalPages) {
		return []models.Project{}, info, ErrPageOutOfRange
	}

	cur, err := s.projects.Find(ctx, filter, p.FindOptions(sortDoc))
	if err != nil {
		return nil, info, err
	}
	defer cur.Close(ctx)

	projects := make([]models.Project, 0, p.Limit)
	for cur.Next(ctx) {
		var project models.Project
		if err := cur.Decode(&project); err != nil {
			return nil, info, err
		}
		projects = append(projects, project)
	}
	if err := cur.Err(); err != nil {
		return nil, info, err
	}

	if err := s.populateOwners(ctx, projects); err != nil {
		return nil, info, err
	}
	return projects, info, nil
}

func (s *ProjectService) populateOwners(ctx context.Context, projects []models.Project) error {
	ids := make([]string, 0, len(projects))
	for i := range projects {
		ids = append(ids, projects[i].CreatedByID)
	}
	owners, err := s.users.UserMap(ctx, ids)
	if err != nil {
		return err
	}
	for i := range projects {
		projects[i].CreatedBy = owners[projects[i].CreatedByID]
	}
	return nil
}
