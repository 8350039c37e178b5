package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/query"
)

type PostService struct {
	posts *mongo.Collection
	users *UserService
}

func NewPostService(db *mongo.Database, users *UserService) *PostService {
	return &PostService{
		posts: db.Collection(colPosts),
		users: users,
	}
}

func (s *PostService) Create(ctx context.Context, userID string, req *models.CreatePostRequest) (*models.Post, error) {
	post := models.Post{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Captions:    req.Captions,
		Tags:        req.Tags,
		Location:    req.Location,
		Price:       req.Price,
		Images:      req.Images,
		CreatedByID: userID,
		FlagState:   models.FlagState{Flags: []models.Flag{}},
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns visibility-filtered posts, newest first.
func (s *PostService) List(ctx context.Context, vis Visibility, p query.Pagination) ([]models.Post, models.PageInfo, error) {
	filter := vis.Apply(bson.M{}, "created_by")
	return s.page(ctx, filter, p, query.ParseSort("", ""))
}

// ListMine returns the caller's own posts, violated ones excluded.
func (s *PostService) ListMine(ctx context.Context, userID string, p query.Pagination, sortBy, order string) ([]models.Post, models.PageInfo, error) {
	filter := bson.M{
		"created_by":  userID,
		"is_violated": bson.M{"$ne": true},
	}
	return s.page(ctx, filter, p, query.ParseSort(sortBy, order))
}

// ListFlagged returns every post carrying at least one flag, for the admin
// moderation queue.
func (s *PostService) ListFlagged(ctx context.Context) ([]models.Post, error) {
	cur, err := s.posts.Find(ctx, bson.M{"flags.0": bson.M{"$exists": true}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	for cur.Next(ctx) {
		var post models.Post
		if err := cur.Decode(&post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	if err := s.populateOwners(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) page(ctx context.Context, filter bson.M, p query.Pagination, sortDoc bson.D) ([]models.Post, models.PageInfo, error) {
	total, err := s.posts.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	info := models.PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   query.TotalPages(total, p.Limit),
		TotalResults: total,
	}
	if p.OutOfRange(info.TotalPages) {
		return []models.Post{}, info, ErrPageOutOfRange
	}

	cur, err := s.posts.Find(ctx, filter, p.FindOptions(sortDoc))
	if err != nil {
		return nil, info, err
	}
	defer cur.Close(ctx)

	posts := make([]models.Post, 0, p.Limit)
	for cur.Next(ctx) {
		var post models.Post
		if err := cur.Decode(&post); err != nil {
			return nil, info, err
		}
		posts = append(posts, post)
	}
	if err := cur.Err(); err != nil {
		return nil, info, err
	}

	if err := s.populateOwners(ctx, posts); err != nil {
		return nil, info, err
	}
	return posts, info, nil
}

func (s *PostService) populateOwners(ctx context.Context, posts []models.Post) error {
	ids := make([]string, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].CreatedByID)
	}
	owners, err := s.users.UserMap(ctx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].CreatedBy = owners[posts[i].CreatedByID]
	}
	return nil
}
