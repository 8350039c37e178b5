package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/query"
)

type UserService struct {
	users        *mongo.Collection
	projects     *mongo.Collection
	products     *mongo.Collection
	brands       *mongo.Collection
	deletionLogs *mongo.Collection
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{
		users:        db.Collection(colUsers),
		projects:     db.Collection(colProjects),
		products:     db.Collection(colProducts),
		brands:       db.Collection(colBrands),
		deletionLogs: db.Collection(colDeletionLogs),
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"phone_number": phone}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EnsureByPhone returns the user for phone, creating a bare record on first
// login. The second return value reports whether a new user was created.
func (s *UserService) EnsureByPhone(ctx context.Context, phone string) (*models.User, bool, error) {
	user, err := s.GetByPhone(ctx, phone)
	if err == nil {
		return user, false, nil
	}
	if err != ErrUserNotFound {
		return nil, false, err
	}

	now := time.Now().UTC()
	created := models.User{
		ID:           uuid.New().String(),
		PhoneNumber:  phone,
		BlockedUsers: []string{},
		FlagState:    models.FlagState{Flags: []models.Flag{}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.users.InsertOne(ctx, created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Concurrent first login for the same phone; fetch the winner.
			user, ferr := s.GetByPhone(ctx, phone)
			return user, false, ferr
		}
		return nil, false, err
	}
	return &created, true, nil
}

// UpdateProfile merges the valid fields of req over the stored user; invalid
// or empty values leave the stored value in place.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateUserRequest) (*models.User, error) {
	existing, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}

	setNonEmpty(set, "fname", req.FirstName)
	setNonEmpty(set, "lname", req.LastName)
	setNonEmpty(set, "profile_image", req.ProfileImage)
	setNonEmpty(set, "role", req.Role)
	setNonEmpty(set, "type", req.Type)
	setNonEmpty(set, "gender", req.Gender)
	setNonEmpty(set, "device_token", req.DeviceToken)
	if models.ValidEmail(req.Email) {
		set["email"] = req.Email
	}
	if req.Age > 0 {
		set["age"] = req.Age
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.Company != nil {
		set["company_details"] = mergeCompanyDetails(existing.Company, *req.Company)
	}

	return s.findAndUpdate(ctx, userID, bson.M{"$set": set})
}

// CompleteProfile applies the registration payload to the user record. The
// required fields overwrite unconditionally; optional ones merge like a
// profile update. A missing profile image falls back to the default avatar.
func (s *UserService) CompleteProfile(ctx context.Context, userID string, req *models.CompleteRegistrationRequest) (*models.User, error) {
	existing, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	image := req.ProfileImage
	if image == "" {
		image = models.DefaultProfileImage
	}
	set := bson.M{
		"fname":         req.FirstName,
		"lname":         req.LastName,
		"role":          req.Role,
		"email":         req.Email,
		"profile_image": image,
		"updated_at":    time.Now().UTC(),
	}
	setNonEmpty(set, "type", req.Type)
	setNonEmpty(set, "gender", req.Gender)
	if req.Age > 0 {
		set["age"] = req.Age
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.Company != nil {
		set["company_details"] = mergeCompanyDetails(existing.Company, *req.Company)
	}
	if req.Referral != nil {
		set["referral"] = req.Referral
	}

	return s.findAndUpdate(ctx, userID, bson.M{"$set": set})
}

// mergeCompanyDetails keeps each stored company field unless the update
// carries a valid replacement.
func mergeCompanyDetails(existing, update models.CompanyDetails) models.CompanyDetails {
	merged := existing
	if update.CompanyName != "" {
		merged.CompanyName = update.CompanyName
	}
	if models.ValidEmail(update.CompanyEmail) {
		merged.CompanyEmail = update.CompanyEmail
	}
	if update.CompanyPhone != "" {
		merged.CompanyPhone = update.CompanyPhone
	}
	if update.CompanyGstNumber != "" {
		merged.CompanyGstNumber = update.CompanyGstNumber
	}
	if update.Experience > 0 {
		merged.Experience = update.Experience
	}
	if update.CompanyAddress.Place != "" {
		merged.CompanyAddress.Place = update.CompanyAddress.Place
	}
	if update.CompanyAddress.Pincode > 0 {
		merged.CompanyAddress.Pincode = update.CompanyAddress.Pincode
	}
	if update.Bio != "" {
		merged.Bio = update.Bio
	}
	return merged
}

func setNonEmpty(set bson.M, field, value string) {
	if value != "" {
		set[field] = value
	}
}

// SetPremium stamps the premium subscription block on the user.
func (s *UserService) SetPremium(ctx context.Context, userID string, premium models.Premium) (*models.User, error) {
	return s.findAndUpdate(ctx, userID, bson.M{"$set": bson.M{
		"premium":    premium,
		"updated_at": time.Now().UTC(),
	}})
}

func (s *UserService) findAndUpdate(ctx context.Context, userID string, update bson.M) (*models.User, error) {
	res := s.users.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.User
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Block adds target to the caller's block list ($addToSet keeps it
// duplicate-free) and returns the populated blocked users.
func (s *UserService) Block(ctx context.Context, userID, targetID string) ([]models.User, error) {
	if userID == targetID {
		return nil, ErrSelfBlock
	}
	if _, err := s.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	updated, err := s.findAndUpdate(ctx, userID, bson.M{
		"$addToSet": bson.M{"blocked_users": targetID},
	})
	if err != nil {
		return nil, err
	}
	return s.getManyByIDs(ctx, updated.BlockedUsers)
}

func (s *UserService) Unblock(ctx context.Context, userID, targetID string) ([]models.User, error) {
	if userID == targetID {
		return nil, ErrSelfBlock
	}
	if _, err := s.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	caller, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !contains(caller.BlockedUsers, targetID) {
		return nil, ErrNotBlocked
	}

	updated, err := s.findAndUpdate(ctx, userID, bson.M{
		"$pull": bson.M{"blocked_users": targetID},
	})
	if err != nil {
		return nil, err
	}
	return s.getManyByIDs(ctx, updated.BlockedUsers)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// DeleteAccount removes the user and everything they own, keeping a deletion
// log with the reason.
func (s *UserService) DeleteAccount(ctx context.Context, userID, reason string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	logEntry := models.DeletionLog{
		ID:          uuid.New().String(),
		UserID:      userID,
		Reason:      reason,
		PhoneNumber: user.PhoneNumber,
		JoinedAt:    user.CreatedAt,
		DeletedAt:   time.Now().UTC(),
	}
	if _, err := s.deletionLogs.InsertOne(ctx, logEntry); err != nil {
		return err
	}

	if _, err := s.users.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return err
	}
	if _, err := s.projects.DeleteMany(ctx, bson.M{"created_by": userID}); err != nil {
		return err
	}
	if _, err := s.products.DeleteMany(ctx, bson.M{"created_by": userID}); err != nil {
		return err
	}
	return nil
}

// GetWithListings returns the user plus their owned projects or products,
// depending on role. Both slices are always present.
func (s *UserService) GetWithListings(ctx context.Context, userID string) (*models.UserWithListings, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &models.UserWithListings{
		User:     *user,
		Projects: []models.Project{},
		Products: []models.Product{},
	}
	if err := s.attachListings(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByRoleType lists users matching the role/type filter, with the viewer's
// visibility applied, each with their owned projects/products attached.
func (s *UserService) ListByRoleType(ctx context.Context, filter query.UserFilter, vis Visibility, p query.Pagination) ([]models.UserWithListings, models.PageInfo, error) {
	mongoFilter := vis.Apply(filter.BSON(), "_id")

	total, err := s.users.CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	info := models.PageInfo{
		CurrentPage:  p.Page,
		TotalPages:   query.TotalPages(total, p.Limit),
		TotalResults: total,
	}
	if p.OutOfRange(info.TotalPages) {
		return []models.UserWithListings{}, info, ErrPageOutOfRange
	}

	cur, err := s.users.Find(ctx, mongoFilter, p.FindOptions(query.ParseSort("", "")))
	if err != nil {
		return nil, info, err
	}
	defer cur.Close(ctx)

	results := make([]models.UserWithListings, 0, p.Limit)
	for cur.Next(ctx) {
		var user models.User
		if err := cur.Decode(&user); err != nil {
			return nil, info, err
		}
		results = append(results, models.UserWithListings{
			User:     user,
			Projects: []models.Project{},
			Products: []models.Product{},
		})
	}
	if err := cur.Err(); err != nil {
		return nil, info, err
	}

	for i := range results {
		if err := s.attachListings(ctx, &results[i]); err != nil {
			return nil, info, err
		}
	}
	return results, info, nil
}

func (s *UserService) attachListings(ctx context.Context, u *models.UserWithListings) error {
	switch u.Role {
	case models.RoleRealtor, models.RoleProfessional:
		cur, err := s.projects.Find(ctx, bson.M{"created_by": u.ID})
		if err != nil {
			return err
		}
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var project models.Project
			if err := cur.Decode(&project); err != nil {
				return err
			}
			u.Projects = append(u.Projects, project)
		}
		return cur.Err()
	case models.RoleProductSeller:
		cur, err := s.products.Find(ctx, bson.M{"created_by": u.ID})
		if err != nil {
			return err
		}
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var product models.Product
			if err := cur.Decode(&product); err != nil {
				return err
			}
			product.ResolveLastPrice()
			u.Products = append(u.Products, product)
		}
		return cur.Err()
	}
	return nil
}

// getManyByIDs fetches a batch of users preserving no particular order.
func (s *UserService) getManyByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var user models.User
		if err := cur.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, cur.Err()
}

// UserMap resolves ids to users for populating createdBy references.
func (s *UserService) UserMap(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users, err := s.getManyByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[string]*models.User, len(users))
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

// AddAddress appends a delivery address and returns the updated list.
func (s *UserService) AddAddress(ctx context.Context, userID string, req *models.AddAddressRequest) ([]models.DeliveryAddress, error) {
	address := models.DeliveryAddress{
		ID:        uuid.New().String(),
		FullName:  req.FullName,
		Mobile:    req.Mobile,
		AltMobile: req.AltMobile,
		Pincode:   req.Pincode,
		District:  req.District,
		City:      req.City,
		Address:   req.Address,
		Landmark:  req.Landmark,
	}
	user, err := s.findAndUpdate(ctx, userID, bson.M{
		"$push": bson.M{"delivery_addresses": address},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	return user.Delivery, nil
}

// RemoveAddress deletes one delivery address by id.
func (s *UserService) RemoveAddress(ctx context.Context, userID, addressID string) ([]models.DeliveryAddress, error) {
	existing, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range existing.Delivery {
		if existing.Delivery[i].ID == addressID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrAddressNotFound
	}

	user, err := s.findAndUpdate(ctx, userID, bson.M{
		"$pull": bson.M{"delivery_addresses": bson.M{"_id": addressID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	if user.Delivery == nil {
		user.Delivery = []models.DeliveryAddress{}
	}
	return user.Delivery, nil
}

// ProfessionalTokensByPincode returns the device tokens of professionals
// whose company address sits in the given pincode. Used to fan booking
// notifications out to nearby service providers.
func (s *UserService) ProfessionalTokensByPincode(ctx context.Context, pincode int) ([]string, error) {
	cur, err := s.users.Find(ctx, bson.M{
		"role": models.RoleProfessional,
		"company_details.company_address.pincode": pincode,
		"device_token": bson.M{"$nin": bson.A{nil, ""}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tokens := []string{}
	for cur.Next(ctx) {
		var user models.User
		if err := cur.Decode(&user); err != nil {
			return nil, err
		}
		tokens = append(tokens, user.DeviceToken)
	}
	return tokens, cur.Err()
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
