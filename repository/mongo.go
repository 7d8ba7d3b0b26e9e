package repository

import (
	"context"
	stderrors "errors"
	"regexp"
	"strings"
	"time"

	"luxestay/constants"
	"luxestay/errors"
	"luxestay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	hotelsCollection   = "hotels"
	bookingsCollection = "bookings"
	usersCollection    = "users"
	contactsCollection = "contacts"

	reviewRetries = 3
)

// NewMongoStore tạo store dựa trên MongoDB, rooms/reviews/amenities được nhúng trong document hotel
func NewMongoStore(ctx context.Context, db *mongo.Database) (*Store, error) {
	if err := ensureMongoIndexes(ctx, db); err != nil {
		return nil, err
	}
	return &Store{
		Hotels:   &mongoHotelRepository{col: db.Collection(hotelsCollection)},
		Bookings: &mongoBookingRepository{col: db.Collection(bookingsCollection)},
		Users:    &mongoUserRepository{col: db.Collection(usersCollection)},
		Contacts: &mongoContactRepository{col: db.Collection(contactsCollection)},
	}, nil
}

func ensureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(bookingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "roomId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(hotelsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "rooms._id", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "featured", Value: 1}}},
	})
	return err
}

func translateMongo(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return errors.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return errors.ErrDuplicate
	}
	return err
}

// withHotelID gán HotelID cho rooms vì field này không được lưu trong document nhúng
func withHotelID(h *models.Hotel) {
	for i := range h.Rooms {
		h.Rooms[i].HotelID = h.ID
	}
}

type mongoHotelRepository struct {
	col *mongo.Collection
}

func (r *mongoHotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	now := time.Now().UTC()
	if hotel.CreatedAt.IsZero() {
		hotel.CreatedAt = now
	}
	hotel.UpdatedAt = now
	withHotelID(hotel)
	_, err := r.col.InsertOne(ctx, hotel)
	return translateMongo(err)
}

func (r *mongoHotelRepository) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&hotel); err != nil {
		return nil, translateMongo(err)
	}
	withHotelID(&hotel)
	return &hotel, nil
}

func (r *mongoHotelRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Hotel, error) {
	cursor, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translateMongo(err)
	}
	var hotels []models.Hotel
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, translateMongo(err)
	}
	for i := range hotels {
		withHotelID(&hotels[i])
	}
	return hotels, nil
}

func (r *mongoHotelRepository) ListActive(ctx context.Context) ([]models.Hotel, error) {
	return r.find(ctx, bson.M{"isActive": true}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoHotelRepository) ListAll(ctx context.Context) ([]models.Hotel, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoHotelRepository) ListFeatured(ctx context.Context, limit int) ([]models.Hotel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rating.average", Value: -1}}).SetLimit(int64(limit))
	return r.find(ctx, bson.M{"isActive": true, "featured": true}, opts)
}

func (r *mongoHotelRepository) FindRoom(ctx context.Context, roomID string) (*models.Hotel, *models.Room, error) {
	var hotel models.Hotel
	if err := r.col.FindOne(ctx, bson.M{"rooms._id": roomID}).Decode(&hotel); err != nil {
		return nil, nil, translateMongo(err)
	}
	withHotelID(&hotel)
	room, ok := hotel.FindRoom(roomID)
	if !ok {
		return nil, nil, errors.ErrNotFound
	}
	return &hotel, room, nil
}

// AddReview dùng optimistic concurrency theo rating.count, thử lại khi có ghi đồng thời
func (r *mongoHotelRepository) AddReview(ctx context.Context, hotelID string, review models.Review) (*models.Hotel, error) {
	for attempt := 0; attempt < reviewRetries; attempt++ {
		hotel, err := r.GetByID(ctx, hotelID)
		if err != nil {
			return nil, err
		}
		if hotel.HasReviewFrom(review.UserID) {
			return nil, errors.ErrDuplicate
		}

		previousCount := len(hotel.Reviews)
		hotel.AddReview(review)
		res, err := r.col.UpdateOne(ctx,
			bson.M{"_id": hotelID, "reviews.userId": bson.M{"$ne": review.UserID}, "rating.count": previousCount},
			bson.M{
				"$push": bson.M{"reviews": review},
				"$set": bson.M{
					"rating":    hotel.Rating,
					"updatedAt": time.Now().UTC(),
				},
			})
		if err != nil {
			return nil, translateMongo(err)
		}
		if res.ModifiedCount == 1 {
			return r.GetByID(ctx, hotelID)
		}
	}
	return nil, errors.ErrStatusChanged
}

func (r *mongoHotelRepository) AddImages(ctx context.Context, hotelID string, images []models.HotelImage) (*models.Hotel, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": hotelID}, bson.M{
		"$push": bson.M{"images": bson.M{"$each": images}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return nil, translateMongo(err)
	}
	if res.MatchedCount == 0 {
		return nil, errors.ErrNotFound
	}
	return r.GetByID(ctx, hotelID)
}

func (r *mongoHotelRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, translateMongo(err)
}

type mongoBookingRepository struct {
	col *mongo.Collection
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, booking)
	return translateMongo(err)
}

func (r *mongoBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		return nil, translateMongo(err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Booking, error) {
	cursor, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translateMongo(err)
	}
	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, translateMongo(err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoBookingRepository) ListActiveByRoom(ctx context.Context, roomID string, from, to time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"roomId": roomID,
		"status": bson.M{"$in": constants.ActiveBookingStatuses},
	}
	if !from.IsZero() {
		filter["checkOut"] = bson.M{"$gt": from}
	}
	if !to.IsZero() {
		filter["checkIn"] = bson.M{"$lt": to}
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "checkIn", Value: 1}}))
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id, from, to string) (*models.Booking, error) {
	var booking models.Booking
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&booking)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, errors.ErrStatusChanged
	}
	if err != nil {
		return nil, translateMongo(err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongo(err)
	}
	if res.DeletedCount == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func pageOptions(page, limit int) *options.FindOptions {
	opts := options.Find()
	if limit > 0 {
		opts.SetSkip(int64(offset(page, limit))).SetLimit(int64(limit))
	}
	return opts
}

func (r *mongoBookingRepository) List(ctx context.Context, page, limit int) ([]models.Booking, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, translateMongo(err)
	}
	opts := pageOptions(page, limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	bookings, err := r.find(ctx, bson.M{}, opts)
	return bookings, total, err
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, translateMongo(err)
}

type mongoUserRepository struct {
	col *mongo.Collection
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, user)
	return translateMongo(err)
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, translateMongo(err)
	}
	return &user, nil
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user); err != nil {
		return nil, translateMongo(err)
	}
	return &user, nil
}

func containsRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(strings.TrimSpace(s)), "$options": "i"}
}

func (r *mongoUserRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := bson.M{}
	switch {
	case filter.Role != "":
		query["role"] = filter.Role
	case filter.ExcludeRole != "":
		query["role"] = bson.M{"$ne": filter.ExcludeRole}
	}
	if strings.TrimSpace(filter.Search) != "" {
		query["$or"] = bson.A{
			bson.M{"name": containsRegex(filter.Search)},
			bson.M{"email": containsRegex(filter.Search)},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, translateMongo(err)
	}
	opts := pageOptions(filter.Page, filter.Limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, translateMongo(err)
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, translateMongo(err)
	}
	return users, total, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return translateMongo(err)
	}
	if res.MatchedCount == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongo(err)
	}
	if res.DeletedCount == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	n, err := r.col.CountDocuments(ctx, filter)
	return n, translateMongo(err)
}

type mongoContactRepository struct {
	col *mongo.Collection
}

func (r *mongoContactRepository) Create(ctx context.Context, contact *models.ContactSubmission) error {
	now := time.Now().UTC()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, contact)
	return translateMongo(err)
}

func (r *mongoContactRepository) GetByID(ctx context.Context, id string) (*models.ContactSubmission, error) {
	var contact models.ContactSubmission
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&contact); err != nil {
		return nil, translateMongo(err)
	}
	return &contact, nil
}

func (r *mongoContactRepository) Update(ctx context.Context, contact *models.ContactSubmission) error {
	contact.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": contact.ID}, contact)
	if err != nil {
		return translateMongo(err)
	}
	if res.MatchedCount == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *mongoContactRepository) List(ctx context.Context, filter ContactFilter) ([]models.ContactSubmission, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if strings.TrimSpace(filter.Search) != "" {
		query["$or"] = bson.A{
			bson.M{"name": containsRegex(filter.Search)},
			bson.M{"email": containsRegex(filter.Search)},
			bson.M{"subject": containsRegex(filter.Search)},
			bson.M{"message": containsRegex(filter.Search)},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, translateMongo(err)
	}

	field := "createdAt"
	if filter.SortBy == "priority" || filter.SortBy == "status" {
		field = filter.SortBy
	}
	direction := -1
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = 1
	}
	opts := pageOptions(filter.Page, filter.Limit).
		SetSort(bson.D{{Key: field, Value: direction}, {Key: "createdAt", Value: -1}})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, translateMongo(err)
	}
	contacts := []models.ContactSubmission{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, 0, translateMongo(err)
	}
	return contacts, total, nil
}

func (r *mongoContactRepository) StatusStats(ctx context.Context) (map[string]int64, error) {
	cursor, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$status"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	})
	if err != nil {
		return nil, translateMongo(err)
	}
	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, translateMongo(err)
	}
	stats := make(map[string]int64, len(rows))
	for _, row := range rows {
		stats[row.Status] = row.Count
	}
	return stats, nil
}
