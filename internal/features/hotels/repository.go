package hotels

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xyz-asif/gohotels/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the hotel persistence used by the hotels, myhotels and bookings features.
type Store interface {
	Create(ctx context.Context, hotel *Hotel, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Hotel, error)
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*Hotel, error)
	Update(ctx context.Context, id, ownerID string, patch Patch) (*Hotel, error)
	List(ctx context.Context) ([]Hotel, error)
	GetByID(ctx context.Context, id string) (*Hotel, error)
	Search(ctx context.Context, q SearchQuery) ([]Hotel, int64, error)
	AddBooking(ctx context.Context, hotelID string, booking Booking) error
	ListBookedByUser(ctx context.Context, userID string) ([]Hotel, error)
}

// Repository handles database interactions for hotels and their embedded bookings
type Repository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// public reads never expose other guests' bookings
var withoutBookings = bson.M{"bookings": 0}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("hotels")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "country", Value: 1}}},
		{Keys: bson.D{{Key: "starRating", Value: -1}}},
		{Keys: bson.D{{Key: "pricePerNight", Value: 1}}},
		{Keys: bson.D{{Key: "lastUpdated", Value: -1}}},
		{Keys: bson.D{{Key: "bookings.userId", Value: 1}}},
	})

	return &Repository{collection: collection, now: time.Now}
}

// Create inserts hotel on behalf of ownerID
func (r *Repository) Create(ctx context.Context, hotel *Hotel, ownerID string) error {
	hotel.ID = primitive.NilObjectID
	hotel.UserID = ownerID
	hotel.LastUpdated = r.now()
	hotel.Bookings = []Booking{}
	if hotel.Facilities == nil {
		hotel.Facilities = []string{}
	}
	if hotel.ImageURLs == nil {
		hotel.ImageURLs = []string{}
	}

	result, err := r.collection.InsertOne(ctx, hotel)
	if err != nil {
		return fmt.Errorf("insert hotel: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		hotel.ID = oid
	}
	return nil
}

// ListByOwner returns every hotel owned by ownerID
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]Hotel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastUpdated", Value: -1}})
	return r.find(ctx, bson.M{"userId": ownerID}, opts)
}

// GetByIDForOwner returns the hotel only when ownerID owns it. Missing,
// foreign and malformed ids are all ErrNotFound.
func (r *Repository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*Hotel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	return r.findOne(ctx, bson.M{"_id": oid, "userId": ownerID})
}

// Update applies patch to a hotel owned by ownerID and returns the stored result
func (r *Repository) Update(ctx context.Context, id, ownerID string, patch Patch) (*Hotel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	filter := bson.M{"_id": oid, "userId": ownerID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var hotel Hotel
	err = r.collection.FindOneAndUpdate(ctx, filter, buildHotelUpdate(patch, r.now()), opts).Decode(&hotel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("update hotel %s: %w", id, err)
	}

	return &hotel, nil
}

// List returns all hotels, most recently updated first
func (r *Repository) List(ctx context.Context) ([]Hotel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "lastUpdated", Value: -1}}).
		SetProjection(withoutBookings)
	return r.find(ctx, bson.M{}, opts)
}

// GetByID returns a hotel without its bookings
func (r *Repository) GetByID(ctx context.Context, id string) (*Hotel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	return r.findOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(withoutBookings))
}

// Search returns one page of hotels matching q plus the total match count
func (r *Repository) Search(ctx context.Context, q SearchQuery) ([]Hotel, int64, error) {
	filter := BuildSearchFilter(q)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count hotels: %w", err)
	}

	skip := pagination.Skip(q.Page, pagination.DefaultPageSize)
	if skip >= total {
		return []Hotel{}, total, nil
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(int64(pagination.DefaultPageSize)).
		SetProjection(withoutBookings)
	if sort := BuildSortOptions(q.SortOption); sort != nil {
		opts.SetSort(sort)
	}

	hotels, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	return hotels, total, nil
}

// AddBooking appends booking to the hotel. A booking carrying a payment
// intent id already present on the hotel is rejected with ErrDuplicate.
func (r *Repository) AddBooking(ctx context.Context, hotelID string, booking Booking) error {
	oid, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return apperrors.ErrNotFound
	}

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}

	filter := bson.M{"_id": oid}
	if booking.PaymentIntentID != "" {
		filter["bookings.paymentIntentId"] = bson.M{"$ne": booking.PaymentIntentID}
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$push": bson.M{"bookings": booking},
	})
	if err != nil {
		return fmt.Errorf("add booking to hotel %s: %w", hotelID, err)
	}

	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("add booking to hotel %s: %w", hotelID, err)
		}
		if count == 0 {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("payment intent %s already booked: %w", booking.PaymentIntentID, apperrors.ErrDuplicate)
	}

	return nil
}

// ListBookedByUser returns the hotels userID has booked, each carrying only userID's bookings
func (r *Repository) ListBookedByUser(ctx context.Context, userID string) ([]Hotel, error) {
	filter := bson.M{"bookings": bson.M{"$elemMatch": bson.M{"userId": userID}}}

	hotels, err := r.find(ctx, filter, options.Find())
	if err != nil {
		return nil, err
	}

	return bookingsForUser(hotels, userID), nil
}

func (r *Repository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Hotel, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("decode hotels: %w", err)
	}

	return hotels, nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*Hotel, error) {
	var hotel Hotel
	err := r.collection.FindOne(ctx, filter, opts...).Decode(&hotel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find hotel: %w", err)
	}

	return &hotel, nil
}
