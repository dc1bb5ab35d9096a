package hotels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a confirmed stay, embedded in its hotel document.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	UserID          string             `bson:"userId" json:"userId"`
	FirstName       string             `bson:"firstName" json:"firstName"`
	LastName        string             `bson:"lastName" json:"lastName"`
	Email           string             `bson:"email" json:"email"`
	AdultCount      int                `bson:"adultCount" json:"adultCount"`
	ChildCount      int                `bson:"childCount" json:"childCount"`
	CheckIn         time.Time          `bson:"checkIn" json:"checkIn"`
	CheckOut        time.Time          `bson:"checkOut" json:"checkOut"`
	TotalCost       float64            `bson:"totalCost" json:"totalCost"`
	PaymentIntentID string             `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
}

// Hotel is a listing owned by UserID.
type Hotel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        string             `bson:"userId" json:"userId"`
	Name          string             `bson:"name" json:"name"`
	City          string             `bson:"city" json:"city"`
	Country       string             `bson:"country" json:"country"`
	Description   string             `bson:"description" json:"description"`
	Type          string             `bson:"type" json:"type"`
	AdultCount    int                `bson:"adultCount" json:"adultCount"`
	ChildCount    int                `bson:"childCount" json:"childCount"`
	Facilities    []string           `bson:"facilities" json:"facilities"`
	PricePerNight float64            `bson:"pricePerNight" json:"pricePerNight"`
	StarRating    int                `bson:"starRating" json:"starRating"`
	ImageURLs     []string           `bson:"imageUrls" json:"imageUrls"`
	LastUpdated   time.Time          `bson:"lastUpdated" json:"lastUpdated"`
	Bookings      []Booking          `bson:"bookings" json:"bookings"`
}

// Details are the owner-editable fields of a hotel.
type Details struct {
	Name          string
	City          string
	Country       string
	Description   string
	Type          string
	AdultCount    int
	ChildCount    int
	Facilities    []string
	PricePerNight float64
	StarRating    int
}

// Apply copies d onto h.
func (d Details) Apply(h *Hotel) {
	h.Name = d.Name
	h.City = d.City
	h.Country = d.Country
	h.Description = d.Description
	h.Type = d.Type
	h.AdultCount = d.AdultCount
	h.ChildCount = d.ChildCount
	h.Facilities = d.Facilities
	h.PricePerNight = d.PricePerNight
	h.StarRating = d.StarRating
}

// Patch is an owner update. RetainedImageURLs == nil keeps every existing
// image; otherwise the stored list becomes NewImageURLs followed by RetainedImageURLs.
type Patch struct {
	Details           Details
	NewImageURLs      []string
	RetainedImageURLs []string
}

// Sort options accepted by search.
const (
	SortStarRating        = "starRating"
	SortPricePerNightAsc  = "pricePerNightAsc"
	SortPricePerNightDesc = "pricePerNightDesc"
)

// SearchQuery holds parsed search parameters. Zero values mean "no constraint".
type SearchQuery struct {
	Destination string
	AdultCount  int
	ChildCount  int
	Facilities  []string
	Types       []string
	Stars       []int
	MaxPrice    *float64
	SortOption  string
	Page        int
}
