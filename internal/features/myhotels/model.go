package myhotels

import "github.com/xyz-asif/gohotels/internal/features/hotels"

// Upload limits for hotel images.
const (
	MaxImages      = 6
	maxRequestSize = MaxImages*5<<20 + 1<<20
)

// HotelForm is the multipart form used to create and edit a hotel. Facilities
// and retained image URLs are read separately because the frontend sends
// them as indexed keys (facilities[0], facilities[1], ...).
type HotelForm struct {
	Name          string  `form:"name" binding:"required"`
	City          string  `form:"city" binding:"required"`
	Country       string  `form:"country" binding:"required"`
	Description   string  `form:"description" binding:"required"`
	Type          string  `form:"type" binding:"required"`
	AdultCount    int     `form:"adultCount" binding:"gte=1"`
	ChildCount    int     `form:"childCount" binding:"gte=0"`
	PricePerNight float64 `form:"pricePerNight" binding:"required,gt=0"`
	StarRating    int     `form:"starRating" binding:"required,min=1,max=5"`
}

// Details converts the form into hotel details.
func (f HotelForm) Details(facilities []string) hotels.Details {
	return hotels.Details{
		Name:          f.Name,
		City:          f.City,
		Country:       f.Country,
		Description:   f.Description,
		Type:          f.Type,
		AdultCount:    f.AdultCount,
		ChildCount:    f.ChildCount,
		Facilities:    facilities,
		PricePerNight: f.PricePerNight,
		StarRating:    f.StarRating,
	}
}
