package hotels

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BuildSearchFilter translates q into a MongoDB filter. The same filter is
// used for the page query and the total count.
func BuildSearchFilter(q SearchQuery) bson.M {
	filter := bson.M{}

	if dest := strings.TrimSpace(q.Destination); dest != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(dest), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"city": rx},
			bson.M{"country": rx},
			bson.M{"name": rx},
		}
	}

	if q.AdultCount > 0 {
		filter["adultCount"] = bson.M{"$gte": q.AdultCount}
	}
	if q.ChildCount > 0 {
		filter["childCount"] = bson.M{"$gte": q.ChildCount}
	}
	if len(q.Facilities) > 0 {
		filter["facilities"] = bson.M{"$all": q.Facilities}
	}
	if len(q.Types) > 0 {
		filter["type"] = bson.M{"$in": q.Types}
	}
	if len(q.Stars) > 0 {
		filter["starRating"] = bson.M{"$in": q.Stars}
	}
	if q.MaxPrice != nil {
		filter["pricePerNight"] = bson.M{"$lte": *q.MaxPrice}
	}

	return filter
}

// BuildSortOptions returns the sort document for a sort option, or nil for
// natural order. _id breaks ties so pages do not overlap.
func BuildSortOptions(option string) bson.D {
	switch option {
	case SortStarRating:
		return bson.D{{Key: "starRating", Value: -1}, {Key: "_id", Value: 1}}
	case SortPricePerNightAsc:
		return bson.D{{Key: "pricePerNight", Value: 1}, {Key: "_id", Value: 1}}
	case SortPricePerNightDesc:
		return bson.D{{Key: "pricePerNight", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return nil
	}
}

// literal stops client strings starting with "$" from being read as field paths.
func literal(v interface{}) bson.M {
	return bson.M{"$literal": v}
}

// buildHotelUpdate returns the update pipeline for patch. Image ordering is
// resolved server-side so a concurrent writer's images are not lost when the
// client did not name the images to keep.
func buildHotelUpdate(patch Patch, now time.Time) mongo.Pipeline {
	d := patch.Details
	facilities := d.Facilities
	if facilities == nil {
		facilities = []string{}
	}
	newImages := patch.NewImageURLs
	if newImages == nil {
		newImages = []string{}
	}

	set := bson.D{
		{Key: "name", Value: literal(d.Name)},
		{Key: "city", Value: literal(d.City)},
		{Key: "country", Value: literal(d.Country)},
		{Key: "description", Value: literal(d.Description)},
		{Key: "type", Value: literal(d.Type)},
		{Key: "adultCount", Value: literal(d.AdultCount)},
		{Key: "childCount", Value: literal(d.ChildCount)},
		{Key: "facilities", Value: literal(facilities)},
		{Key: "pricePerNight", Value: literal(d.PricePerNight)},
		{Key: "starRating", Value: literal(d.StarRating)},
		{Key: "lastUpdated", Value: literal(now)},
	}

	if patch.RetainedImageURLs != nil {
		images := make([]string, 0, len(newImages)+len(patch.RetainedImageURLs))
		images = append(images, newImages...)
		images = append(images, patch.RetainedImageURLs...)
		set = append(set, bson.E{Key: "imageUrls", Value: literal(images)})
	} else {
		set = append(set, bson.E{Key: "imageUrls", Value: bson.M{
			"$concatArrays": bson.A{
				literal(newImages),
				bson.M{"$ifNull": bson.A{"$imageUrls", bson.A{}}},
			},
		}})
	}

	return mongo.Pipeline{{{Key: "$set", Value: set}}}
}

// bookingsForUser keeps only userID's bookings on each hotel.
func bookingsForUser(list []Hotel, userID string) []Hotel {
	out := make([]Hotel, 0, len(list))
	for _, h := range list {
		mine := make([]Booking, 0, len(h.Bookings))
		for _, b := range h.Bookings {
			if b.UserID == userID {
				mine = append(mine, b)
			}
		}
		if len(mine) == 0 {
			continue
		}
		h.Bookings = mine
		out = append(out, h)
	}
	return out
}
