package hotels

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/xyz-asif/gohotels/internal/pkg/validator"
)

// ParseSearchQuery reads search parameters from a query string. Blank values
// are treated as absent; malformed numbers are reported per field.
func ParseSearchQuery(values url.Values) (SearchQuery, []validator.FieldError) {
	var (
		q    SearchQuery
		errs []validator.FieldError
	)

	q.Destination = strings.TrimSpace(values.Get("destination"))
	q.SortOption = strings.TrimSpace(values.Get("sortOption"))
	q.Facilities = nonBlank(values["facilities"])
	q.Types = nonBlank(values["types"])

	intParam := func(name string, dst *int) {
		raw := strings.TrimSpace(values.Get(name))
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, validator.FieldError{Field: name, Message: name + " must be a non-negative integer"})
			return
		}
		*dst = n
	}

	intParam("adultCount", &q.AdultCount)
	intParam("childCount", &q.ChildCount)

	q.Page = 1
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errs = append(errs, validator.FieldError{Field: "page", Message: "page must be a positive integer"})
		} else {
			q.Page = n
		}
	}

	if raw := strings.TrimSpace(values.Get("maxPrice")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			errs = append(errs, validator.FieldError{Field: "maxPrice", Message: "maxPrice must be a non-negative number"})
		} else {
			q.MaxPrice = &price
		}
	}

	for _, raw := range nonBlank(values["stars"]) {
		star, err := strconv.Atoi(raw)
		if err != nil || star < 1 || star > 5 {
			errs = append(errs, validator.FieldError{Field: "stars", Message: "stars must be between 1 and 5"})
			break
		}
		q.Stars = append(q.Stars, star)
	}

	return q, errs
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
