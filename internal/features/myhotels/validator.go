package myhotels

import (
	"fmt"
	"math"
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xyz-asif/gohotels/internal/pkg/cloudinary"
	"github.com/xyz-asif/gohotels/internal/pkg/validator"
)

var indexedKey = regexp.MustCompile(`^(\w+)\[(\d*)\]$`)

// formArray collects name, name[] and name[N] values, indexed keys in index order.
func formArray(values map[string][]string, name string) (out []string, present bool) {
	type indexed struct {
		idx int
		val string
	}
	var items []indexed

	for key, vals := range values {
		if key == name {
			present = true
			for _, v := range vals {
				items = append(items, indexed{idx: -1, val: v})
			}
			continue
		}

		m := indexedKey.FindStringSubmatch(key)
		if m == nil || m[1] != name {
			continue
		}
		present = true
		idx := -1
		if m[2] != "" {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				// too large for int: still after every index that parsed
				n = math.MaxInt
			}
			idx = n
		}
		for _, v := range vals {
			items = append(items, indexed{idx: idx, val: v})
		}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].idx < items[j].idx })

	for _, it := range items {
		if v := strings.TrimSpace(it.val); v != "" {
			out = append(out, v)
		}
	}
	return out, present
}

// trimForm trims every text field and reports those that become blank.
func trimForm(f *HotelForm) []validator.FieldError {
	var errs []validator.FieldError
	for _, field := range []struct {
		name string
		val  *string
	}{
		{"name", &f.Name},
		{"city", &f.City},
		{"country", &f.Country},
		{"description", &f.Description},
		{"type", &f.Type},
	} {
		*field.val = strings.TrimSpace(*field.val)
		if *field.val == "" {
			errs = append(errs, validator.FieldError{Field: field.name, Message: field.name + " is required"})
		}
	}
	return errs
}

func validateFacilities(facilities []string) []validator.FieldError {
	if len(facilities) == 0 {
		return []validator.FieldError{{Field: "facilities", Message: "Facilities are required"}}
	}
	return nil
}

// validateImages checks new uploads plus retained URLs. minTotal is the
// number of images the hotel must end up with.
func validateImages(files []*multipart.FileHeader, retained []string, minTotal int) []validator.FieldError {
	var errs []validator.FieldError

	total := len(files) + len(retained)
	switch {
	case total < minTotal:
		errs = append(errs, validator.FieldError{Field: "imageFiles", Message: "At least one image is required"})
	case len(files) > MaxImages:
		errs = append(errs, validator.FieldError{Field: "imageFiles", Message: fmt.Sprintf("imageFiles must contain at most %d item(s)", MaxImages)})
	}

	for _, fh := range files {
		if err := cloudinary.ValidateImageFile(fh); err != nil {
			errs = append(errs, validator.FieldError{Field: "imageFiles", Message: err.Error()})
		}
	}

	for _, u := range retained {
		if !validator.IsValidURL(u) {
			errs = append(errs, validator.FieldError{Field: "imageUrls", Message: "imageUrls must contain valid URLs"})
			break
		}
	}

	return errs
}
