package myhotels

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/gohotels/internal/middleware"
	"github.com/xyz-asif/gohotels/internal/pkg/response"
	"github.com/xyz-asif/gohotels/internal/pkg/validator"
)

// Handler handles HTTP requests for the owner's hotels
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type parsedForm struct {
	form     HotelForm
	facility []string
	files    []*multipart.FileHeader
	retained []string
}

// parseForm binds and validates the multipart hotel form. It writes the
// error response itself and returns false on failure.
func parseForm(c *gin.Context, requireImages bool) (*parsedForm, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestSize)

	var form HotelForm
	if err := c.ShouldBind(&form); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, http.StatusRequestEntityTooLarge, "Request too large", "PAYLOAD_TOO_LARGE")
			return nil, false
		}
		response.BindError(c, err)
		return nil, false
	}

	mf := c.Request.MultipartForm
	if mf == nil {
		response.BadRequest(c, "multipart/form-data body required", "INVALID_REQUEST")
		return nil, false
	}

	p := &parsedForm{form: form, files: mf.File["imageFiles"]}
	p.facility, _ = formArray(mf.Value, "facilities")

	if retained, present := formArray(mf.Value, "imageUrls"); present {
		p.retained = retained
		if p.retained == nil {
			p.retained = []string{}
		}
	}

	minImages := 0
	if requireImages || p.retained != nil {
		minImages = 1
	}

	var fieldErrs []validator.FieldError
	fieldErrs = append(fieldErrs, trimForm(&p.form)...)
	fieldErrs = append(fieldErrs, validateFacilities(p.facility)...)
	fieldErrs = append(fieldErrs, validateImages(p.files, p.retained, minImages)...)
	if len(fieldErrs) > 0 {
		response.ValidationFailed(c, fieldErrs)
		return nil, false
	}

	return p, true
}

// Create godoc
// @Summary Create a hotel
// @Description Creates a hotel owned by the caller; 1 to 6 images of at most 5MB each
// @Tags my-hotels
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param city formData string true "City"
// @Param country formData string true "Country"
// @Param description formData string true "Description"
// @Param type formData string true "Hotel type"
// @Param pricePerNight formData number true "Price per night"
// @Param starRating formData int true "Star rating (1-5)"
// @Param adultCount formData int true "Adult capacity"
// @Param childCount formData int false "Child capacity"
// @Param facilities formData []string true "Facilities" collectionFormat(multi)
// @Param imageFiles formData file true "Images"
// @Success 201 {object} hotels.Hotel
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /my-hotels [post]
func (h *Handler) Create(c *gin.Context) {
	p, ok := parseForm(c, true)
	if !ok {
		return
	}

	hotel, err := h.service.Create(c.Request.Context(), middleware.UserID(c), p.form.Details(p.facility), p.files)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, hotel)
}

// List godoc
// @Summary List my hotels
// @Tags my-hotels
// @Produce json
// @Success 200 {array} hotels.Hotel
// @Failure 401 {object} response.ErrorResponse
// @Router /my-hotels [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, list)
}

// Get godoc
// @Summary Get one of my hotels
// @Tags my-hotels
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} hotels.Hotel
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /my-hotels/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	hotel, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err, "Hotel not found")
		return
	}

	response.Success(c, hotel)
}

// Update godoc
// @Summary Update one of my hotels
// @Description New uploads are placed before the retained imageUrls. Without imageUrls every stored image is kept.
// @Tags my-hotels
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Hotel ID"
// @Param imageUrls formData []string false "Image URLs to keep" collectionFormat(multi)
// @Param imageFiles formData file false "New images"
// @Success 200 {object} hotels.Hotel
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /my-hotels/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	p, ok := parseForm(c, false)
	if !ok {
		return
	}

	hotel, err := h.service.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c),
		p.form.Details(p.facility), p.files, p.retained)
	if err != nil {
		response.FromError(c, err, "Hotel not found")
		return
	}

	response.Success(c, hotel)
}
