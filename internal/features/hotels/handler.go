package hotels

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/gohotels/internal/pkg/pagination"
	"github.com/xyz-asif/gohotels/internal/pkg/response"
	"github.com/xyz-asif/gohotels/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// Handler serves the public hotel endpoints
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List godoc
// @Summary List hotels
// @Description All hotels, most recently updated first
// @Tags hotels
// @Produce json
// @Success 200 {array} Hotel
// @Failure 500 {object} response.ErrorResponse
// @Router /hotels [get]
func (h *Handler) List(c *gin.Context) {
	hotels, err := h.store.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, hotels)
}

// Search godoc
// @Summary Search hotels
// @Description Filter, sort and paginate hotels (5 per page)
// @Tags hotels
// @Produce json
// @Param destination query string false "City, country or name"
// @Param adultCount query int false "Minimum adult capacity"
// @Param childCount query int false "Minimum child capacity"
// @Param facilities query []string false "Required facilities" collectionFormat(multi)
// @Param types query []string false "Hotel types" collectionFormat(multi)
// @Param stars query []int false "Star ratings" collectionFormat(multi)
// @Param maxPrice query number false "Maximum price per night"
// @Param sortOption query string false "starRating, pricePerNightAsc or pricePerNightDesc"
// @Param page query int false "1-indexed page"
// @Success 200 {object} response.PaginatedResponse{data=[]Hotel}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /hotels/search [get]
func (h *Handler) Search(c *gin.Context) {
	q, fieldErrs := ParseSearchQuery(c.Request.URL.Query())
	if len(fieldErrs) > 0 {
		response.ValidationFailed(c, fieldErrs)
		return
	}

	ctx, span := tracing.Tracer("hotels").Start(c.Request.Context(), "hotels.search")
	defer span.End()
	span.SetAttributes(
		attribute.String("search.destination", q.Destination),
		attribute.Int("search.page", q.Page),
	)

	hotels, total, err := h.store.Search(ctx, q)
	if err != nil {
		tracing.RecordError(span, err)
		response.FromError(c, err)
		return
	}
	span.SetAttributes(attribute.Int64("search.total", total))

	response.Paginated(c, hotels, pagination.New(q.Page, pagination.DefaultPageSize, total))
}

// GetByID godoc
// @Summary Get hotel
// @Tags hotels
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} Hotel
// @Failure 404 {object} response.ErrorResponse
// @Router /hotels/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	hotel, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "Hotel not found")
		return
	}

	response.Success(c, hotel)
}
