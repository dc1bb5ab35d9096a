package bookings_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/gohotels/internal/features/bookings"
	"github.com/xyz-asif/gohotels/internal/features/hotels"
	"github.com/xyz-asif/gohotels/internal/mock"
	"github.com/xyz-asif/gohotels/internal/pkg/payment"
	"github.com/xyz-asif/gohotels/internal/pkg/token"
	"github.com/xyz-asif/gohotels/internal/pkg/validator"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
	"go.uber.org/mock/gomock"
)

type harness struct {
	router    *gin.Engine
	store     *mock.MockStore
	processor *mock.MockProcessor
	cookie    *http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	processor := mock.NewMockProcessor(ctrl)

	issuer := token.NewIssuer(token.DefaultConfig("test-secret"))
	tok, _, err := issuer.Issue(userID)
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api")
	hotelsGroup := api.Group("/hotels")
	svc := bookings.NewService(store, processor, bookings.Options{VerifyPayments: true})
	bookings.RegisterRoutes(api, hotelsGroup, svc, issuer)

	return &harness{
		router:    r,
		store:     store,
		processor: processor,
		cookie:    &http.Cookie{Name: token.CookieName, Value: tok},
	}
}

func (h *harness) post(path, body string, authed bool) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.AddCookie(h.cookie)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

const bookingJSON = `{
	"firstName":"Test","lastName":"User","email":"test@test.com",
	"adultCount":2,"childCount":0,
	"checkIn":"2024-05-01T00:00:00.000Z","checkOut":"2024-05-04T00:00:00.000Z",
	"hotelId":"65f0000000000000000000aa","paymentIntentId":"pi_123","totalCost":2310
}`

func TestPaymentIntentEndpoint(t *testing.T) {
	h := newHarness(t)

	h.store.EXPECT().GetByID(gomock.Any(), hotelID).Return(&hotels.Hotel{PricePerNight: 770}, nil)
	h.processor.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
		Return(&payment.Intent{ID: "pi_123", ClientSecret: "secret"}, nil)

	w, body := h.post("/api/hotels/"+hotelID+"/bookings/payment-intent", `{"numberOfNights":3}`, true)
	require.Equal(t, 200, w.Code, w.Body.String())
	require.Equal(t, "pi_123", body["paymentIntentId"])
	require.Equal(t, "secret", body["clientSecret"])
	require.Equal(t, float64(2310), body["totalCost"])
}

func TestPaymentIntentEndpoint_Validation(t *testing.T) {
	h := newHarness(t)

	w, body := h.post("/api/hotels/"+hotelID+"/bookings/payment-intent", `{"numberOfNights":0}`, true)
	require.Equal(t, 400, w.Code)
	require.Equal(t, "numberOfNights", body["errors"].([]any)[0].(map[string]any)["field"])
}

func TestPaymentIntentEndpoint_Unauthenticated(t *testing.T) {
	h := newHarness(t)

	w, body := h.post("/api/hotels/"+hotelID+"/bookings/payment-intent", `{"numberOfNights":3}`, false)
	require.Equal(t, 401, w.Code)
	require.Equal(t, "unauthorized", body["message"])
}

func TestConfirmBookingEndpoint_Verified(t *testing.T) {
	h := newHarness(t)

	h.processor.EXPECT().GetIntent(gomock.Any(), "pi_123").Return(&payment.Intent{
		ID:       "pi_123",
		Amount:   231000,
		Status:   payment.StatusSucceeded,
		Metadata: map[string]string{"hotelId": hotelID, "userId": userID},
	}, nil)
	h.store.EXPECT().AddBooking(gomock.Any(), hotelID, gomock.Any()).Return(nil)

	w, body := h.post("/api/hotels/"+hotelID+"/bookings", bookingJSON, true)
	require.Equal(t, 200, w.Code, w.Body.String())
	require.Equal(t, userID, body["userId"])
}

func TestConfirmBookingEndpoint_NotPaid(t *testing.T) {
	h := newHarness(t)

	h.processor.EXPECT().GetIntent(gomock.Any(), "pi_123").Return(&payment.Intent{
		ID:       "pi_123",
		Status:   "processing",
		Metadata: map[string]string{"hotelId": hotelID, "userId": userID},
	}, nil)

	w, body := h.post("/api/hotels/"+hotelID+"/bookings", bookingJSON, true)
	require.Equal(t, 400, w.Code)
	require.Equal(t, "Payment not verified", body["message"])
}

func TestConfirmBookingEndpoint_Duplicate(t *testing.T) {
	h := newHarness(t)

	h.processor.EXPECT().GetIntent(gomock.Any(), "pi_123").Return(&payment.Intent{
		ID:       "pi_123",
		Amount:   231000,
		Status:   payment.StatusSucceeded,
		Metadata: map[string]string{"hotelId": hotelID, "userId": userID},
	}, nil)
	h.store.EXPECT().AddBooking(gomock.Any(), hotelID, gomock.Any()).Return(apperrors.ErrDuplicate)

	w, body := h.post("/api/hotels/"+hotelID+"/bookings", bookingJSON, true)
	require.Equal(t, 400, w.Code)
	require.Equal(t, "Booking already exists for this payment", body["message"])
}

func TestConfirmBookingEndpoint_CheckOutBeforeCheckIn(t *testing.T) {
	h := newHarness(t)

	body := strings.Replace(bookingJSON, `"checkOut":"2024-05-04T00:00:00.000Z"`, `"checkOut":"2024-04-28T00:00:00.000Z"`, 1)
	w, out := h.post("/api/hotels/"+hotelID+"/bookings", body, true)
	require.Equal(t, 400, w.Code)
	require.Equal(t, "checkOut", out["errors"].([]any)[0].(map[string]any)["field"])
}

func TestMyBookingsEndpoint(t *testing.T) {
	h := newHarness(t)
	h.store.EXPECT().ListBookedByUser(gomock.Any(), userID).Return([]hotels.Hotel{
		{Name: "A", Bookings: []hotels.Booking{{UserID: userID}}},
	}, nil)

	req := httptest.NewRequest("GET", "/api/my-bookings", nil)
	req.AddCookie(h.cookie)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Len(t, list[0]["bookings"], 1)
}

func TestConfirmBookingEndpoint_UnknownIntent(t *testing.T) {
	h := newHarness(t)

	h.processor.EXPECT().GetIntent(gomock.Any(), "pi_123").
		Return(nil, fmt.Errorf("%w: payment intent pi_123: resource_missing", apperrors.ErrPaymentNotVerified))

	w, body := h.post("/api/hotels/"+hotelID+"/bookings", bookingJSON, true)
	require.Equal(t, 400, w.Code)
	require.Equal(t, "Payment not verified", body["message"])
	require.Equal(t, "PAYMENT_NOT_VERIFIED", body["code"])
}
