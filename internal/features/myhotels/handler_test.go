package myhotels_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/gohotels/internal/features/hotels"
	"github.com/xyz-asif/gohotels/internal/features/myhotels"
	"github.com/xyz-asif/gohotels/internal/mock"
	"github.com/xyz-asif/gohotels/internal/pkg/token"
	"github.com/xyz-asif/gohotels/internal/pkg/validator"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

const ownerID = "65f000000000000000000001"

type fixture struct {
	router   *gin.Engine
	store    *mock.MockStore
	uploader *mock.MockImageUploader
	cookie   *http.Cookie
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	uploader := mock.NewMockImageUploader(ctrl)

	issuer := token.NewIssuer(token.DefaultConfig("test-secret"))
	tok, _, err := issuer.Issue(ownerID)
	require.NoError(t, err)

	r := gin.New()
	myhotels.RegisterRoutes(r.Group("/api"), store, uploader, issuer)

	return &fixture{
		router:   r,
		store:    store,
		uploader: uploader,
		cookie:   &http.Cookie{Name: token.CookieName, Value: tok},
	}
}

type part struct {
	key, value string
}

func multipartBody(t *testing.T, fields []part, files map[string]int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range fields {
		require.NoError(t, w.WriteField(f.key, f.value))
	}
	for name, size := range files {
		fw, err := w.CreateFormFile("imageFiles", name)
		require.NoError(t, err)
		_, err = fw.Write(bytes.Repeat([]byte{0xff}, size))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func validFields() []part {
	return []part{
		{"name", "Test Hotel"},
		{"city", "Test City"},
		{"country", "Test Country"},
		{"description", "Lorem ipsum"},
		{"type", "Budget"},
		{"pricePerNight", "100"},
		{"starRating", "3"},
		{"adultCount", "2"},
		{"childCount", "4"},
		{"facilities[0]", "Free WiFi"},
		{"facilities[1]", "Parking"},
	}
}

func (f *fixture) send(t *testing.T, method, path string, fields []part, files map[string]int) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	body, contentType := multipartBody(t, fields, files)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(f.cookie)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)

	f.uploader.EXPECT().UploadImages(gomock.Any(), gomock.Len(2)).
		Return([]string{"https://img/1.jpg", "https://img/2.jpg"}, nil)
	f.store.EXPECT().Create(gomock.Any(), gomock.Any(), ownerID).DoAndReturn(
		func(_ context.Context, h *hotels.Hotel, owner string) error {
			require.Equal(t, "Test Hotel", h.Name)
			require.Equal(t, []string{"Free WiFi", "Parking"}, h.Facilities)
			require.Equal(t, 100.0, h.PricePerNight)
			require.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, h.ImageURLs)
			h.ID = primitive.NewObjectID()
			h.UserID = owner
			return nil
		})

	w, body := f.send(t, "POST", "/api/my-hotels", validFields(), map[string]int{"a.jpg": 100, "b.png": 100})
	require.Equal(t, 201, w.Code, w.Body.String())
	require.Equal(t, "Test Hotel", body["name"])
	require.Equal(t, ownerID, body["userId"])
}

func TestCreate_ValidationErrors(t *testing.T) {
	f := newFixture(t)

	fields := []part{
		{"name", "Test Hotel"},
		{"city", "Test City"},
		{"country", "Test Country"},
		{"description", "Lorem ipsum"},
		{"type", "Budget"},
		{"pricePerNight", "100"},
		{"starRating", "3"},
		{"adultCount", "2"},
	}

	w, body := f.send(t, "POST", "/api/my-hotels", fields, nil)
	require.Equal(t, 400, w.Code)

	got := map[string]bool{}
	for _, e := range body["errors"].([]any) {
		got[e.(map[string]any)["field"].(string)] = true
	}
	require.True(t, got["facilities"])
	require.True(t, got["imageFiles"])
}

func TestCreate_StarRatingOutOfRange(t *testing.T) {
	f := newFixture(t)

	fields := validFields()
	fields[6] = part{"starRating", "6"}

	w, body := f.send(t, "POST", "/api/my-hotels", fields, map[string]int{"a.jpg": 10})
	require.Equal(t, 400, w.Code)
	require.Equal(t, "starRating", body["errors"].([]any)[0].(map[string]any)["field"])
}

func TestCreate_TooManyImages(t *testing.T) {
	f := newFixture(t)

	files := map[string]int{}
	for i := 0; i < 7; i++ {
		files[fmt.Sprintf("%d.jpg", i)] = 10
	}

	w, _ := f.send(t, "POST", "/api/my-hotels", validFields(), files)
	require.Equal(t, 400, w.Code)
}

func TestCreate_UploadFailureIs500(t *testing.T) {
	f := newFixture(t)
	f.uploader.EXPECT().UploadImages(gomock.Any(), gomock.Any()).Return(nil, errors.New("cloudinary down"))

	w, body := f.send(t, "POST", "/api/my-hotels", validFields(), map[string]int{"a.jpg": 10})
	require.Equal(t, 500, w.Code)
	require.Equal(t, "Something went wrong", body["message"])
}

func TestCreate_RequiresSession(t *testing.T) {
	f := newFixture(t)

	body, contentType := multipartBody(t, validFields(), map[string]int{"a.jpg": 10})
	req := httptest.NewRequest("POST", "/api/my-hotels", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

func TestUpdate_NonOwnerIs404WithoutUpload(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().GetByIDForOwner(gomock.Any(), "65f0000000000000000000ff", ownerID).Return(nil, apperrors.ErrNotFound)

	w, body := f.send(t, "PUT", "/api/my-hotels/65f0000000000000000000ff", validFields(), map[string]int{"a.jpg": 10})
	require.Equal(t, 404, w.Code)
	require.Equal(t, "Hotel not found", body["message"])
}

func TestUpdate_RetainedImagesAfterNewOnes(t *testing.T) {
	f := newFixture(t)
	id := "65f0000000000000000000aa"

	fields := append(validFields(),
		part{"imageUrls[0]", "https://res.cloudinary.com/demo/old1.jpg"},
		part{"imageUrls[1]", "https://res.cloudinary.com/demo/old2.jpg"},
	)

	gomock.InOrder(
		f.store.EXPECT().GetByIDForOwner(gomock.Any(), id, ownerID).Return(&hotels.Hotel{}, nil),
		f.uploader.EXPECT().UploadImages(gomock.Any(), gomock.Len(1)).Return([]string{"https://img/new.jpg"}, nil),
		f.store.EXPECT().Update(gomock.Any(), id, ownerID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _ string, p hotels.Patch) (*hotels.Hotel, error) {
				require.Equal(t, []string{"https://img/new.jpg"}, p.NewImageURLs)
				require.Equal(t, []string{
					"https://res.cloudinary.com/demo/old1.jpg",
					"https://res.cloudinary.com/demo/old2.jpg",
				}, p.RetainedImageURLs)
				return &hotels.Hotel{Name: p.Details.Name, ImageURLs: append(p.NewImageURLs, p.RetainedImageURLs...)}, nil
			}),
	)

	w, body := f.send(t, "PUT", "/api/my-hotels/"+id, fields, map[string]int{"new.jpg": 10})
	require.Equal(t, 200, w.Code, w.Body.String())
	require.Len(t, body["imageUrls"], 3)
	require.Equal(t, "https://img/new.jpg", body["imageUrls"].([]any)[0])
}

func TestUpdate_WithoutImageFieldsKeepsExisting(t *testing.T) {
	f := newFixture(t)
	id := "65f0000000000000000000aa"

	f.store.EXPECT().GetByIDForOwner(gomock.Any(), id, ownerID).Return(&hotels.Hotel{}, nil)
	f.store.EXPECT().Update(gomock.Any(), id, ownerID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, p hotels.Patch) (*hotels.Hotel, error) {
			require.Nil(t, p.RetainedImageURLs)
			require.Empty(t, p.NewImageURLs)
			return &hotels.Hotel{Name: p.Details.Name}, nil
		})

	w, _ := f.send(t, "PUT", "/api/my-hotels/"+id, validFields(), nil)
	require.Equal(t, 200, w.Code, w.Body.String())
}

func TestListAndGet(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().ListByOwner(gomock.Any(), ownerID).Return([]hotels.Hotel{{Name: "Mine"}}, nil)
	f.store.EXPECT().GetByIDForOwner(gomock.Any(), "bad-id", ownerID).Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest("GET", "/api/my-hotels", nil)
	req.AddCookie(f.cookie)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, "Mine", list[0]["name"])

	req = httptest.NewRequest("GET", "/api/my-hotels/bad-id", nil)
	req.AddCookie(f.cookie)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, 404, w.Code)
}
