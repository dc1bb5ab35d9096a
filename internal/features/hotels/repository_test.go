package hotels

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const ownerID = "65f000000000000000000001"

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newMockRepo(mt *mtest.T) *Repository {
	return &Repository{collection: mt.Coll, now: func() time.Time { return fixedNow }}
}

func ns(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

// nextCommand returns the next command sent to the mock deployment.
func nextCommand(mt *mtest.T, name string) bson.Raw {
	mt.Helper()
	ev := mt.GetStartedEvent()
	require.NotNil(mt, ev, "expected a %s command", name)
	require.Equal(mt, name, ev.CommandName)
	return ev.Command
}

func decodeM(t *testing.T, raw bson.Raw) bson.M {
	t.Helper()
	var out bson.M
	require.NoError(t, bson.Unmarshal(raw, &out))
	return out
}

func TestRepository_OwnerScoping(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	hotelID := primitive.NewObjectID()

	mt.Run("get for another owner is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		_, err := newMockRepo(mt).GetByIDForOwner(context.Background(), hotelID.Hex(), "someone-else")
		require.ErrorIs(mt, err, apperrors.ErrNotFound)

		filter := nextCommand(mt, "find").Lookup("filter").Document()
		require.Equal(mt, hotelID, filter.Lookup("_id").ObjectID())
		require.Equal(mt, "someone-else", filter.Lookup("userId").StringValue())
	})

	mt.Run("get for owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: hotelID},
			{Key: "userId", Value: ownerID},
			{Key: "name", Value: "Seaside"},
		}))

		hotel, err := newMockRepo(mt).GetByIDForOwner(context.Background(), hotelID.Hex(), ownerID)
		require.NoError(mt, err)
		require.Equal(mt, "Seaside", hotel.Name)
		require.Equal(mt, ownerID, hotel.UserID)
	})

	mt.Run("malformed id never reaches the server", func(mt *mtest.T) {
		_, err := newMockRepo(mt).GetByIDForOwner(context.Background(), "not-an-id", ownerID)
		require.ErrorIs(mt, err, apperrors.ErrNotFound)
		require.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("update by another owner is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := newMockRepo(mt).Update(context.Background(), hotelID.Hex(), "someone-else", Patch{
			Details: Details{Name: "Taken over"},
		})
		require.ErrorIs(mt, err, apperrors.ErrNotFound)

		cmd := nextCommand(mt, "findAndModify")
		query := cmd.Lookup("query").Document()
		require.Equal(mt, hotelID, query.Lookup("_id").ObjectID())
		require.Equal(mt, "someone-else", query.Lookup("userId").StringValue())

		_, isPipeline := cmd.Lookup("update").ArrayOK()
		require.True(mt, isPipeline)
		require.True(mt, cmd.Lookup("new").Boolean())
	})

	mt.Run("update by owner returns stored hotel", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: hotelID},
			{Key: "userId", Value: ownerID},
			{Key: "name", Value: "Renamed"},
			{Key: "imageUrls", Value: bson.A{"https://img/new.jpg", "https://img/old.jpg"}},
		}}))

		hotel, err := newMockRepo(mt).Update(context.Background(), hotelID.Hex(), ownerID, Patch{
			Details:      Details{Name: "Renamed"},
			NewImageURLs: []string{"https://img/new.jpg"},
		})
		require.NoError(mt, err)
		require.Equal(mt, "Renamed", hotel.Name)
		require.Equal(mt, []string{"https://img/new.jpg", "https://img/old.jpg"}, hotel.ImageURLs)
	})
}

func TestRepository_Search(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	q := SearchQuery{Destination: "Paris", AdultCount: 2, Page: 2}

	mt.Run("count and page share one filter", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int64(7)}}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "H6"}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "H7"}},
			),
		)

		list, total, err := newMockRepo(mt).Search(context.Background(), q)
		require.NoError(mt, err)
		require.Equal(mt, int64(7), total)
		require.Len(mt, list, 2)

		countStage := nextCommand(mt, "aggregate").Lookup("pipeline").Array().Index(0).Value().Document()
		countFilter := decodeM(mt.T, countStage.Lookup("$match").Document())

		find := nextCommand(mt, "find")
		findFilter := decodeM(mt.T, find.Lookup("filter").Document())

		require.Equal(mt, countFilter, findFilter)
		require.Contains(mt, findFilter, "$or")
		require.Contains(mt, findFilter, "adultCount")

		require.Equal(mt, int64(5), find.Lookup("skip").AsInt64())
		require.Equal(mt, int64(5), find.Lookup("limit").AsInt64())
		require.Equal(mt, int64(0), find.Lookup("projection", "bookings").AsInt64())
	})

	mt.Run("page past the end skips the find", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int64(7)}}))

		list, total, err := newMockRepo(mt).Search(context.Background(), SearchQuery{Page: 2000000000000000000})
		require.NoError(mt, err)
		require.Equal(mt, int64(7), total)
		require.Empty(mt, list)
		require.NotNil(mt, list)

		nextCommand(mt, "aggregate")
		require.Nil(mt, mt.GetStartedEvent())
	})
}

func TestRepository_AddBooking(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	hotelID := primitive.NewObjectID()
	booking := Booking{UserID: ownerID, PaymentIntentID: "pi_123", TotalCost: 2310}

	mt.Run("guards against a reused payment intent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, newMockRepo(mt).AddBooking(context.Background(), hotelID.Hex(), booking))

		update := nextCommand(mt, "update").Lookup("updates").Array().Index(0).Value().Document()
		filter := update.Lookup("q").Document()
		require.Equal(mt, hotelID, filter.Lookup("_id").ObjectID())
		require.Equal(mt, "pi_123", filter.Lookup("bookings.paymentIntentId", "$ne").StringValue())

		pushed := update.Lookup("u", "$push", "bookings").Document()
		require.Equal(mt, "pi_123", pushed.Lookup("paymentIntentId").StringValue())
		require.False(mt, pushed.Lookup("_id").ObjectID().IsZero())
	})

	mt.Run("no match on an existing hotel is a duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int64(1)}}),
		)

		err := newMockRepo(mt).AddBooking(context.Background(), hotelID.Hex(), booking)
		require.ErrorIs(mt, err, apperrors.ErrDuplicate)
	})

	mt.Run("no match on a missing hotel is not found", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch),
		)

		err := newMockRepo(mt).AddBooking(context.Background(), hotelID.Hex(), booking)
		require.ErrorIs(mt, err, apperrors.ErrNotFound)

		nextCommand(mt, "update")
		countStage := nextCommand(mt, "aggregate").Lookup("pipeline").Array().Index(0).Value().Document()
		require.Equal(mt, hotelID, countStage.Lookup("$match", "_id").ObjectID())
	})
}

func TestRepository_ListBookedByUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("keeps only the caller's bookings", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Seaside"},
			{Key: "bookings", Value: bson.A{
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "userId", Value: ownerID}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "userId", Value: "other"}},
			}},
		}))

		list, err := newMockRepo(mt).ListBookedByUser(context.Background(), ownerID)
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		require.Len(mt, list[0].Bookings, 1)
		require.Equal(mt, ownerID, list[0].Bookings[0].UserID)

		filter := nextCommand(mt, "find").Lookup("filter").Document()
		require.Equal(mt, ownerID, filter.Lookup("bookings", "$elemMatch", "userId").StringValue())
	})
}
