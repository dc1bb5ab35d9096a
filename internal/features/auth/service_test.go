package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// memoryStore is an in-memory UserStore with the same unique-email rule as the users collection.
type memoryStore struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]*User
	hashed  int
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{byID: map[primitive.ObjectID]*User{}}
}

func (m *memoryStore) Save(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	if user.PasswordChanged() {
		m.hashed++
	}
	if err := user.preparePassword(bcrypt.MinCost); err != nil {
		return err
	}

	for id, u := range m.byID {
		if u.Email == user.Email && id != user.ID {
			return apperrors.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memoryStore) GetByID(_ context.Context, userID string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	u, ok := m.byID[oid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func testRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:     "test@test.com",
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store)

	user, err := svc.Register(context.Background(), testRegisterRequest())
	require.NoError(t, err)
	require.False(t, user.ID.IsZero())
	require.NotEqual(t, "password123", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	require.Equal(t, 1, store.hashed)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newMemoryStore())

	_, err := svc.Register(context.Background(), testRegisterRequest())
	require.NoError(t, err)

	req := testRegisterRequest()
	req.Email = "  TEST@test.com "
	_, err = svc.Register(context.Background(), req)
	require.True(t, errors.Is(err, apperrors.ErrDuplicate))
}

func TestRegister_StoreRaceMapsToDuplicate(t *testing.T) {
	store := newMemoryStore()
	store.saveErr = apperrors.ErrDuplicate
	svc := NewService(store)

	_, err := svc.Register(context.Background(), testRegisterRequest())
	require.True(t, errors.Is(err, apperrors.ErrDuplicate))
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newMemoryStore())
	registered, err := svc.Register(context.Background(), testRegisterRequest())
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "test@test.com", "password123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(context.Background(), "test@test.com", "wrong-password")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@test.com", "password123")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestSaveWithoutPasswordChangeKeepsHash(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store)
	user, err := svc.Register(context.Background(), testRegisterRequest())
	require.NoError(t, err)
	hash := user.Password

	user.FirstName = "Renamed"
	require.NoError(t, store.Save(context.Background(), user))
	require.Equal(t, hash, user.Password)
	require.Equal(t, 1, store.hashed)
}

func TestValidateRegister(t *testing.T) {
	req := RegisterRequest{Email: " A@B.COM ", FirstName: "  ", LastName: "x"}
	require.Error(t, ValidateRegister(&req))
	require.Equal(t, "a@b.com", req.Email)

	req = RegisterRequest{Email: "a@b.com", FirstName: " Ann ", LastName: " Lee "}
	require.NoError(t, ValidateRegister(&req))
	require.Equal(t, "Ann", req.FirstName)
	require.Equal(t, "Lee", req.LastName)
}
