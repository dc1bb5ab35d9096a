package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// User represents a registered user in the system
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// plain text set through SetPassword, hashed on save
	pendingPassword string
}

// SetPassword marks the password as changed. The hash is computed when the user is saved.
func (u *User) SetPassword(plain string) {
	u.pendingPassword = plain
}

// PasswordChanged reports whether a new password is waiting to be hashed.
func (u *User) PasswordChanged() bool {
	return u.pendingPassword != ""
}

// preparePassword hashes a pending password into Password. Users without a
// pending change are left untouched.
func (u *User) preparePassword(cost int) error {
	if !u.PasswordChanged() {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.pendingPassword), cost)
	if err != nil {
		return err
	}

	u.Password = string(hash)
	u.pendingPassword = ""
	return nil
}

// RegisterRequest represents the payload for creating an account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"test@test.com"`
	Password  string `json:"password" binding:"required,min=6" example:"password123"`
	FirstName string `json:"firstName" binding:"required" example:"Test"`
	LastName  string `json:"lastName" binding:"required" example:"User"`
}

// LoginRequest represents the payload for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"test@test.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
}

// UserIDResponse is returned by login and token validation
type UserIDResponse struct {
	UserID string `json:"userId" example:"65f1c0ffee0000000000abcd"`
}
