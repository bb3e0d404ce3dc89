package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"` // sha1 hex digest
	CreatedAt time.Time          `bson:"createdAt"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) Response() UserResponse {
	return UserResponse{ID: u.ID.Hex(), Email: u.Email}
}
