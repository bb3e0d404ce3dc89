package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// ValidType reports whether t is one of the accepted file kinds.
func ValidType(t string) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

// File is a metadata record in the files collection. LocalPath points at
// the blob on disk and is empty for folders; it is never exposed over HTTP.
type File struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	ParentID  primitive.ObjectID `bson:"parentId"`
	IsPublic  bool               `bson:"isPublic"`
	LocalPath string             `bson:"localPath,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type FileResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

// Response shapes the record for the API. The root parent renders as "0".
func (f *File) Response() FileResponse {
	parent := "0"
	if !f.ParentID.IsZero() {
		parent = f.ParentID.Hex()
	}
	return FileResponse{
		ID:       f.ID.Hex(),
		UserID:   f.UserID.Hex(),
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: parent,
	}
}
