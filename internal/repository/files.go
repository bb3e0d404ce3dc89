package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"files-manager/internal/models"
)

var ErrFileNotFound = errors.New("file not found")

// PageSize is the fixed listing page length.
const PageSize = 20

type FileRepo struct {
	col *mongo.Collection
}

func NewFileRepo(db *mongo.Database) *FileRepo {
	col := db.Collection("files")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "parentId", Value: 1}},
	})
	return &FileRepo{col: col}
}

func (r *FileRepo) Insert(ctx context.Context, f *models.File) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, f)
	if err != nil {
		return err
	}
	f.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID looks an entry up regardless of owner.
func (r *FileRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.File, error) {
	var f models.File
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindOwned looks an entry up scoped to its owner.
func (r *FileRepo) FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.File, error) {
	var f models.File
	err := r.col.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns the owner's entries under parentID in insertion order,
// skipping page*PageSize records. An out-of-range page yields an empty
// slice, not an error.
func (r *FileRepo) List(ctx context.Context, userID, parentID primitive.ObjectID, page int64) ([]*models.File, error) {
	filter := bson.M{"userId": userID, "parentId": parentID}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(page * PageSize).
		SetLimit(PageSize)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.File{}
	for cur.Next(ctx) {
		var f models.File
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, cur.Err()
}

// SetPublic flips the visibility flag in a single conditional update
// keyed by id+owner and returns the updated record. No in-process lock
// is taken; the store's atomic update prevents lost writes.
func (r *FileRepo) SetPublic(ctx context.Context, id, userID primitive.ObjectID, isPublic bool) (*models.File, error) {
	var f models.File
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"isPublic": isPublic}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FileRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
