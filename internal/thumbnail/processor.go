package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"files-manager/internal/models"
	"files-manager/internal/queue"
)

// Sizes are the generated thumbnail widths.
var Sizes = []int{100, 250, 500}

type FileFinder interface {
	FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.File, error)
}

type BlobStore interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Exists(name string) bool
}

// Generator derives resized variants of uploaded images. Reprocessing a
// job overwrites the same derived blobs, so redelivery is safe.
type Generator struct {
	files  FileFinder
	blobs  BlobStore
	logger *zap.SugaredLogger
}

func NewGenerator(files FileFinder, blobs BlobStore, logger *zap.SugaredLogger) *Generator {
	return &Generator{files: files, blobs: blobs, logger: logger}
}

// Process runs the worker algorithm for one job. Errors are permanent
// failures; a failure on one size does not roll back earlier sizes.
func (g *Generator) Process(ctx context.Context, job queue.ThumbnailJob) error {
	if job.FileID == "" {
		return errors.New("Missing fileId")
	}
	if job.UserID == "" {
		return errors.New("Missing userId")
	}
	fileID, err := primitive.ObjectIDFromHex(job.FileID)
	if err != nil {
		return errors.New("File not found")
	}
	userID, err := primitive.ObjectIDFromHex(job.UserID)
	if err != nil {
		return errors.New("File not found")
	}

	f, err := g.files.FindOwned(ctx, fileID, userID)
	if err != nil {
		return errors.New("File not found")
	}
	if f.Type != models.TypeImage {
		return errors.New("Not an image file")
	}
	if f.LocalPath == "" || !g.blobs.Exists(f.LocalPath) {
		return errors.New("File not found")
	}

	data, err := g.blobs.Read(f.LocalPath)
	if err != nil {
		return err
	}
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	format := encodeFormat(f.Name)
	for _, size := range Sizes {
		if err := g.writeVariant(src, f.LocalPath, size, format); err != nil {
			g.logger.Errorf("thumbnail %s size=%d: %v", f.LocalPath, size, err)
		}
	}
	return nil
}

func (g *Generator) writeVariant(src image.Image, name string, size int, format imaging.Format) error {
	thumb := imaging.Resize(src, size, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format); err != nil {
		return err
	}
	return g.blobs.Write(fmt.Sprintf("%s_%d", name, size), buf.Bytes())
}

// encodeFormat picks the output format from the uploaded filename's
// extension, falling back to PNG for anything unrecognized.
func encodeFormat(filename string) imaging.Format {
	f, err := imaging.FormatFromExtension(filepath.Ext(filename))
	if err != nil {
		return imaging.PNG
	}
	return f
}
