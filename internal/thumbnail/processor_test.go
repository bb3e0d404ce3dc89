package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"files-manager/internal/models"
	"files-manager/internal/queue"
	"files-manager/internal/repository"
	"files-manager/internal/storage"
)

type fakeFinder struct {
	file *models.File
}

func (f *fakeFinder) FindOwned(_ context.Context, id, userID primitive.ObjectID) (*models.File, error) {
	if f.file != nil && f.file.ID == id && f.file.UserID == userID {
		return f.file, nil
	}
	return nil, repository.ErrFileNotFound
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_GeneratesAllSizes(t *testing.T) {
	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	f := &models.File{
		ID:        primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
		Name:      "cat.png",
		Type:      models.TypeImage,
		LocalPath: "blob-cat",
	}
	require.NoError(t, blobs.Write(f.LocalPath, pngBytes(t, 640, 480)))

	gen := NewGenerator(&fakeFinder{file: f}, blobs, zap.NewNop().Sugar())
	err = gen.Process(context.Background(), queue.ThumbnailJob{
		FileID: f.ID.Hex(), UserID: f.UserID.Hex(),
	})
	require.NoError(t, err)

	for _, size := range Sizes {
		name := fmt.Sprintf("%s_%d", f.LocalPath, size)
		require.True(t, blobs.Exists(name), "missing variant %s", name)

		data, err := blobs.Read(name)
		require.NoError(t, err)
		thumb, err := imaging.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, size, thumb.Bounds().Dx())
		// aspect ratio preserved, allowing for rounding
		require.InDelta(t, float64(size)*480/640, float64(thumb.Bounds().Dy()), 1)
	}
}

func TestProcess_Reprocessing_Overwrites(t *testing.T) {
	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	f := &models.File{
		ID:        primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
		Name:      "cat.png",
		Type:      models.TypeImage,
		LocalPath: "blob-cat",
	}
	require.NoError(t, blobs.Write(f.LocalPath, pngBytes(t, 300, 300)))

	gen := NewGenerator(&fakeFinder{file: f}, blobs, zap.NewNop().Sugar())
	job := queue.ThumbnailJob{FileID: f.ID.Hex(), UserID: f.UserID.Hex()}

	require.NoError(t, gen.Process(context.Background(), job))
	first, err := blobs.Read(f.LocalPath + "_100")
	require.NoError(t, err)

	// redelivery just rewrites the same derived blobs
	require.NoError(t, gen.Process(context.Background(), job))
	second, err := blobs.Read(f.LocalPath + "_100")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestProcess_Failures(t *testing.T) {
	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	owned := &models.File{
		ID:        primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
		Name:      "doc.txt",
		Type:      models.TypeFile,
		LocalPath: "blob-doc",
	}

	gen := NewGenerator(&fakeFinder{file: owned}, blobs, zap.NewNop().Sugar())
	ctx := context.Background()

	testCases := []struct {
		name    string
		job     queue.ThumbnailJob
		wantMsg string
	}{
		{"missing fileId", queue.ThumbnailJob{UserID: owned.UserID.Hex()}, "Missing fileId"},
		{"missing userId", queue.ThumbnailJob{FileID: owned.ID.Hex()}, "Missing userId"},
		{"malformed fileId", queue.ThumbnailJob{FileID: "zzz", UserID: owned.UserID.Hex()}, "File not found"},
		{"unknown file", queue.ThumbnailJob{FileID: primitive.NewObjectID().Hex(), UserID: owned.UserID.Hex()}, "File not found"},
		{"wrong owner", queue.ThumbnailJob{FileID: owned.ID.Hex(), UserID: primitive.NewObjectID().Hex()}, "File not found"},
		{"not an image", queue.ThumbnailJob{FileID: owned.ID.Hex(), UserID: owned.UserID.Hex()}, "Not an image file"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := gen.Process(ctx, tc.job)
			require.EqualError(t, err, tc.wantMsg)
		})
	}
}

func TestProcess_SourceBlobMissing(t *testing.T) {
	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	f := &models.File{
		ID:        primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
		Name:      "cat.png",
		Type:      models.TypeImage,
		LocalPath: "blob-gone",
	}
	gen := NewGenerator(&fakeFinder{file: f}, blobs, zap.NewNop().Sugar())

	err = gen.Process(context.Background(), queue.ThumbnailJob{
		FileID: f.ID.Hex(), UserID: f.UserID.Hex(),
	})
	require.EqualError(t, err, "File not found")
}

func TestEncodeFormat(t *testing.T) {
	require.Equal(t, imaging.PNG, encodeFormat("cat.png"))
	require.Equal(t, imaging.JPEG, encodeFormat("photo.jpg"))
	require.Equal(t, imaging.PNG, encodeFormat("noext"))
}
