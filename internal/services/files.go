package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"files-manager/internal/apperr"
	"files-manager/internal/models"
	"files-manager/internal/queue"
	"files-manager/internal/repository"
)

// TokenResolver maps a session token to its owning user id.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

type FileRepository interface {
	Insert(ctx context.Context, f *models.File) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.File, error)
	FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.File, error)
	List(ctx context.Context, userID, parentID primitive.ObjectID, page int64) ([]*models.File, error)
	SetPublic(ctx context.Context, id, userID primitive.ObjectID, isPublic bool) (*models.File, error)
}

type BlobStore interface {
	Write(name string, data []byte) error
	Read(name string) ([]byte, error)
	Exists(name string) bool
}

type JobQueue interface {
	Enqueue(ctx context.Context, job queue.ThumbnailJob) error
}

var thumbnailSizes = map[int]bool{100: true, 250: true, 500: true}

// FileService enforces ownership and visibility over file entries and
// drives the upload path: blob write, metadata insert, thumbnail enqueue.
type FileService struct {
	tokens TokenResolver
	repo   FileRepository
	blobs  BlobStore
	jobs   JobQueue
	logger *zap.SugaredLogger
}

func NewFileService(tokens TokenResolver, repo FileRepository, blobs BlobStore, jobs JobQueue, logger *zap.SugaredLogger) *FileService {
	return &FileService{tokens: tokens, repo: repo, blobs: blobs, jobs: jobs, logger: logger}
}

type UploadInput struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"` // base64, absent for folders
}

// Upload validates and creates a file entry. The blob is written before
// the metadata insert; if the blob write fails nothing is inserted. The
// two writes are not transactional, so a crash in between can orphan a
// blob.
func (s *FileService) Upload(ctx context.Context, tok string, in UploadInput) (*models.File, error) {
	userID, err := s.resolveUser(ctx, tok)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, apperr.InvalidArgument("Missing name")
	}
	if !models.ValidType(in.Type) {
		return nil, apperr.InvalidArgument("Missing type")
	}
	if in.Type != models.TypeFolder && in.Data == "" {
		return nil, apperr.InvalidArgument("Missing data")
	}

	parentID, err := parseParentID(in.ParentID)
	if err != nil {
		return nil, err
	}
	if !parentID.IsZero() {
		parent, err := s.repo.FindByID(ctx, parentID)
		if errors.Is(err, repository.ErrFileNotFound) {
			return nil, apperr.NotFound("Parent not found")
		}
		if err != nil {
			s.logger.Errorf("parent lookup: %v", err)
			return nil, apperr.Storage("file lookup failed")
		}
		if parent.Type != models.TypeFolder {
			return nil, apperr.InvalidArgument("Parent is not a folder")
		}
	}

	f := &models.File{
		UserID:   userID,
		Name:     in.Name,
		Type:     in.Type,
		ParentID: parentID,
		IsPublic: in.IsPublic,
	}

	if in.Type != models.TypeFolder {
		content, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return nil, apperr.InvalidArgument("Invalid data")
		}
		blobName := uuid.NewString()
		if err := s.blobs.Write(blobName, content); err != nil {
			s.logger.Errorf("blob write %s: %v", blobName, err)
			return nil, apperr.Storage("file write failed")
		}
		f.LocalPath = blobName
	}

	if err := s.repo.Insert(ctx, f); err != nil {
		s.logger.Errorf("file insert: %v", err)
		return nil, apperr.Storage("file insert failed")
	}

	if f.Type == models.TypeImage {
		job := queue.ThumbnailJob{FileID: f.ID.Hex(), UserID: userID.Hex()}
		if err := s.jobs.Enqueue(ctx, job); err != nil {
			// best effort, the upload already succeeded
			s.logger.Warnf("enqueue thumbnail job fileId=%s: %v", job.FileID, err)
		}
	}
	return f, nil
}

// Show returns an entry owned by the caller.
func (s *FileService) Show(ctx context.Context, tok, id string) (*models.File, error) {
	userID, err := s.resolveUser(ctx, tok)
	if err != nil {
		return nil, err
	}
	fileID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	f, err := s.repo.FindOwned(ctx, fileID, userID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil, apperr.NotFound("Not found")
	}
	if err != nil {
		s.logger.Errorf("file lookup: %v", err)
		return nil, apperr.Storage("file lookup failed")
	}
	return f, nil
}

// List returns the caller's entries under parentID, 20 per page in
// insertion order. An empty page is not an error.
func (s *FileService) List(ctx context.Context, tok, parentID string, page int64) ([]*models.File, error) {
	userID, err := s.resolveUser(ctx, tok)
	if err != nil {
		return nil, err
	}
	parent, err := parseParentID(parentID)
	if err != nil {
		return nil, err
	}
	if page < 0 {
		page = 0
	}
	out, err := s.repo.List(ctx, userID, parent, page)
	if err != nil {
		s.logger.Errorf("file list: %v", err)
		return nil, apperr.Storage("file list failed")
	}
	return out, nil
}

// SetVisibility publishes or unpublishes an owned entry as one atomic
// conditional update. Repeating the same call is idempotent.
func (s *FileService) SetVisibility(ctx context.Context, tok, id string, isPublic bool) (*models.File, error) {
	userID, err := s.resolveUser(ctx, tok)
	if err != nil {
		return nil, err
	}
	fileID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	f, err := s.repo.SetPublic(ctx, fileID, userID, isPublic)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil, apperr.NotFound("Not found")
	}
	if err != nil {
		s.logger.Errorf("visibility update: %v", err)
		return nil, apperr.Storage("file update failed")
	}
	return f, nil
}

// FetchContent returns blob bytes plus the MIME type inferred from the
// entry's name. A non-owner asking for a private entry gets the same
// NotFound as a missing entry, so existence never leaks. Thumbnails are
// never generated here; until the worker has run, a size lookup is
// simply NotFound.
func (s *FileService) FetchContent(ctx context.Context, tok, id, sizeArg string) ([]byte, string, error) {
	size, err := parseSize(sizeArg)
	if err != nil {
		return nil, "", err
	}
	fileID, err := parseID(id)
	if err != nil {
		return nil, "", err
	}

	f, err := s.repo.FindByID(ctx, fileID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return nil, "", apperr.NotFound("Not found")
	}
	if err != nil {
		s.logger.Errorf("file lookup: %v", err)
		return nil, "", apperr.Storage("file lookup failed")
	}

	if tok == "" {
		if !f.IsPublic {
			return nil, "", apperr.NotFound("Not found")
		}
	} else {
		userID, err := s.resolveUser(ctx, tok)
		if err != nil {
			return nil, "", err
		}
		if f.UserID != userID && !f.IsPublic {
			return nil, "", apperr.NotFound("Not found")
		}
	}

	if f.Type == models.TypeFolder {
		return nil, "", apperr.InvalidOperation("A folder doesn't have content")
	}

	blobName := f.LocalPath
	if size != 0 {
		blobName = fmt.Sprintf("%s_%d", blobName, size)
	}
	if blobName == "" || !s.blobs.Exists(blobName) {
		return nil, "", apperr.NotFound("Not found")
	}
	data, err := s.blobs.Read(blobName)
	if err != nil {
		s.logger.Errorf("blob read %s: %v", blobName, err)
		return nil, "", apperr.Storage("file read failed")
	}
	return data, MimeType(f.Name), nil
}

func (s *FileService) resolveUser(ctx context.Context, tok string) (primitive.ObjectID, error) {
	if tok == "" {
		return primitive.NilObjectID, apperr.Unauthenticated()
	}
	raw, err := s.tokens.Resolve(ctx, tok)
	if err != nil {
		return primitive.NilObjectID, err
	}
	userID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.Unauthenticated()
	}
	return userID, nil
}

// MimeType infers a content type from a filename extension, defaulting
// to application/octet-stream.
func MimeType(filename string) string {
	if mt := mime.TypeByExtension(filepath.Ext(filename)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidArgument("Invalid id")
	}
	return oid, nil
}

// parseParentID accepts the root sentinel ("", "0") or an entry id.
func parseParentID(id string) (primitive.ObjectID, error) {
	if id == "" || id == "0" {
		return primitive.NilObjectID, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidArgument("Invalid parentId")
	}
	return oid, nil
}

func parseSize(arg string) (int, error) {
	if arg == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || !thumbnailSizes[n] {
		return 0, apperr.InvalidArgument("Invalid size")
	}
	return n, nil
}
