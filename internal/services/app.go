package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"files-manager/internal/repository"
)

// AppService answers the liveness and stats endpoints.
type AppService struct {
	rdb   *redis.Client
	mc    *mongo.Client
	users *repository.UserRepo
	files *repository.FileRepo
}

func NewAppService(rdb *redis.Client, mc *mongo.Client, users *repository.UserRepo, files *repository.FileRepo) *AppService {
	return &AppService{rdb: rdb, mc: mc, users: users, files: files}
}

func (s *AppService) Status(ctx context.Context) (redisAlive, dbAlive bool) {
	redisAlive = s.rdb.Ping(ctx).Err() == nil
	dbAlive = s.mc.Ping(ctx, nil) == nil
	return redisAlive, dbAlive
}

func (s *AppService) Stats(ctx context.Context) (users, files int64, err error) {
	if users, err = s.users.Count(ctx); err != nil {
		return 0, 0, err
	}
	if files, err = s.files.Count(ctx); err != nil {
		return 0, 0, err
	}
	return users, files, nil
}
