package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Turf=MockTurfService

import (
	"context"
	"fmt"
	"path"

	"turfbook/config"
	"turfbook/infras/otel"
	"turfbook/infras/s3"
	"turfbook/internal/domains/turf/model"
	"turfbook/internal/domains/turf/model/dto"
	"turfbook/internal/domains/turf/repository"
	"turfbook/shared"
	"turfbook/shared/cache"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"
	"turfbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetTurf    = "turf:get"
	cacheGetAllTurf = "turf:gets"
	cacheCountTurf  = "turf:count"

	imageDirectory = "turfs"
)

type Turf interface {
	Create(ctx context.Context, req dto.CreateTurfRequest, user string) (dto.TurfResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTurfsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.TurfResponse, error)
	Update(ctx context.Context, req dto.UpdateTurfRequest, id, user, role string) error
	SetStatus(ctx context.Context, id, status, user, role string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest, id, user, role string) (string, error)
}

type serviceImpl struct {
	repo  repository.Turf
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Turf, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Turf {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTurfRequest, user string) (res dto.TurfResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".turf.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	turf := req.ToModel(user)

	if err = s.repo.Insert(ctx, turf); err != nil {
		log.Error().Err(err).Msg("failed to create turf")

		return res, fmt.Errorf("failed to create turf: %w", err)
	}

	s.invalidateLists(ctx)

	res.FromModel(turf)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTurfsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".turf.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTurf, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for turfs")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count turfs")

		return res, fmt.Errorf("failed to count turfs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get turfs")

		return res, fmt.Errorf("failed to get turfs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save turfs to cache")
	}

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".turf.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTurf, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for turf count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count turfs")

		return res, fmt.Errorf("failed to count turfs: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save turf count to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TurfResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".turf.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetTurf, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for turf")

		return res, nil
	}

	turf, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get turf")

		return res, fmt.Errorf("failed to get turf: %w", err)
	}

	if turf.ID == constant.Empty {
		return res, failure.ResourceNotFound
	}

	res.FromModel(turf)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save turf to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTurfRequest, id, user, role string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".turf.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if _, err = s.manageable(ctx, id, user, role); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update turf")

		return fmt.Errorf("failed to update turf: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// SetStatus publishes or withdraws a turf.
func (s *serviceImpl) SetStatus(ctx context.Context, id, status, user, role string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".turf.SetStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if status != model.StatusActive && status != model.StatusInactive {
		return failure.BadRequestFromString("status must be ACTIVE or INACTIVE") // nolint:wrapcheck
	}

	turf, err := s.manageable(ctx, id, user, role)
	if err != nil {
		return err
	}

	if turf.Status == status {
		return nil
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldStatus:     status,
		model.FieldModifiedAt: timezone.Now(),
		model.FieldModifiedBy: user,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("turf_id", id).Msg("failed to change turf status")

		return fmt.Errorf("failed to change turf status: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// UploadImage stores a new cover image and drops the previous one.
func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest, id, user, role string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".turf.UploadImage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	turf, err := s.manageable(ctx, id, user, role)
	if err != nil {
		return constant.Empty, err
	}

	fileName := uuid.NewString() + path.Ext(req.Image.Filename)
	directory := path.Join(imageDirectory, id)

	url, err = s.s3.UploadFile(ctx, constant.Empty, directory, req.ImageFile, req.Image, fileName)
	if err != nil {
		log.Error().Err(err).Str("turf_id", id).Msg("failed to upload turf image")

		return constant.Empty, fmt.Errorf("failed to upload turf image: %w", err)
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldImage:      url,
		model.FieldModifiedAt: timezone.Now(),
		model.FieldModifiedBy: user,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("turf_id", id).Msg("failed to save turf image")

		return constant.Empty, fmt.Errorf("failed to save turf image: %w", err)
	}

	if turf.Image != constant.Empty {
		bucket := s.cfg.External.S3.BucketName
		if objectName := s.s3.GetObjectNameFromURL(bucket, turf.Image); objectName != constant.Empty {
			if err := s.s3.DeleteFile(ctx, bucket, constant.Empty, objectName); err != nil {
				log.Warn().Err(err).Str("object", objectName).Msg("failed to delete previous turf image")
			}
		}
	}

	s.invalidate(ctx, id)

	return url, nil
}

func (s *serviceImpl) manageable(ctx context.Context, id, user, role string) (model.Turf, error) {
	turf, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("turf_id", id).Msg("failed to get turf")

		return turf, fmt.Errorf("failed to get turf: %w", err)
	}

	if turf.ID == constant.Empty {
		return turf, failure.ResourceNotFound
	}

	if !turf.ManageableBy(user, role) {
		log.Warn().Str("turf_id", id).Str("user", user).Msg("turf change rejected for non owner")

		return turf, failure.ResourceRestrictedError
	}

	return turf, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetTurf, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete turf from cache")
	}

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllTurf)
	shared.InvalidateCaches(ctx, s.cache, cacheCountTurf)
}
