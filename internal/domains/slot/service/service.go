package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Slot=MockSlotService

import (
	"context"
	"fmt"
	"time"

	"turfbook/config"
	"turfbook/infras/otel"
	"turfbook/internal/domains/slot/model"
	"turfbook/internal/domains/slot/model/dto"
	"turfbook/internal/domains/slot/repository"
	turfModel "turfbook/internal/domains/turf/model"
	turfRepo "turfbook/internal/domains/turf/repository"
	"turfbook/shared"
	"turfbook/shared/cache"
	"turfbook/shared/constant"
	"turfbook/shared/failure"
	gRepo "turfbook/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetDaySlots = "slot:day"
)

// DayCacheKey is the cache entry holding one turf day's slots.
func DayCacheKey(turfID string, day time.Time) string {
	return shared.BuildCacheKey(cacheGetDaySlots, turfID, model.Day(day).Format(constant.DayFormat))
}

type Slot interface {
	GetOrGenerateSlots(ctx context.Context, turfID string, day time.Time) (dto.GetSlotsResponse, error)
	EnsureWeekGenerated(ctx context.Context, turf turfModel.Turf, day time.Time) ([]model.Slot, error)
	PrepareWeek(ctx context.Context, turfID string, day time.Time) error
}

type serviceImpl struct {
	repo     repository.Slot
	turfRepo turfRepo.Turf
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Slot, turfRepo turfRepo.Turf, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Slot {
	return &serviceImpl{
		repo:     repo,
		turfRepo: turfRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// GetOrGenerateSlots returns the slots of a turf day, generating the whole
// week around it first when the day has never been generated.
func (s *serviceImpl) GetOrGenerateSlots(ctx context.Context, turfID string, day time.Time) (res dto.GetSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.GetOrGenerateSlots")
	defer scope.End()
	defer scope.TraceIfError(&err)

	day = model.Day(day)
	cacheKey := DayCacheKey(turfID, day)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for day slots")

		return res, nil
	}

	turf, err := s.loadTurf(ctx, turfID)
	if err != nil {
		return res, err
	}

	slots, err := s.repo.GetDay(ctx, turfID, day)
	if err != nil {
		log.Error().Err(err).Str("turf_id", turfID).Msg("failed to get day slots")

		return res, gRepo.WrapUnavailable(fmt.Errorf("failed to get day slots: %w", err))
	}

	if len(slots) == 0 {
		slots, err = s.EnsureWeekGenerated(ctx, turf, day)
		if err != nil {
			return res, err
		}
	}

	res.FromModels(turfID, day, slots)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save day slots to cache")
	}

	return res, nil
}

// EnsureWeekGenerated fills every missing day of the Monday-aligned week
// containing day and returns day's slots ordered by start time.
// Days that already have slots are left untouched.
func (s *serviceImpl) EnsureWeekGenerated(ctx context.Context, turf turfModel.Turf, day time.Time) (slots []model.Slot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.EnsureWeekGenerated")
	defer scope.End()
	defer scope.TraceIfError(&err)

	intervals, err := model.Partition(turf.OpeningMinute(), turf.SlotDuration)
	if err != nil {
		log.Error().Err(err).Str("turf_id", turf.ID).Msg("turf has an invalid slot configuration")

		return nil, err
	}

	weekStart := model.WeekStart(day)

	for offset := range constant.DaysInWeek {
		date := weekStart.AddDate(0, 0, offset)

		if err = s.generateDay(ctx, turf.ID, date, intervals); err != nil {
			return nil, err
		}
	}

	slots, err = s.repo.GetDay(ctx, turf.ID, day)
	if err != nil {
		log.Error().Err(err).Str("turf_id", turf.ID).Msg("failed to read generated slots")

		return nil, gRepo.WrapUnavailable(fmt.Errorf("failed to read generated slots: %w", err))
	}

	return slots, nil
}

// PrepareWeek generates the week containing day ahead of demand.
func (s *serviceImpl) PrepareWeek(ctx context.Context, turfID string, day time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.PrepareWeek")
	defer scope.End()
	defer scope.TraceIfError(&err)

	turf, err := s.loadTurf(ctx, turfID)
	if err != nil {
		return err
	}

	_, err = s.EnsureWeekGenerated(ctx, turf, day)

	return err
}

func (s *serviceImpl) generateDay(ctx context.Context, turfID string, date time.Time, intervals []model.TimeInterval) error {
	logger := log.With().Str("turf_id", turfID).Str("date", date.Format(constant.DayFormat)).Logger()

	exists, err := s.repo.DayExists(ctx, turfID, date)
	if err != nil {
		logger.Error().Err(err).Msg("failed to check generated day")

		return gRepo.WrapUnavailable(fmt.Errorf("failed to check generated day: %w", err))
	}

	if exists {
		return nil
	}

	err = s.repo.InsertBulk(ctx, dto.NewVacantSlots(turfID, date, intervals))
	if gRepo.IsUniqueViolation(err) {
		logger.Warn().Msg("day generated concurrently, keeping the stored slots")

		return nil
	}

	if err != nil {
		logger.Error().Err(err).Msg("failed to insert day slots")

		return gRepo.WrapUnavailable(fmt.Errorf("failed to insert day slots: %w", err))
	}

	logger.Debug().Int("slots", len(intervals)).Msg("generated day slots")

	return nil
}

func (s *serviceImpl) loadTurf(ctx context.Context, turfID string) (turfModel.Turf, error) {
	turf, err := s.turfRepo.Get(ctx, shared.FilterByID(turfID, turfModel.FieldID, turfModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("turf_id", turfID).Msg("failed to get turf")

		return turf, gRepo.WrapUnavailable(fmt.Errorf("failed to get turf: %w", err))
	}

	if turf.ID == constant.Empty {
		return turf, failure.ResourceNotFound
	}

	return turf, nil
}
