package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"time"

	"turfbook/config"
	"turfbook/infras/kafka"
	"turfbook/infras/otel"
	"turfbook/internal/domains/booking/model"
	"turfbook/internal/domains/booking/model/dto"
	"turfbook/internal/domains/booking/repository"
	slotModel "turfbook/internal/domains/slot/model"
	slotRepo "turfbook/internal/domains/slot/repository"
	slotService "turfbook/internal/domains/slot/service"
	turfModel "turfbook/internal/domains/turf/model"
	turfRepo "turfbook/internal/domains/turf/repository"
	"turfbook/shared"
	"turfbook/shared/cache"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"
	gRepo "turfbook/shared/repository"
	"turfbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Reserve(ctx context.Context, slotID, requesterID, transactionRef string) (dto.BookingResponse, error)
	Get(ctx context.Context, id, requesterID, role string) (dto.BookingResponse, error)
	GetMine(ctx context.Context, requesterID string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Reconcile(ctx context.Context) (dto.ReconcileResult, error)
}

type serviceImpl struct {
	repo       repository.Booking
	intentRepo repository.Intent
	slotRepo   slotRepo.Slot
	turfRepo   turfRepo.Turf
	kafka      kafka.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	intentRepo repository.Intent,
	slotRepo slotRepo.Slot,
	turfRepo turfRepo.Turf,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		intentRepo: intentRepo,
		slotRepo:   slotRepo,
		turfRepo:   turfRepo,
		kafka:      kafka,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Reserve books a slot for the requester. Concurrent callers race on the
// reservation intent of the slot; exactly one of them proceeds to write the
// booking and the others get failure.SlotContended.
func (s *serviceImpl) Reserve(ctx context.Context, slotID, requesterID, transactionRef string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Reserve")
	defer scope.End()
	defer scope.TraceIfError(&err)

	logger := log.With().Str("slot_id", slotID).Str("user_id", requesterID).Logger()

	slot, err := s.slotRepo.Get(ctx, shared.FilterByID(slotID, slotModel.FieldID, slotModel.TableName))
	if err != nil {
		logger.Error().Err(err).Msg("failed to get slot")

		return res, gRepo.WrapUnavailable(fmt.Errorf("failed to get slot: %w", err))
	}

	if slot.ID == constant.Empty {
		return res, failure.SlotNotFound
	}

	if !slot.IsVacant() {
		return res, failure.SlotContended
	}

	err = s.intentRepo.Insert(ctx, dto.NewIntent(slot.ID, requesterID))
	if gRepo.IsUniqueViolation(err) {
		logger.Info().Msg("slot already claimed by another requester")

		return res, failure.SlotContended
	}

	if err != nil {
		logger.Error().Err(err).Msg("failed to insert reservation intent")

		return res, gRepo.WrapUnavailable(fmt.Errorf("failed to insert reservation intent: %w", err))
	}

	pricing, err := s.pricing(ctx, slot.TurfID, transactionRef)
	if err != nil {
		return res, err
	}

	booking := dto.NewBooking(slot, requesterID, pricing)

	err = s.repo.Insert(ctx, booking)
	if gRepo.IsUniqueViolation(err) {
		logger.Error().Err(err).Msg("slot already has a booking although the intent was won")

		return res, failure.SlotAlreadyBooked
	}

	if err != nil {
		logger.Error().Err(err).Msg("failed to insert booking")

		return res, gRepo.WrapUnavailable(fmt.Errorf("failed to insert booking: %w", err))
	}

	booked, err := s.slotRepo.MarkBooked(ctx, slot.ID, booking.ID, requesterID)
	if err != nil {
		logger.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to mark slot booked")

		return res, gRepo.WrapUnavailable(fmt.Errorf("failed to mark slot booked: %w", err))
	}

	if !booked {
		logger.Error().Str("booking_id", booking.ID).Msg("slot was no longer vacant when confirming the booking, booking kept for review")

		return res, failure.SlotAlreadyBooked
	}

	s.publishCreated(ctx, booking)
	s.invalidateCaches(ctx, booking)

	logger.Info().Str("booking_id", booking.ID).Msg("slot booked")

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id, requesterID, role string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err != nil {
		res, err = s.load(ctx, id, cacheKey)
		if err != nil {
			return res, err
		}
	}

	if res.UserID != requesterID && role != constant.RoleSuperAdmin {
		return dto.BookingResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}

// GetMine lists the requester's bookings, latest first unless params say otherwise.
func (s *serviceImpl) GetMine(ctx context.Context, requesterID string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetMine")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if params.SortBy == constant.Empty {
		params.SortBy = model.FieldBookedAt
		params.SortDir = gDto.SortDirDesc
	}

	params.SortBy = fmt.Sprintf("%s.%s", model.TableName, params.SortBy)

	filter := shared.FilterByID(requesterID, model.FieldUserID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, gRepo.WrapUnavailable(fmt.Errorf("failed to get bookings: %w", err))
	}

	res.FromModels(bookings, total, params.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save bookings to cache")
	}

	return res, nil
}

// Reconcile settles reservation intents older than the grace period whose
// slot is still VACANT. If the winner managed to store its booking the slot
// is marked BOOKED, otherwise the intent is removed and the slot released.
func (s *serviceImpl) Reconcile(ctx context.Context) (res dto.ReconcileResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Reconcile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	before := timezone.Now().Add(-time.Duration(s.cfg.Booking.IntentGraceSeconds) * time.Second)

	intents, err := s.intentRepo.GetStale(ctx, before, s.cfg.Booking.ReconcileBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to get stale reservation intents")

		return res, gRepo.WrapUnavailable(fmt.Errorf("failed to get stale reservation intents: %w", err))
	}

	res.Scanned = len(intents)

	for _, intent := range intents {
		completed, err := s.settle(ctx, intent)
		if err != nil {
			log.Error().Err(err).Str("slot_id", intent.SlotID).Msg("failed to settle reservation intent")

			res.Failed++

			continue
		}

		if completed {
			res.Completed++
		} else {
			res.Released++
		}
	}

	if res.Scanned > 0 {
		log.Info().
			Int("scanned", res.Scanned).
			Int("completed", res.Completed).
			Int("released", res.Released).
			Int("failed", res.Failed).
			Msg("reconciled reservation intents")
	}

	return res, nil
}

func (s *serviceImpl) settle(ctx context.Context, intent model.ReservationIntent) (bool, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(intent.SlotID, model.FieldSlotID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to get booking of slot: %w", err)
	}

	if booking.ID == constant.Empty {
		filter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.IntentFieldSlotID, Value: intent.SlotID, Operator: gDto.FilterOperatorEq, Table: model.IntentTableName},
				gDto.Filter{Field: model.IntentFieldCreatedAt, Value: intent.CreatedAt, Operator: gDto.FilterOperatorEq, Table: model.IntentTableName},
			},
		}

		if err = s.intentRepo.Delete(ctx, filter); err != nil {
			return false, fmt.Errorf("failed to delete reservation intent: %w", err)
		}

		log.Warn().Str("slot_id", intent.SlotID).Str("user_id", intent.UserID).Msg("released slot of abandoned reservation intent")

		return false, nil
	}

	booked, err := s.slotRepo.MarkBooked(ctx, intent.SlotID, booking.ID, constant.ContextSystem)
	if err != nil {
		return false, fmt.Errorf("failed to mark slot booked: %w", err)
	}

	if booked {
		log.Warn().Str("slot_id", intent.SlotID).Str("booking_id", booking.ID).Msg("completed interrupted booking")

		s.invalidateCaches(ctx, booking)
	}

	return true, nil
}

func (s *serviceImpl) load(ctx context.Context, id, cacheKey string) (res dto.BookingResponse, err error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, gRepo.WrapUnavailable(fmt.Errorf("failed to get booking: %w", err))
	}

	if booking.ID == constant.Empty {
		return res, failure.BookingNotFound
	}

	res.FromModel(booking)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save booking to cache")
	}

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, gRepo.WrapUnavailable(fmt.Errorf("failed to count bookings: %w", err))
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save booking count to cache")
	}

	return res, nil
}

// pricing uses the turf rent when set and the configured defaults otherwise.
func (s *serviceImpl) pricing(ctx context.Context, turfID, transactionRef string) (dto.Pricing, error) {
	pricing := dto.Pricing{
		Amount:         s.cfg.Booking.DefaultAmount,
		Discount:       s.cfg.Booking.DefaultDiscount,
		TransactionRef: transactionRef,
	}

	if pricing.TransactionRef == constant.Empty {
		pricing.TransactionRef = s.cfg.Booking.DefaultTransactionRef
	}

	turf, err := s.turfRepo.Get(ctx, shared.FilterByID(turfID, turfModel.FieldID, turfModel.TableName), turfModel.FieldID, turfModel.FieldRent)
	if err != nil {
		log.Error().Err(err).Str("turf_id", turfID).Msg("failed to get turf rent")

		return pricing, gRepo.WrapUnavailable(fmt.Errorf("failed to get turf rent: %w", err))
	}

	if turf.Rent > 0 {
		pricing.Amount = turf.Rent
	}

	return pricing, nil
}

func (s *serviceImpl) publishCreated(ctx context.Context, booking model.Booking) {
	message := kafka.Message{
		Key:   booking.TurfID,
		Value: dto.NewBookingCreated(booking),
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingCreated, message); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking created event")
	}
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, booking model.Booking) {
	if err := s.cache.Delete(ctx, slotService.DayCacheKey(booking.TurfID, booking.SlotDate)); err != nil {
		log.Error().Err(err).Str("turf_id", booking.TurfID).Msg("failed to invalidate day slots cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}
