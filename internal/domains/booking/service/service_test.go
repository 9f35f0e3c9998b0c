package service_test

import (
	"bytes"
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"turfbook/config"
	kafkaMocks "turfbook/infras/kafka/mocks"
	"turfbook/infras/otel/mocks"
	bookingMocks "turfbook/internal/domains/booking/mocks"
	"turfbook/internal/domains/booking/model"
	"turfbook/internal/domains/booking/model/dto"
	"turfbook/internal/domains/booking/service"
	slotMocks "turfbook/internal/domains/slot/mocks"
	slotModel "turfbook/internal/domains/slot/model"
	turfMocks "turfbook/internal/domains/turf/mocks"
	turfModel "turfbook/internal/domains/turf/model"
	cacheMocks "turfbook/shared/cache/mocks"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"
)

func uniqueViolation() error {
	return &pq.Error{Code: constant.PqErrorCodeUniqueViolation}
}

func filterValue(filter gDto.FilterGroup, field string) any {
	for _, f := range filter.Filters {
		if f, ok := f.(gDto.Filter); ok && f.Field == field {
			return f.Value
		}
	}

	return nil
}

// slotStore holds slots in memory and applies MarkBooked conditionally like the database.
type slotStore struct {
	mu    sync.Mutex
	slots map[string]slotModel.Slot
}

func newSlotStore(slots ...slotModel.Slot) *slotStore {
	store := &slotStore{slots: map[string]slotModel.Slot{}}
	for _, slot := range slots {
		store.slots[slot.ID] = slot
	}

	return store
}

func (m *slotStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (slotModel.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, _ := filterValue(filter, slotModel.FieldID).(string)

	return m.slots[id], nil
}

func (m *slotStore) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]slotModel.Slot, error) {
	return nil, errors.New("not supported")
}

func (m *slotStore) Exist(context.Context, gDto.FilterGroup) (bool, error) {
	return false, errors.New("not supported")
}

func (m *slotStore) InsertBulk(context.Context, []slotModel.Slot) error {
	return errors.New("not supported")
}

func (m *slotStore) GetDay(context.Context, string, time.Time) ([]slotModel.Slot, error) {
	return nil, errors.New("not supported")
}

func (m *slotStore) DayExists(context.Context, string, time.Time) (bool, error) {
	return false, errors.New("not supported")
}

func (m *slotStore) MarkBooked(_ context.Context, slotID, bookingID, _ string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.slots[slotID]
	if !ok || slot.Status != slotModel.StatusVacant {
		return false, nil
	}

	slot.Status = slotModel.StatusBooked
	slot.BookingID = &bookingID
	m.slots[slotID] = slot

	return true, nil
}

func (m *slotStore) slot(id string) slotModel.Slot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.slots[id]
}

// intentStore keys intents by slot like the reservation_intents primary key.
type intentStore struct {
	mu      sync.Mutex
	intents map[string]model.ReservationIntent
}

func newIntentStore() *intentStore {
	return &intentStore{intents: map[string]model.ReservationIntent{}}
}

func (m *intentStore) Insert(_ context.Context, intent model.ReservationIntent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.intents[intent.SlotID]; ok {
		return uniqueViolation()
	}

	m.intents[intent.SlotID] = intent

	return nil
}

func (m *intentStore) Delete(_ context.Context, filter gDto.FilterGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	slotID, _ := filterValue(filter, model.IntentFieldSlotID).(string)
	delete(m.intents, slotID)

	return nil
}

func (m *intentStore) GetStale(_ context.Context, before time.Time, _ int) ([]model.ReservationIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stale := []model.ReservationIntent{}

	for _, intent := range m.intents {
		if !intent.CreatedAt.After(before) {
			stale = append(stale, intent)
		}
	}

	return stale, nil
}

func (m *intentStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.intents)
}

// bookingStore enforces one booking per slot like the bookings.slot_id constraint.
type bookingStore struct {
	mu       sync.Mutex
	bookings []model.Booking
}

func (m *bookingStore) Insert(_ context.Context, booking model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bookings {
		if b.SlotID == booking.SlotID {
			return uniqueViolation()
		}
	}

	m.bookings = append(m.bookings, booking)

	return nil
}

func (m *bookingStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, _ := filterValue(filter, model.FieldID).(string)
	slotID, _ := filterValue(filter, model.FieldSlotID).(string)

	for _, b := range m.bookings {
		if (id != "" && b.ID == id) || (slotID != "" && b.SlotID == slotID) {
			return b, nil
		}
	}

	return model.Booking{}, nil
}

func (m *bookingStore) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]model.Booking(nil), m.bookings...), nil
}

func (m *bookingStore) Count(context.Context, gDto.FilterGroup) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.bookings), nil
}

var monday = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

func eveningSlot() slotModel.Slot {
	return slotModel.Slot{
		ID:           "slot-1",
		TurfID:       "turf-1",
		SlotDate:     monday,
		TimeInterval: slotModel.NewTimeInterval(18*60, 60),
		Status:       slotModel.StatusVacant,
	}
}

type arbiter struct {
	svc      service.Booking
	slots    *slotStore
	intents  *intentStore
	bookings *bookingStore
	turfRepo *turfMocks.MockTurf
	kafka    *kafkaMocks.MockClient
	cache    *cacheMocks.MockRedisCache
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.Topics.BookingCreated = "booking.created"
	cfg.Booking.DefaultAmount = 700
	cfg.Booking.DefaultTransactionRef = "CASH"
	cfg.Booking.IntentGraceSeconds = 300
	cfg.Booking.ReconcileBatchSize = 100

	return cfg
}

func newArbiter(t *testing.T, slots ...slotModel.Slot) arbiter {
	ctrl := gomock.NewController(t)

	a := arbiter{
		slots:    newSlotStore(slots...),
		intents:  newIntentStore(),
		bookings: &bookingStore{},
		turfRepo: turfMocks.NewMockTurf(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	a.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	a.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	a.svc = service.New(a.bookings, a.intents, a.slots, a.turfRepo, a.kafka, testConfig(), a.cache, mocks.NewOtel())

	return a
}

func TestReserve_ConcurrentRequestersOneWinner(t *testing.T) {
	a := newArbiter(t, eveningSlot())

	a.turfRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(turfModel.Turf{ID: "turf-1"}, nil).AnyTimes()
	a.kafka.EXPECT().SendMessages(gomock.Any(), "booking.created", gomock.Any()).Return(nil).Times(1)

	const requesters = 50

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []dto.BookingResponse
		losers  int
	)

	for i := range requesters {
		wg.Add(1)

		go func(user string) {
			defer wg.Done()

			res, err := a.svc.Reserve(context.Background(), "slot-1", user, "")

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				winners = append(winners, res)

				return
			}

			assert.ErrorIs(t, err, failure.SlotContended)

			losers++
		}(fmt.Sprintf("user-%d", i))
	}

	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, requesters-1, losers)

	slot := a.slots.slot("slot-1")
	assert.Equal(t, slotModel.StatusBooked, slot.Status)
	require.NotNil(t, slot.BookingID)
	assert.Equal(t, winners[0].ID, *slot.BookingID)

	assert.Len(t, a.bookings.bookings, 1)
	assert.Equal(t, 1, a.intents.len())
}

func TestReserve_Booked(t *testing.T) {
	a := newArbiter(t, eveningSlot())

	a.turfRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(turfModel.Turf{ID: "turf-1", Rent: 1200}, nil)
	a.kafka.EXPECT().SendMessages(gomock.Any(), "booking.created", gomock.Any()).Return(nil)

	res, err := a.svc.Reserve(context.Background(), "slot-1", "user-1", "UPI-991")
	require.NoError(t, err)

	assert.Equal(t, "user-1", res.UserID)
	assert.Equal(t, "turf-1", res.TurfID)
	assert.Equal(t, "slot-1", res.SlotID)
	assert.Equal(t, "2024-06-10", res.SlotDate)
	assert.Equal(t, "18:00", res.StartTime)
	assert.Equal(t, "19:00", res.EndTime)
	assert.Equal(t, 1200, res.Amount)
	assert.Equal(t, 0, res.Discount)
	assert.Equal(t, "UPI-991", res.TransactionRef)
	assert.NotEmpty(t, res.BookedAt)

	_, err = a.svc.Reserve(context.Background(), "slot-1", "user-2", "")
	assert.ErrorIs(t, err, failure.SlotContended)
	assert.Len(t, a.bookings.bookings, 1)
}

func TestReserve_DefaultPricing(t *testing.T) {
	a := newArbiter(t, eveningSlot())

	a.turfRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(turfModel.Turf{ID: "turf-1"}, nil)
	a.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := a.svc.Reserve(context.Background(), "slot-1", "user-1", "")
	require.NoError(t, err)

	assert.Equal(t, 700, res.Amount)
	assert.Equal(t, "CASH", res.TransactionRef)
}

func TestReserve_UnknownSlot(t *testing.T) {
	a := newArbiter(t, eveningSlot())

	_, err := a.svc.Reserve(context.Background(), "missing", "user-1", "")

	assert.ErrorIs(t, err, failure.SlotNotFound)
	assert.Zero(t, a.intents.len())
	assert.Empty(t, a.bookings.bookings)
}

func TestReserve_IntentAlreadyHeld(t *testing.T) {
	a := newArbiter(t, eveningSlot())

	require.NoError(t, a.intents.Insert(context.Background(), dto.NewIntent("slot-1", "user-0")))

	_, err := a.svc.Reserve(context.Background(), "slot-1", "user-1", "")

	assert.ErrorIs(t, err, failure.SlotContended)
	assert.Empty(t, a.bookings.bookings)
	assert.Equal(t, slotModel.StatusVacant, a.slots.slot("slot-1").Status)
}

func TestReserve_PublishFailureIsNotFatal(t *testing.T) {
	a := newArbiter(t, eveningSlot())

	a.turfRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(turfModel.Turf{ID: "turf-1"}, nil)
	a.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := a.svc.Reserve(context.Background(), "slot-1", "user-1", "")

	require.NoError(t, err)
	assert.Equal(t, slotModel.StatusBooked, a.slots.slot("slot-1").Status)
}

func TestReserve_SlotTakenWhileConfirming(t *testing.T) {
	ctrl := gomock.NewController(t)

	slotRepo := slotMocks.NewMockSlot(ctrl)
	turfRepo := turfMocks.NewMockTurf(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	bookings := &bookingStore{}

	svc := service.New(bookings, newIntentStore(), slotRepo, turfRepo, kafkaMocks.NewMockClient(ctrl), testConfig(), redisCache, mocks.NewOtel())

	slotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(eveningSlot(), nil)
	turfRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(turfModel.Turf{ID: "turf-1"}, nil)
	slotRepo.EXPECT().MarkBooked(gomock.Any(), "slot-1", gomock.Any(), "user-1").Return(false, nil)

	_, err := svc.Reserve(context.Background(), "slot-1", "user-1", "")

	assert.ErrorIs(t, err, failure.SlotAlreadyBooked)
	assert.Len(t, bookings.bookings, 1, "booking is kept for review")
}

func TestReserve_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)

	slotRepo := slotMocks.NewMockSlot(ctrl)
	intents := newIntentStore()

	svc := service.New(&bookingStore{}, intents, slotRepo, turfMocks.NewMockTurf(ctrl), kafkaMocks.NewMockClient(ctrl), testConfig(), cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

	slotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(slotModel.Slot{}, driver.ErrBadConn)

	_, err := svc.Reserve(context.Background(), "slot-1", "user-1", "")

	assert.ErrorIs(t, err, failure.StoreUnavailable)
	assert.Zero(t, intents.len())
}

func TestGet(t *testing.T) {
	stored := dto.NewBooking(eveningSlot(), "user-1", dto.Pricing{Amount: 700, TransactionRef: "CASH"})

	tests := []struct {
		name      string
		id        string
		requester string
		role      string
		wantErr   error
	}{
		{name: "owner", id: stored.ID, requester: "user-1", role: constant.RoleUser},
		{name: "superadmin", id: stored.ID, requester: "admin-1", role: constant.RoleSuperAdmin},
		{name: "someone else", id: stored.ID, requester: "user-2", role: constant.RoleUser, wantErr: failure.ResourceRestrictedError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArbiter(t)
			a.bookings.bookings = []model.Booking{stored}

			a.cache.EXPECT().Get(gomock.Any(), "booking:get:"+stored.ID, gomock.Any()).Return(errors.New("cache miss"))
			a.cache.EXPECT().Save(gomock.Any(), "booking:get:"+stored.ID, gomock.Any(), 60).Return(nil)

			res, err := a.svc.Get(context.Background(), tt.id, tt.requester, tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, res.ID)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, res.ID)
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	a := newArbiter(t)

	a.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))

	_, err := a.svc.Get(context.Background(), "missing", "user-1", constant.RoleUser)

	var fail *failure.Failure
	require.ErrorAs(t, err, &fail)
	assert.Equal(t, 404, fail.Code)
}

func TestGetMine_QualifiesSorting(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(repo, newIntentStore(), newSlotStore(), turfMocks.NewMockTurf(ctrl), kafkaMocks.NewMockClient(ctrl), testConfig(), redisCache, mocks.NewOtel())

	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil).Times(2)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, "bookings.booked_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)
			assert.Equal(t, "user-1", filterValue(filter, model.FieldUserID))

			return []model.Booking{dto.NewBooking(eveningSlot(), "user-1", dto.Pricing{Amount: 700})}, nil
		})

	res, err := svc.GetMine(context.Background(), "user-1", gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "18:00", res.Bookings[0].StartTime)
}

func TestReconcile(t *testing.T) {
	abandoned := eveningSlot()
	abandoned.ID = "slot-abandoned"

	interrupted := eveningSlot()
	interrupted.ID = "slot-interrupted"

	a := newArbiter(t, abandoned, interrupted)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, a.intents.Insert(context.Background(), model.ReservationIntent{SlotID: abandoned.ID, UserID: "user-1", CreatedAt: old}))
	require.NoError(t, a.intents.Insert(context.Background(), model.ReservationIntent{SlotID: interrupted.ID, UserID: "user-2", CreatedAt: old}))
	require.NoError(t, a.intents.Insert(context.Background(), dto.NewIntent("slot-fresh", "user-3")))

	booking := dto.NewBooking(interrupted, "user-2", dto.Pricing{Amount: 700})
	require.NoError(t, a.bookings.Insert(context.Background(), booking))

	var logs bytes.Buffer

	previous := log.Logger
	log.Logger = zerolog.New(&logs)

	t.Cleanup(func() { log.Logger = previous })

	res, err := a.svc.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dto.ReconcileResult{Scanned: 2, Completed: 1, Released: 1}, res)
	assert.Equal(t, 1, strings.Count(logs.String(), "reconciled reservation intents"))

	assert.Equal(t, slotModel.StatusVacant, a.slots.slot(abandoned.ID).Status)

	completed := a.slots.slot(interrupted.ID)
	assert.Equal(t, slotModel.StatusBooked, completed.Status)
	require.NotNil(t, completed.BookingID)
	assert.Equal(t, booking.ID, *completed.BookingID)

	assert.Equal(t, 2, a.intents.len())

	_, err = a.svc.Reserve(context.Background(), interrupted.ID, "user-4", "")
	assert.ErrorIs(t, err, failure.SlotContended)
}

func TestReconcile_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)

	intents := bookingMocks.NewMockIntent(ctrl)
	intents.EXPECT().GetStale(gomock.Any(), gomock.Any(), 100).Return(nil, driver.ErrBadConn)

	svc := service.New(&bookingStore{}, intents, newSlotStore(), turfMocks.NewMockTurf(ctrl), kafkaMocks.NewMockClient(ctrl), testConfig(), cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

	_, err := svc.Reconcile(context.Background())
	assert.ErrorIs(t, err, failure.StoreUnavailable)
}
