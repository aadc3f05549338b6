package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/persistence/memory"
	"gastos/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	op   string
	desc string
}

type fakePublisher struct {
	events []recordedEvent
	err    error
}

func (p *fakePublisher) PublishRecordEvent(_ context.Context, op string, e core.Expense) error {
	p.events = append(p.events, recordedEvent{op: op, desc: e.Description})
	return p.err
}

func fixedClock(y int, m time.Month, d int) Clock {
	return func() time.Time { return time.Date(y, m, d, 18, 0, 0, 0, time.UTC) }
}

func newService(t *testing.T, opts ...Option) (*LedgerService, *memory.Store) {
	t.Helper()
	gw := memory.New()
	st := store.Open(context.Background(), gw, log.Discard())
	return NewLedgerService(st, log.Discard(), opts...), gw
}

func seed(t *testing.T, s *LedgerService) {
	t.Helper()
	ctx := context.Background()
	for _, r := range [][4]string{
		{"Coffee", "food", "2024-01-01", "5.0"},
		{"Bus", "transport", "2024-01-02", "2.0"},
		{"Lunch", "food", "2024-01-03", "10.0"},
	} {
		_, err := s.Register(ctx, r[0], r[1], r[2], r[3])
		require.NoError(t, err)
	}
}

func TestRegister(t *testing.T) {
	pub := &fakePublisher{}
	s, gw := newService(t, WithPublisher(pub))

	e, err := s.Register(context.Background(), "Coffee", "food", "2024-01-01", " 5,5 ")
	require.NoError(t, err)
	assert.True(t, e.Amount.Equal(decimal.RequireFromString("5.5")))
	assert.Equal(t, 1, gw.Saves())
	assert.Equal(t, []recordedEvent{{op: log.OpCreate, desc: "Coffee"}}, pub.events)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	pub := &fakePublisher{}
	s, gw := newService(t, WithPublisher(pub))
	ctx := context.Background()

	_, err := s.Register(ctx, "Coffee", "food", "2024-01-01", "five")
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = s.Register(ctx, "  ", "food", "2024-01-01", "5")
	assert.ErrorIs(t, err, core.ErrValidation)

	assert.Equal(t, 0, gw.Saves())
	assert.Empty(t, pub.events)
	got, _ := s.Query(ctx, "c", "food", "", "")
	assert.Empty(t, got)
}

func TestQuery(t *testing.T) {
	s, _ := newService(t)
	seed(t, s)
	ctx := context.Background()

	got, err := s.Query(ctx, "c", "food", "", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Coffee", got[0].Description)
	assert.Equal(t, "Lunch", got[1].Description)

	got, err = s.Query(ctx, "f", "", "2024-01-02", "2024-01-03")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bus", got[0].Description)

	got, err = s.Query(ctx, "c", "rent", "", "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = s.Query(ctx, "z", "food", "", "")
	assert.ErrorIs(t, err, core.ErrInvalidCriterion)
	assert.Nil(t, got)
}

func TestStatistics(t *testing.T) {
	s, _ := newService(t, WithClock(fixedClock(2024, time.January, 3)))
	ctx := context.Background()

	_, err := s.Statistics(ctx)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)

	seed(t, s)
	sum, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Total.Equal(decimal.NewFromInt(17)))
	assert.Equal(t, "food", sum.TopCategory)
	assert.Equal(t, int64(3), sum.ElapsedDays)
}

func TestStatisticsSingleRecordToday(t *testing.T) {
	s, _ := newService(t, WithClock(fixedClock(2024, time.March, 9)))
	_, err := s.Register(context.Background(), "Rent", "home", "2024-03-09", "800")
	require.NoError(t, err)

	sum, err := s.Statistics(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.DailyAverage.Equal(decimal.NewFromInt(800)))
}

func TestUpdate(t *testing.T) {
	pub := &fakePublisher{}
	s, gw := newService(t, WithPublisher(pub))
	seed(t, s)
	ctx := context.Background()
	saves := gw.Saves()

	e, err := s.Update(ctx, "Bus", "travel", "2024-01-05", "3.5")
	require.NoError(t, err)
	assert.Equal(t, "travel", e.Category)
	assert.Equal(t, saves+1, gw.Saves())
	assert.Equal(t, log.OpUpdate, pub.events[len(pub.events)-1].op)

	_, err = s.Update(ctx, "Taxi", "travel", "2024-01-05", "3.5")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = s.Update(ctx, "Bus", "x", "2024-01-06", "lots")
	assert.ErrorIs(t, err, core.ErrValidation)
	got, _ := s.Find("Bus")
	assert.Equal(t, "travel", got.Category)
	assert.Equal(t, saves+1, gw.Saves())
}

func TestDelete(t *testing.T) {
	pub := &fakePublisher{}
	s, gw := newService(t, WithPublisher(pub))
	seed(t, s)
	ctx := context.Background()
	saves := gw.Saves()

	_, err := s.Delete(ctx, "Bus")
	require.NoError(t, err)
	assert.Equal(t, saves+1, gw.Saves())

	_, err = s.Delete(ctx, "Bus")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, saves+1, gw.Saves())

	_, ok := s.Find("Bus")
	assert.False(t, ok)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	s, _ := newService(t, WithPublisher(pub))

	_, err := s.Register(context.Background(), "Coffee", "food", "2024-01-01", "5")
	assert.NoError(t, err)
	assert.Len(t, pub.events, 1)
}

func TestPersistenceFailureKeepsRecordAndSkipsEvent(t *testing.T) {
	pub := &fakePublisher{}
	s, gw := newService(t, WithPublisher(pub))
	gw.FailSaves(errors.New("read-only file system"))

	_, err := s.Register(context.Background(), "Coffee", "food", "2024-01-01", "5")
	assert.ErrorIs(t, err, core.ErrPersistence)
	assert.Empty(t, pub.events)

	_, ok := s.Find("Coffee")
	assert.True(t, ok)
}
