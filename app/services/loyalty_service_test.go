package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectraretail/spectra-pos/app/models"
)

func fixedClock(date string) func() time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestPointsForBaseRate(t *testing.T) {
	svc := NewLoyaltyService(newMemCustomerStore())

	assert.InDelta(t, 7.5, svc.PointsFor(50000, false), 0.0001)
	assert.InDelta(t, 1.5, svc.PointsFor(10000, false), 0.0001)
	assert.InDelta(t, 0.15, svc.PointsFor(1000, false), 0.0001)
	assert.Zero(t, svc.PointsFor(0, false))
}

func TestPointsForEventWeek(t *testing.T) {
	svc := NewLoyaltyService(newMemCustomerStore())

	assert.InDelta(t, 37.5, svc.PointsFor(50000, true), 0.0001)
}

func TestInEventWeekBirthday(t *testing.T) {
	customer := &models.Customer{Phone: "9876543210", DateOfBirth: "2026-03-10"}

	cases := []struct {
		today string
		want  bool
	}{
		{"2026-03-10", true},  // the day itself
		{"2026-03-03", true},  // window opens seven days out
		{"2026-03-06", true},  // mid window
		{"2026-03-02", false}, // one day too early
		{"2026-03-11", false}, // the day after
		{"2025-03-10", false}, // stored year is compared as-is
	}

	for _, tc := range cases {
		svc := NewLoyaltyService(newMemCustomerStore()).WithClock(fixedClock(tc.today))
		assert.Equal(t, tc.want, svc.InEventWeek(customer), "today=%s", tc.today)
	}
}

func TestInEventWeekLocalCalendarDay(t *testing.T) {
	customer := &models.Customer{Phone: "9876543210", DateOfBirth: "2026-03-10"}

	// The window is a calendar comparison in the clock's zone. An evening
	// checkout west of UTC is still the birthday, and an early morning east
	// of UTC is already the window's first day.
	cases := []struct {
		name  string
		today time.Time
		want  bool
	}{
		{
			"birthday evening, UTC-5",
			time.Date(2026, 3, 10, 20, 0, 0, 0, time.FixedZone("EST", -5*3600)),
			true,
		},
		{
			"window opens after midnight, UTC+5:30",
			time.Date(2026, 3, 3, 0, 30, 0, 0, time.FixedZone("IST", 5*3600+1800)),
			true,
		},
		{
			"day after, late night UTC+5:30",
			time.Date(2026, 3, 11, 1, 0, 0, 0, time.FixedZone("IST", 5*3600+1800)),
			false,
		},
	}

	for _, tc := range cases {
		clock := tc.today
		svc := NewLoyaltyService(newMemCustomerStore()).WithClock(func() time.Time { return clock })
		assert.Equal(t, tc.want, svc.InEventWeek(customer), tc.name)
	}
}

func TestInEventWeekAnniversary(t *testing.T) {
	customer := &models.Customer{Phone: "9876543210", Anniversary: "2026-06-20"}

	svc := NewLoyaltyService(newMemCustomerStore()).WithClock(fixedClock("2026-06-15"))
	assert.True(t, svc.InEventWeek(customer))

	svc = NewLoyaltyService(newMemCustomerStore()).WithClock(fixedClock("2026-06-25"))
	assert.False(t, svc.InEventWeek(customer))
}

func TestInEventWeekNoDates(t *testing.T) {
	svc := NewLoyaltyService(newMemCustomerStore()).WithClock(fixedClock("2026-03-10"))

	assert.False(t, svc.InEventWeek(&models.Customer{Phone: "9876543210"}))
	assert.False(t, svc.InEventWeek(&models.Customer{Phone: "9876543210", DateOfBirth: "not-a-date"}))
}

func TestRedeem(t *testing.T) {
	store := newMemCustomerStore(&models.Customer{Phone: "9876543210", Points: 200})
	svc := NewLoyaltyService(store)

	customer, err := svc.Redeem("9876543210", 150)
	require.NoError(t, err)
	assert.InDelta(t, 50, customer.Points, 0.0001)

	// The balance actually moved in the store.
	stored, err := store.FindByPhone("9876543210")
	require.NoError(t, err)
	assert.InDelta(t, 50, stored.Points, 0.0001)
}

func TestRedeemBelowFloor(t *testing.T) {
	store := newMemCustomerStore(&models.Customer{Phone: "9876543210", Points: 80})
	svc := NewLoyaltyService(store)

	_, err := svc.Redeem("9876543210", 50)
	assert.ErrorIs(t, err, ErrBelowRedeemFloor)

	stored, _ := store.FindByPhone("9876543210")
	assert.InDelta(t, 80, stored.Points, 0.0001)
}

func TestRedeemMoreThanBalance(t *testing.T) {
	store := newMemCustomerStore(&models.Customer{Phone: "9876543210", Points: 120})
	svc := NewLoyaltyService(store)

	_, err := svc.Redeem("9876543210", 150)
	assert.ErrorIs(t, err, ErrInsufficientPoint)
}

func TestRedeemRejectsNonPositive(t *testing.T) {
	store := newMemCustomerStore(&models.Customer{Phone: "9876543210", Points: 500})
	svc := NewLoyaltyService(store)

	_, err := svc.Redeem("9876543210", 0)
	assert.ErrorIs(t, err, ErrInsufficientPoint)

	_, err = svc.Redeem("9876543210", -10)
	assert.ErrorIs(t, err, ErrInsufficientPoint)
}

func TestRedeemUnknownCustomer(t *testing.T) {
	svc := NewLoyaltyService(newMemCustomerStore())

	_, err := svc.Redeem("0000000000", 100)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestRedeemExactBalance(t *testing.T) {
	store := newMemCustomerStore(&models.Customer{Phone: "9876543210", Points: 100})
	svc := NewLoyaltyService(store)

	customer, err := svc.Redeem("9876543210", 100)
	require.NoError(t, err)
	assert.Zero(t, customer.Points)
}
