package services

import (
	"time"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/metrics"
)

const (
	// basePointRate is the accrual per 10000 spent.
	basePointRate = 1.5
	// eventMultiplier applies during a customer's birthday or anniversary week.
	eventMultiplier = 5.0
	// redeemFloor is the minimum balance before any redemption is allowed.
	redeemFloor = 100.0
	// eventWindow is how far ahead of the event the bonus week opens.
	eventWindow = 7 * 24 * time.Hour
)

// LoyaltyService owns the points ledger: accrual rates, the event-week
// bonus, and redemption.
type LoyaltyService struct {
	customers CustomerStore
	now       func() time.Time
}

func NewLoyaltyService(customers CustomerStore) *LoyaltyService {
	return &LoyaltyService{customers: customers, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *LoyaltyService) WithClock(now func() time.Time) *LoyaltyService {
	s.now = now
	return s
}

// PointsFor returns the points a sale of the given total earns.
func (s *LoyaltyService) PointsFor(total float64, eventWeek bool) float64 {
	points := total / 10000 * basePointRate
	if eventWeek {
		points *= eventMultiplier
	}
	return points
}

// InEventWeek reports whether today falls in the seven days leading up to
// (and including) the customer's birthday or anniversary. Dates are
// compared against their stored year as-is, so the bonus fires for the
// calendar date the customer registered with.
func (s *LoyaltyService) InEventWeek(c *models.Customer) bool {
	today := s.now()
	return s.inWindow(c.DateOfBirth, today) || s.inWindow(c.Anniversary, today)
}

// OfferFor returns the receipt banner for a customer's event week, or empty
// outside one. Birthday wins when both weeks overlap.
func (s *LoyaltyService) OfferFor(c *models.Customer) string {
	today := s.now()
	switch {
	case s.inWindow(c.DateOfBirth, today):
		return "Birthday week! 5x points on this purchase."
	case s.inWindow(c.Anniversary, today):
		return "Anniversary week! 5x points on this purchase."
	}
	return ""
}

func (s *LoyaltyService) inWindow(date string, today time.Time) bool {
	if date == "" {
		return false
	}

	eventDay, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}

	// Compare calendar days in the clock's own zone. Truncate works on the
	// UTC wall clock and lands on the wrong day for evening checkouts in
	// offset zones.
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start := eventDay.Add(-eventWindow)
	return !day.Before(start) && !day.After(eventDay)
}

// Redeem deducts points from a customer's balance. The balance must be at
// least 100 points and the request must not exceed it.
func (s *LoyaltyService) Redeem(phone string, points float64) (*models.Customer, error) {
	if points <= 0 {
		return nil, ErrInsufficientPoint
	}

	customer, err := s.customers.FindByPhone(phone)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	if customer.Points < redeemFloor {
		return nil, ErrBelowRedeemFloor
	}
	if points > customer.Points {
		return nil, ErrInsufficientPoint
	}

	if err := s.customers.AddPoints(phone, -points); err != nil {
		return nil, err
	}

	customer.Points -= points
	metrics.PointsRedeemed.Add(points)
	logger.Info("points redeemed", "phone", phone, "points", points, "balance", customer.Points)
	return customer, nil
}
