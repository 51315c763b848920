package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/models"
)

func testCard() *models.Battlecard {
	return &models.Battlecard{
		LeadID:    "LEAD_1700000000000_abc123def",
		Region:    models.RegionEurope,
		Path:      models.PathScaler,
		FirstName: "Dev",
		LastName:  "Kapoor",
		BrandName: "Loom",
		Email:     "dev@loom.example",
		Answers: models.Answers{
			"platform_stack": models.MultiAnswer("shopify"),
		},
		RevenueLeaks:           []string{"Abandoned carts unrecovered"},
		ManualFriction:         []string{"Manual order status replies"},
		RecommendedAutomations: []string{"Abandoned Cart Recovery Sequence"},
		EstimatedROI: models.EstimatedROI{
			Currency:           "EUR",
			MonthlyImpact:      3250,
			ImplementationCost: 2000,
		},
		PriorityScore: 72,
		GeneratedAt:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

type recordingSink struct {
	name  string
	err   error
	cards []*models.Battlecard
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(_ context.Context, card *models.Battlecard) error {
	s.cards = append(s.cards, card)
	return s.err
}

func TestFanout_DeliversToAllSinks(t *testing.T) {
	a := &recordingSink{name: "a"}
	b := &recordingSink{name: "b"}
	c := &recordingSink{name: "c"}

	f := NewFanout(logger.NewTestLogger(t), a, b, c)
	f.Deliver(context.Background(), testCard())

	assert.Len(t, a.cards, 1)
	assert.Len(t, b.cards, 1)
	assert.Len(t, c.cards, 1)
}

func TestFanout_FailedSinkDoesNotBlockOthers(t *testing.T) {
	a := &recordingSink{name: "a", err: errors.New("down")}
	b := &recordingSink{name: "b"}

	f := NewFanout(logger.NewTestLogger(t), a, b)
	f.Deliver(context.Background(), testCard())

	assert.Len(t, a.cards, 1)
	assert.Len(t, b.cards, 1)
}

func TestFanout_NoSinks(t *testing.T) {
	f := NewFanout(logger.NewTestLogger(t))
	f.Deliver(context.Background(), testCard()) // must not panic
}
