package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/elevator/internal/models"
)

func TestSubscriptionDoc(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	base := models.Subscription{
		ID:         "id-1",
		Title:      "Monthly",
		PlanID:     "0002",
		Period:     "1 month",
		Email:      "ann@example.com",
		BuyingDate: now,
		ExpireDate: now.AddDate(0, 1, 0),
		CreatedAt:  now,
		Status:     models.StatusActive,
	}

	tests := []struct {
		name       string
		amount     models.Amount
		txID       string
		wantStored any
	}{
		{name: "paid stores int64", amount: models.MinorAmount(999), txID: "pi_1", wantStored: int64(999)},
		{name: "free stores N/A", amount: models.Amount{}, txID: models.NotApplicable, wantStored: models.NotApplicable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := base
			sub.Amount = tt.amount
			sub.TransactionID = tt.txID

			doc := toDoc(sub)
			assert.Equal(t, tt.wantStored, doc.Amount)
			assert.Equal(t, sub, doc.toModel())
		})
	}
}

func TestSubscriptionDoc_Int32Amount(t *testing.T) {
	doc := subscriptionDoc{Amount: int32(500)}
	assert.Equal(t, models.MinorAmount(500), doc.toModel().Amount)
}
