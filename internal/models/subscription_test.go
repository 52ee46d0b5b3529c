package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_JSON(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		want   string
	}{
		{name: "paid", amount: MinorAmount(1999), want: `1999`},
		{name: "free", amount: Amount{}, want: `"N/A"`},
		{name: "zero is still a number", amount: MinorAmount(0), want: `0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.amount)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			var back Amount
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.amount, back)
		})
	}
}

func TestAmount_UnmarshalRejectsOtherStrings(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`"free"`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &a))
}

func TestSubscription_JSONKeys(t *testing.T) {
	sub := Subscription{
		ID:            "0b5c7e1e-2f0a-4b8e-8d7d-8a3c5f0e9b11",
		Title:         "Free",
		PlanID:        "0001",
		Period:        "7 days",
		Email:         "a@example.com",
		BuyingDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpireDate:    time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:        StatusActive,
		TransactionID: NotApplicable,
	}

	data, err := json.Marshal(sub)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "N/A", got["amount"])
	assert.Equal(t, "N/A", got["transactionID"])
	assert.Equal(t, "0001", got["planId"])
	assert.Equal(t, "2024-01-08T00:00:00Z", got["expireDate"])
	assert.True(t, sub.IsFree())
}
