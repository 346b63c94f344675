package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDeliveryDay(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    DeliveryDay
		wantErr bool
	}{
		{name: "Canonical", raw: "sunday", want: Sunday},
		{name: "Mixed case and spaces", raw: "  Thursday ", want: Thursday},
		{name: "Friday is not a delivery day", raw: "friday", wantErr: true},
		{name: "Empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDeliveryDay(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDeliveryDay)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeliveryDayLabels(t *testing.T) {
	days := DeliveryDays()
	assert.Len(t, days, 5)
	for _, day := range days {
		assert.True(t, day.IsValid())
		assert.NotEmpty(t, day.Label())
	}
	assert.Equal(t, "ראשון", Sunday.Label())
	assert.Equal(t, "", DeliveryDay("saturday").Label())
}
