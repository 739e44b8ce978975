package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryResult_Succeeded(t *testing.T) {
	tests := []struct {
		status   string
		category Category
		want     bool
	}{
		{DeliveryStatusSuccessful, CategoryAirtime, true},
		{DeliveryStatusSuccessful, CategoryElectricity, true},
		{DeliveryStatusProcessing, CategoryAirtime, false},
		{DeliveryStatusProcessing, CategoryData, false},
		{"PENDING", CategoryData, false},
		{DeliveryStatusProcessing, CategoryElectricity, true},
		{DeliveryStatusProcessing, CategoryCableTV, true},
		{DeliveryStatusFailed, CategoryCableTV, false},
		{"", CategoryAirtime, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category)+"/"+tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, DeliveryResult{Status: tt.status}.Succeeded(tt.category))
		})
	}
}
