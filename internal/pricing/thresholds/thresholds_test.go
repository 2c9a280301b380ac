package thresholds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, 500.0, s.ROIExcellent)
	assert.Equal(t, 300.0, s.ROIGood)
	assert.Equal(t, 2.0, s.ElasticityHigh)
	assert.Equal(t, -15.0, s.PriceAdvantage)
	assert.Equal(t, 10.0, s.PriceDisadvantage)
	assert.Equal(t, 40.0, s.UpliftExcellent)
	assert.Equal(t, 25.0, s.DiscountHigh)
	assert.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Set)
		wantErr bool
	}{
		{"defaults", func(*Set) {}, false},
		{"roi inverted", func(s *Set) { s.ROIGood = 600 }, true},
		{"elasticity inverted", func(s *Set) { s.ElasticityLow = 3 }, true},
		{"acquisition inverted", func(s *Set) { s.AcquisitionStandard = 80 }, true},
		{"duration inverted", func(s *Set) { s.DurationShort = 40 }, true},
		{"negative parity band", func(s *Set) { s.ParityBand = -1 }, true},
		{"price gap inverted", func(s *Set) { s.PriceAdvantage = 20 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
