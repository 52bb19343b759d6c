package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromDecimal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    domain.Money
		wantErr bool
	}{
		{name: "whole amount", in: "1000", want: 100000},
		{name: "two decimals", in: "10.55", want: 1055},
		{name: "negative", in: "-3.1", want: -310},
		{name: "trailing zeros are fine", in: "7.500", want: 750},
		{name: "three decimals rejected", in: "0.001", wantErr: true},
		{name: "out of range", in: "999999999999999999999", wantErr: true},
		{name: "ceiling accepted", in: "1000000000000", want: domain.MaxAmount},
		{name: "negative ceiling accepted", in: "-1000000000000", want: -domain.MaxAmount},
		{name: "one cent above the ceiling", in: "1000000000000.01", wantErr: true},
		{name: "near int64 max", in: "92233720368547758.07", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NewMoneyFromDecimal(decimal.RequireFromString(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	b, err := json.Marshal(domain.Money(1050))
	require.NoError(t, err)
	assert.Equal(t, `"10.50"`, string(b))

	var fromNumber, fromString domain.Money
	require.NoError(t, json.Unmarshal([]byte(`12.3`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"12.30"`), &fromString))
	assert.Equal(t, domain.Money(1230), fromNumber)
	assert.Equal(t, fromNumber, fromString)

	var bad domain.Money
	assert.Error(t, json.Unmarshal([]byte(`0.105`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`"92233720368547758.07"`), &bad))
}

func TestMoney_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 summed ten times must be exactly 3.00
	var total domain.Money
	for i := 0; i < 10; i++ {
		total += domain.MustMoney("0.1") + domain.MustMoney("0.2")
	}
	assert.Equal(t, domain.MustMoney("3"), total)
	assert.Equal(t, "3.00", total.String())
}
