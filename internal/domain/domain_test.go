package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_JSON(t *testing.T) {
	p := Pricing{Display: MustMoney("70"), Ceiling: MustMoney("109.9")}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"display":"70.00","ceiling":"109.90"}`, string(b))

	var back Pricing
	require.NoError(t, json.Unmarshal(b, &back))
	require.NotNil(t, back.Display)
	assert.True(t, back.Display.Equal(p.Display.Decimal))
	assert.Nil(t, back.CompareAt)
}

func TestPricing_AbsentPrices(t *testing.T) {
	b, err := json.Marshal(Pricing{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"display":null,"ceiling":null}`, string(b))
}

func TestGuest_Expired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	g := &Guest{ExpiresAt: now.Add(-time.Second)}
	assert.True(t, g.Expired(now))

	g.ExpiresAt = now
	assert.False(t, g.Expired(now))
}
