package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/?lat=56.42&bad=abc", nil)

	lat, err := FloatParam(r, "lat")
	require.NoError(t, err)
	assert.InDelta(t, 56.42, lat, 1e-9)

	_, err = FloatParam(r, "missing")
	assert.Error(t, err)

	_, err = FloatParam(r, "bad")
	assert.Error(t, err)
}

func TestFloatParamOrDefault(t *testing.T) {
	r := httptest.NewRequest("GET", "/?radius=1000", nil)

	radius, err := FloatParamOrDefault(r, "radius", 50)
	require.NoError(t, err)
	assert.InDelta(t, 1000, radius, 1e-9)

	fallback, err := FloatParamOrDefault(r, "missing", 50)
	require.NoError(t, err)
	assert.InDelta(t, 50, fallback, 1e-9)
}

func TestBoolParamOrDefault(t *testing.T) {
	r := httptest.NewRequest("GET", "/?cycling=false&bad=maybe", nil)

	cycling, err := BoolParamOrDefault(r, "cycling", true)
	require.NoError(t, err)
	assert.False(t, cycling)

	fallback, err := BoolParamOrDefault(r, "missing", true)
	require.NoError(t, err)
	assert.True(t, fallback)

	_, err = BoolParamOrDefault(r, "bad", true)
	assert.Error(t, err)
}
