package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withProduction(t *testing.T, on bool) {
	t.Helper()
	prev := IsProduction
	IsProduction = on
	t.Cleanup(func() { IsProduction = prev })
}

func TestMaskIDShortensUUIDInProduction(t *testing.T) {
	withProduction(t, true)

	masked := MaskID("3f2a6c0e-9d41-4a8b-b5f7-2c8e1a7d6b90")
	assert.Equal(t, "3f2a6c0e...", masked)
}

func TestMaskIDPassesThroughInDevelopment(t *testing.T) {
	withProduction(t, false)

	id := "3f2a6c0e-9d41-4a8b-b5f7-2c8e1a7d6b90"
	assert.Equal(t, id, MaskID(id))
}

func TestMaskStringHidesAmountsAndUUIDs(t *testing.T) {
	withProduction(t, true)

	in := "user 3f2a6c0e-9d41-4a8b-b5f7-2c8e1a7d6b90 spent 1234.56"
	out := MaskString(in)

	assert.NotContains(t, out, "1234.56")
	assert.NotContains(t, out, "9d41-4a8b")
	assert.Contains(t, out, "3f2a6c0e...")
	assert.Contains(t, out, "***")
}

func TestMaskStringUntouchedInDevelopment(t *testing.T) {
	withProduction(t, false)

	in := "user 3f2a6c0e-9d41-4a8b-b5f7-2c8e1a7d6b90 spent 1234.56"
	assert.Equal(t, in, MaskString(in))
}

func TestMaskAmount(t *testing.T) {
	withProduction(t, true)
	assert.Equal(t, "***", MaskAmount(1234.56))

	withProduction(t, false)
	assert.Equal(t, "1234.56", MaskAmount(1234.56))
}

func TestGetEnvMode(t *testing.T) {
	withProduction(t, true)
	assert.Equal(t, "production", GetEnvMode())

	withProduction(t, false)
	assert.Equal(t, "development", GetEnvMode())
}
