package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeImageIndex(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"numeric string", "7", 7},
		{"padded string", " 3 ", 3},
		{"string with suffix", "5px", 5},
		{"above range", 99, 9},
		{"negative", -1, 0},
		{"negative string", "-12", 0},
		{"int64", int64(4), 4},
		{"float truncates", 6.9, 6},
		{"huge float", 1e300, 9},
		{"non numeric", "banner", 0},
		{"empty string", "", 0},
		{"missing", nil, 0},
		{"bool", true, 0},
		{"overflowing string", "99999999999999999999999", 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeImageIndex(tc.in, 10))
		})
	}
}

func TestNormalizeImageIndexWithoutBanners(t *testing.T) {
	assert.Equal(t, 0, NormalizeImageIndex(5, 0))
}

func TestDifficultyColor(t *testing.T) {
	assert.Equal(t, "#10b981", DifficultyColor("Fácil"))
	assert.Equal(t, "#10b981", DifficultyColor("easy"))
	assert.Equal(t, "#f59e0b", DifficultyColor(" MODERADA "))
	assert.Equal(t, "#dc2626", DifficultyColor("dificil"))
	assert.Equal(t, DefaultDifficultyColor, DifficultyColor("extrema"))
	assert.Equal(t, DefaultDifficultyColor, DifficultyColor(""))
}

func TestTrailInputFieldsOnlySupplied(t *testing.T) {
	name := "  Pedra Grande "
	fields := TrailInput{TrailName: &name, ImageIndex: "12"}.Fields(10)

	assert.Equal(t, map[string]any{FieldTrailName: "Pedra Grande", FieldImageIndex: 9}, fields)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.True(t, ParseRole("admin").IsAdmin())
	for _, v := range []any{"user", "Admin", "superuser", "", nil, 1} {
		assert.Equal(t, RoleUser, ParseRole(v), "%v", v)
	}
}

func TestRequireFields(t *testing.T) {
	err := RequireFields(map[string]string{"a": "x", "b": " ", "c": ""}, "a", "b", "c")
	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"b", "c"}, verr.Fields)

	assert.NoError(t, RequireFields(map[string]string{"a": "x"}, "a"))
}
