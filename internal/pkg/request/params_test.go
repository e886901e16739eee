package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParamsValidate(t *testing.T) {
	valid := []PageParams{
		{From: 0, Size: 1},
		{From: 0, Size: 10},
		{From: 17, Size: 10},
	}
	for _, p := range valid {
		assert.NoError(t, p.Validate(), "%+v", p)
	}

	invalid := []PageParams{
		{From: -1, Size: 10},
		{From: 0, Size: 0},
		{From: 5, Size: -3},
	}
	for _, p := range invalid {
		assert.ErrorIs(t, p.Validate(), ErrInvalidPage, "%+v", p)
	}
}

func TestPageParamsOffset(t *testing.T) {
	cases := []struct {
		from, size, want int
	}{
		{0, 10, 0},
		{10, 10, 10},
		{17, 10, 10},
		{9, 10, 0},
		{25, 10, 20},
		{5, 5, 5},
		{7, 3, 6},
	}
	for _, tc := range cases {
		p := PageParams{From: tc.from, Size: tc.size}
		assert.Equal(t, tc.want, p.Offset(), "from=%d size=%d", tc.from, tc.size)
	}
}
