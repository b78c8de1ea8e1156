package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		in, want PageRequest
	}{
		{PageRequest{}, PageRequest{Limit: DefaultLimit}},
		{PageRequest{Limit: 5, Offset: 10}, PageRequest{Limit: 5, Offset: 10}},
		{PageRequest{Limit: 500, Offset: -3}, PageRequest{Limit: MaxLimit}},
		{PageRequest{Limit: -1}, PageRequest{Limit: DefaultLimit}},
	}
	for _, tc := range cases {
		got := tc.in
		got.Normalize()
		assert.Equal(t, tc.want, got)
	}
}
