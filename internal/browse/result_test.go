package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePageSize(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{10, 10},
		{20, 20},
		{25, 25},
		{50, 50},
		{100, 100},
		{0, 20},
		{-5, 20},
		{33, 20},
		{1000, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePageSize(tt.in), "size %d", tt.in)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		filtered int64
		size     int
		want     int
	}{
		{"below range", 0, 100, 20, 1},
		{"negative", -3, 100, 20, 1},
		{"in range", 3, 100, 20, 3},
		{"last page", 5, 100, 20, 5},
		{"beyond range", 6, 100, 20, 5},
		{"partial last page", 6, 101, 20, 6},
		{"empty result keeps page one", 7, 0, 20, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPage(tt.page, tt.filtered, tt.size))
		})
	}
}

func TestStatusCategory(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"Closed", "resolved"},
		{"Resolved - Confirmed", "resolved"},
		{"Open", "open"},
		{"New", "open"},
		{"Pending Customer", "pending"},
		{"Canned Response", "other"},
		{"", "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusCategory(tt.status), "status %q", tt.status)
	}
}
