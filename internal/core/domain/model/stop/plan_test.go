package stop_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"

	"github.com/stretchr/testify/assert"
)

func TestRange_Contains(t *testing.T) {
	tests := []struct {
		name     string
		r        stop.Range
		sequence int
		want     bool
	}{
		{"closed range includes lower bound", stop.Between(2, 4), 2, true},
		{"closed range includes upper bound", stop.Between(2, 4), 4, true},
		{"closed range excludes above", stop.Between(2, 4), 5, false},
		{"closed range excludes below", stop.Between(2, 4), 1, false},
		{"open range includes far values", stop.From(3), 1000, true},
		{"open range excludes below", stop.From(3), 2, false},
		{"single element range", stop.Between(3, 3), 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.sequence))
		})
	}
}

func TestRange_IsEmpty(t *testing.T) {
	assert.False(t, stop.From(1).IsEmpty())
	assert.False(t, stop.Between(1, 1).IsEmpty())
	assert.True(t, stop.Between(3, 2).IsEmpty())
	assert.True(t, stop.From(5).IsUnbounded())
	assert.False(t, stop.Between(1, 5).IsUnbounded())
}

func TestPlan_IsEmpty(t *testing.T) {
	var p stop.Plan
	assert.True(t, p.IsEmpty())

	p = append(p, stop.Change{OrderID: kernel.NewUUID(), From: 1, To: 2})
	assert.False(t, p.IsEmpty())
	assert.Contains(t, p[0].String(), "1 -> 2")
}
