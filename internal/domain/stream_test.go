package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRouteOptimizeEvent_HasExplicitStart(t *testing.T) {
	tests := []struct {
		name        string
		event       RouteOptimizeEvent
		expected    bool
		description string
	}{
		{
			name: "start index set to zero",
			event: RouteOptimizeEvent{
				RequestID:  uuid.New(),
				Locations:  []string{"Mumbai", "Pune"},
				StartIndex: intPtr(0),
			},
			expected:    true,
			description: "Should return true for explicit zero start",
		},
		{
			name: "positive start index",
			event: RouteOptimizeEvent{
				RequestID:  uuid.New(),
				Locations:  []string{"Mumbai", "Pune", "Goa"},
				StartIndex: intPtr(2),
			},
			expected:    true,
			description: "Should return true for a positive start index",
		},
		{
			name: "no start index",
			event: RouteOptimizeEvent{
				RequestID: uuid.New(),
				Locations: []string{"Mumbai", "Pune"},
			},
			expected:    false,
			description: "Should return false when start index is omitted",
		},
		{
			name: "negative start index",
			event: RouteOptimizeEvent{
				RequestID:  uuid.New(),
				Locations:  []string{"Mumbai", "Pune"},
				StartIndex: intPtr(-1),
			},
			expected:    false,
			description: "Should return false for a negative start index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.event.HasExplicitStart()
			assert.Equal(t, tt.expected, result, tt.description)
		})
	}
}

// Helper function to create int pointers
func intPtr(i int) *int {
	return &i
}
