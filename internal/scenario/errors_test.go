package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireCategory asserts err carries a ValidationError of the wanted category.
func requireCategory(t *testing.T, err error, want ErrorCategory) {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, want, verr.Category)
}

func TestErrorCategoryString(t *testing.T) {
	assert.Equal(t, "membership", CategoryMembership.String())
	assert.Equal(t, "range", CategoryRange.String())
	assert.Equal(t, "dimension", CategoryDimension.String())
	assert.Equal(t, "index", CategoryIndex.String())
	assert.Equal(t, "unknown", ErrorCategory(42).String())
}

func TestValidationErrorMessage(t *testing.T) {
	err := newValidationError(CategoryRange, "waypoints", "longitude %v out of range", 200.0)
	assert.Equal(t, "waypoints: longitude 200 out of range", err.Error())
	assert.Equal(t, CategoryRange, err.Category)
}
