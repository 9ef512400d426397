package operations

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(NewService(newStubSource(), zap.NewNop()), 1)

	assert.Equal(t, "operations", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)

	disabled := NewFeature(NewService(nil, zap.NewNop()), 1)
	assert.False(t, disabled.IsEnabled())
}
