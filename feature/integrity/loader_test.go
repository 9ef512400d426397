package integrity

import (
	"testing"

	"parking-ops/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(new(mocks.Client), testStorage, zap.NewNop(), nil)

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)

	assert.False(t, NewFeature(nil, testStorage, zap.NewNop(), nil).IsEnabled())
}
