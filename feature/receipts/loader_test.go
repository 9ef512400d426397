package receipts

import (
	"testing"

	"parking-ops/core/server"
	"parking-ops/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(new(mocks.Client), testStorage, newLookup(), zap.NewNop(), server.Config{Facility: 1, Timezone: "UTC"})

	assert.Equal(t, "receipts", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
