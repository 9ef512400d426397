package operations

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"parking-ops/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) *fiber.App {
	svc := NewService(NewDBSource(setupSeededDB(t)), zap.NewNop())
	app := fiber.New()
	NewHandler(svc, 1).RegisterRoutes(app)
	return app
}

func decode[T any](t *testing.T, body io.Reader) T {
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}

func TestHandler_List(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/operations", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[ListResponse](t, resp.Body)
	assert.Equal(t, int64(1), body.Facility)
	assert.Equal(t, 3, body.Count)
	assert.Equal(t, []string{"res-2", "oc-11", "res-1"}, ids(body.Operations))
	assert.Equal(t, 1, body.Summary.WalkIns)
	assert.Equal(t, 1, body.Summary.ByStatus[reconcile.StatusFinalizedPaid])

	walkIn := body.Operations[1]
	assert.Equal(t, reconcile.StatusFinalizedPaid, walkIn.FinalStatus)
	require.NotNil(t, walkIn.DurationMinutes)
	assert.Equal(t, int64(90), *walkIn.DurationMinutes)
	require.NotNil(t, walkIn.Payment)
	assert.Equal(t, int64(100), walkIn.Payment.ID)
}

func TestHandler_ListFiltered(t *testing.T) {
	app := setupApp(t)

	tests := []struct {
		name   string
		url    string
		status int
		want   []string
	}{
		{"Status", "/operations?status=active", fiber.StatusOK, []string{"res-1"}},
		{"Search", "/operations?q=luis", fiber.StatusOK, []string{"res-2"}},
		{"Range", "/operations?from=2024-01-15T09:00:00Z&to=2024-01-15T23:59:59Z", fiber.StatusOK, []string{"oc-11"}},
		{"Other Facility", "/operations?facility=2", fiber.StatusOK, []string{"res-3"}},
		{"Bad Date", "/operations?from=soon", fiber.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.want == nil {
				return
			}
			body := decode[ListResponse](t, resp.Body)
			assert.Equal(t, tt.want, ids(body.Operations))
		})
	}
}

func TestHandler_Get(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/operations/res-2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	op := decode[reconcile.Operation](t, resp.Body)
	assert.Equal(t, reconcile.StatusCancelled, op.FinalStatus)
	require.Len(t, op.Timeline, 2)
	assert.Equal(t, reconcile.EventCreated, op.Timeline[0].Key)
	assert.Equal(t, reconcile.EventCancelled, op.Timeline[1].Key)

	resp, err = app.Test(httptest.NewRequest("GET", "/operations/res-404", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandler_Audit(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/operations/audit", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	report := decode[AuditReport](t, resp.Body)
	assert.Equal(t, int64(1), report.FacilityID)
	assert.Equal(t, 3, report.Summary.Operations)
	assert.Empty(t, report.Anomalies)
}

func TestHandler_SourceFailure(t *testing.T) {
	svc := NewService(NewDBSource(nil), zap.NewNop())
	app := fiber.New()
	NewHandler(svc, 1).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/operations", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
