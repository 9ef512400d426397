package receipts

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"parking-ops/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(client *mocks.Client) *fiber.App {
	svc := NewService(client, testStorage, newLookup(), zap.NewNop(), nil)
	app := fiber.New()
	NewHandler(svc, 1).RegisterRoutes(app)
	return app
}

func TestHandler_Get(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("StatObject", mock.Anything, "parking", "receipts/1/100.pdf", mock.Anything).
		Return(minio.ObjectInfo{Size: 11}, nil)
	mockClient.On("GetObject", mock.Anything, "parking", "receipts/1/100.pdf", mock.Anything).
		Return(io.NopCloser(strings.NewReader("%PDF-stored")), nil)

	resp, err := setupApp(mockClient).Test(httptest.NewRequest("GET", "/receipts/100", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "receipt-100.pdf")

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-stored", string(body))
}

func TestHandler_GetGenerated(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("StatObject", mock.Anything, "parking", "receipts/4/100.pdf", mock.Anything).
		Return(minio.ObjectInfo{}, notFound())
	mockClient.On("PutObject", mock.Anything, "parking", "receipts/4/100.pdf", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	resp, err := setupApp(mockClient).Test(httptest.NewRequest("GET", "/receipts/100?facility=4", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Receipt-Generated"))

	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF-"))
}

func TestHandler_GetErrors(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{"Invalid ID", "/receipts/abc", fiber.StatusBadRequest},
		{"Negative ID", "/receipts/-3", fiber.StatusBadRequest},
		{"Unknown", "/receipts/999", fiber.StatusNotFound},
		{"Not Completed", "/receipts/101", fiber.StatusConflict},
		{"Not Selected", "/receipts/102", fiber.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := setupApp(new(mocks.Client)).Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	t.Run("Storage Failure", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("StatObject", mock.Anything, "parking", mock.Anything, mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("timeout"))
		resp, err := setupApp(mockClient).Test(httptest.NewRequest("GET", "/receipts/100", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHandler_Delete(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("RemoveObject", mock.Anything, "parking", "receipts/1/100.pdf", mock.Anything).Return(nil)

	resp, err := setupApp(mockClient).Test(httptest.NewRequest("DELETE", "/receipts/100", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	mockClient.AssertExpectations(t)
}
