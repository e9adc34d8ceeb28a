package status

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"cloud-sync/core/metadata"
	"cloud-sync/core/syncer"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRunner struct {
	started chan struct{}
	err     error
}

func (f *fakeRunner) Sync(ctx context.Context, progress syncer.ProgressFunc) error {
	if progress != nil {
		progress(syncer.SyncCompleted{})
	}
	close(f.started)
	return f.err
}

func setupTestApp(t *testing.T) (*fiber.App, *Service, *fakeRunner) {
	t.Helper()
	app := fiber.New()
	svc := NewService(zap.NewNop())
	runner := &fakeRunner{started: make(chan struct{})}
	handler := NewHandler(svc, runner)
	handler.RegisterRoutes(app)
	return app, svc, runner
}

func TestHandleStatus(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	svc.Record(syncer.SavedToCloud[metadata.Metadata]{Metadata: metadata.Metadata{ID: "a"}})
	svc.Record(syncer.SyncCompleted{})

	req := httptest.NewRequest("GET", "/sync/status", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sum Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	assert.Equal(t, "idle", sum.Phase)
	assert.Equal(t, 1, sum.Uploaded)
	assert.NotNil(t, sum.LastCompleted)
}

func TestHandleEvents(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	svc.Record(syncer.ScanningCloud{})
	svc.Record(syncer.SavingToCloud[metadata.Metadata]{Metadata: metadata.Metadata{ID: "b"}})

	req := httptest.NewRequest("GET", "/sync/events", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Events []Event `json:"events"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Events, 2)
	assert.Equal(t, "scanning_cloud", body.Events[0].State)
	assert.Equal(t, "b", body.Events[1].ItemID)
}

func TestHandleRun(t *testing.T) {
	app, svc, runner := setupTestApp(t)

	req := httptest.NewRequest("POST", "/sync/run", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	select {
	case <-runner.started:
	case <-time.After(time.Second):
		t.Fatal("sync was not triggered")
	}

	// The runner reported completion through the service's callback.
	assert.Eventually(t, func() bool {
		return svc.Snapshot().LastCompleted != nil
	}, time.Second, 10*time.Millisecond)
}
