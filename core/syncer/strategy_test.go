package syncer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{in: "upload_first", want: UploadFirst},
		{in: "download_first", want: DownloadFirst},
		{in: "upload_only", want: UploadOnly},
		{in: "download_only", want: DownloadOnly},
		{in: "simultaneously", want: Simultaneously},
		{in: "", want: UploadFirst},
		{in: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("Parse_"+tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}

	assert.False(t, Strategy("sideways").Valid())
}

// strategyFixture returns stores where "up" must be uploaded and "down" must
// be downloaded, so every strategy has work in the directions it selects.
func strategyFixture() (*memAdapter, *memAdapter) {
	local := newMemAdapter()
	cloud := newMemAdapter()
	local.put(md("up", 0), []byte("up-detail"))
	cloud.put(md("down", 0), []byte("down-detail"))
	return local, cloud
}

func TestStrategy_UploadFirstOrdering(t *testing.T) {
	local, cloud := strategyFixture()
	rec := &recorder{}
	engine := newEngine(local, cloud, UploadFirst)
	require.NoError(t, engine.Sync(context.Background(), rec.callback()))

	up := rec.firstIndex("saving_to_cloud")
	down := rec.firstIndex("saving_to_local")
	require.NotEqual(t, -1, up)
	require.NotEqual(t, -1, down)
	assert.Less(t, up, down)
}

func TestStrategy_DownloadFirstOrdering(t *testing.T) {
	local, cloud := strategyFixture()
	rec := &recorder{}
	engine := newEngine(local, cloud, DownloadFirst)
	require.NoError(t, engine.Sync(context.Background(), rec.callback()))

	up := rec.firstIndex("saving_to_cloud")
	down := rec.firstIndex("saving_to_local")
	require.NotEqual(t, -1, up)
	require.NotEqual(t, -1, down)
	assert.Less(t, down, up)
}

func TestStrategy_UploadOnly(t *testing.T) {
	local, cloud := strategyFixture()
	rec := &recorder{}
	engine := newEngine(local, cloud, UploadOnly)
	require.NoError(t, engine.Sync(context.Background(), rec.callback()))

	assert.True(t, cloud.has("up"))
	assert.False(t, local.has("down"))
	assert.Zero(t, rec.count("scanning_local"))
	assert.Zero(t, rec.count("saving_to_local"))
	assert.Equal(t, "sync_completed", rec.last())
}

func TestStrategy_DownloadOnly(t *testing.T) {
	local, cloud := strategyFixture()
	rec := &recorder{}
	engine := newEngine(local, cloud, DownloadOnly)
	require.NoError(t, engine.Sync(context.Background(), rec.callback()))

	assert.True(t, local.has("down"))
	assert.False(t, cloud.has("up"))
	assert.Zero(t, rec.count("scanning_cloud"))
	assert.Zero(t, rec.count("saving_to_cloud"))
	assert.Equal(t, "sync_completed", rec.last())
}

func TestStrategy_Simultaneously(t *testing.T) {
	local, cloud := strategyFixture()
	rec := &recorder{}
	engine := newEngine(local, cloud, Simultaneously)
	require.NoError(t, engine.Sync(context.Background(), rec.callback()))

	assert.True(t, cloud.has("up"))
	assert.True(t, local.has("down"))
	assert.Equal(t, "sync_completed", rec.last())
}
