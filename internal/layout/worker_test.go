package layout

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzstudio/invoicedesk/internal/common"
)

// blockingRasterizer parks every render until release is closed.
type blockingRasterizer struct {
	started chan struct{}
	release chan struct{}
}

func (r *blockingRasterizer) FirstPageImage(ctx context.Context, path string) (PageImage, error) {
	select {
	case r.started <- struct{}{}:
	default:
	}
	select {
	case <-r.release:
	case <-ctx.Done():
	}
	return PageImage{}, common.ErrUnsupported
}

func TestWorkerSingleSlot(t *testing.T) {
	raster := &blockingRasterizer{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	w := NewWorker(NewEngine(raster, quietLogger()), quietLogger())
	grid, _ := ParseGridShape("1x1")
	opts := Options{Grid: grid, Copies: 1, OutputPath: filepath.Join(t.TempDir(), "out.pdf")}

	jobID, err := w.Submit(context.Background(), []string{"a.pdf"}, opts)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, jobID)

	<-raster.started
	assert.True(t, w.Busy())

	_, err = w.Submit(context.Background(), []string{"b.pdf"}, opts)
	assert.True(t, errors.Is(err, common.ErrBusy))

	close(raster.release)
	res := <-w.Results()
	require.NoError(t, res.Err)
	assert.Equal(t, jobID, res.JobID)
	assert.Equal(t, opts.OutputPath, res.OutputPath)

	_, err = os.Stat(opts.OutputPath)
	assert.NoError(t, err)
}

func TestWorkerCancelRemovesOutput(t *testing.T) {
	raster := &blockingRasterizer{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	w := NewWorker(NewEngine(raster, quietLogger()), quietLogger())
	grid, _ := ParseGridShape("1x1")
	opts := Options{Grid: grid, Copies: 1, OutputPath: filepath.Join(t.TempDir(), "out.pdf")}

	ctx, cancel := context.WithCancel(context.Background())
	_, err := w.Submit(ctx, []string{"a.pdf"}, opts)
	require.NoError(t, err)

	<-raster.started
	cancel()

	select {
	case res := <-w.Results():
		require.Error(t, res.Err)
		_, statErr := os.Stat(opts.OutputPath)
		assert.True(t, os.IsNotExist(statErr), "canceled job must not leave an output file")
	case <-time.After(5 * time.Second):
		t.Fatal("no terminal result after cancellation")
	}
}
