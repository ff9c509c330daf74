package upload_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/malikebad/frameview/internal/domain/upload"
	"github.com/malikebad/frameview/internal/domain/video"
	"github.com/malikebad/frameview/internal/store"
)

// manualTimer captures scheduled callbacks so ticks can be fired
// deterministically from the test.
type manualTimer struct {
	mu        sync.Mutex
	delays    []time.Duration
	callbacks []func()
}

func (m *manualTimer) after(d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays = append(m.delays, d)
	m.callbacks = append(m.callbacks, fn)
}

// fire runs the oldest pending callback and reports whether one existed.
func (m *manualTimer) fire() bool {
	m.mu.Lock()
	if len(m.callbacks) == 0 {
		m.mu.Unlock()
		return false
	}
	fn := m.callbacks[0]
	m.callbacks = m.callbacks[1:]
	m.delays = m.delays[1:]
	m.mu.Unlock()
	fn()
	return true
}

func (m *manualTimer) drain() {
	for m.fire() {
	}
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func newSimulator(t *testing.T, roll func() float64) (*upload.Simulator, *video.Repository, *manualTimer) {
	t.Helper()
	videos := video.NewRepository(store.NewMemory(), fixedNow, nil)
	timer := &manualTimer{}
	sim := upload.NewSimulator(videos, 200*time.Millisecond, timer.after, roll, nil)
	return sim, videos, timer
}

func alwaysSucceed() float64 { return 0.9 }
func alwaysFail() float64    { return 0.1 }

func TestEnqueue_StartsPending(t *testing.T) {
	sim, _, _ := newSimulator(t, alwaysSucceed)

	job := sim.Enqueue("take-01.mp4", "video/mp4", 1024)
	require.NotEmpty(t, job.ID)
	require.Equal(t, upload.JobPending, job.Status)
	require.Equal(t, 0, job.Progress)

	jobs := sim.Jobs()
	require.Len(t, jobs, 1)
	require.Equal(t, job.ID, jobs[0].ID)
}

func TestEnqueueCloud_SynthesizesSampleFile(t *testing.T) {
	sim, _, _ := newSimulator(t, alwaysSucceed)

	job := sim.EnqueueCloud(video.SourceGoogleDrive)
	require.Equal(t, "sample_video_from_google drive.mp4", job.Name)
	require.Equal(t, int64(50*1024*1024), job.Size)
	require.Equal(t, video.SourceGoogleDrive, job.Source)
	require.Equal(t, upload.JobPending, job.Status)
}

func TestStart_AdvancesTenPercentPerTick(t *testing.T) {
	sim, _, timer := newSimulator(t, alwaysSucceed)
	job := sim.Enqueue("take-01.mp4", "video/mp4", 1024)

	require.NoError(t, sim.Start(job.ID))
	require.Equal(t, upload.JobUploading, sim.Jobs()[0].Status)

	require.True(t, timer.fire())
	require.Equal(t, 10, sim.Jobs()[0].Progress)
	require.True(t, timer.fire())
	require.Equal(t, 20, sim.Jobs()[0].Progress)
}

func TestStart_CompletedJobLandsInLibrary(t *testing.T) {
	sim, videos, timer := newSimulator(t, alwaysSucceed)
	ctx := context.Background()

	seeded, err := videos.List(ctx)
	require.NoError(t, err)

	job := sim.Enqueue("take-01.mp4", "video/mp4", 1024)
	require.NoError(t, sim.Start(job.ID))
	timer.drain()

	require.Equal(t, upload.JobCompleted, sim.Jobs()[0].Status)
	require.Equal(t, 100, sim.Jobs()[0].Progress)

	after, err := videos.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(seeded)+1)

	added := after[len(after)-1]
	require.Equal(t, "take-01.mp4", added.Title)
	require.Equal(t, "Current Client", added.Client)
	require.Equal(t, video.StatusUploaded, added.Status)
	require.Equal(t, video.PlaceholderURL, added.FileURL)
}

func TestStart_CloudUploadGetsPlaceholderURL(t *testing.T) {
	sim, videos, timer := newSimulator(t, alwaysSucceed)
	ctx := context.Background()

	job := sim.EnqueueCloud(video.SourceDropbox)
	require.NoError(t, sim.Start(job.ID))
	timer.drain()

	library, err := videos.List(ctx)
	require.NoError(t, err)
	added := library[len(library)-1]
	require.Equal(t, "cloud-placeholder-url", added.FileURL)
	require.Equal(t, video.SourceDropbox, added.Source)
}

func TestStart_FailedJobStaysOutOfLibrary(t *testing.T) {
	sim, videos, timer := newSimulator(t, alwaysFail)
	ctx := context.Background()

	seeded, err := videos.List(ctx)
	require.NoError(t, err)

	job := sim.Enqueue("take-01.mp4", "video/mp4", 1024)
	require.NoError(t, sim.Start(job.ID))
	timer.drain()

	require.Equal(t, upload.JobFailed, sim.Jobs()[0].Status)

	after, err := videos.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(seeded))
}

func TestStart_NonVideoFileIsNotRecorded(t *testing.T) {
	sim, videos, timer := newSimulator(t, alwaysSucceed)
	ctx := context.Background()

	seeded, err := videos.List(ctx)
	require.NoError(t, err)

	job := sim.Enqueue("notes.pdf", "application/pdf", 2048)
	require.NoError(t, sim.Start(job.ID))
	timer.drain()

	require.Equal(t, upload.JobCompleted, sim.Jobs()[0].Status)

	after, err := videos.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(seeded))
}

func TestStart_Errors(t *testing.T) {
	sim, _, _ := newSimulator(t, alwaysSucceed)

	require.ErrorIs(t, sim.Start("missing"), upload.ErrJobNotFound)

	job := sim.Enqueue("take-01.mp4", "video/mp4", 1024)
	require.NoError(t, sim.Start(job.ID))
	require.ErrorIs(t, sim.Start(job.ID), upload.ErrJobNotPending)
}

func TestStartAll_OnlyPendingJobs(t *testing.T) {
	sim, _, timer := newSimulator(t, alwaysSucceed)

	first := sim.Enqueue("a.mp4", "video/mp4", 1)
	second := sim.Enqueue("b.mp4", "video/mp4", 2)
	require.NoError(t, sim.Start(first.ID))
	timer.drain()

	sim.StartAll()

	for _, job := range sim.Jobs() {
		switch job.ID {
		case first.ID:
			require.Equal(t, upload.JobCompleted, job.Status)
		case second.ID:
			require.Equal(t, upload.JobUploading, job.Status)
		}
	}
}

func TestRemove(t *testing.T) {
	sim, _, _ := newSimulator(t, alwaysSucceed)

	job := sim.Enqueue("take-01.mp4", "video/mp4", 1024)
	require.True(t, sim.Remove(job.ID))
	require.False(t, sim.Remove(job.ID))
	require.Empty(t, sim.Jobs())
}
