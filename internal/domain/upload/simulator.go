package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/malikebad/frameview/internal/domain/video"
)

// cloudPlaceholderURL stands in for files "fetched" from a cloud provider;
// no bytes ever move in this simulation.
const cloudPlaceholderURL = "cloud-placeholder-url"

// cloudSampleSize is the size of the synthesized cloud sample file.
const cloudSampleSize = 50 * 1024 * 1024

// JobStatus is the lifecycle state of a queued upload.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobUploading JobStatus = "uploading"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job is one queued file. Jobs are transient UI state and are never
// persisted; only the resulting video record is.
type Job struct {
	ID          string
	Name        string
	Size        int64
	ContentType string
	Source      video.Source
	Progress    int
	Status      JobStatus
}

var (
	// ErrJobNotFound indicates no queued job has the given id.
	ErrJobNotFound = errors.New("upload job not found")
	// ErrJobNotPending indicates the job already started or finished.
	ErrJobNotPending = errors.New("upload job is not pending")
)

// Simulator fakes the upload pipeline: progress advances on a timer and a
// finished video-typed job is appended to the video library. Ticks are
// fire-and-forget and cannot be cancelled once started.
type Simulator struct {
	videos *video.Repository
	tick   time.Duration
	after  func(d time.Duration, fn func())
	roll   func() float64
	logger *slog.Logger

	mu   sync.Mutex
	jobs []*Job
}

// NewSimulator creates a Simulator feeding completed uploads into videos.
// after and roll may be nil for real timers and math/rand; tick <= 0 selects
// the default 200 ms.
func NewSimulator(videos *video.Repository, tick time.Duration, after func(time.Duration, func()), roll func() float64, logger *slog.Logger) *Simulator {
	if tick <= 0 {
		tick = 200 * time.Millisecond
	}
	if after == nil {
		after = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	if roll == nil {
		roll = rand.Float64
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Simulator{videos: videos, tick: tick, after: after, roll: roll, logger: logger}
}

// Enqueue adds a pending job for a local file.
func (s *Simulator) Enqueue(name, contentType string, size int64) *Job {
	return s.enqueue(name, contentType, size, video.SourceLocal)
}

// EnqueueCloud adds a pending job for the sample file the given cloud
// service would hand over. The picker itself is a placeholder.
func (s *Simulator) EnqueueCloud(service video.Source) *Job {
	name := fmt.Sprintf("sample_video_from_%s.mp4", strings.ToLower(string(service)))
	return s.enqueue(name, "video/mp4", cloudSampleSize, service)
}

func (s *Simulator) enqueue(name, contentType string, size int64, source video.Source) *Job {
	job := &Job{
		ID:          uuid.NewString(),
		Name:        name,
		Size:        size,
		ContentType: contentType,
		Source:      source,
		Status:      JobPending,
	}
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()
	return job
}

// Remove drops a job from the queue and reports whether it existed.
func (s *Simulator) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, job := range s.jobs {
		if job.ID == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// Jobs returns a snapshot of the queue.
func (s *Simulator) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Job, len(s.jobs))
	for i, job := range s.jobs {
		snapshot[i] = *job
	}
	return snapshot
}

// Start begins the simulated transfer for a pending job: progress advances
// 10% per tick, and once past 100% the upload succeeds four times out of
// five. A successful video-typed job lands in the video library.
func (s *Simulator) Start(id string) error {
	s.mu.Lock()
	job := s.find(id)
	if job == nil {
		s.mu.Unlock()
		return ErrJobNotFound
	}
	if job.Status != JobPending {
		s.mu.Unlock()
		return ErrJobNotPending
	}
	job.Status = JobUploading
	job.Progress = 0
	s.mu.Unlock()

	s.scheduleTick(id)
	return nil
}

// StartAll starts every pending job.
func (s *Simulator) StartAll() {
	for _, job := range s.Jobs() {
		if job.Status == JobPending {
			// Already-started jobs are skipped, so the error is impossible here.
			_ = s.Start(job.ID)
		}
	}
}

func (s *Simulator) scheduleTick(id string) {
	s.after(s.tick, func() {
		s.mu.Lock()
		job := s.find(id)
		if job == nil || job.Status != JobUploading {
			s.mu.Unlock()
			return
		}
		job.Progress += 10
		if job.Progress <= 100 {
			s.mu.Unlock()
			s.scheduleTick(id)
			return
		}
		job.Progress = 100
		success := s.roll() > 0.2
		if success {
			job.Status = JobCompleted
		} else {
			job.Status = JobFailed
		}
		finished := *job
		s.mu.Unlock()

		if !success {
			s.logger.Warn("upload failed", "name", finished.Name, "source", finished.Source)
			return
		}
		s.logger.Info("upload complete", "name", finished.Name, "source", finished.Source)
		if !strings.HasPrefix(finished.ContentType, "video/") {
			return
		}

		fileURL := video.PlaceholderURL
		if finished.Source != video.SourceLocal {
			fileURL = cloudPlaceholderURL
		}
		if _, err := s.videos.Add(context.Background(), video.Input{
			Title:   finished.Name,
			Client:  "Current Client",
			FileURL: fileURL,
			Source:  finished.Source,
		}); err != nil {
			s.logger.Error("recording uploaded video failed", "name", finished.Name, "error", err)
		}
	})
}

// find returns the job with id. Callers must hold s.mu.
func (s *Simulator) find(id string) *Job {
	for _, job := range s.jobs {
		if job.ID == id {
			return job
		}
	}
	return nil
}
