package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/malikebad/frameview/internal/config"
	"github.com/malikebad/frameview/internal/domain/auth"
	"github.com/malikebad/frameview/internal/domain/authz"
	"github.com/malikebad/frameview/internal/domain/calendar"
	"github.com/malikebad/frameview/internal/domain/chat"
	"github.com/malikebad/frameview/internal/domain/contact"
	"github.com/malikebad/frameview/internal/domain/download"
	"github.com/malikebad/frameview/internal/domain/identity"
	"github.com/malikebad/frameview/internal/domain/invitation"
	"github.com/malikebad/frameview/internal/domain/settings"
	"github.com/malikebad/frameview/internal/domain/upload"
	"github.com/malikebad/frameview/internal/domain/video"
	"github.com/malikebad/frameview/internal/sqlite"
	"github.com/malikebad/frameview/internal/store"
)

// smoke walks the whole product surface against a real backend: sign up,
// gate checks, library, uploads, invitations, calendar, chat, downloads,
// settings and the contact form. It exits non-zero on the first failure.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	kv, cleanup, err := openStore(cfg.Store)
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.Store.Backend, err)
	}
	defer cleanup()
	logger.Info("store ready", "backend", cfg.Store.Backend, "path", cfg.Store.Path)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	accounts := identity.NewRepository(kv)
	sessions := auth.NewService(accounts, kv, cfg.Auth.SuperadminEmail, logger)
	gate := authz.NewGate(sessions)
	videos := video.NewRepository(kv, time.Now, logger)
	uploads := upload.NewSimulator(videos, cfg.Sim.UploadTick, nil, nil, logger)
	invitations := invitation.NewRepository(kv, time.Now, logger)
	events := calendar.NewRepository(kv, time.Now, logger)
	threads := chat.NewService(kv, cfg.Sim.ChatReplyDelay, time.Now, nil, logger)
	downloads := download.NewRepository(kv, time.Now, logger)
	toggles := settings.NewRepository(kv, logger)
	contacts := contact.NewRepository(kv, logger)

	// Session lifecycle and the gate.
	if _, err := sessions.Restore(ctx); err != nil {
		log.Fatalf("restore session: %v", err)
	}
	if got := gate.Check(); got != authz.RedirectToSignIn && got != authz.Allow {
		log.Fatalf("gate before login: unexpected decision %q", got)
	}

	admin, err := sessions.Signup(ctx, "Smoke Admin", cfg.Auth.SuperadminEmail, "sup3rsecret")
	if errors.Is(err, auth.ErrEmailTaken) {
		admin, err = sessions.Login(ctx, cfg.Auth.SuperadminEmail, "sup3rsecret")
	}
	if err != nil {
		log.Fatalf("establish superadmin session: %v", err)
	}
	if admin.Role != identity.RoleSuperAdmin {
		log.Fatalf("superadmin email landed as %q", admin.Role)
	}
	if got := gate.Check(identity.RoleSuperAdmin); got != authz.Allow {
		log.Fatalf("gate for superadmin: got %q", got)
	}
	if got := gate.Check(identity.RoleClient); got != authz.RedirectToSignIn {
		log.Fatalf("gate role mismatch: got %q", got)
	}

	if err := sessions.CreateSubAdmin(ctx, "Smoke Sub", "sub@frameview.test", "subpass1"); err != nil && !errors.Is(err, auth.ErrEmailTaken) {
		log.Fatalf("create subadmin: %v", err)
	}
	if sessions.Current() == nil || sessions.Current().Email != admin.Email {
		log.Fatalf("creating a subadmin must keep the admin session")
	}

	// Video library and comments.
	library, err := videos.List(ctx)
	if err != nil {
		log.Fatalf("list videos: %v", err)
	}
	if len(library) == 0 {
		log.Fatalf("video library is empty after seeding")
	}
	added, err := videos.Add(ctx, video.Input{Title: "smoke-take.mp4", Client: "Smoke Client", FileURL: "blob:smoke"})
	if err != nil {
		log.Fatalf("add video: %v", err)
	}
	if added.FileURL != video.PlaceholderURL {
		log.Fatalf("blob url not replaced: %q", added.FileURL)
	}
	if _, err := videos.AddComment(ctx, added.ID, admin.Name, "Looks good"); err != nil {
		log.Fatalf("comment: %v", err)
	}
	if _, err := videos.SetStatus(ctx, added.ID, video.StatusDelivered); err != nil {
		log.Fatalf("set status: %v", err)
	}

	// Simulated upload feeding the library.
	before, _ := videos.List(ctx)
	job := uploads.EnqueueCloud(video.SourceGoogleDrive)
	if err := uploads.Start(job.ID); err != nil {
		log.Fatalf("start upload: %v", err)
	}
	deadline := time.Now().Add(15 * cfg.Sim.UploadTick)
	for {
		jobs := uploads.Jobs()
		if jobs[0].Status == upload.JobCompleted || jobs[0].Status == upload.JobFailed {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("upload never finished: %+v", jobs[0])
		}
		time.Sleep(cfg.Sim.UploadTick)
	}
	if uploads.Jobs()[0].Status == upload.JobCompleted {
		after, _ := videos.List(ctx)
		if len(after) != len(before)+1 {
			log.Fatalf("completed upload did not land in the library")
		}
	}

	// Invitations.
	invite, err := invitations.Send(ctx, "guest@frameview.test")
	if err != nil && !errors.Is(err, invitation.ErrActiveExists) {
		log.Fatalf("send invitation: %v", err)
	}
	if err == nil {
		if _, err := invitations.Revoke(ctx, invite.ID); err != nil {
			log.Fatalf("revoke invitation: %v", err)
		}
	}

	// Calendar.
	event, err := events.Add(ctx, calendar.Input{Title: "Review call", Time: "14:30", Date: time.Now()})
	if err != nil {
		log.Fatalf("add event: %v", err)
	}
	today, err := events.EventsOn(ctx, time.Now())
	if err != nil || len(today) == 0 {
		log.Fatalf("events on today: %v (%d)", err, len(today))
	}
	if _, err := events.Remove(ctx, event.ID); err != nil {
		log.Fatalf("remove event: %v", err)
	}

	// Chat with the canned support reply.
	if _, err := threads.Send(ctx, admin.Email, admin.Name, "Hello support"); err != nil {
		log.Fatalf("send chat: %v", err)
	}
	time.Sleep(cfg.Sim.ChatReplyDelay + 200*time.Millisecond)
	thread, err := threads.Thread(ctx, admin.Email)
	if err != nil {
		log.Fatalf("read thread: %v", err)
	}
	if len(thread) < 2 || thread[len(thread)-1].SenderType != chat.SenderSupport {
		log.Fatalf("support auto-reply missing, thread=%d", len(thread))
	}

	// Downloads.
	if _, err := downloads.Record(ctx, "smoke-take.mp4", "12 MB", download.StatusCompleted); err != nil {
		log.Fatalf("record download: %v", err)
	}
	history, err := downloads.List(ctx)
	if err != nil || len(history) == 0 {
		log.Fatalf("download history: %v (%d)", err, len(history))
	}

	// Settings and the contact form.
	flipped, err := toggles.Toggle(ctx, "smsAlerts")
	if err != nil || !flipped.SMSAlerts {
		log.Fatalf("toggle smsAlerts: %v", err)
	}
	if err := contacts.Submit(ctx, contact.Request{
		FirstName:    "Smoke",
		LastName:     "Test",
		CompanyEmail: "smoke@corp.test",
		Company:      "Corp",
		Message:      "Tell us about enterprise plans",
	}); err != nil {
		log.Fatalf("contact form: %v", err)
	}

	if err := sessions.Logout(ctx); err != nil {
		log.Fatalf("logout: %v", err)
	}
	if sessions.State() != auth.StateAnonymous {
		log.Fatalf("state after logout: %q", sessions.State())
	}

	fmt.Printf("✅ frameview smoke passed: backend=%s videos=%d\n", cfg.Store.Backend, len(library)+1)
}

// openStore builds the configured backend and a cleanup func.
func openStore(cfg config.StoreConfig) (store.Store, func(), error) {
	switch cfg.Backend {
	case "memory":
		return store.NewMemory(), func() {}, nil
	case "file":
		f, err := store.NewFile(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {}, nil
	case "sqlite":
		if err := ensureDBDir(cfg.Path); err != nil {
			return nil, nil, err
		}
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewStore(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
