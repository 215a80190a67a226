package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sss654654/rentdeck/internal/cache"
	"github.com/sss654654/rentdeck/internal/config"
	"github.com/sss654654/rentdeck/internal/gateway"
	"github.com/sss654654/rentdeck/internal/prefs"
	"github.com/sss654654/rentdeck/internal/push"
	"github.com/sss654654/rentdeck/internal/service"
	"github.com/sss654654/rentdeck/internal/store"
	"github.com/sss654654/rentdeck/internal/ui"
)

// Options configure the rentdeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/rentdeck/prefs.toml
	PollEvery  int    // seconds; zero uses the config file's interval
}

// Run boots the rentdeck TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	client, err := gateway.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init gateway client: %w", err)
	}

	svc := service.New(client, cache.New(), store.New(), service.NewNotices(0))

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	listener := push.New(cfg.PushURL, svc, func(ev push.Event) {
		svc.Notices().Post(service.LevelInfo, noticeForEvent(ev))
	})
	go listener.Run(ctx)

	// Start background poller
	StartPoller(ctx, svc, interval)

	// Do initial refresh to populate the store before the UI starts
	refresh(ctx, svc)

	uiOpts := ui.Options{
		Context:      ctx,
		Service:      svc,
		Listener:     listener,
		PollTick:     interval,
		ThemeName:    userPrefs.Theme,
		StatusFilter: userPrefs.StatusFilter,
		PrefsPath:    opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// noticeForEvent renders a push event as feed text.
func noticeForEvent(ev push.Event) string {
	switch ev.Type {
	case push.EventRentalReturned:
		return fmt.Sprintf("%s returned %s", ev.RenterName, ev.ItemName)
	default:
		return fmt.Sprintf("%s rented %s", ev.RenterName, ev.ItemName)
	}
}
