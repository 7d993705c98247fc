package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	fileartifacts "github.com/bnema/scriptbridge/internal/adapters/artifacts/file"
	"github.com/bnema/scriptbridge/internal/adapters/events"
	"github.com/bnema/scriptbridge/internal/adapters/interpreter/calllist"
	"github.com/bnema/scriptbridge/internal/adapters/platform/console"
	"github.com/bnema/scriptbridge/internal/adapters/render/browserless"
	memoryrepo "github.com/bnema/scriptbridge/internal/adapters/repo/memory"
	sqliterepo "github.com/bnema/scriptbridge/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/scriptbridge/internal/adapters/repo/toml"
	passstore "github.com/bnema/scriptbridge/internal/adapters/secrets/pass"
	"github.com/bnema/scriptbridge/internal/application"
	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/bnema/scriptbridge/internal/logutil"
	"github.com/bnema/scriptbridge/internal/ports"
	"github.com/bnema/scriptbridge/internal/version"
	"github.com/spf13/viper"
)

type app struct {
	cfg        *viper.Viper
	logger     *slog.Logger
	out        *deferredWriter
	platform   *console.Platform
	hub        *events.Hub
	identities ports.IdentityRepository
	notes      ports.NoteRepository
	commands   *application.CommandService
	resolver   *application.MemberResolver
	runner     *application.Runner
	router     *application.Router
	closers    []func() error
}

type stores struct {
	commands   ports.CommandRepository
	notes      ports.NoteRepository
	identities ports.IdentityRepository
	members    ports.MemberCache
	close      func() error
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logutil.LoggerFromReader(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	st, err := wireStores(cfg)
	if err != nil {
		return nil, err
	}

	out := &deferredWriter{}
	platform := console.New(console.Options{
		Name:      cfg.GetString("console.platform"),
		SelfID:    cfg.GetString("console.self_id"),
		Out:       out,
		Artifacts: fileartifacts.NewStore(cfg.GetString("artifacts.dir")),
		Logger:    logger,
	})
	platform.SetMembers(cfg.GetString("console.guild"), parseMembers(cfg.GetStringSlice("console.members")))

	hub := events.NewHub(logger)
	tracker := application.NewMemberTracker(st.members, logger)
	detach, err := tracker.Attach(hub)
	if err != nil {
		_ = st.close()
		return nil, fmt.Errorf("wire member tracker: %w", err)
	}

	help, err := application.LoadHelpCatalog()
	if err != nil {
		_ = st.close()
		return nil, fmt.Errorf("wire help catalog: %w", err)
	}

	renderer, err := wireRenderer(cfg, passstore.NewReader())
	if err != nil {
		_ = st.close()
		return nil, err
	}

	interpreter := calllist.New(version.Version)
	commands := application.NewCommandService(st.commands, interpreter)
	resolver := application.NewMemberResolver(st.members, logger)

	runner := application.NewRunner(application.RunnerDeps{
		Interpreter: interpreter,
		Platform:    platform,
		Renderer:    renderer,
		Identities:  st.identities,
		Commands:    commands,
		Notes:       application.NewNoteService(st.notes, st.identities),
		Members:     resolver,
		Gate:        application.NewContinuationGate(hub, st.identities, cfg.GetDuration("prompt.timeout"), logger),
		Fetcher:     application.NewFetcher(cfg.GetDuration("http.timeout")),
		Help:        help,
		Watchdog: application.WatchdogOptions{
			Threshold: cfg.GetDuration("watchdog.threshold"),
			Heartbeat: cfg.GetDuration("watchdog.heartbeat"),
		},
		Logger:  logger,
		Version: version.Version,
	})

	router := application.NewRouter(runner, application.RouterConfig{
		RequireAppel:   cfg.GetBool("router.require_appel"),
		Interpolate:    cfg.GetBool("router.interpolate"),
		InterpolateCmd: cfg.GetBool("router.interpolate_cmd"),
	}, logger)
	router.OnRun(func(_ context.Context, req application.RunRequest) {
		logger.Debug("router_run", "command", req.Command, "user_id", req.Session.UserID, "channel_id", req.Session.ChannelID)
	})

	return &app{
		cfg:        cfg,
		logger:     logger,
		out:        out,
		platform:   platform,
		hub:        hub,
		identities: st.identities,
		notes:      st.notes,
		commands:   commands,
		resolver:   resolver,
		runner:     runner,
		router:     router,
		closers: []func() error{
			func() error { detach(); return nil },
			func() error { hub.Close(); return nil },
			st.close,
		},
	}, nil
}

func wireStores(cfg *viper.Viper) (stores, error) {
	switch driver := strings.ToLower(strings.TrimSpace(cfg.GetString("store.driver"))); driver {
	case "memory":
		return stores{
			commands:   memoryrepo.NewCommandRepository(),
			notes:      memoryrepo.NewNoteRepository(),
			identities: memoryrepo.NewIdentityRepository(),
			members:    memoryrepo.NewMemberCache(nil),
			close:      func() error { return nil },
		}, nil
	case "", "toml":
		store, err := tomlrepo.NewStore(cfg, nil)
		if err != nil {
			return stores{}, fmt.Errorf("wire toml store: %w", err)
		}
		return stores{
			commands:   store.Commands(),
			notes:      store.Notes(),
			identities: store.Identities(),
			members:    store.Members(),
			close:      func() error { return nil },
		}, nil
	case "sqlite":
		db, err := sqliterepo.OpenFromConfig(context.Background(), cfg, nil)
		if err != nil {
			return stores{}, fmt.Errorf("wire sqlite store: %w", err)
		}
		return stores{
			commands:   db.Commands(),
			notes:      db.Notes(),
			identities: db.Identities(),
			members:    db.Members(),
			close:      db.Close,
		}, nil
	default:
		return stores{}, fmt.Errorf("unknown store.driver: %s", driver)
	}
}

// wireRenderer returns nil when no render endpoint is configured. A token
// kept in pass is only read when render.token is empty.
func wireRenderer(cfg *viper.Viper, secrets ports.SecretReader) (ports.Renderer, error) {
	endpoint := cfg.GetString("render.endpoint")
	if endpoint == "" {
		return nil, nil
	}

	token := cfg.GetString("render.token")
	if entry := cfg.GetString("render.token_pass"); token == "" && entry != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.GetDuration("render.timeout"))
		defer cancel()

		var err error
		token, err = secrets.Lookup(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("read render token: %w", err)
		}
	}

	return browserless.NewClient(endpoint, token, cfg.GetDuration("render.timeout")), nil
}

// parseMembers reads "id:name[:nick]" entries.
func parseMembers(entries []string) []domain.Member {
	members := make([]domain.Member, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		member := domain.Member{UserID: parts[0], Name: parts[1]}
		if len(parts) == 3 {
			member.Nick = parts[2]
		}
		members = append(members, member)
	}
	return members
}

// session describes a message typed by the configured console user.
func (a *app) session(content string) domain.SessionContext {
	return domain.SessionContext{
		Platform:  a.platform.Name(),
		SelfID:    a.platform.SelfID(),
		ChannelID: a.cfg.GetString("console.channel"),
		GuildID:   a.cfg.GetString("console.guild"),
		UserID:    a.cfg.GetString("console.user_id"),
		UserName:  a.cfg.GetString("console.user_name"),
		Content:   content,
		IsDirect:  a.cfg.GetBool("console.direct"),
	}
}

func (a *app) deliver(ctx context.Context, channelID string, fragments []domain.Fragment) error {
	if _, err := a.runner.Deliver(ctx, channelID, fragments); err != nil {
		return err
	}
	return nil
}

func (a *app) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// deferredWriter lets the console platform print to whatever writer the
// running cobra command was given.
type deferredWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (d *deferredWriter) Set(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w = w
}

func (d *deferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.w == nil {
		return io.Discard.Write(p)
	}
	return d.w.Write(p)
}
