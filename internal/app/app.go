package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/ykvlv/hydration-bot/internal/config"
	"github.com/ykvlv/hydration-bot/internal/scheduler"
	"github.com/ykvlv/hydration-bot/internal/store"
	"github.com/ykvlv/hydration-bot/internal/telegram"
	"github.com/ykvlv/hydration-bot/internal/weather"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
	redis   *redis.Client
	meters  *sdkmetric.MeterProvider
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	a := &App{cfg: cfg, log: log, bot: bot}
	a.httpSrv = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      a.routes(),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	return a, nil
}

// buildWeather returns the lookup chain: no-op without an API key, otherwise
// the HTTP client, cached in Redis when REDIS_ADDR is set and reachable.
func (a *App) buildWeather(ctx context.Context) weather.Lookup {
	if a.cfg.WeatherAPIKey == "" {
		a.log.Info("weather disabled: no OPENWEATHER_API_KEY")
		return weather.Noop{}
	}
	var lookup weather.Lookup = weather.NewClient(a.cfg.WeatherURL, a.cfg.WeatherAPIKey, a.cfg.WeatherTimeout, a.log)
	if a.cfg.RedisAddr == "" {
		return lookup
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		a.log.Warn("redis unavailable, weather cache disabled", zap.Error(err))
		_ = client.Close()
		return lookup
	}
	if err := redisotel.InstrumentMetrics(client); err != nil {
		a.log.Warn("redis metrics not instrumented", zap.Error(err))
	}
	a.redis = client
	a.log.Info("weather cache ready", zap.String("redis", a.cfg.RedisAddr))
	return weather.NewRedisCache(client, lookup, a.cfg.WeatherCacheTTL, a.log)
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting hydration-bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.Duration("tick", a.cfg.TickInterval),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open SQLite and run migrations.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	mp, err := a.setupMetrics(ctx)
	if err != nil {
		return err
	}
	metrics, err := scheduler.NewMetrics(mp)
	if err != nil {
		return err
	}
	display, err := a.cfg.DisplayGoal()
	if err != nil {
		return err
	}

	planner := scheduler.NewPlanner(a.buildWeather(ctx), a.cfg.WeatherTimeout, a.log)
	sender := telegram.NewSender(a.bot, a.cfg.SendRatePerSec, a.cfg.SendBurst, a.log)
	dispatcher := scheduler.New(repo, planner, sender, a.log, metrics, scheduler.Options{
		Interval:      a.cfg.TickInterval,
		Tolerance:     a.cfg.DueTolerance,
		Workers:       a.cfg.DispatchWorkers,
		SendTimeout:   a.cfg.SendTimeout,
		RetentionDays: a.cfg.RetentionDays,
	})
	resched := scheduler.NewRescheduler(repo, repo, planner, a.log, metrics)
	a.router = telegram.NewRouter(a.bot, a.log, repo, resched, display, a.cfg.DefaultTZ)

	// Config changes (goal band, tolerance) take effect for today right away.
	resched.RescheduleAll(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		dispatcher.Run(ctx)
	}()

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.bot.StopReceivingUpdates()
			wg.Wait()
			a.shutdown()
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}

func (a *App) shutdown() {
	// Create a short-lived shutdown context and cancel it immediately after use.
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := a.httpSrv.Shutdown(shCtx)
	cancel()

	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	if a.meters != nil {
		mCtx, mCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.meters.Shutdown(mCtx); err != nil {
			a.log.Warn("metrics shutdown error", zap.Error(err))
		}
		mCancel()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.repo != nil {
		_ = a.repo.Close()
	}
}
