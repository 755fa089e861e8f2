package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"surveybot/api"
	"surveybot/command"
	"surveybot/db"
	"surveybot/generator"
	"surveybot/handler"
	surveyhandler "surveybot/handler/survey"
	"surveybot/model"
	"surveybot/preset"
	"surveybot/service"
	"surveybot/survey"
	"surveybot/utils"
	"surveybot/vote"
)

const shutdownTimeout = 10 * time.Second

// Run 启动机器人，直到 ctx 被取消
func Run(ctx context.Context, cfg model.Config, logger *zap.Logger) error {
	if cfg.Token == "" {
		return errors.New("bot: TOKEN is not set")
	}

	community := survey.NewCommunity(survey.Settings{
		MinMembers:  cfg.Survey.MinMembers,
		MinDuration: cfg.Survey.MinDuration,
		MaxDuration: cfg.Survey.MaxDuration,
	})

	presets, err := preset.Load(cfg.Presets.Path)
	if err != nil {
		return err
	}
	for name, perr := range presets.Validate() {
		logger.Warn("invalid preset", zap.String("preset", name), zap.Error(perr))
	}

	gen, err := generator.New(ctx, cfg.Generator, logger)
	if err != nil {
		// 没有生成器时手动预设仍然可用
		logger.Warn("question generator disabled", zap.Error(err))
	}

	var archive *db.Store
	if cfg.Archive.Path != "" {
		archive, err = db.Open(cfg.Archive.Path)
		if err != nil {
			return err
		}
		defer archive.Close()
	}

	// 使用提供的机器人令牌创建一个新的 Discord 会话
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("bot: create session: %w", err)
	}

	notifier := NewNotifier(dg, logger)
	collector := vote.NewCollector(community, logger)
	opts := service.Options{
		Generator:       gen,
		Notifier:        notifier,
		Buffers:         collector,
		DefaultDuration: cfg.Survey.DefaultDuration,
		DeliveryWorkers: cfg.Survey.DeliveryWorkers,
		Logger:          logger,
	}
	if archive != nil {
		opts.Archive = archive
	}
	manager := service.NewManager(community, opts)
	defer manager.Shutdown()

	router := handler.NewRouter(logger)
	surveyhandler.New(ctx, surveyhandler.Options{
		Manager:   manager,
		Collector: collector,
		Presets:   presets,
		Auth:      utils.NewAuthorizer(cfg.Commands.Auth),
		Announcer: notifier,
		Logger:    logger,
	}).Register(router)

	var health *HealthServer
	if cfg.Health.Addr != "" {
		health, err = NewHealthServer(cfg.Health.Addr, logger)
		if err != nil {
			return err
		}
	}

	registerEventHandlers(dg, router, health, logger)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("bot: open session: %w", err)
	}
	defer dg.Close()

	if err := registerCommands(dg, cfg.Commands.AllowGuilds); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if health != nil {
		g.Go(health.Serve)
		g.Go(func() error {
			<-gctx.Done()
			health.Stop()
			return nil
		})
	}
	if cfg.API.Addr != "" {
		var store api.ResultStore
		if archive != nil {
			store = archive
		}
		srv := &http.Server{
			Addr:              cfg.API.Addr,
			Handler:           api.New(community, store, logger).Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("status api listening", zap.String("addr", cfg.API.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("bot: status api: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(sctx)
		})
	}

	logger.Info("bot is now running", zap.Int("members", community.Size()))
	<-gctx.Done()
	logger.Info("shutting down")

	return g.Wait()
}

// registerCommands 在每个允许的服务器中注册斜杠命令，未配置服务器时注册为全局命令
func registerCommands(dg *discordgo.Session, guilds []string) error {
	if len(guilds) == 0 {
		guilds = []string{""}
	}
	for _, guildID := range guilds {
		for _, cmd := range command.AllCommands {
			if _, err := dg.ApplicationCommandCreate(dg.State.User.ID, guildID, cmd); err != nil {
				return fmt.Errorf("bot: cannot create %q command: %w", cmd.Name, err)
			}
		}
	}
	return nil
}
