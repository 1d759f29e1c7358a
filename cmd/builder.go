package cmd

import (
	"context"
	"fmt"
	"net/http"

	"forum/api"
	apianswer "forum/api/answer"
	"forum/api/health"
	apiquestion "forum/api/question"
	answerapp "forum/application/answer"
	questionapp "forum/application/question"
	"forum/application/subscriber"
	"forum/config"
	"forum/domain/answer"
	"forum/domain/question"
	"forum/domain/shared"
	"forum/infrastructure/persistence/gormdb"
	"forum/infrastructure/persistence/memory"
	"forum/infrastructure/persistence/retry"
	"forum/pkg/logger"
	"forum/pkg/metrics"
	"forum/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg          *config.Config
	registry     *prometheus.Registry
	controllers  []api.ControllerRegister
	middlewares  []api.MiddlewareRegister
	customRoutes []api.Route
	subscribers  []shared.EventHandler
	skipLogInit  bool
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg: cfg,
	}
}

// WithController adds a controller to the app
func (b *AppBuilder) WithController(c api.ControllerRegister) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

// WithMiddleware adds a middleware to the app
func (b *AppBuilder) WithMiddleware(m api.MiddlewareRegister) *AppBuilder {
	b.middlewares = append(b.middlewares, m)
	return b
}

// WithRoute adds a custom route
func (b *AppBuilder) WithRoute(method, path string, handler gin.HandlerFunc) *AppBuilder {
	b.customRoutes = append(b.customRoutes, api.Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
	return b
}

// WithSubscriber 为全部领域事件额外注册一个订阅者
func (b *AppBuilder) WithSubscriber(h shared.EventHandler) *AppBuilder {
	b.subscribers = append(b.subscribers, h)
	return b
}

// WithRegistry 使用指定的 Prometheus 注册表（测试中避免重复注册）
func (b *AppBuilder) WithRegistry(reg *prometheus.Registry) *AppBuilder {
	b.registry = reg
	return b
}

// WithoutLoggerInit 保留调用方已经 Set 的 logger
func (b *AppBuilder) WithoutLoggerInit() *AppBuilder {
	b.skipLogInit = true
	return b
}

// storage 一种存储实现下的仓储集合
type storage struct {
	questions question.Repository
	answers   answer.Repository
	uow       shared.UnitOfWork
	ping      health.Pinger
	db        *gorm.DB
}

// Build creates the App instance
func (b *AppBuilder) Build() (*App, error) {
	if !b.skipLogInit {
		if err := logger.Init(b.cfg); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("storage", b.cfg.Database.Type))

	shutdownTracing, err := tracing.Init(context.Background(), b.cfg)
	if err != nil {
		return nil, err
	}

	registry := b.registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := metrics.New(registry)

	events := shared.NewDomainEvents()
	nc, err := b.registerSubscribers(events, m)
	if err != nil {
		_ = shutdownTracing(context.Background())
		return nil, err
	}

	store, err := b.initStorage(events)
	if err != nil {
		if nc != nil {
			nc.Close()
		}
		_ = shutdownTracing(context.Background())
		return nil, err
	}

	questionService := questionapp.NewApplicationService(store.questions, store.answers, store.uow)
	answerService := answerapp.NewApplicationService(store.answers, store.uow)

	controllers := []api.ControllerRegister{
		health.NewController(b.cfg, store.ping),
		apiquestion.NewController(questionService),
		apianswer.NewController(answerService),
	}
	controllers = append(controllers, b.controllers...)

	router := api.NewRouter(b.cfg, m, controllers, b.middlewares, b.customRoutes)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config:  b.cfg,
		router:  router,
		server:  server,
		events:  events,
		db:      store.db,
		nats:    nc,
		tracing: shutdownTracing,
	}, nil
}

// registerSubscribers 注册订阅者；配置了 NATS 时返回连接，由 App 负责关闭
func (b *AppBuilder) registerSubscribers(events *shared.DomainEvents, m *metrics.Metrics) (*nats.Conn, error) {
	handlers := make([]shared.EventHandler, 0, len(b.subscribers)+3)
	if b.cfg.Events.LogSubscriber {
		handlers = append(handlers, subscriber.NewLogSubscriber(logger.Get()))
	}
	if b.cfg.Events.MetricsSubscriber {
		handlers = append(handlers, subscriber.NewMetricsSubscriber(m))
	}

	var nc *nats.Conn
	if url := b.cfg.Events.NATSURL; url != "" {
		var err error
		nc, err = subscriber.ConnectNATS(url, b.cfg.App.Name)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, subscriber.NewForwarder(nc, b.cfg.Events.NATSSubjectPrefix))
		logger.Info("Forwarding domain events to NATS",
			zap.String("url", url),
			zap.String("subject_prefix", b.cfg.Events.NATSSubjectPrefix))
	}

	handlers = append(handlers, b.subscribers...)

	if err := subscriber.RegisterAll(events, handlers...); err != nil {
		if nc != nil {
			nc.Close()
		}
		return nil, fmt.Errorf("failed to register subscribers: %w", err)
	}
	return nc, nil
}

func (b *AppBuilder) initStorage(events *shared.DomainEvents) (*storage, error) {
	if b.cfg.Database.Type == "memory" {
		logger.Info("Using in-memory persistence layer")
		return &storage{
			questions: memory.NewQuestionRepository(events, memory.NewQuestionAttachmentRepository()),
			answers:   memory.NewAnswerRepository(events, memory.NewAnswerAttachmentRepository()),
			uow:       memory.NewUnitOfWork(),
		}, nil
	}

	logger.Info("Using GORM persistence layer", zap.String("driver", b.cfg.Database.Type))

	db, err := NewDatabaseConfig(b.cfg).Connect()
	if err != nil {
		return nil, err
	}
	if err := gormdb.Ping(context.Background(), db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if b.cfg.Database.AutoMigrate {
		if err := gormdb.Migrate(db); err != nil {
			closeDB(db)
			return nil, err
		}
	}

	return &storage{
		questions: gormdb.NewQuestionRepository(db, events, gormdb.NewQuestionAttachmentRepository(db)),
		answers:   gormdb.NewAnswerRepository(db, events, gormdb.NewAnswerAttachmentRepository(db)),
		uow:       gormdb.NewUnitOfWork(db, retry.FromAppConfig(b.cfg)),
		ping: func(ctx context.Context) error {
			return gormdb.Ping(ctx, db)
		},
		db: db,
	}, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// NewDatabaseConfig 从应用配置构造 GORM 连接配置
func NewDatabaseConfig(cfg *config.Config) *gormdb.Config {
	return &gormdb.Config{
		Driver:          cfg.Database.Type,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SQLitePath:      cfg.Database.SQLitePath,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
		SlowThreshold:   cfg.Database.SlowThreshold,
	}
}
