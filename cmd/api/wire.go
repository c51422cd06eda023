//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 运行 `wire gen ./cmd/api` 生成wire_gen.go,
// main.go的手动组装可整体替换为InitializeApp()。
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appbook "github.com/liuwen/bookmall/internal/application/book"
	apporder "github.com/liuwen/bookmall/internal/application/order"
	appuser "github.com/liuwen/bookmall/internal/application/user"
	"github.com/liuwen/bookmall/internal/domain/book"
	"github.com/liuwen/bookmall/internal/domain/user"
	"github.com/liuwen/bookmall/internal/infrastructure/config"
	"github.com/liuwen/bookmall/internal/infrastructure/event"
	"github.com/liuwen/bookmall/internal/infrastructure/persistence/mysql"
	"github.com/liuwen/bookmall/internal/infrastructure/persistence/redis"
	"github.com/liuwen/bookmall/internal/interface/http/handler"
	"github.com/liuwen/bookmall/internal/interface/http/middleware"
	"github.com/liuwen/bookmall/pkg/jwt"
	"github.com/liuwen/bookmall/pkg/mq"
)

// infrastructureSet 基础设施层:配置、数据库、Redis、事件发布
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	provideEventPublisher,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewOrderRepository,
	provideTransactor,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewProfileUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewManageBookUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewOrderStatusUseCase,
	apporder.NewQueryOrderUseCase,
)

// middlewareSet JWT管理器、会话存储、认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideBookCache,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewOrderHandler,
)

// provideJWTManager 从配置提取JWT参数
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideBookCache 从Redis客户端创建图书缓存
func provideBookCache(client *goredis.Client) appbook.Cache {
	return redis.NewBookCache(client)
}

// provideTransactor 事务管理器绑定到应用层接口
func provideTransactor(db *gorm.DB) apporder.Transactor {
	return mysql.NewTxManager(db)
}

// provideEventPublisher MQ未启用或连接失败时退化为日志发布器
func provideEventPublisher(cfg *config.Config) apporder.EventPublisher {
	if !cfg.MQ.Enabled {
		return event.NewNopPublisher()
	}
	mqPublisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		log.Printf("连接RabbitMQ失败,事件退化为日志: %v", err)
		return event.NewNopPublisher()
	}
	return event.NewPublisher(mqPublisher, cfg.MQ.Exchange)
}

// provideGinEngine 创建Gin引擎并注册全部路由
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing())
	}
	registerRoutes(r, userHandler, bookHandler, orderHandler, authMiddleware)
	return r
}

// InitializeApp 构建完整的Gin引擎依赖链
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
