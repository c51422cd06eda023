package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/liuwen/bookmall/docs"
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
	"github.com/liuwen/bookmall/pkg/metrics"
	"github.com/liuwen/bookmall/pkg/mq"
	"github.com/liuwen/bookmall/pkg/response"
	"github.com/liuwen/bookmall/pkg/tracing"
)

// @title           BookMall API
// @version         1.0
// @description     图书商城后端:图书目录、用户认证、订单(防超卖下单+状态机)
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 注册Prometheus指标
	metrics.InitMetrics()

	// 可选:OpenTelemetry追踪
	tracerShutdown := initTracing(cfg)

	// 3. 初始化数据库与Redis
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 事件发布器:MQ未启用时退化为日志
	publisher := newEventPublisher(cfg)

	// 5. 依赖注入(手动组装)
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	bookCache := redis.NewBookCache(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	profileUseCase := appuser.NewProfileUseCase(userRepo)

	publishBookUseCase := appbook.NewPublishBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, bookCache)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	manageBookUseCase := appbook.NewManageBookUseCase(bookService, bookCache)

	createOrderUseCase := apporder.NewCreateOrderUseCase(orderRepo, bookRepo, txManager, publisher)
	orderStatusUseCase := apporder.NewOrderStatusUseCase(orderRepo, publisher)
	queryOrderUseCase := apporder.NewQueryOrderUseCase(orderRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, profileUseCase)
	bookHandler := handler.NewBookHandler(publishBookUseCase, getBookUseCase, listBooksUseCase, manageBookUseCase)
	orderHandler := handler.NewOrderHandler(createOrderUseCase, orderStatusUseCase, queryOrderUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing())
	}

	registerRoutes(r, userHandler, bookHandler, orderHandler, authMiddleware)

	// 7. 启动服务,支持优雅退出
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 服务启动成功!\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("   监控指标: http://localhost%s/metrics\n\n", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	// 给在途请求10秒收尾时间
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("服务关闭异常: %v", err)
	}
	if tracerShutdown != nil {
		if err := tracerShutdown(shutdownCtx); err != nil {
			log.Printf("追踪器关闭异常: %v", err)
		}
	}
	fmt.Println("服务已退出")
}

// initTracing 初始化追踪,失败不阻止服务启动
func initTracing(cfg *config.Config) func(context.Context) error {
	if !cfg.Tracing.Enabled {
		return nil
	}

	shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	if err != nil {
		log.Printf("初始化追踪失败,已跳过: %v", err)
		return nil
	}
	return shutdown
}

// newEventPublisher 创建事件发布器
// MQ连接失败不阻止服务启动,事件退化为日志
func newEventPublisher(cfg *config.Config) apporder.EventPublisher {
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

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "healthy"}, "pong")
	})

	// Prometheus抓取端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
			users.GET("/profile", authMiddleware.RequireAuth(), userHandler.Profile)
		}

		// 图书模块:读公开,写需要目录管理权限
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.GET("/:id", bookHandler.Get)

			manage := books.Group("")
			manage.Use(authMiddleware.RequireAuth(), authMiddleware.RequirePermission(user.PermManageCatalog))
			{
				manage.POST("", bookHandler.Publish)
				manage.PUT("/:id", bookHandler.Update)
				manage.DELETE("/:id", bookHandler.Deactivate)
			}
		}

		// 订单模块:全部需要登录
		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("", orderHandler.Create)
			orders.GET("/my", orderHandler.ListMy)
			orders.GET("/:id", orderHandler.Get)

			// 管理端操作
			orders.GET("/admin/all", authMiddleware.RequirePermission(user.PermReadAllOrders), orderHandler.ListAll)
			orders.PUT("/:id/pay", authMiddleware.RequirePermission(user.PermMutateOrderStatus), orderHandler.MarkPaid)
			orders.PUT("/:id/deliver", authMiddleware.RequirePermission(user.PermMutateOrderStatus), orderHandler.MarkDelivered)
		}
	}
}
