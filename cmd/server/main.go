package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/YangWanjun/ebusiness/internal/config"
	mailentity "github.com/YangWanjun/ebusiness/internal/mail/entity"
	mailrepo "github.com/YangWanjun/ebusiness/internal/mail/repository"
	mailservice "github.com/YangWanjun/ebusiness/internal/mail/service"
	masterentity "github.com/YangWanjun/ebusiness/internal/master/entity"
	masterrepo "github.com/YangWanjun/ebusiness/internal/master/repository"
	memberentity "github.com/YangWanjun/ebusiness/internal/member/entity"
	memberhandler "github.com/YangWanjun/ebusiness/internal/member/handler"
	memberrepo "github.com/YangWanjun/ebusiness/internal/member/repository"
	"github.com/YangWanjun/ebusiness/internal/middleware"
	partnerentity "github.com/YangWanjun/ebusiness/internal/partner/entity"
	partnerhandler "github.com/YangWanjun/ebusiness/internal/partner/handler"
	partnerrepo "github.com/YangWanjun/ebusiness/internal/partner/repository"
	partnerservice "github.com/YangWanjun/ebusiness/internal/partner/service"
	projectentity "github.com/YangWanjun/ebusiness/internal/project/entity"
	projecthandler "github.com/YangWanjun/ebusiness/internal/project/handler"
	projectrepo "github.com/YangWanjun/ebusiness/internal/project/repository"
	projectservice "github.com/YangWanjun/ebusiness/internal/project/service"
	"github.com/YangWanjun/ebusiness/internal/shared/docgen"
	"github.com/YangWanjun/ebusiness/internal/shared/lock"
	"github.com/YangWanjun/ebusiness/internal/shared/storage"
	turnoverhandler "github.com/YangWanjun/ebusiness/internal/turnover/handler"
	turnoverrepo "github.com/YangWanjun/ebusiness/internal/turnover/repository"
	turnoverservice "github.com/YangWanjun/ebusiness/internal/turnover/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// .env ファイルを読み込む
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// ログ初期化
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting ebusiness service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// データベース初期化
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := autoMigrate(db); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}

	// Redis 初期化（採番・帳票生成の排他ロックに使う）
	redisClient := initRedis(cfg.Redis)
	locker := lock.NewRedisLocker(redisClient, 30*time.Second)

	// リポジトリ
	masterRepos := masterrepo.NewRepositories(db)
	memberRepos := memberrepo.NewRepositories(db)
	projectRepos := projectrepo.NewRepositories(db)
	partnerRepos := partnerrepo.NewRepositories(db)
	mailRepo := mailrepo.NewMailRepository(db)
	turnoverRepo := turnoverrepo.NewTurnoverRepository(db)

	// MinIO（生成した帳票の保存先）
	store, err := storage.NewMinioStore(cfg.MinIO, masterRepos.Attachment)
	if err != nil {
		zapLogger.Fatal("Failed to init MinIO client", zap.Error(err))
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		zapLogger.Fatal("Failed to ensure MinIO bucket", zap.Error(err))
	}

	// サービス
	renderer := docgen.NewRenderer()
	mailService := mailservice.NewMailService(mailRepo, cfg.Mail, zapLogger)
	contractService := partnerservice.NewContractService(partnerRepos.Contract, masterRepos.Holiday)
	costSource := partnerservice.NewContractCostSource(projectRepos.ProjectMember, contractService)
	billingService := projectservice.NewBillingService(
		projectRepos, masterRepos, costSource, store, renderer, locker, zapLogger)
	orderService := partnerservice.NewOrderService(
		partnerRepos, projectRepos.ProjectMember, memberRepos.Salesperson,
		masterRepos.Company, contractService, masterRepos.Holiday,
		store, renderer, mailService, locker, zapLogger)
	turnoverService := turnoverservice.NewTurnoverService(turnoverRepo)

	// ハンドラー
	projectHandler := projecthandler.NewProjectHandler(projectRepos, billingService, store)
	partnerHandler := partnerhandler.NewPartnerHandler(partnerRepos, orderService, contractService)
	memberHandler := memberhandler.NewMemberHandler(memberRepos)
	turnoverHandler := turnoverhandler.NewTurnoverHandler(turnoverService)

	// Gin モード
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, cfg, projectHandler, partnerHandler, memberHandler, turnoverHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 優雅に終了する
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// マスタ系
		&masterentity.Company{},
		&masterentity.Holiday{},
		&masterentity.ExpenseCategory{},
		&masterentity.Bank{},
		&masterentity.BankBranch{},
		&masterentity.CompanyBankAccount{},
		&masterentity.Attachment{},
		// 要員系
		&memberentity.Organization{},
		&memberentity.Member{},
		&memberentity.Salesperson{},
		&memberentity.MemberSalesperson{},
		// 案件系
		&projectentity.Client{},
		&projectentity.ClientMember{},
		&projectentity.Project{},
		&projectentity.ProjectMember{},
		&projectentity.MemberAttendance{},
		&projectentity.MemberExpense{},
		&projectentity.ClientOrder{},
		&projectentity.ClientOrderProject{},
		&projectentity.ProjectRequest{},
		&projectentity.ProjectRequestHeading{},
		&projectentity.ProjectRequestDetail{},
		// 協力会社系
		&partnerentity.Partner{},
		&partnerentity.PartnerEmployee{},
		&partnerentity.PartnerPayNotifyRecipient{},
		&partnerentity.PartnerBankAccount{},
		&partnerentity.BpContract{},
		&partnerentity.BpMemberOrder{},
		&partnerentity.BpMemberOrderHeading{},
		// メール系
		&mailentity.MailTemplate{},
		&mailentity.MailGroup{},
		&mailentity.MailCcList{},
		&mailentity.EmailLog{},
	)
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(
	r *gin.Engine,
	cfg *config.Config,
	projectH *projecthandler.ProjectHandler,
	partnerH *partnerhandler.PartnerHandler,
	memberH *memberhandler.MemberHandler,
	turnoverH *turnoverhandler.TurnoverHandler,
) {
	// ヘルスチェック
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		// 取引先
		v1.GET("/clients", projectH.ListClients)
		v1.DELETE("/clients/:id", middleware.RequireRole("admin"), projectH.DeleteClient)

		// 案件・請求書
		projects := v1.Group("/projects")
		{
			projects.GET("", projectH.ListProjects)
			projects.GET("/:id", projectH.GetProject)
			projects.DELETE("/:id", middleware.RequireRole("admin"), projectH.DeleteProject)
			projects.POST("/:id/requests/preview", projectH.PreviewRequest)
			projects.POST("/:id/requests", middleware.RequirePermission("request:generate"), projectH.GenerateRequest)
			projects.GET("/:id/attendances/:year/:month", projectH.ListAttendances)
			projects.GET("/:id/attendances/summary", projectH.AttendanceSummary)
		}
		v1.GET("/requests/:id", projectH.GetRequest)
		v1.PUT("/project-members/:id/attendances/:year/:month", projectH.SaveAttendance)
		v1.GET("/project-members/:id/expenses/:year/:month", projectH.ListExpenses)
		v1.POST("/project-members/:id/expenses/:year/:month", projectH.CreateExpense)
		v1.DELETE("/project-members/:id", middleware.RequireRole("admin"), projectH.DeleteProjectMember)

		// 要員
		members := v1.Group("/members")
		{
			members.GET("", memberH.ListMembers)
			members.GET("/:id", memberH.GetMember)
			members.DELETE("/:id", middleware.RequireRole("admin"), memberH.DeleteMember)
		}

		// 協力会社・ＢＰ注文書
		partners := v1.Group("/partners")
		{
			partners.GET("", partnerH.ListPartners)
			partners.GET("/:id", partnerH.GetPartner)
			partners.GET("/:id/members", partnerH.ListPartnerMembers)
			partners.DELETE("/:id", middleware.RequireRole("admin"), partnerH.DeletePartner)
		}
		orders := v1.Group("/bp-orders")
		{
			orders.POST("/preview", partnerH.PreviewOrder)
			orders.POST("", middleware.RequirePermission("order:generate"), partnerH.GenerateOrder)
			orders.GET("/:id", partnerH.GetOrder)
			orders.POST("/:id/send", middleware.RequirePermission("order:send"), partnerH.SendOrder)
		}

		// 売上集計
		turnover := v1.Group("/turnover")
		{
			turnover.GET("/monthly", turnoverH.Monthly)
			turnover.GET("/monthly/chart", turnoverH.MonthlyChart)
			turnover.GET("/yearly", turnoverH.Yearly)
			turnover.GET("/yearly/chart", turnoverH.YearlyChart)
			turnover.GET("/monthly/:year/:month/clients", turnoverH.ClientsByMonth)
			turnover.GET("/monthly/:year/:month/clients/:client_id", turnoverH.ClientByMonth)
		}

		// 帳票ダウンロード（トークンはクエリパラメータでも可）
		v1.GET("/attachments/:uuid", projectH.DownloadAttachment)
	}
}
