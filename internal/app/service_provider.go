package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/gomail.v2"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	httpServer "github.com/unihub/unihub-api/internal/adapters/primary/http"
	"github.com/unihub/unihub-api/internal/adapters/secondary/identity"
	"github.com/unihub/unihub-api/internal/adapters/secondary/nsq"
	"github.com/unihub/unihub-api/internal/adapters/secondary/postgres"
	"github.com/unihub/unihub-api/internal/adapters/secondary/redis"
	"github.com/unihub/unihub-api/internal/adapters/secondary/smtp"

	"github.com/unihub/unihub-api/internal/adapters/config"
	"github.com/unihub/unihub-api/internal/domain/service"
	"github.com/unihub/unihub-api/internal/ports/primary"
	"github.com/unihub/unihub-api/internal/ports/secondary"
	"github.com/unihub/unihub-api/pkg/logger"
)

type serviceProvider struct {
	// Configuration
	cfg *config.Config

	// Infrastructure
	db           *gorm.DB
	redisClient  *redis.Client
	nsqPublisher *nsq.Publisher
	smtpDialer   *gomail.Dialer
	smtpClient   secondary.SMTPClient
	txManager    secondary.TxManager
	identity     secondary.IdentityResolver

	// Storage layer
	userRepo   secondary.UserRepository
	clubRepo   secondary.ClubRepository
	memberRepo secondary.MembershipRepository
	logRepo    secondary.ClubLogRepository
	eventRepo  secondary.EventRepository
	postRepo   secondary.PostRepository

	// Service layer
	authService       *service.AuthService
	logService        *service.ClubLogService
	notifyService     *service.NotifyService
	userService       primary.UserService
	clubService       primary.ClubService
	membershipService primary.MembershipService
	eventService      primary.EventService
	postService       primary.PostService
	exportService     primary.ExportService

	// Transport
	httpServer *httpServer.Server
}

func newServiceProvider() *serviceProvider {
	path := os.Getenv("UNIHUB_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	return &serviceProvider{
		cfg: cfg,
	}
}

// Infrastructure dependencies

func (s *serviceProvider) DB() *gorm.DB {
	if s.db == nil {
		var gormConfig *gorm.Config
		if s.cfg.Logger.Debug() {
			newLogger := gormLogger.New(
				log.New(os.Stdout, "\r\n", log.LstdFlags),
				gormLogger.Config{
					SlowThreshold: time.Second,
					LogLevel:      gormLogger.Info,
					Colorful:      true,
				},
			)
			gormConfig = &gorm.Config{
				TranslateError: true,
				Logger:         newLogger,
			}
		} else {
			gormConfig = &gorm.Config{
				TranslateError: true,
			}
		}

		database, err := gorm.Open(postgresDriver.Open(s.cfg.PG.DSN()), gormConfig)
		if err != nil {
			panic(fmt.Errorf("failed to connect to the database: %w", err))
		}
		logger.Log.Info("Successfully connected to the database")

		sqlDB, err := database.DB()
		if err != nil {
			panic(fmt.Errorf("failed to get underlying sql.DB: %w", err))
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(1 * time.Minute)

		if err := database.AutoMigrate(postgres.Migrations...); err != nil {
			panic(fmt.Errorf("failed to migrate database: %w", err))
		}

		s.db = database
	}

	return s.db
}

func (s *serviceProvider) RedisClient() *redis.Client {
	if s.redisClient == nil {
		r, err := redis.New(redis.Options{
			Host:     s.cfg.Redis.Host(),
			Port:     s.cfg.Redis.Port(),
			Password: s.cfg.Redis.Password(),
		})
		if err != nil {
			panic(fmt.Errorf("failed to connect to redis: %w", err))
		}

		s.redisClient = r
	}

	return s.redisClient
}

func (s *serviceProvider) TxManager() secondary.TxManager {
	if s.txManager == nil {
		s.txManager = postgres.NewTxManager(s.DB())
	}

	return s.txManager
}

func (s *serviceProvider) IdentityResolver() secondary.IdentityResolver {
	if s.identity == nil {
		s.identity = identity.NewJWTResolver(s.cfg.Auth.JWTSecret(), s.RedisClient())
	}

	return s.identity
}

func (s *serviceProvider) NSQPublisher() *nsq.Publisher {
	if s.nsqPublisher == nil {
		p, err := nsq.NewPublisher(s.cfg.NSQ.NSQDAddr())
		if err != nil {
			panic(fmt.Errorf("failed to connect to nsqd: %w", err))
		}

		s.nsqPublisher = p
	}

	return s.nsqPublisher
}

func (s *serviceProvider) SMTPDialer() *gomail.Dialer {
	if s.smtpDialer == nil {
		s.smtpDialer = gomail.NewDialer(
			s.cfg.SMTP.Host(),
			s.cfg.SMTP.Port(),
			s.cfg.SMTP.Login(),
			s.cfg.SMTP.Password(),
		)
	}

	return s.smtpDialer
}

func (s *serviceProvider) SMTPClient() secondary.SMTPClient {
	if s.smtpClient == nil {
		s.smtpClient = smtp.NewClient(s.SMTPDialer(), s.cfg.SMTP.From())
	}

	return s.smtpClient
}

// Storage layer

func (s *serviceProvider) UserRepo() secondary.UserRepository {
	if s.userRepo == nil {
		s.userRepo = postgres.NewUserRepository(s.DB())
	}

	return s.userRepo
}

func (s *serviceProvider) ClubRepo() secondary.ClubRepository {
	if s.clubRepo == nil {
		s.clubRepo = postgres.NewClubRepository(s.DB())
	}

	return s.clubRepo
}

func (s *serviceProvider) MembershipRepo() secondary.MembershipRepository {
	if s.memberRepo == nil {
		s.memberRepo = postgres.NewMembershipRepository(s.DB())
	}

	return s.memberRepo
}

func (s *serviceProvider) ClubLogRepo() secondary.ClubLogRepository {
	if s.logRepo == nil {
		s.logRepo = postgres.NewClubLogRepository(s.DB())
	}

	return s.logRepo
}

func (s *serviceProvider) EventRepo() secondary.EventRepository {
	if s.eventRepo == nil {
		s.eventRepo = postgres.NewEventRepository(s.DB())
	}

	return s.eventRepo
}

func (s *serviceProvider) PostRepo() secondary.PostRepository {
	if s.postRepo == nil {
		s.postRepo = postgres.NewPostRepository(s.DB())
	}

	return s.postRepo
}

// Service layer

func (s *serviceProvider) AuthService() *service.AuthService {
	if s.authService == nil {
		s.authService = service.NewAuthService(s.UserRepo(), s.MembershipRepo())
	}

	return s.authService
}

func (s *serviceProvider) ClubLogService() *service.ClubLogService {
	if s.logService == nil {
		s.logService = service.NewClubLogService(s.TxManager(), s.AuthService(), s.ClubLogRepo())
	}

	return s.logService
}

func (s *serviceProvider) NotifyService() *service.NotifyService {
	if s.notifyService == nil {
		notifyLogger, err := logger.Named("notify")
		if err != nil {
			panic(fmt.Errorf("failed to create notify logger: %w", err))
		}

		var channels []secondary.Notifier
		if s.cfg.NSQ.Enabled() {
			channels = append(channels, s.NSQPublisher())
		}
		if s.cfg.SMTP.Enabled() {
			channels = append(channels, smtp.NewNotifier(s.SMTPClient()))
		}

		s.notifyService = service.NewNotifyService(
			notifyLogger,
			s.EventRepo(),
			s.ClubRepo(),
			channels...,
		)
	}

	return s.notifyService
}

func (s *serviceProvider) UserService() primary.UserService {
	if s.userService == nil {
		s.userService = service.NewUserService(s.TxManager(), s.UserRepo())
	}

	return s.userService
}

func (s *serviceProvider) ClubService() primary.ClubService {
	if s.clubService == nil {
		s.clubService = service.NewClubService(
			s.TxManager(),
			s.AuthService(),
			s.ClubLogService(),
			s.ClubRepo(),
			s.MembershipRepo(),
			s.EventRepo(),
			s.PostRepo(),
			s.ClubLogRepo(),
		)
	}

	return s.clubService
}

func (s *serviceProvider) MembershipService() primary.MembershipService {
	if s.membershipService == nil {
		s.membershipService = service.NewMembershipService(
			s.TxManager(),
			s.AuthService(),
			s.ClubLogService(),
			s.UserRepo(),
			s.ClubRepo(),
			s.MembershipRepo(),
			s.EventRepo(),
			s.NotifyService(),
		)
	}

	return s.membershipService
}

func (s *serviceProvider) EventService() primary.EventService {
	if s.eventService == nil {
		s.eventService = service.NewEventService(
			s.TxManager(),
			s.AuthService(),
			s.ClubLogService(),
			s.EventRepo(),
			s.ClubRepo(),
			s.NotifyService(),
			s.cfg.HTTP.PublicBaseURL(),
		)
	}

	return s.eventService
}

func (s *serviceProvider) PostService() primary.PostService {
	if s.postService == nil {
		s.postService = service.NewPostService(
			s.TxManager(),
			s.AuthService(),
			s.ClubLogService(),
			s.PostRepo(),
			s.ClubRepo(),
			s.NotifyService(),
		)
	}

	return s.postService
}

func (s *serviceProvider) ExportService() primary.ExportService {
	if s.exportService == nil {
		exportLogger, err := logger.Named("export")
		if err != nil {
			panic(fmt.Errorf("failed to create export logger: %w", err))
		}

		s.exportService = service.NewExportService(
			exportLogger,
			s.TxManager(),
			s.AuthService(),
			s.MembershipRepo(),
			s.ClubRepo(),
		)
	}

	return s.exportService
}

// Transport

func (s *serviceProvider) HTTPServer() *httpServer.Server {
	if s.httpServer == nil {
		httpLogger, err := logger.Named("http")
		if err != nil {
			panic(fmt.Errorf("failed to create http logger: %w", err))
		}

		s.httpServer = httpServer.NewServer(
			httpLogger,
			s.IdentityResolver(),
			s.UserService(),
			s.ClubService(),
			s.MembershipService(),
			s.EventService(),
			s.PostService(),
			s.ClubLogService(),
			s.ExportService(),
		)
	}

	return s.httpServer
}

func (s *serviceProvider) Cfg() *config.Config {
	return s.cfg
}
