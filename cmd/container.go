package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/devjobs/internal/config"
	"github.com/Abraxas-365/devjobs/jobboard/account"
	"github.com/Abraxas-365/devjobs/jobboard/account/accountinfra"
	"github.com/Abraxas-365/devjobs/jobboard/application"
	"github.com/Abraxas-365/devjobs/jobboard/application/applicationapi"
	"github.com/Abraxas-365/devjobs/jobboard/application/applicationinfra"
	"github.com/Abraxas-365/devjobs/jobboard/application/applicationsrv"
	"github.com/Abraxas-365/devjobs/jobboard/bookmark"
	"github.com/Abraxas-365/devjobs/jobboard/bookmark/bookmarkapi"
	"github.com/Abraxas-365/devjobs/jobboard/bookmark/bookmarkinfra"
	"github.com/Abraxas-365/devjobs/jobboard/bookmark/bookmarksrv"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory/jobcategoryapi"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory/jobcategoryinfra"
	"github.com/Abraxas-365/devjobs/jobboard/jobcategory/jobcategorysrv"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting/jobpostingapi"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting/jobpostinginfra"
	"github.com/Abraxas-365/devjobs/jobboard/jobposting/jobpostingsrv"
	"github.com/Abraxas-365/devjobs/jobboard/memstore"
	"github.com/Abraxas-365/devjobs/pkg/dbx"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
	"github.com/Abraxas-365/devjobs/pkg/lockx"
	"github.com/Abraxas-365/devjobs/pkg/logx"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	Config config.Config

	// Infrastructure
	DB     *sqlx.DB
	Redis  *redis.Client
	Tx     dbx.Transactor
	Locker lockx.Locker

	// Repositories
	AccountRepo     account.Repository
	CategoryRepo    jobcategory.Repository
	PostingRepo     jobposting.Repository
	ApplicationRepo application.Repository
	BookmarkRepo    bookmark.Repository

	// Auth
	TokenService   *auth.JWTService
	AuthMiddleware *auth.Middleware

	// Services
	CategoryService    *jobcategorysrv.CategoryService
	PostingService     *jobpostingsrv.PostingService
	ApplicationService *applicationsrv.ApplicationService
	BookmarkService    *bookmarksrv.BookmarkService

	// API Handlers
	CategoryHandlers    *jobcategoryapi.Handlers
	PostingHandlers     *jobpostingapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
	BookmarkHandlers    *bookmarkapi.Handlers
}

func NewContainer(cfg config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initStorage(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initLocker(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initAuth(); err != nil {
		c.Close()
		return nil, err
	}
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initStorage() error {
	switch c.Config.Storage.Driver {
	case "postgres":
		db, err := openDB(c.Config.Database)
		if err != nil {
			return err
		}
		c.DB = db
		c.Tx = dbx.NewSQLTransactor(db)
		c.AccountRepo = accountinfra.NewPostgresAccountRepository(db)
		c.CategoryRepo = jobcategoryinfra.NewPostgresCategoryRepository(db)
		c.PostingRepo = jobpostinginfra.NewPostgresPostingRepository(db)
		c.ApplicationRepo = applicationinfra.NewPostgresApplicationRepository(db)
		c.BookmarkRepo = bookmarkinfra.NewPostgresBookmarkRepository(db)
		logx.Info("Connected to PostgreSQL")

	case "memory":
		store := memstore.New()
		if err := store.SeedDemo(context.Background(), time.Now()); err != nil {
			return fmt.Errorf("seed memory store: %w", err)
		}
		c.Tx = store
		c.AccountRepo = store.Accounts()
		c.CategoryRepo = store.Categories()
		c.PostingRepo = store.Postings()
		c.ApplicationRepo = store.Applications()
		c.BookmarkRepo = store.Bookmarks()
		logx.Warn("Using in-memory storage, data is lost on restart")

	default:
		return fmt.Errorf("unknown storage driver %q", c.Config.Storage.Driver)
	}
	return nil
}

func (c *Container) initLocker() error {
	if c.Config.Redis.Addr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			if c.Config.Lock.Driver == "redis" {
				return fmt.Errorf("failed to connect to redis: %w", err)
			}
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	}

	switch c.Config.Lock.Driver {
	case "redis":
		if c.Redis == nil {
			return fmt.Errorf("lock driver redis needs redis.addr")
		}
		c.Locker = lockx.NewRedisLocker(c.Redis, c.Config.Lock.TTL, c.Config.Lock.Wait)
	case "memory", "":
		c.Locker = lockx.NewMemoryLocker()
	default:
		return fmt.Errorf("unknown lock driver %q", c.Config.Lock.Driver)
	}
	return nil
}

func (c *Container) initAuth() error {
	authCfg := authConfig(c.Config.Auth)
	if err := authCfg.Validate(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}
	c.TokenService = auth.NewJWTService(authCfg)
	c.AuthMiddleware = auth.NewMiddleware(c.TokenService)

	if c.Config.Storage.Driver == "memory" {
		c.logDemoTokens()
	}
	return nil
}

// logDemoTokens prints a bearer token per seeded account so the memory
// backend can be exercised with curl.
func (c *Container) logDemoTokens() {
	demo := []auth.Principal{
		auth.NewPrincipal(memstore.DemoAdminID, auth.RoleAdmin),
		auth.NewPrincipal(memstore.DemoCompanyID, auth.RoleCompany),
		auth.NewPrincipal(memstore.DemoIndividualID, auth.RoleIndividual),
	}
	for _, p := range demo {
		token, err := c.TokenService.GenerateAccessToken(p)
		if err != nil {
			logx.Warnf("demo token for %s: %v", p.Role, err)
			continue
		}
		logx.WithFields(logx.Fields{"user_id": p.UserID, "role": p.Role}).Infof("demo token: %s", token)
	}
}

func (c *Container) initServices() {
	c.CategoryService = jobcategorysrv.NewCategoryService(c.CategoryRepo)
	c.PostingService = jobpostingsrv.NewPostingService(
		c.PostingRepo,
		c.ApplicationRepo,
		c.CategoryRepo,
		c.AccountRepo,
		c.Tx,
	)
	c.ApplicationService = applicationsrv.NewApplicationService(
		c.ApplicationRepo,
		c.PostingRepo,
		c.AccountRepo,
		applicationsrv.NewGuard(c.ApplicationRepo, c.PostingRepo),
		c.Tx,
		c.Locker,
	)
	c.BookmarkService = bookmarksrv.NewBookmarkService(
		c.BookmarkRepo,
		c.PostingRepo,
		c.AccountRepo,
		c.Tx,
		c.Locker,
	)
}

func (c *Container) initHandlers() {
	c.CategoryHandlers = jobcategoryapi.NewHandlers(c.CategoryService)
	c.PostingHandlers = jobpostingapi.NewHandlers(c.PostingService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.BookmarkHandlers = bookmarkapi.NewHandlers(c.BookmarkService)
}

// Health pings the backing services that are configured.
func (c *Container) Health(ctx context.Context) map[string]bool {
	status := map[string]bool{}
	if c.DB != nil {
		status["db"] = c.DB.PingContext(ctx) == nil
	}
	if c.Redis != nil {
		status["redis"] = c.Redis.Ping(ctx).Err() == nil
	}
	return status
}

func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("close redis: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("close database: %v", err)
		}
	}
}

func openDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}
