package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"foundation-backend/internal/auth"
	"foundation-backend/internal/config"
	"foundation-backend/internal/console"
	infraCache "foundation-backend/internal/infrastructure/cache"
	"foundation-backend/internal/infrastructure/database"
	"foundation-backend/pkg/cache"
	"foundation-backend/pkg/jwt"

	"foundation-backend/internal/domains/document"
	documentHandler "foundation-backend/internal/domains/document/handler"
	documentRepo "foundation-backend/internal/domains/document/repository"
	documentService "foundation-backend/internal/domains/document/service"
	"foundation-backend/internal/domains/employee"
	employeeHandler "foundation-backend/internal/domains/employee/handler"
	employeeRepo "foundation-backend/internal/domains/employee/repository"
	employeeService "foundation-backend/internal/domains/employee/service"
	"foundation-backend/internal/domains/member"
	memberHandler "foundation-backend/internal/domains/member/handler"
	memberRepo "foundation-backend/internal/domains/member/repository"
	memberService "foundation-backend/internal/domains/member/service"
	"foundation-backend/internal/domains/session"
	sessionRepo "foundation-backend/internal/domains/session/repository"
	"foundation-backend/internal/domains/submission"
	submissionHandler "foundation-backend/internal/domains/submission/handler"
	submissionRepo "foundation-backend/internal/domains/submission/repository"
	submissionService "foundation-backend/internal/domains/submission/service"
)

// Container is the root of the dependency graph. Initialization order is
// config, infrastructure, repositories, services, handlers; each layer only
// sees layers built before it.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Resolver   *auth.Resolver

	EmployeeRepo   employee.Repository
	SessionRepo    session.Repository
	MemberRepo     member.Repository
	DocumentRepo   document.Repository
	SubmissionRepo submission.Repository

	EmployeeService   employee.Service
	MemberService     member.Service
	DocumentService   documentService.Service
	SubmissionService submissionService.Service

	EmployeeHandler   *employeeHandler.EmployeeHandler
	MemberHandler     *memberHandler.MemberHandler
	DocumentHandler   *documentHandler.DocumentHandler
	SubmissionHandler *submissionHandler.SubmissionHandler
	ConsoleHandler    *console.Handler
}

func NewContainer() (*Container, error) {
	log.Println("Initializing container...")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		// Login throttling and the employee cache degrade gracefully.
		log.Printf("redis connection failed (non-critical): %v", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("Container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.EmployeeRepo = employeeRepo.NewPostgresRepository(pool, c.Cache)
	c.SessionRepo = sessionRepo.NewPostgresRepository(pool)
	c.MemberRepo = memberRepo.NewPostgresRepository(pool)
	c.DocumentRepo = documentRepo.NewPostgresRepository(pool)
	c.SubmissionRepo = submissionRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.Resolver = auth.NewResolver(c.JWTManager, c.SessionRepo, c.EmployeeRepo, c.MemberRepo)

	c.EmployeeService = employeeService.NewEmployeeService(c.EmployeeRepo, c.SessionRepo, c.JWTManager, c.Cache)
	c.MemberService = memberService.NewMemberService(c.MemberRepo, c.JWTManager, c.Cache)
	c.DocumentService = documentService.NewDocumentService(c.DocumentRepo)
	c.SubmissionService = submissionService.NewSubmissionService(c.SubmissionRepo, c.DocumentRepo)
}

func (c *Container) initHandlers() {
	c.EmployeeHandler = employeeHandler.NewEmployeeHandler(c.EmployeeService, c.Config.Cookies)
	c.MemberHandler = memberHandler.NewMemberHandler(c.MemberService, c.Config.Cookies)
	c.DocumentHandler = documentHandler.NewDocumentHandler(c.DocumentService)
	c.SubmissionHandler = submissionHandler.NewSubmissionHandler(c.SubmissionService)
	c.ConsoleHandler = console.NewHandler(c.DocumentService, c.SubmissionService)
}

// Cleanup releases infrastructure connections. Call on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("redis close failed: %v", err)
		}
	}
}
