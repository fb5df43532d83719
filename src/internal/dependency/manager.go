package dependency

import (
	"github.com/gin-gonic/gin"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/auth"
	"gatepass-portal-svc/src/internal/config"
	"gatepass-portal-svc/src/internal/member"
	"gatepass-portal-svc/src/internal/middleware"
	"gatepass-portal-svc/src/internal/session"
	"gatepass-portal-svc/src/internal/staff"
	"gatepass-portal-svc/src/internal/visitor"
)

type Manager struct {
	Router         *gin.Engine
	Config         *config.Configuration
	Mongodb        *clients.MongoDB
	Redis          *clients.RedisClient
	RabbitMQ       *clients.RabbitMQ
	Backend        *clients.Backend
	Sessions       *session.Manager
	AuthMiddleware *middleware.AuthMiddleware
	AuthHandler    auth.Handler
	MemberHandler  member.Handler
	VisitorHandler visitor.Handler
	StaffHandler   staff.Handler
}

func NewDependencyManager(router *gin.Engine,
	mongodb *clients.MongoDB,
	redisClient *clients.RedisClient,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {
	store := session.NewRedisStore(redisClient.Client)
	sessionRepo := session.NewSessionRepository(mongodb, cfg.Database.SessionCollection)
	sessions := session.NewManager(store, sessionRepo, cfg)

	activity := clients.NewActivityPublisher(cfg, rabbitMQ.Channel)
	backend := clients.NewBackend(cfg, sessions, activity)

	authService := auth.NewService(backend, sessions, activity)
	memberService := member.NewService(backend)
	visitorService := visitor.NewService(backend, activity)
	staffService := staff.NewService(backend)

	return &Manager{
		Router:         router,
		Config:         cfg,
		Mongodb:        mongodb,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Backend:        backend,
		Sessions:       sessions,
		AuthMiddleware: middleware.NewAuthMiddleware(cfg, sessions),
		AuthHandler:    auth.NewHandler(cfg, authService),
		MemberHandler:  member.NewHandler(cfg, memberService),
		VisitorHandler: visitor.NewHandler(cfg, visitorService),
		StaffHandler:   staff.NewHandler(cfg, staffService),
	}
}
