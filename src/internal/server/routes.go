package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/dependency"
	"gatepass-portal-svc/src/internal/models"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(enableCORS)

	setupHealthEndpoint(deps)
	setupPublicRoutes(router, deps)
	setupAdminRoutes(router, deps)
	setupGatekeeperRoutes(router, deps)
}

func setupHealthEndpoint(deps *dependency.Manager) {
	router := deps.Router
	mongodb := deps.Mongodb
	redisClient := deps.Redis
	cfg := deps.Config

	router.GET("/health", func(c *gin.Context) {
		log.Info("Health check endpoint requested")

		mongoStatus := "ok"
		if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
			mongoStatus = "error: " + err.Error()
		}

		redisStatus := "ok"
		if err := redisClient.Client.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error: " + err.Error()
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mongodb":   mongoStatus,
			"redis":     redisStatus,
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		log.Info("Detailed health check endpoint requested")

		c.JSON(200, gin.H{
			"status":  "operational",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
			"components": gin.H{
				"database": gin.H{
					"mongodb": getStatus(isMongoConnected(mongodb, c)),
					"redis":   getStatus(isRedisConnected(redisClient.Client, c)),
				},
				"services": gin.H{
					"auth":    "operational",
					"session": "operational",
					"backend": cfg.Backend.URL,
				},
			},
		})
	})
}

func setupPublicRoutes(router *gin.Engine, deps *dependency.Manager) {
	router.GET("/api/v1/status", func(c *gin.Context) {
		log.Info("API status requested")
		c.JSON(200, gin.H{
			"api_version": "v1",
			"status":      "operational",
			"service":     deps.Config.App.Name,
		})
	})

	// The login screen itself; every guard redirect lands here.
	router.GET("/login", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"page":    "login",
			"message": "Please log in",
		})
	})

	handler := deps.AuthHandler

	authGroup := router.Group("/api/v1/auth")
	{
		authGroup.POST("/login",
			setRouteName("login"),
			handler.Login)

		authGroup.POST("/signup",
			setRouteName("signup"),
			handler.Signup)

		authGroup.POST("/logout",
			setRouteName("logout"),
			handler.Logout)
	}
}

func setupAdminRoutes(router *gin.Engine, deps *dependency.Manager) {
	authMiddleware := deps.AuthMiddleware
	members := deps.MemberHandler
	visitors := deps.VisitorHandler
	staff := deps.StaffHandler

	admin := router.Group("/api/v1/admin",
		authMiddleware.RequireSession(),
		authMiddleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/members",
			setRouteName("getMembersList"),
			members.ListMembers)

		admin.POST("/members",
			setRouteName("createMember"),
			members.CreateMember)

		admin.PUT("/members/:id",
			setRouteName("updateMember"),
			members.UpdateMember)

		admin.DELETE("/members/:id",
			setRouteName("deleteMember"),
			members.DeleteMember)

		admin.GET("/visitors",
			setRouteName("getVisitorsList"),
			visitors.ListForAdmin)

		admin.GET("/all-admin-gatekeepers",
			setRouteName("getStaffDirectory"),
			staff.GetDirectory)
	}
}

func setupGatekeeperRoutes(router *gin.Engine, deps *dependency.Manager) {
	authMiddleware := deps.AuthMiddleware
	visitors := deps.VisitorHandler

	gatekeeper := router.Group("/api/v1/gatekeeper",
		authMiddleware.RequireSession(),
		authMiddleware.RequireRole(models.RoleGatekeeper))
	{
		gatekeeper.GET("/visitors",
			setRouteName("getVisitorLog"),
			visitors.ListForGatekeeper)

		gatekeeper.POST("/visitors",
			setRouteName("registerVisitor"),
			visitors.CheckIn)
	}
}

func setRouteName(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("route_name", name)
		c.Next()
	}
}

func isMongoConnected(mongodb *clients.MongoDB, c *gin.Context) bool {
	if err := mongodb.Client.Ping(c.Request.Context(), nil); err != nil {
		return false
	}
	return true
}

func isRedisConnected(redisClient *redis.Client, c *gin.Context) bool {
	if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
		return false
	}
	return true
}

func enableCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}

func getStatus(b bool) string {
	if b {
		return "connected"
	}
	return "disconnected"
}
