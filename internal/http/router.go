package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// The frontend is served from a different origin; mirror the legacy
	// deployment's open CORS unless origins are pinned in config.
	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsCfg))

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.Auditor)
	catalog := NewCatalogController(cfg.Books, cfg.Auditor)
	circulation := NewCirculationController(cfg.Loans, cfg.Auditor, cfg.SessionManager)
	membersController := NewMembersController(cfg.Members, cfg.Auditor)
	usersController := NewUsersController(cfg.Users, cfg.AuthService, cfg.Auditor)
	auditController := NewAuditController(cfg.Auditor)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Authentication
	router.POST("/login", authController.Login)
	router.POST("/logout", authController.Logout)

	// Catalog
	router.GET("/books", catalog.ListBooks)
	router.POST("/add-book", catalog.AddBook)
	router.PUT("/update-book", catalog.UpdateBook)
	router.POST("/check-availability", catalog.CheckAvailability)

	// Circulation desk
	router.POST("/issue-book", circulation.IssueBook)
	router.POST("/return-book", circulation.ReturnBook)
	router.GET("/active-issues", circulation.ActiveIssues)
	router.GET("/overdue-returns", circulation.OverdueReturns)

	// Membership
	router.POST("/add-member", membersController.AddMember)
	router.GET("/members", membersController.ListMembers)

	// Staff accounts
	router.GET("/users", usersController.ListUsers)
	router.POST("/add-user", usersController.AddUser)
	router.POST("/delete-user", usersController.DeleteUser)

	// Audit trail
	router.GET("/audit-events", auditController.ListEvents)

	return router
}
