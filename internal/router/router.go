package router

import (
	"time"

	"github.com/kuxall/InventoryManagementSystem/internal/config"
	"github.com/kuxall/InventoryManagementSystem/internal/handler"
	"github.com/kuxall/InventoryManagementSystem/internal/middleware"
	"github.com/kuxall/InventoryManagementSystem/internal/model"
	"github.com/kuxall/InventoryManagementSystem/internal/repository"
	"github.com/kuxall/InventoryManagementSystem/internal/service"
	"github.com/kuxall/InventoryManagementSystem/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher — receives low-stock notifications after mutations
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(userRepo, cfg, service.BcryptVerifier{})
	itemSvc := service.NewItemService(itemRepo, rdb, dispatcher)
	exportSvc := service.NewExportService(itemRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	itemsH := handler.NewItemsHandler(itemSvc, exportSvc, cfg.ReportStoragePath)
	usersH := handler.NewUsersHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes. Policy: reads require any authenticated role,
	// mutations and user administration require admin. The service layer
	// enforces the same rule again from the Session value.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/items", middleware.RequireRole(model.RoleAdmin, model.RoleUser), itemsH.List)
		v1.GET("/items/export", middleware.RequireRole(model.RoleAdmin, model.RoleUser), itemsH.ExportCSV)
		v1.GET("/items/:item_id", middleware.RequireRole(model.RoleAdmin, model.RoleUser), itemsH.Get)
		v1.GET("/alerts", middleware.RequireRole(model.RoleAdmin, model.RoleUser), itemsH.Alerts)
		v1.GET("/alerts/report", middleware.RequireRole(model.RoleAdmin, model.RoleUser), itemsH.AlertsReport)

		// Write operations — admin only
		items := v1.Group("/items", middleware.RequireRole(model.RoleAdmin))
		{
			items.POST("", itemsH.Create)
			items.PUT("/:item_id", itemsH.Update)
			items.DELETE("/:item_id", itemsH.Delete)
		}

		users := v1.Group("/users", middleware.RequireRole(model.RoleAdmin))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
