package router

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/chowline/internal/authz"
	"github.com/chowline/internal/cache"
	"github.com/chowline/internal/config"
	adminhandlers "github.com/chowline/internal/http/handlers/admin"
	publichandlers "github.com/chowline/internal/http/handlers/public"
	"github.com/chowline/internal/http/response"
	"github.com/chowline/internal/logger"
	"github.com/chowline/internal/metrics"
	"github.com/chowline/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	counter := cache.NewWindowCounter()
	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	loginRule := RateLimitRule{
		Name:        "login",
		Window:      window,
		MaxRequests: loginAttemptsPerWindow,
		MessageKey:  "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Name:        "admin_login",
		Window:      window,
		MaxRequests: loginAttemptsPerWindow,
		MessageKey:  "error.login_too_many",
	}
	orderingRule := RateLimitRule{
		Name:        "ordering",
		Window:      window,
		MaxRequests: cfg.RateLimit.MaxRequests,
	}
	userAuth := UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo)
	optionalUserAuth := OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(metrics.Middleware())
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 配送区域与菜单
		apiV1.GET("/delivery-zones", publicHandler.ListDeliveryZones)
		apiV1.POST("/delivery-zones/check", RateLimitMiddleware(counter, orderingRule, KeyByIP), publicHandler.CheckDeliveryZone)
		apiV1.GET("/menu", publicHandler.GetMenu)

		// 地址查询
		apiV1.GET("/geocode/reverse", publicHandler.ReverseGeocode)
		apiV1.GET("/geocode/search", publicHandler.SearchAddress)

		// 下单（游客或登录用户）
		apiV1.POST("/orders", RateLimitMiddleware(counter, orderingRule, KeyByIP), optionalUserAuth, publicHandler.CreateOrder)
		apiV1.GET("/orders/:id", optionalUserAuth, publicHandler.GetOrder)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(counter, loginRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(counter, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.GET("/profile", userAuth, publicHandler.GetCurrentUser)
			auth.PUT("/profile", userAuth, publicHandler.UpdateUserProfile)
			auth.GET("/orders", userAuth, publicHandler.ListMyOrders)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(counter, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)
			admin.GET("/captcha", adminHandler.GetLoginCaptcha)

			// 需要鉴权的接口
			authorized := admin.Group("")
			authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetCurrentAdmin)

				// 配送区域
				authorized.GET("/delivery-zones", adminHandler.ListZones)
				authorized.POST("/delivery-zones", adminHandler.CreateZone)
				authorized.GET("/delivery-zones/:id", adminHandler.GetZone)
				authorized.PUT("/delivery-zones/:id", adminHandler.UpdateZone)
				authorized.DELETE("/delivery-zones/:id", adminHandler.DeleteZone)

				// 订单管理
				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.GET("/orders/:id/status-logs", adminHandler.ListOrderStatusLogs)
				authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

				// 门店设置与菜单价格
				authorized.GET("/settings/store", adminHandler.GetStoreSettings)
				authorized.PUT("/settings/store", adminHandler.UpdateStoreSettings)
				authorized.PATCH("/menu-items/:id/price", adminHandler.UpdateMenuItemPrice)

				// 后台账号与权限
				authorized.GET("/admins", adminHandler.ListAdmins)
				authorized.POST("/admins", adminHandler.CreateAdmin)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 监控与健康检查
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/health", healthHandler)

	return r
}

// healthHandler 存活探针；Redis 不可达只降级标记，不影响 200
func healthHandler(c *gin.Context) {
	redisState := "disabled"
	if cache.Enabled() {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		redisState = "ok"
		if err := cache.Ping(ctx); err != nil {
			logger.Warnw("health_redis_ping_failed", "error", err)
			redisState = "down"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": redisState})
}

// loginAttemptsPerWindow 单个窗口内允许的登录尝试次数
const loginAttemptsPerWindow = 10

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" || item.Path == "/api/v1/admin/captcha" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

// deriveAdminPermissionModule 按路径第二段归类：/admin/orders/:id/status -> orders
func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 || segments[0] != "admin" {
		return segments[0]
	}
	switch segments[1] {
	case "me", "admins", "authz":
		return "accounts"
	default:
		return segments[1]
	}
}
