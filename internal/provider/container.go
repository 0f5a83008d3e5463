package provider

import (
	"github.com/chowline/internal/authz"
	"github.com/chowline/internal/cache"
	"github.com/chowline/internal/config"
	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/geocode"
	"github.com/chowline/internal/logger"
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/queue"
	"github.com/chowline/internal/repository"
	"github.com/chowline/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	UserRepo      repository.UserRepository
	ZoneRepo      repository.ZoneRepository
	MenuRepo      repository.MenuRepository
	AddressRepo   repository.AddressRepository
	OrderRepo     repository.OrderRepository
	StatusLogRepo repository.OrderStatusLogRepository
	SettingRepo   repository.SettingRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	UserAuthService *service.UserAuthService
	CaptchaService  *service.CaptchaService
	SettingService  *service.SettingService
	ZoneService     *service.ZoneService
	MenuService     *service.MenuService
	OrderService    *service.OrderService
	GeocodeService  *service.GeocodeService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ZoneRepo = repository.NewZoneRepository(db)
	c.MenuRepo = repository.NewMenuRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.StatusLogRepo = repository.NewOrderStatusLogRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo, c.Config.Store)
	if err := c.SettingService.EnsureStoreSetting(); err != nil {
		logger.Warnw("provider_ensure_store_setting_failed", "error", err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ZoneService = service.NewZoneService(c.ZoneRepo)
	c.MenuService = service.NewMenuService(c.MenuRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.AddressRepo,
		c.MenuRepo,
		c.UserRepo,
		c.StatusLogRepo,
		c.ZoneService,
		c.SettingService,
		c.QueueClient,
	)

	limiter := cache.NewSlotLimiter(constants.CacheKeyGeocodeSlot, c.Config.Geocode.MinInterval())
	c.GeocodeService = service.NewGeocodeService(geocode.New(c.Config.Geocode, limiter))

	c.syncAdminRoles()
}

// syncAdminRoles 将管理员表中的角色同步到权限模型
func (c *Container) syncAdminRoles() {
	admins, err := c.AdminRepo.List()
	if err != nil {
		logger.Warnw("provider_list_admins_failed", "error", err)
		return
	}
	for _, admin := range admins {
		if err := c.AuthzService.AssignAdminRole(admin.ID, admin.Role); err != nil {
			logger.Warnw("provider_sync_admin_role_failed", "admin_id", admin.ID, "role", admin.Role, "error", err)
		}
	}
}
