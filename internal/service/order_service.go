package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/logger"
	"github.com/chowline/internal/metrics"
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/queue"
	"github.com/chowline/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	addressRepo    repository.AddressRepository
	menuRepo       repository.MenuRepository
	userRepo       repository.UserRepository
	statusLogRepo  repository.OrderStatusLogRepository
	zoneService    *ZoneService
	settingService *SettingService
	queueClient    *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, addressRepo repository.AddressRepository, menuRepo repository.MenuRepository, userRepo repository.UserRepository, statusLogRepo repository.OrderStatusLogRepository, zoneService *ZoneService, settingService *SettingService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		addressRepo:    addressRepo,
		menuRepo:       menuRepo,
		userRepo:       userRepo,
		statusLogRepo:  statusLogRepo,
		zoneService:    zoneService,
		settingService: settingService,
		queueClient:    queueClient,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID          uint
	PaymentMethod   string
	FulfillmentType string
	OrderType       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Notes           string
	Address         *AddressInput
	Items           []OrderItemInput
}

// CreateOrder 创建订单
// 校验、地址解析、配送资格与计价均在写库之前完成，地址、订单、订单行与加料快照在同一事务内写入
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	order, err := s.createOrder(ctx, input)
	if err != nil && isValidationError(err) {
		metrics.ObserveOrderRejected()
	}
	return order, err
}

func (s *OrderService) createOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if !strings.EqualFold(strings.TrimSpace(input.PaymentMethod), constants.PaymentMethodCash) {
		return nil, ErrUnsupportedPaymentMethod
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}
	fulfillmentType := strings.ToUpper(strings.TrimSpace(input.FulfillmentType))
	if fulfillmentType != constants.FulfillmentTypeDelivery && fulfillmentType != constants.FulfillmentTypePickup {
		return nil, ErrInvalidFulfillmentType
	}
	orderType, err := resolveOrderType(input.OrderType)
	if err != nil {
		return nil, err
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	catalog, err := loadCatalog(s.menuRepo, input.Items)
	if err != nil {
		return nil, err
	}

	store, err := s.settingService.GetStoreSetting()
	if err != nil {
		return nil, err
	}
	var user *models.User
	if input.UserID != 0 {
		user, err = s.userRepo.GetByID(input.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
	}

	address, err := ResolveDeliveryAddress(fulfillmentType, input.Address, user)
	if err != nil {
		return nil, err
	}
	if address != nil {
		eligibility, err := s.zoneService.CheckEligibility(ctx, eligibilityCandidateFromAddress(address))
		if err != nil {
			return nil, err
		}
		if !eligibility.Deliverable {
			return nil, &ZoneRejectedError{Reason: eligibility.Reason}
		}
	}

	priced, err := PriceLines(catalog, input.Items, fulfillmentType, store.DeliveryFeeCents)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNo:          generateOrderNo(),
		Status:           constants.OrderStatusPlaced,
		PaymentMethod:    constants.PaymentMethodCash,
		FulfillmentType:  fulfillmentType,
		OrderType:        orderType,
		Currency:         store.Currency,
		SubtotalCents:    priced.SubtotalCents,
		DeliveryFeeCents: priced.DeliveryFeeCents,
		TotalCents:       priced.TotalCents,
		Notes:            strings.TrimSpace(input.Notes),
		Lines:            priced.Lines,
	}
	fillCustomerSnapshot(order, input, user)

	withGeo := models.CurrentCapabilities().AddressGeoColumns
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if address != nil {
			if err := s.addressRepo.WithTx(tx).Create(address, withGeo); err != nil {
				return err
			}
			order.AddressID = &address.ID
		}
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		logger.Errorw("order_create_failed",
			"order_no", order.OrderNo,
			"fulfillment_type", fulfillmentType,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}
	metrics.ObserveOrderCreated(fulfillmentType, order.TotalCents)
	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"fulfillment_type", fulfillmentType,
		"total_cents", order.TotalCents,
	)

	full, err := s.orderRepo.GetByID(order.ID)
	if err != nil || full == nil {
		order.Address = address
		return order, nil
	}
	return full, nil
}

// resolveOrderType 未显式标记 DEAL 的订单均为 NORMAL
func resolveOrderType(raw string) (string, error) {
	orderType := strings.ToUpper(strings.TrimSpace(raw))
	switch orderType {
	case "", constants.OrderTypeNormal:
		return constants.OrderTypeNormal, nil
	case constants.OrderTypeDeal:
		return constants.OrderTypeDeal, nil
	default:
		return "", ErrInvalidOrderType
	}
}

func fillCustomerSnapshot(order *models.Order, input CreateOrderInput, user *models.User) {
	order.CustomerName = strings.TrimSpace(input.CustomerName)
	order.CustomerEmail = strings.ToLower(strings.TrimSpace(input.CustomerEmail))
	order.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	if user == nil {
		return
	}
	userID := user.ID
	order.UserID = &userID
	if order.CustomerName == "" {
		order.CustomerName = user.DisplayName
	}
	if order.CustomerEmail == "" {
		order.CustomerEmail = user.Email
	}
	if order.CustomerPhone == "" {
		order.CustomerPhone = user.Phone
	}
}

func generateOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("CL%s%s", time.Now().Format("20060102150405"), suffix)
}

// isValidationError 判断是否为调用方输入导致的错误
func isValidationError(err error) bool {
	var rejected *ZoneRejectedError
	if errors.As(err, &rejected) {
		return true
	}
	for _, target := range []error{
		ErrUnsupportedPaymentMethod,
		ErrEmptyCart,
		ErrInvalidItemOrAddOn,
		ErrAddOnNotApplicable,
		ErrInvalidQuantity,
		ErrPriceOverflow,
		ErrDeliveryAddressRequired,
		ErrDeliveryAddressIncomplete,
		ErrInvalidFulfillmentType,
		ErrInvalidOrderType,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
