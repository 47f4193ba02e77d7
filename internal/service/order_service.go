package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oms-backend/internal/model"
	"oms-backend/internal/repository"
	ws "oms-backend/internal/websocket"
	"oms-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs

type OrderItemRequest struct {
	SKUCode   string          `json:"sku_code" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

type CreateOrderRequest struct {
	ClientName      string             `json:"client_name" binding:"required"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	ProcessingType  string             `json:"processing_type" binding:"required"`
	DestinationLat  *float64           `json:"destination_lat"`
	DestinationLong *float64           `json:"destination_long"`
	Items           []OrderItemRequest `json:"items" binding:"required,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type DispatchRequest struct {
	DeliveryUserID string `json:"delivery_user_id" binding:"required"`
}

type OrderItemResponse struct {
	ID        string          `json:"id"`
	SKUCode   string          `json:"sku_code"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderResponse struct {
	ID                 string              `json:"id"`
	ClientName         string              `json:"client_name"`
	ShippingAddress    string              `json:"shipping_address"`
	CurrentStatus      string              `json:"current_status"`
	ProcessingType     string              `json:"processing_type"`
	OrderCreatorID     string              `json:"order_creator_id"`
	AssignedDeliveryID *string             `json:"assigned_delivery_id"`
	Items              []OrderItemResponse `json:"items"`
	CreatedAt          string              `json:"created_at"`
	UpdatedAt          string              `json:"updated_at"`
}

// OrderService is the fulfillment workflow engine. It owns every write to
// Order.CurrentStatus: the Front Desk manual update, dispatch assignment, and
// the proof-gate side effects routed through AdvanceStatus.
type OrderService interface {
	Create(ctx context.Context, actor Actor, req CreateOrderRequest) (OrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (OrderResponse, error)
	List(ctx context.Context, page, limit int) ([]OrderResponse, int64, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, newStatus string) (OrderResponse, error)
	Dispatch(ctx context.Context, actor Actor, orderID, deliveryUserID uuid.UUID) (OrderResponse, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	txManager repository.TransactionManager
	hub       *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		txManager: txManager,
		hub:       hub,
	}
}

func (s *orderService) publish(event string, data map[string]interface{}) {
	if s.hub != nil {
		s.hub.Publish(event, data)
	}
}

func toOrderResponse(order *model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID.String(),
			SKUCode:   item.SKUCode,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	res := OrderResponse{
		ID:              order.ID.String(),
		ClientName:      order.ClientName,
		ShippingAddress: order.ShippingAddress,
		CurrentStatus:   order.CurrentStatus,
		ProcessingType:  order.ProcessingType,
		OrderCreatorID:  order.OrderCreatorID.String(),
		Items:           items,
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.UpdatedAt.Format(time.RFC3339),
	}
	if order.AssignedDeliveryID != nil {
		id := order.AssignedDeliveryID.String()
		res.AssignedDeliveryID = &id
	}
	return res
}

func (s *orderService) Create(ctx context.Context, actor Actor, req CreateOrderRequest) (OrderResponse, error) {
	if len(req.Items) == 0 {
		return OrderResponse{}, apperr.Validation("order must contain at least one item")
	}
	if !model.ValidProcessingType(req.ProcessingType) {
		return OrderResponse{}, apperr.Newf(apperr.KindValidation, "invalid processing_type: %s", req.ProcessingType)
	}

	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return OrderResponse{}, apperr.Newf(apperr.KindValidation, "quantity must be positive for sku %s", item.SKUCode)
		}
		if seen[item.SKUCode] {
			return OrderResponse{}, apperr.Newf(apperr.KindValidation, "duplicate sku_code in order: %s", item.SKUCode)
		}
		seen[item.SKUCode] = true
	}

	order := model.Order{
		ClientName:      req.ClientName,
		ShippingAddress: req.ShippingAddress,
		DestinationLat:  req.DestinationLat,
		DestinationLong: req.DestinationLong,
		CurrentStatus:   model.OrderStatusPending,
		ProcessingType:  req.ProcessingType,
		OrderCreatorID:  actor.ID,
	}

	// Order and items commit as one unit: a partial item list must never be
	// visible.
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.orderRepo.Create(txCtx, &order); createErr != nil {
			return fmt.Errorf("failed to create order: %w", createErr)
		}

		for _, itemReq := range req.Items {
			item := &model.OrderItem{
				OrderID:   order.ID,
				SKUCode:   itemReq.SKUCode,
				Quantity:  itemReq.Quantity,
				UnitPrice: itemReq.UnitPrice,
			}
			if itemErr := s.orderRepo.CreateItem(txCtx, item); itemErr != nil {
				return fmt.Errorf("failed to create order item: %w", itemErr)
			}
			order.Items = append(order.Items, *item)
		}
		return nil
	})
	if err != nil {
		return OrderResponse{}, err
	}

	s.publish("order.created", map[string]interface{}{
		"order_id": order.ID.String(),
		"status":   order.CurrentStatus,
	})

	return toOrderResponse(&order), nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (OrderResponse, error) {
	order, err := s.orderRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, apperr.NotFound("order not found")
		}
		return OrderResponse{}, fmt.Errorf("failed to load order: %w", err)
	}
	return toOrderResponse(order), nil
}

func (s *orderService) List(ctx context.Context, page, limit int) ([]OrderResponse, int64, error) {
	orders, total, err := s.orderRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, toOrderResponse(&orders[i]))
	}
	return result, total, nil
}

// UpdateStatus is the Front Desk manual status endpoint. Only membership in
// the status enumeration is validated here; the strict sequencing applies to
// the proof and dispatch gates, not to this surface. Managers at the front
// desk retain the permissive override the workflow was designed around.
func (s *orderService) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, newStatus string) (OrderResponse, error) {
	if !actor.Can(model.FrontDeskRoles) {
		return OrderResponse{}, apperr.Authorization("only Front Desk may update order status directly")
	}
	if !model.ValidOrderStatus(newStatus) {
		return OrderResponse{}, apperr.Newf(apperr.KindValidation, "invalid order status: %s", newStatus)
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, findErr := s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order not found")
			}
			return fmt.Errorf("failed to load order: %w", findErr)
		}

		if updateErr := s.orderRepo.UpdateStatus(txCtx, order.ID, newStatus); updateErr != nil {
			return fmt.Errorf("failed to update order status: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return OrderResponse{}, err
	}

	s.publish("order.status_changed", map[string]interface{}{
		"order_id": orderID.String(),
		"status":   newStatus,
	})

	return s.GetByID(ctx, orderID)
}

// Dispatch binds a Delivery-role user to a Ready-for-Dispatch order and flips
// it to Dispatched. The status guard is read under a row lock so a second
// concurrent dispatch observes the already-flipped status and fails.
func (s *orderService) Dispatch(ctx context.Context, actor Actor, orderID, deliveryUserID uuid.UUID) (OrderResponse, error) {
	if !actor.Can(model.FrontDeskRoles) {
		return OrderResponse{}, apperr.Authorization("only Front Desk may assign dispatch")
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, findErr := s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order not found")
			}
			return fmt.Errorf("failed to load order: %w", findErr)
		}

		if order.CurrentStatus != model.OrderStatusReadyForDispatch {
			return apperr.Newf(apperr.KindConflict, "order is %s, not Ready for Dispatch", order.CurrentStatus)
		}

		delivery, userErr := s.userRepo.GetByID(txCtx, deliveryUserID)
		if userErr != nil {
			if errors.Is(userErr, gorm.ErrRecordNotFound) {
				return apperr.Validation("delivery user not found")
			}
			return fmt.Errorf("failed to load delivery user: %w", userErr)
		}
		if delivery.RoleKey != model.RoleDelivery {
			return apperr.Newf(apperr.KindValidation, "user %s is not Delivery Personnel", delivery.Email)
		}

		if dispatchErr := s.orderRepo.SetDispatch(txCtx, order.ID, delivery.ID); dispatchErr != nil {
			return fmt.Errorf("failed to dispatch order: %w", dispatchErr)
		}
		return nil
	})
	if err != nil {
		return OrderResponse{}, err
	}

	s.publish("order.dispatched", map[string]interface{}{
		"order_id":    orderID.String(),
		"delivery_id": deliveryUserID.String(),
	})

	return s.GetByID(ctx, orderID)
}
