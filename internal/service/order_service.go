package service

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
	"backend/pkg/listing"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// --- DTOs ---

type OrderItemInput struct {
	ProductID int64    `json:"product_id" binding:"required"`
	Quantity  float64  `json:"quantity" binding:"required,gt=0"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,gt=0"`
}

type CreateOrderRequest struct {
	CustomerID      int64            `json:"customer_id" binding:"required"`
	DeliveryDate    string           `json:"delivery_date" binding:"required"` // ISO date
	AppliedDiscount float64          `json:"applied_discount" binding:"gte=0,lte=100"`
	Items           []OrderItemInput `json:"items" binding:"required"`
}

// UpdateOrderRequest carries partial scalar updates. A non-nil Items slice is
// a full replacement of the order's item set, never a merge.
type UpdateOrderRequest struct {
	CustomerID      *int64            `json:"customer_id"`
	DeliveryDate    *string           `json:"delivery_date"`
	AppliedDiscount *float64          `json:"applied_discount"`
	Status          *string           `json:"status"`
	Items           *[]OrderItemInput `json:"items"`
}

type OrderItemResponse struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LotID       *int64  `json:"lot_id"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	CustomerID      int64               `json:"customer_id"`
	CustomerName    string              `json:"customer_name"`
	DeliveryDate    string              `json:"delivery_date"`
	CreatedAt       string              `json:"created_at"`
	AppliedDiscount float64             `json:"applied_discount"`
	Status          string              `json:"status"`
	TotalAmount     float64             `json:"total_amount"`
	Items           []OrderItemResponse `json:"items"`
}

// --- Interface ---

type OrderService interface {
	ListOrders(ctx context.Context, q listing.Query) (listing.Page[OrderResponse], error)
	GetOrderByID(ctx context.Context, id int64) (*OrderResponse, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error)
	UpdateOrder(ctx context.Context, id int64, req UpdateOrderRequest) (*OrderResponse, error)
	DeleteOrder(ctx context.Context, id int64) (bool, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	txManager    repository.TransactionManager
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	txManager repository.TransactionManager,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txManager:    txManager,
	}
}

// --- Aggregation ---

// aggregatedItem is one unique product line after merging duplicate inputs.
// unitPrice nil means no explicit price survived aggregation.
type aggregatedItem struct {
	productID int64
	quantity  decimal.Decimal
	unitPrice *decimal.Decimal
}

// aggregateItems merges duplicate product lines: quantities sum, and the
// price is last-write per submitted entry. A later duplicate without an
// explicit price resets the price to unset, so the fallback applies.
func aggregateItems(items []OrderItemInput) []aggregatedItem {
	index := make(map[int64]int, len(items))
	agg := make([]aggregatedItem, 0, len(items))

	for _, it := range items {
		pos, seen := index[it.ProductID]
		if !seen {
			pos = len(agg)
			index[it.ProductID] = pos
			agg = append(agg, aggregatedItem{productID: it.ProductID, quantity: decimal.Zero})
		}
		agg[pos].quantity = agg[pos].quantity.Add(decimal.NewFromFloat(it.Quantity))
		if it.UnitPrice != nil {
			price := decimal.NewFromFloat(*it.UnitPrice)
			agg[pos].unitPrice = &price
		} else {
			agg[pos].unitPrice = nil
		}
	}
	return agg
}

// computeTotal derives the order total: round2(subtotal * (1 - discount/100)).
// Rounding happens once, here, never per line.
func computeTotal(items []OrderItemResponse, discount decimal.Decimal) float64 {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.UnitPrice)))
	}
	factor := decimal.NewFromInt(1).Sub(discount.Div(decimal.NewFromInt(100)))
	return subtotal.Mul(factor).Round(2).InexactFloat64()
}

// --- Implementation ---

func (s *orderService) ListOrders(ctx context.Context, q listing.Query) (listing.Page[OrderResponse], error) {
	page := listing.Page[OrderResponse]{Items: []OrderResponse{}}

	rows, err := s.orderRepo.List(ctx, q)
	if err != nil {
		return page, err
	}
	page.Total = rows.Total

	orderIDs := make([]int64, 0, len(rows.Items))
	for _, row := range rows.Items {
		orderIDs = append(orderIDs, row.ID)
	}

	itemRows, err := s.orderRepo.ItemRowsForOrders(ctx, orderIDs)
	if err != nil {
		return page, err
	}
	itemsByOrder := make(map[int64][]OrderItemResponse)
	for _, item := range itemRows {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], toItemResponse(item))
	}

	for _, row := range rows.Items {
		page.Items = append(page.Items, toOrderResponse(row, itemsByOrder[row.ID]))
	}
	return page, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id int64) (*OrderResponse, error) {
	row, err := s.orderRepo.FindRowByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}

	itemRows, err := s.orderRepo.ItemRowsForOrders(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	items := make([]OrderItemResponse, 0, len(itemRows))
	for _, item := range itemRows {
		items = append(items, toItemResponse(item))
	}

	resp := toOrderResponse(*row, items)
	return &resp, nil
}

func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	deliveryDate, err := time.Parse(dateLayout, req.DeliveryDate)
	if err != nil {
		return nil, apperror.NewValidation("invalid delivery_date: %s", req.DeliveryDate)
	}

	var orderID int64
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		customer, err := s.customerRepo.FindByID(txCtx, req.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewReferenceNotFound("customer %d not found", req.CustomerID)
		}

		items, err := s.buildItems(txCtx, aggregateItems(req.Items), nil)
		if err != nil {
			return err
		}

		order := &model.Order{
			CustomerID:      req.CustomerID,
			DeliveryDate:    deliveryDate,
			AppliedDiscount: decimal.NewFromFloat(req.AppliedDiscount),
			Status:          model.OrderStatusCreated,
			Items:           items,
		}
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrderByID(ctx, orderID)
}

func (s *orderService) UpdateOrder(ctx context.Context, id int64, req UpdateOrderRequest) (*OrderResponse, error) {
	var found bool
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return nil
		}
		found = true

		fields := map[string]any{}
		if req.DeliveryDate != nil {
			deliveryDate, err := time.Parse(dateLayout, *req.DeliveryDate)
			if err != nil {
				return apperror.NewValidation("invalid delivery_date: %s", *req.DeliveryDate)
			}
			fields["delivery_date"] = deliveryDate
		}
		if req.CustomerID != nil {
			customer, err := s.customerRepo.FindByID(txCtx, *req.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return apperror.NewReferenceNotFound("customer %d not found", *req.CustomerID)
			}
			fields["customer_id"] = *req.CustomerID
		}
		if req.Status != nil {
			fields["status"] = *req.Status
		}
		if req.AppliedDiscount != nil {
			fields["applied_discount"] = decimal.NewFromFloat(*req.AppliedDiscount)
		}

		if req.Items != nil {
			// Lock, remember previous snapshot prices, then rebuild the
			// whole item set from the request.
			previousPrices, err := s.orderRepo.ItemPricesForUpdate(txCtx, id)
			if err != nil {
				return err
			}
			if err := s.orderRepo.DeleteItems(txCtx, id); err != nil {
				return err
			}
			items, err := s.buildItems(txCtx, aggregateItems(*req.Items), previousPrices)
			if err != nil {
				return err
			}
			for i := range items {
				items[i].OrderID = id
			}
			if err := s.orderRepo.CreateItems(txCtx, items); err != nil {
				return err
			}
		}

		return s.orderRepo.UpdateScalars(txCtx, id, fields)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return s.GetOrderByID(ctx, id)
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return nil
		}
		deleted = true
		return s.orderRepo.Delete(txCtx, id)
	})
	return deleted, err
}

// buildItems resolves the snapshot price for every aggregated line. Explicit
// prices win; otherwise a previous snapshot for the same product (item
// replacement only) is preferred over the live product price, so unchanged
// lines are not silently re-priced.
func (s *orderService) buildItems(ctx context.Context, agg []aggregatedItem, previousPrices map[int64]decimal.Decimal) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0, len(agg))
	for _, a := range agg {
		var price decimal.Decimal
		switch {
		case a.unitPrice != nil:
			price = *a.unitPrice
		default:
			if prev, ok := previousPrices[a.productID]; ok {
				price = prev
				break
			}
			product, err := s.productRepo.FindByID(ctx, a.productID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, apperror.NewReferenceNotFound("product %d not found", a.productID)
			}
			price = product.UnitPrice
		}
		items = append(items, model.OrderItem{
			ProductID: a.productID,
			Quantity:  a.quantity,
			UnitPrice: price,
		})
	}
	return items, nil
}

func toItemResponse(row repository.OrderItemRow) OrderItemResponse {
	return OrderItemResponse{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Unit:        row.Unit,
		Quantity:    row.Quantity.InexactFloat64(),
		UnitPrice:   row.UnitPrice.InexactFloat64(),
		LotID:       row.LotID,
	}
}

func toOrderResponse(row repository.OrderRow, items []OrderItemResponse) OrderResponse {
	if items == nil {
		items = []OrderItemResponse{}
	}
	return OrderResponse{
		ID:              row.ID,
		CustomerID:      row.CustomerID,
		CustomerName:    row.CustomerName,
		DeliveryDate:    row.DeliveryDate.Format(dateLayout),
		CreatedAt:       row.CreatedAt.Format(time.RFC3339),
		AppliedDiscount: row.AppliedDiscount.InexactFloat64(),
		Status:          row.Status,
		TotalAmount:     computeTotal(items, row.AppliedDiscount),
		Items:           items,
	}
}
