package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
	"backend/pkg/listing"
)

const lotNameLayout = "20060102"

// --- DTOs ---

type CreateLotRequest struct {
	LotDate      string   `json:"lot_date" binding:"required"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Description  *string  `json:"description"`
	OrderID      *int64   `json:"order_id"`
	OrderItemIDs *[]int64 `json:"order_item_ids"`
}

type UpdateLotRequest struct {
	LotDate      *string  `json:"lot_date"`
	Name         *string  `json:"name"`
	Location     *string  `json:"location"`
	Description  *string  `json:"description"`
	OrderID      *int64   `json:"order_id"`
	OrderItemIDs *[]int64 `json:"order_item_ids"`
}

type LotItemResponse struct {
	ID           int64   `json:"id"`
	OrderID      int64   `json:"order_id"`
	OrderDate    string  `json:"order_date"`
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductUnit  string  `json:"product_unit"`
	Quantity     float64 `json:"quantity"`
	CustomerID   int64   `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
}

type LotResponse struct {
	ID          int64             `json:"id"`
	LotDate     string            `json:"lot_date"`
	Name        string            `json:"name"`
	Location    string            `json:"location"`
	Description *string           `json:"description"`
	OrderItems  []LotItemResponse `json:"order_items"`
}

// --- Interface ---

type LotService interface {
	ListLots(ctx context.Context, q listing.Query) (listing.Page[LotResponse], error)
	GetLotByID(ctx context.Context, id int64) (*LotResponse, error)
	CreateLot(ctx context.Context, req CreateLotRequest) (*LotResponse, error)
	UpdateLot(ctx context.Context, id int64, req UpdateLotRequest) (*LotResponse, error)
	DeleteLot(ctx context.Context, id int64) (bool, error)
}

type lotService struct {
	lotRepo   repository.LotRepository
	orderRepo repository.OrderRepository
	txManager repository.TransactionManager
}

func NewLotService(
	lotRepo repository.LotRepository,
	orderRepo repository.OrderRepository,
	txManager repository.TransactionManager,
) LotService {
	return &lotService{lotRepo: lotRepo, orderRepo: orderRepo, txManager: txManager}
}

// composeLotName builds the canonical lot name from its date and location.
func composeLotName(lotDate time.Time, location string) string {
	return strings.TrimSpace(lotDate.Format(lotNameLayout) + " " + strings.TrimSpace(location))
}

func (s *lotService) ListLots(ctx context.Context, q listing.Query) (listing.Page[LotResponse], error) {
	page := listing.Page[LotResponse]{Items: []LotResponse{}}

	rows, err := s.lotRepo.List(ctx, q)
	if err != nil {
		return page, err
	}
	page.Total = rows.Total

	lotIDs := make([]int64, 0, len(rows.Items))
	for _, lot := range rows.Items {
		lotIDs = append(lotIDs, lot.ID)
	}
	itemRows, err := s.lotRepo.ItemRowsForLots(ctx, lotIDs)
	if err != nil {
		return page, err
	}
	itemsByLot := make(map[int64][]LotItemResponse)
	for _, item := range itemRows {
		itemsByLot[item.LotID] = append(itemsByLot[item.LotID], toLotItemResponse(item))
	}

	for _, lot := range rows.Items {
		page.Items = append(page.Items, toLotResponse(lot, itemsByLot[lot.ID]))
	}
	return page, nil
}

func (s *lotService) GetLotByID(ctx context.Context, id int64) (*LotResponse, error) {
	lot, err := s.lotRepo.FindByID(ctx, id)
	if err != nil || lot == nil {
		return nil, err
	}

	itemRows, err := s.lotRepo.ItemRowsForLots(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	items := make([]LotItemResponse, 0, len(itemRows))
	for _, item := range itemRows {
		items = append(items, toLotItemResponse(item))
	}

	resp := toLotResponse(*lot, items)
	return &resp, nil
}

func (s *lotService) CreateLot(ctx context.Context, req CreateLotRequest) (*LotResponse, error) {
	lotDate, err := time.Parse(dateLayout, req.LotDate)
	if err != nil {
		return nil, apperror.NewValidation("invalid lot_date: %s", req.LotDate)
	}

	var lotID int64
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		// A supplied name only survives if it already matches the canonical
		// form; anything else is replaced, not rejected.
		name := composeLotName(lotDate, req.Location)
		lot := &model.Lot{
			LotDate:     lotDate,
			Name:        name,
			Location:    strings.TrimSpace(req.Location),
			Description: req.Description,
		}
		if err := s.lotRepo.Create(txCtx, lot); err != nil {
			return err
		}
		lotID = lot.ID
		return s.applyAssociations(txCtx, lot.ID, req.OrderID, req.OrderItemIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetLotByID(ctx, lotID)
}

func (s *lotService) UpdateLot(ctx context.Context, id int64, req UpdateLotRequest) (*LotResponse, error) {
	var found bool
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		lot, err := s.lotRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if lot == nil {
			return nil
		}
		found = true

		if req.LotDate != nil {
			lotDate, err := time.Parse(dateLayout, *req.LotDate)
			if err != nil {
				return apperror.NewValidation("invalid lot_date: %s", *req.LotDate)
			}
			lot.LotDate = lotDate
		}
		if req.Location != nil {
			lot.Location = strings.TrimSpace(*req.Location)
		}
		if req.Description != nil {
			lot.Description = req.Description
		}

		// The canonical name is re-derived from the effective date and
		// location; an explicit name wins only when it matches it.
		canonical := composeLotName(lot.LotDate, lot.Location)
		if req.Name == nil || strings.TrimSpace(*req.Name) != canonical {
			lot.Name = canonical
		} else {
			lot.Name = strings.TrimSpace(*req.Name)
		}

		fields := map[string]any{
			"lot_date":    lot.LotDate,
			"name":        lot.Name,
			"location":    lot.Location,
			"description": lot.Description,
		}
		if err := s.lotRepo.Update(txCtx, id, fields); err != nil {
			return err
		}
		return s.applyAssociations(txCtx, id, req.OrderID, req.OrderItemIDs)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return s.GetLotByID(ctx, id)
}

func (s *lotService) DeleteLot(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		lot, err := s.lotRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if lot == nil {
			return nil
		}
		deleted = true
		// Items are detached, never deleted with the lot.
		if err := s.lotRepo.DetachItems(txCtx, id); err != nil {
			return err
		}
		return s.lotRepo.Delete(txCtx, id)
	})
	return deleted, err
}

// applyAssociations replaces the lot's item set according to the request:
// explicit item ids win over an order id, an order id alone attaches all of
// that order's items, and both absent leaves associations untouched. The
// replacement always detaches first, so passing an empty id list clears the
// lot.
func (s *lotService) applyAssociations(ctx context.Context, lotID int64, orderID *int64, itemIDs *[]int64) error {
	if orderID == nil && itemIDs == nil {
		return nil
	}

	if orderID != nil {
		order, err := s.orderRepo.FindByID(ctx, *orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewReferenceNotFound("order %d not found", *orderID)
		}
	}

	var target []int64
	switch {
	case itemIDs != nil:
		if len(*itemIDs) > 0 {
			found, err := s.lotRepo.ResolveItemIDs(ctx, *itemIDs, orderID)
			if err != nil {
				return err
			}
			if missing := missingIDs(*itemIDs, found); len(missing) > 0 {
				return apperror.NewReferenceNotFound("order items not found: %s", joinIDs(missing))
			}
			target = found
		}
	case orderID != nil:
		ids, err := s.lotRepo.ItemIDsForOrder(ctx, *orderID)
		if err != nil {
			return err
		}
		target = ids
	}

	if err := s.lotRepo.DetachItems(ctx, lotID); err != nil {
		return err
	}
	return s.lotRepo.AttachItems(ctx, target, lotID)
}

func missingIDs(requested, found []int64) []int64 {
	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	missing := make([]int64, 0)
	seen := make(map[int64]struct{}, len(requested))
	for _, id := range requested {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}

func toLotItemResponse(row repository.LotItemRow) LotItemResponse {
	return LotItemResponse{
		ID:           row.ID,
		OrderID:      row.OrderID,
		OrderDate:    row.OrderDate.Format(dateLayout),
		ProductID:    row.ProductID,
		ProductName:  row.ProductName,
		ProductUnit:  row.ProductUnit,
		Quantity:     row.Quantity.InexactFloat64(),
		CustomerID:   row.CustomerID,
		CustomerName: row.CustomerName,
	}
}

func toLotResponse(lot model.Lot, items []LotItemResponse) LotResponse {
	if items == nil {
		items = []LotItemResponse{}
	}
	return LotResponse{
		ID:          lot.ID,
		LotDate:     lot.LotDate.Format(dateLayout),
		Name:        lot.Name,
		Location:    lot.Location,
		Description: lot.Description,
		OrderItems:  items,
	}
}
