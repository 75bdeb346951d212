package service

import (
	"context"
	"testing"

	"backend/pkg/apperror"
	"backend/pkg/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (d *deps) seedOrderWithItems(t *testing.T, customerName string, date string, quantities ...float64) *OrderResponse {
	t.Helper()
	svc := d.orderService()
	customer := d.seedCustomer(t, customerName)

	items := make([]OrderItemInput, 0, len(quantities))
	for i, q := range quantities {
		product := d.seedProduct(t, customerName+" product "+string(rune('A'+i)), 2.00, "Kg")
		items = append(items, OrderItemInput{ProductID: product.ID, Quantity: q})
	}

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:   customer.ID,
		DeliveryDate: date,
		Items:        items,
	})
	require.NoError(t, err)
	return order
}

func TestCreateLotDerivesCanonicalName(t *testing.T) {
	d := newDeps(t)
	svc := d.lotService()

	lot, err := svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate:  "2024-06-01",
		Name:     "whatever the caller typed",
		Location: "  North field  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "20240601 North field", lot.Name)
	assert.Equal(t, "North field", lot.Location)
	assert.Equal(t, "2024-06-01", lot.LotDate)
	assert.Empty(t, lot.OrderItems)
}

func TestCreateLotEmptyLocationTrimsName(t *testing.T) {
	d := newDeps(t)
	svc := d.lotService()

	lot, err := svc.CreateLot(context.Background(), CreateLotRequest{LotDate: "2024-06-01"})
	require.NoError(t, err)
	assert.Equal(t, "20240601", lot.Name)
}

func TestCreateLotWithOrderAttachesAllItems(t *testing.T) {
	d := newDeps(t)
	order := d.seedOrderWithItems(t, "Rossi", "2024-06-01", 1, 2)
	svc := d.lotService()

	lot, err := svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate:  "2024-06-01",
		Location: "cold room",
		OrderID:  &order.ID,
	})
	require.NoError(t, err)

	require.Len(t, lot.OrderItems, 2)
	for _, item := range lot.OrderItems {
		assert.Equal(t, order.ID, item.OrderID)
		assert.Equal(t, "Rossi", item.CustomerName)
		assert.Equal(t, "2024-06-01", item.OrderDate)
	}
}

func TestCreateLotUnknownOrder(t *testing.T) {
	d := newDeps(t)
	svc := d.lotService()

	_, err := svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate: "2024-06-01",
		OrderID: i64(4040),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsReferenceNotFound(err))
	assert.Contains(t, err.Error(), "order 4040")
}

func TestUpdateLotReplacesItemSelectionWithExplicitIDs(t *testing.T) {
	d := newDeps(t)
	order := d.seedOrderWithItems(t, "Rossi", "2024-06-01", 1, 2, 3)
	svc := d.lotService()

	lot, err := svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate:  "2024-06-01",
		Location: "cella",
		OrderID:  &order.ID,
	})
	require.NoError(t, err)
	require.Len(t, lot.OrderItems, 3)

	subset := []int64{order.Items[0].ID}
	updated, err := svc.UpdateLot(context.Background(), lot.ID, UpdateLotRequest{
		OrderItemIDs: &subset,
	})
	require.NoError(t, err)
	require.Len(t, updated.OrderItems, 1)
	assert.Equal(t, order.Items[0].ID, updated.OrderItems[0].ID)
}

func TestUpdateLotStealsItemFromOtherLot(t *testing.T) {
	d := newDeps(t)
	first := d.seedOrderWithItems(t, "Rossi", "2024-06-01", 1, 2, 3)
	second := d.seedOrderWithItems(t, "Verdi", "2024-06-01", 4)
	svc := d.lotService()

	lotA, err := svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate: "2024-06-01", Location: "A", OrderID: &first.ID,
	})
	require.NoError(t, err)
	require.Len(t, lotA.OrderItems, 3)

	lotB, err := svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate: "2024-06-01", Location: "B", OrderID: &second.ID,
	})
	require.NoError(t, err)
	require.Len(t, lotB.OrderItems, 1)

	// Replace A's selection, dropping its first item and claiming B's item.
	target := []int64{first.Items[1].ID, first.Items[2].ID, second.Items[0].ID}
	updated, err := svc.UpdateLot(context.Background(), lotA.ID, UpdateLotRequest{
		OrderItemIDs: &target,
	})
	require.NoError(t, err)

	held := make([]int64, 0, len(updated.OrderItems))
	for _, it := range updated.OrderItems {
		held = append(held, it.ID)
	}
	assert.ElementsMatch(t, target, held)

	// The dropped item belongs to no lot; B lost its only item.
	var unassigned int64
	require.NoError(t, d.db.Table("order_items").
		Where("id = ? AND lot_id IS NULL", first.Items[0].ID).
		Count(&unassigned).Error)
	assert.EqualValues(t, 1, unassigned)

	var heldByB int64
	require.NoError(t, d.db.Table("order_items").
		Where("lot_id = ?", lotB.ID).Count(&heldByB).Error)
	assert.EqualValues(t, 0, heldByB)
}

func TestUpdateLotMissingItemIDsReported(t *testing.T) {
	d := newDeps(t)
	order := d.seedOrderWithItems(t, "Rossi", "2024-06-01", 1)
	svc := d.lotService()

	lot, err := svc.CreateLot(context.Background(), CreateLotRequest{LotDate: "2024-06-01"})
	require.NoError(t, err)

	bogus := []int64{order.Items[0].ID, 9001, 8001}
	_, err = svc.UpdateLot(context.Background(), lot.ID, UpdateLotRequest{OrderItemIDs: &bogus})
	require.Error(t, err)
	assert.True(t, apperror.IsReferenceNotFound(err))
	assert.Contains(t, err.Error(), "8001, 9001")
}

func TestUpdateLotEmptyItemListDetachesEverything(t *testing.T) {
	d := newDeps(t)
	order := d.seedOrderWithItems(t, "Rossi", "2024-06-01", 1, 2)
	svc := d.lotService()

	lot, err := svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate: "2024-06-01",
		OrderID: &order.ID,
	})
	require.NoError(t, err)
	require.Len(t, lot.OrderItems, 2)

	empty := []int64{}
	updated, err := svc.UpdateLot(context.Background(), lot.ID, UpdateLotRequest{OrderItemIDs: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.OrderItems)
}

func TestUpdateLotRederivesNameFromNewDate(t *testing.T) {
	d := newDeps(t)
	svc := d.lotService()

	lot, err := svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate:  "2024-06-01",
		Location: "cella",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateLot(context.Background(), lot.ID, UpdateLotRequest{
		LotDate: str("2024-07-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "20240715 cella", updated.Name)

	// An explicit name that already matches the canonical form is accepted.
	updated, err = svc.UpdateLot(context.Background(), lot.ID, UpdateLotRequest{
		Name: str("20240715 cella"),
	})
	require.NoError(t, err)
	assert.Equal(t, "20240715 cella", updated.Name)
}

func TestDeleteLotDetachesItems(t *testing.T) {
	d := newDeps(t)
	order := d.seedOrderWithItems(t, "Rossi", "2024-06-01", 1, 2)
	svc := d.lotService()

	lot, err := svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate: "2024-06-01",
		OrderID: &order.ID,
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteLot(context.Background(), lot.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Items survive, unassigned.
	var lotIDs int64
	require.NoError(t, d.db.Table("order_items").
		Where("order_id = ? AND lot_id IS NOT NULL", order.ID).
		Count(&lotIDs).Error)
	assert.EqualValues(t, 0, lotIDs)

	var total int64
	require.NoError(t, d.db.Table("order_items").Where("order_id = ?", order.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total)

	deleted, err = svc.DeleteLot(context.Background(), lot.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListLotsUnboundedWithItems(t *testing.T) {
	d := newDeps(t)
	order := d.seedOrderWithItems(t, "Rossi", "2024-06-01", 1)
	svc := d.lotService()

	_, err := svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate: "2024-06-01", Location: "A", OrderID: &order.ID,
	})
	require.NoError(t, err)
	_, err = svc.CreateLot(context.Background(), CreateLotRequest{
		LotDate: "2024-06-02", Location: "B",
	})
	require.NoError(t, err)

	page, err := svc.ListLots(context.Background(), listing.Query{
		Size: -1,
		Sort: []listing.SortParam{{Field: "lot_date", Order: "asc"}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Items[0].OrderItems, 1)
	assert.Empty(t, page.Items[1].OrderItems)
}
