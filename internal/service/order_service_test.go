package service

import (
	"context"
	"testing"

	"backend/pkg/apperror"
	"backend/pkg/listing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderComputesDiscountedTotal(t *testing.T) {
	d := newDeps(t)
	svc := d.orderService()
	customer := d.seedCustomer(t, "Rossi")
	apples := d.seedProduct(t, "Apples", 2.50, "Kg")
	crates := d.seedProduct(t, "Crates", 5.00, "Px")

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:      customer.ID,
		DeliveryDate:    "2024-05-10",
		AppliedDiscount: 10,
		Items: []OrderItemInput{
			{ProductID: apples.ID, Quantity: 4},                    // 4 * 2.50 = 10
			{ProductID: crates.ID, Quantity: 2, UnitPrice: f64(6)}, // 2 * 6 = 12
		},
	})
	require.NoError(t, err)

	// (10 + 12) * 0.9 = 19.80
	assert.Equal(t, 19.8, order.TotalAmount)
	assert.Equal(t, "created", order.Status)
	assert.Equal(t, "Rossi", order.CustomerName)
	assert.Equal(t, "2024-05-10", order.DeliveryDate)
	require.Len(t, order.Items, 2)
}

func TestCreateOrderAggregatesDuplicateProducts(t *testing.T) {
	d := newDeps(t)
	svc := d.orderService()
	customer := d.seedCustomer(t, "Bianchi")
	apples := d.seedProduct(t, "Apples", 2.00, "Kg")

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:   customer.ID,
		DeliveryDate: "2024-05-10",
		Items: []OrderItemInput{
			{ProductID: apples.ID, Quantity: 1, UnitPrice: f64(3)},
			{ProductID: apples.ID, Quantity: 2, UnitPrice: f64(4)},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 3.0, order.Items[0].Quantity)
	// last explicit price wins
	assert.Equal(t, 4.0, order.Items[0].UnitPrice)
	assert.Equal(t, 12.0, order.TotalAmount)
}

func TestCreateOrderLaterDuplicateWithoutPriceResetsToCatalog(t *testing.T) {
	d := newDeps(t)
	svc := d.orderService()
	customer := d.seedCustomer(t, "Verdi")
	apples := d.seedProduct(t, "Apples", 2.00, "Kg")

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:   customer.ID,
		DeliveryDate: "2024-05-10",
		Items: []OrderItemInput{
			{ProductID: apples.ID, Quantity: 1, UnitPrice: f64(9)},
			{ProductID: apples.ID, Quantity: 1}, // resets the explicit price
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 2.0, order.Items[0].Quantity)
	assert.Equal(t, 2.0, order.Items[0].UnitPrice)
}

func TestCreateOrderUnknownCustomerOrProduct(t *testing.T) {
	d := newDeps(t)
	svc := d.orderService()
	customer := d.seedCustomer(t, "Rossi")

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:   9999,
		DeliveryDate: "2024-05-10",
		Items:        []OrderItemInput{},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsReferenceNotFound(err))
	assert.Contains(t, err.Error(), "customer 9999")

	_, err = svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:   customer.ID,
		DeliveryDate: "2024-05-10",
		Items:        []OrderItemInput{{ProductID: 424242, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsReferenceNotFound(err))
	assert.Contains(t, err.Error(), "product 424242")
}

func TestCreateOrderRejectsBadDeliveryDate(t *testing.T) {
	d := newDeps(t)
	svc := d.orderService()
	customer := d.seedCustomer(t, "Rossi")

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:   customer.ID,
		DeliveryDate: "10/05/2024",
		Items:        []OrderItemInput{},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateOrderScalarsOnlyLeavesItemsAlone(t *testing.T) {
	d := newDeps(t)
	svc := d.orderService()
	customer := d.seedCustomer(t, "Rossi")
	other := d.seedCustomer(t, "Bianchi")
	apples := d.seedProduct(t, "Apples", 2.00, "Kg")

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:   customer.ID,
		DeliveryDate: "2024-05-10",
		Items:        []OrderItemInput{{ProductID: apples.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	status := "delivered"
	updated, err := svc.UpdateOrder(context.Background(), order.ID, UpdateOrderRequest{
		CustomerID:      &other.ID,
		Status:          &status,
		AppliedDiscount: f64(50),
	})
	require.NoError(t, err)

	assert.Equal(t, other.ID, updated.CustomerID)
	assert.Equal(t, "Bianchi", updated.CustomerName)
	assert.Equal(t, "delivered", updated.Status)
	require.Len(t, updated.Items, 1)
	// 5 * 2 * 0.5
	assert.Equal(t, 5.0, updated.TotalAmount)
}

func TestUpdateOrderItemReplacementPrefersPreviousSnapshot(t *testing.T) {
	d := newDeps(t)
	svc := d.orderService()
	customer := d.seedCustomer(t, "Rossi")
	apples := d.seedProduct(t, "Apples", 2.00, "Kg")
	pears := d.seedProduct(t, "Pears", 3.00, "Kg")

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:   customer.ID,
		DeliveryDate: "2024-05-10",
		Items:        []OrderItemInput{{ProductID: apples.ID, Quantity: 2, UnitPrice: f64(9)}},
	})
	require.NoError(t, err)

	// Catalog price moves; the replacement without an explicit price must
	// keep the order's snapshot, not re-price from the catalog.
	require.NoError(t, d.products.Update(context.Background(), apples.ID,
		map[string]any{"unit_price": decimal.NewFromInt(100)}))

	items := []OrderItemInput{
		{ProductID: apples.ID, Quantity: 3},
		{ProductID: pears.ID, Quantity: 1}, // new line, falls back to catalog
	}
	updated, err := svc.UpdateOrder(context.Background(), order.ID, UpdateOrderRequest{Items: &items})
	require.NoError(t, err)

	require.Len(t, updated.Items, 2)
	byProduct := map[int64]OrderItemResponse{}
	for _, it := range updated.Items {
		byProduct[it.ProductID] = it
	}
	assert.Equal(t, 9.0, byProduct[apples.ID].UnitPrice)
	assert.Equal(t, 3.0, byProduct[apples.ID].Quantity)
	assert.Equal(t, 3.0, byProduct[pears.ID].UnitPrice)
	assert.Equal(t, 30.0, updated.TotalAmount)
}

func TestUpdateOrderMissingReturnsNil(t *testing.T) {
	d := newDeps(t)
	svc := d.orderService()

	updated, err := svc.UpdateOrder(context.Background(), 777, UpdateOrderRequest{AppliedDiscount: f64(5)})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	d := newDeps(t)
	svc := d.orderService()
	customer := d.seedCustomer(t, "Rossi")
	apples := d.seedProduct(t, "Apples", 2.00, "Kg")

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:   customer.ID,
		DeliveryDate: "2024-05-10",
		Items:        []OrderItemInput{{ProductID: apples.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var count int64
	require.NoError(t, d.db.Table("order_items").Where("order_id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	deleted, err = svc.DeleteOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListOrdersFiltersByCustomerNameAndDate(t *testing.T) {
	d := newDeps(t)
	svc := d.orderService()
	rossi := d.seedCustomer(t, "Rossi")
	bianchi := d.seedCustomer(t, "Bianchi")
	apples := d.seedProduct(t, "Apples", 2.00, "Kg")

	for _, tc := range []struct {
		customerID int64
		date       string
	}{
		{rossi.ID, "2024-05-01"},
		{rossi.ID, "2024-05-20"},
		{bianchi.ID, "2024-05-20"},
	} {
		_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
			CustomerID:   tc.customerID,
			DeliveryDate: tc.date,
			Items:        []OrderItemInput{{ProductID: apples.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	page, err := svc.ListOrders(context.Background(), listing.Query{
		Size: -1,
		Filters: map[string]any{
			"customer_name":       "ross",
			"delivery_date_after": "2024-05-20",
		},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, "Rossi", page.Items[0].CustomerName)
	assert.Equal(t, "2024-05-20", page.Items[0].DeliveryDate)
	require.Len(t, page.Items[0].Items, 1)
}
