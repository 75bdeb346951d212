package service

import (
	"context"
	"errors"
	"testing"

	"backend/pkg/apperror"
	"backend/pkg/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDeleteCustomerWithOrdersConflicts(t *testing.T) {
	d := newDeps(t)
	order := d.seedOrderWithItems(t, "Rossi", "2024-05-10", 1)

	customers := NewCustomerService(d.customers)
	_, err := customers.DeleteCustomer(context.Background(), order.CustomerID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	// Drop the order and the delete goes through.
	deleted, err := d.orderService().DeleteOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	ok, err := customers.DeleteCustomer(context.Background(), order.CustomerID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteProductReferencedByItemsConflicts(t *testing.T) {
	d := newDeps(t)
	customer := d.seedCustomer(t, "Rossi")
	apples := d.seedProduct(t, "Apples", 2.00, "Kg")
	_, err := d.orderService().CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:   customer.ID,
		DeliveryDate: "2024-05-10",
		Items:        []OrderItemInput{{ProductID: apples.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	products := NewProductService(d.products)
	_, err = products.DeleteProduct(context.Background(), apples.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestDeleteCategoryWithRecordsConflicts(t *testing.T) {
	d := newDeps(t)
	fuel := d.seedExpenseCategory(t, "fuel")
	d.seedExpense(t, fuel.ID, "2024-05-01", 10)

	categories := NewExpenseCategoryService(d.expCats)
	_, err := categories.DeleteCategory(context.Background(), fuel.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	empty := d.seedExpenseCategory(t, "empty")
	ok, err := categories.DeleteCategory(context.Background(), empty.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDuplicateCustomerNameBubblesDuplicatedKey(t *testing.T) {
	d := newDeps(t)
	customers := NewCustomerService(d.customers)

	_, err := customers.CreateCustomer(context.Background(), CreateCustomerRequest{Name: "Rossi"})
	require.NoError(t, err)

	_, err = customers.CreateCustomer(context.Background(), CreateCustomerRequest{Name: "Rossi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestExpenseCreateRequiresCategory(t *testing.T) {
	d := newDeps(t)
	expenses := NewExpenseService(d.expenses, d.expCats)

	_, err := expenses.CreateExpense(context.Background(), CreateExpenseRequest{
		CategoryID: 31337,
		Timestamp:  "2024-05-01",
		Amount:     10,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsReferenceNotFound(err))
	assert.Contains(t, err.Error(), "expense category 31337")
}

func TestExpenseListTimestampAfterIsStrict(t *testing.T) {
	d := newDeps(t)
	fuel := d.seedExpenseCategory(t, "fuel")
	d.seedExpense(t, fuel.ID, "2024-05-01", 10)
	d.seedExpense(t, fuel.ID, "2024-05-02", 20)

	expenses := NewExpenseService(d.expenses, d.expCats)
	page, err := expenses.ListExpenses(context.Background(), listing.Query{
		Size:    10,
		Filters: map[string]any{"timestamp_after": "2024-05-01"},
	})
	require.NoError(t, err)

	// Strictly after: the boundary row is excluded.
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, "2024-05-02", page.Items[0].Timestamp)
	assert.Equal(t, "fuel", page.Items[0].Category)
	assert.Equal(t, 20.0, page.Items[0].Amount)
}

func TestExpenseUpdateMovesCategory(t *testing.T) {
	d := newDeps(t)
	fuel := d.seedExpenseCategory(t, "fuel")
	seeds := d.seedExpenseCategory(t, "seeds")
	expense := d.seedExpense(t, fuel.ID, "2024-05-01", 10)

	expenses := NewExpenseService(d.expenses, d.expCats)
	updated, err := expenses.UpdateExpense(context.Background(), expense.ID, UpdateExpenseRequest{
		CategoryID: &seeds.ID,
		Amount:     f64(12.5),
	})
	require.NoError(t, err)
	assert.Equal(t, seeds.ID, updated.CategoryID)
	assert.Equal(t, 12.5, updated.Amount.InexactFloat64())

	_, err = expenses.UpdateExpense(context.Background(), expense.ID, UpdateExpenseRequest{
		CategoryID: i64(404),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsReferenceNotFound(err))
}

func TestNoteUpdateTouchesUpdatedAt(t *testing.T) {
	d := newDeps(t)
	notes := NewNoteService(d.notes)

	note, err := notes.CreateNote(context.Background(), NoteRequest{Text: "call the mill"})
	require.NoError(t, err)

	updated, err := notes.UpdateNote(context.Background(), note.ID, NoteRequest{Text: "called"})
	require.NoError(t, err)
	assert.Equal(t, "called", updated.Text)
	assert.False(t, updated.UpdatedAt.Before(note.UpdatedAt))
}
