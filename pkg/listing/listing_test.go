package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type widget struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	Name     string
	Price    float64
	Active   bool
	ShipDate time.Time
}

var widgetFields = FieldMap{
	"id":               {Column: "id", Kind: ID},
	"name":             {Column: "name", Kind: Text},
	"price":            {Column: "price", Kind: Numeric},
	"active":           {Column: "active", Kind: Bool},
	"min_price":        {Column: "price", Kind: MinNumeric},
	"max_price":        {Column: "price", Kind: MaxNumeric},
	"shipped":          {Column: "ship_date", Kind: Text},
	"ship_date_after":  {Column: "ship_date", Kind: DateAfter},
	"shipped_after":    {Column: "ship_date", Kind: DateStrictlyAfter},
	"ship_date_before": {Column: "ship_date", Kind: DateBefore},
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func newWidgetDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))

	seed := []widget{
		{Name: "Anvil", Price: 10, Active: true, ShipDate: date("2024-01-10")},
		{Name: "Bolt cutter", Price: 25, Active: true, ShipDate: date("2024-02-01")},
		{Name: "Crowbar", Price: 18, Active: false, ShipDate: date("2024-02-15")},
		{Name: "Doorstop", Price: 5, Active: true, ShipDate: date("2024-03-01")},
		{Name: "Elbow grease", Price: 99, Active: false, ShipDate: date("2024-03-20")},
	}
	require.NoError(t, db.Create(&seed).Error)
	return db
}

func widgetQuery(db *gorm.DB) func() *gorm.DB {
	return func() *gorm.DB { return db.Model(&widget{}) }
}

func names(items []widget) []string {
	out := make([]string, 0, len(items))
	for _, w := range items {
		out = append(out, w.Name)
	}
	return out
}

func TestFindTextFilterIsCaseInsensitiveSubstring(t *testing.T) {
	db := newWidgetDB(t)

	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Filters: map[string]any{"name": "OLT"},
		Size:    10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, []string{"Bolt cutter"}, names(page.Items))
}

func TestFindTextFilterWorksOnNonTextColumns(t *testing.T) {
	db := newWidgetDB(t)

	// Substring match against a date column must not error out.
	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Filters: map[string]any{"shipped": "2024-02"},
		Size:    10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	require.ElementsMatch(t, []string{"Bolt cutter", "Crowbar"}, names(page.Items))
}

func TestFindUnknownFilterAndNilValueIgnored(t *testing.T) {
	db := newWidgetDB(t)

	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Filters: map[string]any{"no_such_field": "x", "name": nil},
		Size:    10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, page.Total)
}

func TestFindBadIDValueMatchesNothing(t *testing.T) {
	db := newWidgetDB(t)

	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Filters: map[string]any{"id": "not-a-number"},
		Size:    10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, page.Total)
	require.Empty(t, page.Items)
}

func TestFindBadDateValueMatchesNothing(t *testing.T) {
	db := newWidgetDB(t)

	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Filters: map[string]any{"ship_date_after": "02/01/2024"},
		Size:    10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, page.Total)
}

func TestFindDateBoundsInclusiveAndStrict(t *testing.T) {
	db := newWidgetDB(t)

	// >= keeps the row on the boundary
	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Filters: map[string]any{"ship_date_after": "2024-02-01"},
		Size:    10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 4, page.Total)

	// > drops it
	page, err = Find[widget](widgetQuery(db), widgetFields, Query{
		Filters: map[string]any{"shipped_after": "2024-02-01"},
		Size:    10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)

	page, err = Find[widget](widgetQuery(db), widgetFields, Query{
		Filters: map[string]any{"ship_date_before": "2024-02-15"},
		Size:    10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)
}

func TestFindNumericRangeFilters(t *testing.T) {
	db := newWidgetDB(t)

	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Filters: map[string]any{"min_price": 10, "max_price": 25},
		Sort:    []SortParam{{Field: "price", Order: "asc"}},
		Size:    10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)
	require.Equal(t, []string{"Anvil", "Crowbar", "Bolt cutter"}, names(page.Items))
}

func TestFindSortUnknownFieldIgnored(t *testing.T) {
	db := newWidgetDB(t)

	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Sort: []SortParam{{Field: "bogus", Order: "desc"}, {Field: "name", Order: "desc"}},
		Size: 10,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Elbow grease", "Doorstop", "Crowbar", "Bolt cutter", "Anvil"}, names(page.Items))
}

func TestFindPaginationFloorsPageAndSize(t *testing.T) {
	db := newWidgetDB(t)

	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Page: -3,
		Size: 0,
		Sort: []SortParam{{Field: "name", Order: "asc"}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, page.Total)
	require.Equal(t, []string{"Anvil"}, names(page.Items))

	page, err = Find[widget](widgetQuery(db), widgetFields, Query{
		Page: 2,
		Size: 2,
		Sort: []SortParam{{Field: "name", Order: "asc"}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, page.Total)
	require.Equal(t, []string{"Crowbar", "Doorstop"}, names(page.Items))
}

func TestFindPageBeyondLastReturnsEmptyWithTotal(t *testing.T) {
	db := newWidgetDB(t)

	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Page: 9,
		Size: 2,
		Sort: []SortParam{{Field: "name", Order: "asc"}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, page.Total)
	require.Empty(t, page.Items)
}

func TestFindUnboundedNegativeSizeReturnsEverything(t *testing.T) {
	db := newWidgetDB(t)

	page, err := FindUnbounded[widget](widgetQuery(db), widgetFields, Query{
		Size: -1,
		Sort: []SortParam{{Field: "id", Order: "asc"}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, page.Total)
	require.Len(t, page.Items, 5)
}

func TestFindUnboundedZeroSizeKeepsTotal(t *testing.T) {
	db := newWidgetDB(t)

	page, err := FindUnbounded[widget](widgetQuery(db), widgetFields, Query{Size: 0})
	require.NoError(t, err)
	require.EqualValues(t, 5, page.Total)
	require.Empty(t, page.Items)
}

func TestFindBoolFilter(t *testing.T) {
	db := newWidgetDB(t)

	page, err := Find[widget](widgetQuery(db), widgetFields, Query{
		Filters: map[string]any{"active": false},
		Size:    10,
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
}
