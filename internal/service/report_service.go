package service

import (
	"context"
	"sort"
	"time"

	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type DateRangeRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type ProductSalesRequest struct {
	DateRangeRequest
	ProductIDs []int64 `json:"product_ids"`
}

type CategoriesRollupRequest struct {
	DateRangeRequest
	CategoryIDs []int64 `json:"category_ids"`
}

type CustomerSalesRequest struct {
	DateRangeRequest
	CustomerID int64 `json:"customer_id" binding:"required"`
}

type CustomerSalesResponse struct {
	CustomerID   int64                        `json:"customer_id"`
	CustomerName string                       `json:"customer_name"`
	TotalRevenue float64                       `json:"total_revenue"`
	Products     []repository.CustomerSalesRow `json:"products"`
}

// CashflowEntry is one inflow: a delivered order's realized revenue or an
// income record.
type CashflowEntry struct {
	Source   string  `json:"source"` // "order" or "income"
	SourceID int64   `json:"source_id"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
}

type CashflowRecord struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Note   *string `json:"note"`
}

type CashflowResponse struct {
	EntriesTotal  float64          `json:"entries_total"`
	ExpensesTotal float64          `json:"expenses_total"`
	Net           float64          `json:"net"`
	Entries       []CashflowEntry  `json:"entries"`
	Expenses      []CashflowRecord `json:"expenses"`
}

type DailyCustomerBreakdown struct {
	CustomerID   int64   `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	OrderStatus  string  `json:"order_status"`
	Quantity     float64 `json:"quantity"`
}

type DailyProductSummary struct {
	ProductID   int64                    `json:"product_id"`
	ProductName string                   `json:"product_name"`
	ProductUnit string                   `json:"product_unit"`
	TotalQty    float64                  `json:"total_qty"`
	Customers   []DailyCustomerBreakdown `json:"customers"`
}

type DailySummary struct {
	Date     string                `json:"date"`
	Products []DailyProductSummary `json:"products"`
}

// --- Interface ---

type ReportService interface {
	ProductSales(ctx context.Context, req ProductSalesRequest) ([]repository.ProductSalesRow, error)
	ExpenseCategoriesRollup(ctx context.Context, req CategoriesRollupRequest) ([]repository.CategoryRollupRow, error)
	IncomeCategoriesRollup(ctx context.Context, req CategoriesRollupRequest) ([]repository.CategoryRollupRow, error)
	CustomerSales(ctx context.Context, req CustomerSalesRequest) (*CustomerSalesResponse, error)
	Cashflow(ctx context.Context, req DateRangeRequest) (*CashflowResponse, error)
	DailySummary(ctx context.Context, req DateRangeRequest) ([]DailySummary, error)
}

type reportService struct {
	reportRepo   repository.ReportRepository
	customerRepo repository.CustomerRepository
}

func NewReportService(reportRepo repository.ReportRepository, customerRepo repository.CustomerRepository) ReportService {
	return &reportService{reportRepo: reportRepo, customerRepo: customerRepo}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func parseWindow(req DateRangeRequest) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidation("invalid start_date: %s", req.StartDate)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidation("invalid end_date: %s", req.EndDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperror.NewValidation("end_date precedes start_date")
	}
	// Timestamp columns carry a time of day; stretch the end bound so the
	// whole final day is included.
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, nil
}

func (s *reportService) ProductSales(ctx context.Context, req ProductSalesRequest) ([]repository.ProductSalesRow, error) {
	start, end, err := parseWindow(req.DateRangeRequest)
	if err != nil {
		return nil, err
	}
	rows, err := s.reportRepo.ProductSales(ctx, start, end, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Revenue = round2(rows[i].Revenue)
	}
	return rows, nil
}

func (s *reportService) ExpenseCategoriesRollup(ctx context.Context, req CategoriesRollupRequest) ([]repository.CategoryRollupRow, error) {
	start, end, err := parseWindow(req.DateRangeRequest)
	if err != nil {
		return nil, err
	}
	rows, err := s.reportRepo.ExpenseCategoriesRollup(ctx, start, end, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Amount = round2(rows[i].Amount)
	}
	return rows, nil
}

func (s *reportService) IncomeCategoriesRollup(ctx context.Context, req CategoriesRollupRequest) ([]repository.CategoryRollupRow, error) {
	start, end, err := parseWindow(req.DateRangeRequest)
	if err != nil {
		return nil, err
	}
	rows, err := s.reportRepo.IncomeCategoriesRollup(ctx, start, end, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Amount = round2(rows[i].Amount)
	}
	return rows, nil
}

func (s *reportService) CustomerSales(ctx context.Context, req CustomerSalesRequest) (*CustomerSalesResponse, error) {
	start, end, err := parseWindow(req.DateRangeRequest)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewReferenceNotFound("customer %d not found", req.CustomerID)
	}

	rows, err := s.reportRepo.CustomerSalesPerProduct(ctx, req.CustomerID, start, end)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].AvgDiscount = round2(rows[i].AvgDiscount)
		rows[i].Revenue = round2(rows[i].Revenue)
	}

	total, err := s.reportRepo.CustomerSalesTotal(ctx, req.CustomerID, start, end)
	if err != nil {
		return nil, err
	}

	return &CustomerSalesResponse{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		TotalRevenue: round2(total),
		Products:     rows,
	}, nil
}

func (s *reportService) Cashflow(ctx context.Context, req DateRangeRequest) (*CashflowResponse, error) {
	start, end, err := parseWindow(req)
	if err != nil {
		return nil, err
	}

	orderEntries, err := s.reportRepo.DeliveredOrderEntries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	incomes, err := s.reportRepo.IncomesInWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.reportRepo.ExpensesInWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}

	entries := make([]CashflowEntry, 0, len(orderEntries)+len(incomes))
	entriesTotal := decimal.Zero
	for _, e := range orderEntries {
		entries = append(entries, CashflowEntry{
			Source:   "order",
			SourceID: e.OrderID,
			Date:     e.Date.Format(dateLayout),
			Amount:   round2(e.Amount),
		})
		// Totals accumulate the raw amounts; rounding happens once below.
		entriesTotal = entriesTotal.Add(decimal.NewFromFloat(e.Amount))
	}
	for _, inc := range incomes {
		entries = append(entries, CashflowEntry{
			Source:   "income",
			SourceID: inc.ID,
			Date:     inc.Date.Format(dateLayout),
			Amount:   round2(inc.Amount),
		})
		entriesTotal = entriesTotal.Add(decimal.NewFromFloat(inc.Amount))
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

	expenseRecords := make([]CashflowRecord, 0, len(expenses))
	expensesTotal := decimal.Zero
	for _, exp := range expenses {
		expenseRecords = append(expenseRecords, CashflowRecord{
			ID:     exp.ID,
			Date:   exp.Date.Format(dateLayout),
			Amount: round2(exp.Amount),
			Note:   exp.Note,
		})
		expensesTotal = expensesTotal.Add(decimal.NewFromFloat(exp.Amount))
	}

	return &CashflowResponse{
		EntriesTotal:  entriesTotal.Round(2).InexactFloat64(),
		ExpensesTotal: expensesTotal.Round(2).InexactFloat64(),
		Net:           entriesTotal.Sub(expensesTotal).Round(2).InexactFloat64(),
		Entries:       entries,
		Expenses:      expenseRecords,
	}, nil
}

func (s *reportService) DailySummary(ctx context.Context, req DateRangeRequest) ([]DailySummary, error) {
	start, end, err := parseWindow(req)
	if err != nil {
		return nil, err
	}

	totals, err := s.reportRepo.DailyTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.reportRepo.DailyBreakdown(ctx, start, end)
	if err != nil {
		return nil, err
	}

	type dayProduct struct {
		day       string
		productID int64
	}
	customersByKey := make(map[dayProduct][]DailyCustomerBreakdown)
	for _, row := range breakdown {
		key := dayProduct{day: row.Day.Format(dateLayout), productID: row.ProductID}
		customersByKey[key] = append(customersByKey[key], DailyCustomerBreakdown{
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			OrderStatus:  row.OrderStatus,
			Quantity:     row.Qty,
		})
	}

	summaries := []DailySummary{}
	for _, row := range totals {
		day := row.Day.Format(dateLayout)
		if len(summaries) == 0 || summaries[len(summaries)-1].Date != day {
			summaries = append(summaries, DailySummary{Date: day, Products: []DailyProductSummary{}})
		}
		current := &summaries[len(summaries)-1]
		key := dayProduct{day: day, productID: row.ProductID}
		customers := customersByKey[key]
		if customers == nil {
			customers = []DailyCustomerBreakdown{}
		}
		current.Products = append(current.Products, DailyProductSummary{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			ProductUnit: row.ProductUnit,
			TotalQty:    row.TotalQty,
			Customers:   customers,
		})
	}
	return summaries, nil
}
