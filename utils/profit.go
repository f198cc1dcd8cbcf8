package utils

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ProfitAmount là một khoản chi/thu theo danh mục
type ProfitAmount struct {
	Category string
	Amount   decimal.Decimal
}

// ProfitInput là số liệu kế toán của một tour package query
type ProfitInput struct {
	QueryId      uint
	QueryNumber  string
	Name         string
	CustomerName string
	Location     string
	PeriodFrom   CustomDate
	Sales        decimal.Decimal
	Purchases    decimal.Decimal // đã trừ purchase return
	Expenses     []ProfitAmount
	Incomes      []ProfitAmount
}

type ProfitRow struct {
	QueryId      uint            `json:"queryId"`
	QueryNumber  string          `json:"queryNumber"`
	Name         string          `json:"name"`
	CustomerName string          `json:"customerName"`
	Location     string          `json:"location"`
	PeriodFrom   CustomDate      `json:"periodFrom"`
	Sales        decimal.Decimal `json:"sales"`
	Purchases    decimal.Decimal `json:"purchases"`
	Expenses     decimal.Decimal `json:"expenses"`
	Income       decimal.Decimal `json:"income"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	Margin       decimal.Decimal `json:"marginPct"`
}

type ProfitTotals struct {
	QueryCount  int             `json:"queryCount"`
	Sales       decimal.Decimal `json:"sales"`
	Purchases   decimal.Decimal `json:"purchases"`
	Expenses    decimal.Decimal `json:"expenses"`
	Income      decimal.Decimal `json:"income"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
	NetProfit   decimal.Decimal `json:"netProfit"`
	Margin      decimal.Decimal `json:"marginPct"`
}

type MonthProfit struct {
	Month string `json:"month"` // YYYY-MM
	ProfitTotals
}

type CategoryAmount struct {
	Type     string          `json:"type"` // EXPENSE, INCOME
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type ProfitReport struct {
	From       string           `json:"from"`
	To         string           `json:"to"`
	Rows       []ProfitRow      `json:"rows"`
	Totals     ProfitTotals     `json:"totals"`
	ByMonth    []MonthProfit    `json:"byMonth"`
	ByCategory []CategoryAmount `json:"byCategory"`
}

const (
	CategoryExpense = "EXPENSE"
	CategoryIncome  = "INCOME"
)

var hundred = decimal.NewFromInt(100)

func sumAmounts(items []ProfitAmount) decimal.Decimal {
	total := decimal.Zero
	for _, i := range items {
		total = total.Add(i.Amount)
	}
	return total
}

// MarginPct = lợi nhuận ròng / doanh thu * 100, doanh thu 0 thì margin 0
func MarginPct(net, sales decimal.Decimal) decimal.Decimal {
	if sales.IsZero() {
		return decimal.Zero
	}
	return net.Div(sales).Mul(hundred).Round(2)
}

func (t *ProfitTotals) add(sales, purchases, expenses, income decimal.Decimal) {
	t.QueryCount++
	t.Sales = t.Sales.Add(sales)
	t.Purchases = t.Purchases.Add(purchases)
	t.Expenses = t.Expenses.Add(expenses)
	t.Income = t.Income.Add(income)
}

func (t *ProfitTotals) finish() {
	t.GrossProfit = t.Sales.Sub(t.Purchases).Round(2)
	t.NetProfit = t.Sales.Add(t.Income).Sub(t.Purchases).Sub(t.Expenses).Round(2)
	t.Margin = MarginPct(t.NetProfit, t.Sales)
	t.Sales = t.Sales.Round(2)
	t.Purchases = t.Purchases.Round(2)
	t.Expenses = t.Expenses.Round(2)
	t.Income = t.Income.Round(2)
}

// BuildProfitReport tổng hợp lãi lỗ theo query, theo tháng và theo danh mục
func BuildProfitReport(inputs []ProfitInput) ProfitReport {
	report := ProfitReport{
		Rows:       make([]ProfitRow, 0, len(inputs)),
		ByMonth:    []MonthProfit{},
		ByCategory: []CategoryAmount{},
	}
	months := map[string]*MonthProfit{}
	categories := map[[2]string]decimal.Decimal{}

	for _, in := range inputs {
		expenses := sumAmounts(in.Expenses)
		income := sumAmounts(in.Incomes)
		gross := in.Sales.Sub(in.Purchases)
		net := in.Sales.Add(income).Sub(in.Purchases).Sub(expenses)

		report.Rows = append(report.Rows, ProfitRow{
			QueryId:      in.QueryId,
			QueryNumber:  in.QueryNumber,
			Name:         in.Name,
			CustomerName: in.CustomerName,
			Location:     in.Location,
			PeriodFrom:   in.PeriodFrom,
			Sales:        in.Sales.Round(2),
			Purchases:    in.Purchases.Round(2),
			Expenses:     expenses.Round(2),
			Income:       income.Round(2),
			GrossProfit:  gross.Round(2),
			NetProfit:    net.Round(2),
			Margin:       MarginPct(net, in.Sales),
		})
		report.Totals.add(in.Sales, in.Purchases, expenses, income)

		key := in.PeriodFrom.MonthKey()
		m, ok := months[key]
		if !ok {
			m = &MonthProfit{Month: key}
			months[key] = m
		}
		m.add(in.Sales, in.Purchases, expenses, income)

		for _, e := range in.Expenses {
			k := [2]string{CategoryExpense, e.Category}
			categories[k] = categories[k].Add(e.Amount)
		}
		for _, i := range in.Incomes {
			k := [2]string{CategoryIncome, i.Category}
			categories[k] = categories[k].Add(i.Amount)
		}
	}
	report.Totals.finish()

	for _, m := range months {
		m.finish()
		report.ByMonth = append(report.ByMonth, *m)
	}
	sort.Slice(report.ByMonth, func(i, j int) bool { return report.ByMonth[i].Month < report.ByMonth[j].Month })

	for k, amount := range categories {
		report.ByCategory = append(report.ByCategory, CategoryAmount{Type: k[0], Category: k[1], Amount: amount.Round(2)})
	}
	sort.Slice(report.ByCategory, func(i, j int) bool {
		a, b := report.ByCategory[i], report.ByCategory[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Category < b.Category
	})
	return report
}
