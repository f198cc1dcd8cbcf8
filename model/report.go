package model

import "github.com/shopspring/decimal"

type DashboardStatistic struct {
	QueriesByStatus  map[string]int64 `json:"queriesByStatus"`
	UpcomingTours    int64            `json:"upcomingTours"`
	TodayReceipts    decimal.Decimal  `json:"todayReceipts"`
	YesterdayReceipt decimal.Decimal  `json:"yesterdayReceipts"`
	ReceiptGrowth    decimal.Decimal  `json:"receiptGrowthPct"`
	OpenInquiries    int64            `json:"openInquiries"`
	PendingCatalog   int64            `json:"pendingCatalog"`
}

type FilterProfit struct {
	From       string `query:"from"`
	To         string `query:"to"`
	LocationId uint   `query:"locationId"`
	Archive    bool   `query:"archive"`
}
