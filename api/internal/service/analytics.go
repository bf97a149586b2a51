package service

import (
	"sort"
	"time"

	"sharkpay/api/internal/domain"

	"github.com/shopspring/decimal"
)

// BuildAnalytics sums completed transactions and buckets them by local day.
// Only the last `days` buckets are kept, oldest first.
func BuildAnalytics(txs []domain.Transactions, loc *time.Location, days int) domain.Analytics {
	analytics := domain.Analytics{DailyRevenue: []domain.DailyRevenue{}}

	buckets := map[string]*domain.DailyRevenue{}
	for _, tx := range txs {
		if tx.Status != domain.TX_COMPLETED {
			continue
		}
		analytics.TotalRevenue = analytics.TotalRevenue.Add(tx.NetAmount)
		analytics.TotalFees = analytics.TotalFees.Add(tx.Fee)
		analytics.TxCount++

		day := tx.Timestamp.In(loc).Format(time.DateOnly)
		b, ok := buckets[day]
		if !ok {
			b = &domain.DailyRevenue{Date: day}
			buckets[day] = b
		}
		b.Revenue = b.Revenue.Add(tx.NetAmount)
		b.Count++
	}

	if analytics.TxCount > 0 {
		analytics.AvgOrderValue = analytics.TotalRevenue.Div(decimal.NewFromInt(int64(analytics.TxCount))).Round(0)
	}

	for _, b := range buckets {
		analytics.DailyRevenue = append(analytics.DailyRevenue, *b)
	}
	// YYYY-MM-DD sorts chronologically as a string
	sort.Slice(analytics.DailyRevenue, func(i, j int) bool {
		return analytics.DailyRevenue[i].Date < analytics.DailyRevenue[j].Date
	})
	if len(analytics.DailyRevenue) > days {
		analytics.DailyRevenue = analytics.DailyRevenue[len(analytics.DailyRevenue)-days:]
	}
	return analytics
}

// BuildChart groups revenue by M/D label in chronological order and keeps the last points.
func BuildChart(txs []domain.Transactions, loc *time.Location, points int) []domain.ChartPoint {
	type bucket struct {
		day   time.Time
		point domain.ChartPoint
	}

	buckets := map[string]*bucket{}
	for _, tx := range txs {
		if tx.Status != domain.TX_COMPLETED {
			continue
		}
		local := tx.Timestamp.In(loc)
		label := local.Format("1/2")
		b, ok := buckets[label]
		if !ok {
			b = &bucket{
				day:   time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc),
				point: domain.ChartPoint{Date: label},
			}
			buckets[label] = b
		}
		b.point.Revenue = b.point.Revenue.Add(tx.NetAmount)
	}

	sorted := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].day.Before(sorted[j].day) })
	if len(sorted) > points {
		sorted = sorted[len(sorted)-points:]
	}

	chart := make([]domain.ChartPoint, 0, len(sorted))
	for _, b := range sorted {
		chart = append(chart, b.point)
	}
	return chart
}
