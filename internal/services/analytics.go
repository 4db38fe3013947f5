package services

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

// Analytics holds the pure transformations over windowed price history. Every
// method is side-effect free and fully determined by its inputs.
type Analytics struct{}

var oneHundred = decimal.NewFromInt(100)

// Normalize rebases each asset's time-ordered series so its first value
// equals 100. A series whose first value is zero is passed through unchanged
// rather than divided by zero. Fewer than two distinct timestamps across the
// whole input means there is nothing to chart, reported as
// ErrInsufficientData.
func (Analytics) Normalize(points []*models.HistoryPoint) ([]models.PerformanceSeries, error) {
	if len(distinctTimestamps(points)) < 2 {
		return nil, apperrors.ErrInsufficientData
	}

	grouped := lo.GroupBy(points, func(p *models.HistoryPoint) int { return p.AssetID })

	series := make([]models.PerformanceSeries, 0, len(grouped))
	for assetID, group := range grouped {
		first := group[0].Price
		out := models.PerformanceSeries{
			AssetID:   assetID,
			AssetName: group[0].AssetName,
			Points:    make([]models.PerformancePoint, 0, len(group)),
		}
		for _, p := range group {
			value := p.Price
			if !first.IsZero() {
				value = p.Price.Div(first).Mul(oneHundred)
			}
			out.Points = append(out.Points, models.PerformancePoint{
				RecordedAt: p.RecordedAt,
				Value:      value,
			})
		}
		series = append(series, out)
	}

	sort.Slice(series, func(i, j int) bool { return series[i].AssetName < series[j].AssetName })
	return series, nil
}

// Pivot aligns several assets' series onto the union of their observed
// timestamps (an outer join on recorded_at). Columns that end up with no
// values at all are dropped.
func (Analytics) Pivot(points []*models.HistoryPoint) *models.PivotTable {
	timestamps := distinctTimestamps(points)
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

	index := make(map[int64]int, len(timestamps))
	for i, ts := range timestamps {
		index[ts.UnixNano()] = i
	}

	grouped := lo.GroupBy(points, func(p *models.HistoryPoint) int { return p.AssetID })

	columns := make([]models.PivotColumn, 0, len(grouped))
	for assetID, group := range grouped {
		col := models.PivotColumn{
			AssetID:   assetID,
			AssetName: group[0].AssetName,
			Values:    make([]*decimal.Decimal, len(timestamps)),
		}
		filled := false
		for _, p := range group {
			v := p.Price
			col.Values[index[p.RecordedAt.UnixNano()]] = &v
			filled = true
		}
		if filled {
			columns = append(columns, col)
		}
	}

	sort.Slice(columns, func(i, j int) bool { return columns[i].AssetName < columns[j].AssetName })
	return &models.PivotTable{Timestamps: timestamps, Columns: columns}
}

// Correlation computes the pairwise Pearson correlation matrix of the
// percentage-change returns of the pivoted series. It needs at least two
// surviving columns and one complete return row; anything less is
// ErrInsufficientData.
func (a Analytics) Correlation(pivot *models.PivotTable) (*models.CorrelationMatrix, error) {
	names, rows, err := returnRows(pivot)
	if err != nil {
		return nil, err
	}

	n := len(names)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			xs := make([]float64, len(rows))
			ys := make([]float64, len(rows))
			for k, row := range rows {
				xs[k] = row[i]
				ys[k] = row[j]
			}
			r := pearson(xs, ys)
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return &models.CorrelationMatrix{Assets: names, Matrix: matrix}, nil
}

// Volatility reshapes the same returns into (asset, daily return) pairs so
// the caller can render the full per-asset distribution.
func (a Analytics) Volatility(pivot *models.PivotTable) (*models.VolatilityReport, error) {
	names, rows, err := returnRows(pivot)
	if err != nil {
		return nil, err
	}

	report := &models.VolatilityReport{Points: make([]models.ReturnPoint, 0, len(rows)*len(names))}
	for _, row := range rows {
		for i, name := range names {
			report.Points = append(report.Points, models.ReturnPoint{AssetName: name, Return: row[i]})
		}
	}
	return report, nil
}

// returnRows computes percentage-change returns per column and keeps only the
// rows where every column has a defined return.
func returnRows(pivot *models.PivotTable) ([]string, [][]float64, error) {
	if pivot == nil || len(pivot.Columns) < 2 {
		return nil, nil, apperrors.ErrInsufficientData
	}

	names := lo.Map(pivot.Columns, func(c models.PivotColumn, _ int) string { return c.AssetName })

	var rows [][]float64
	for t := 1; t < len(pivot.Timestamps); t++ {
		row := make([]float64, len(pivot.Columns))
		complete := true
		for i, col := range pivot.Columns {
			prev, cur := col.Values[t-1], col.Values[t]
			if prev == nil || cur == nil || prev.IsZero() {
				complete = false
				break
			}
			ret, _ := cur.Sub(*prev).Div(*prev).Float64()
			row[i] = ret
		}
		if complete {
			rows = append(rows, row)
		}
	}

	if len(rows) < 1 {
		return nil, nil, apperrors.ErrInsufficientData
	}
	return names, rows, nil
}

// pearson returns the Pearson correlation coefficient of two equally sized
// samples, or 0 when either side has no variance.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n == 0 {
		return 0
	}

	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func distinctTimestamps(points []*models.HistoryPoint) []time.Time {
	seen := make(map[int64]struct{}, len(points))
	var out []time.Time
	for _, p := range points {
		key := p.RecordedAt.UnixNano()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p.RecordedAt)
	}
	return out
}
