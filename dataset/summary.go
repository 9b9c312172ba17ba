package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/feature"
	"github.com/rushteam/foodrank/geo"
)

// Summary 数据集概览指标，缺失值不参与统计。
type Summary struct {
	Stores     int
	Customers  int
	MeanRating float64 // 无有效值时为 NaN
	MeanPrice  float64 // 无有效值时为 NaN
	TotalBags  float64
	Center     geo.Coordinate // 门店坐标均值，用于地图居中

	// 各列的分布（仅有效值）
	Rating *feature.FeatureStatistics
	Price  *feature.FeatureStatistics
	Bags   *feature.FeatureStatistics
}

// Summarize 计算 d 的概览指标。
func Summarize(d *Dataset) Summary {
	var ratings, prices, bags, lats, lons []float64
	for _, s := range d.Stores {
		if s.Rating.Valid {
			ratings = append(ratings, s.Rating.Value)
		}
		if s.Price.Valid {
			prices = append(prices, s.Price.Value)
		}
		if s.Bags.Valid {
			bags = append(bags, s.Bags.Value)
		}
		if s.Location.Valid() {
			lats = append(lats, s.Location.Lat)
			lons = append(lons, s.Location.Lon)
		}
	}
	sum := Summary{
		Stores:    len(d.Stores),
		Customers: len(d.Customers),
		Rating:    feature.ComputeStatistics(ratings),
		Price:     feature.ComputeStatistics(prices),
		Bags:      feature.ComputeStatistics(bags),
		Center:    geo.Coordinate{Lat: mean(lats), Lon: mean(lons)},
	}
	sum.MeanRating = meanOf(sum.Rating)
	sum.MeanPrice = meanOf(sum.Price)
	sum.TotalBags = sum.Bags.Sum
	return sum
}

func meanOf(s *feature.FeatureStatistics) float64 {
	if s.Count == 0 {
		return math.NaN()
	}
	return s.Mean
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// 可用于 TopBy 的列
const (
	ByRating = "rating"
	ByBags   = "bags"
)

// TopBy 按 rating 或 bags 降序返回前 n 家门店，缺失值排在最后；
// 值相同时保持表中顺序。不修改 stores。
func TopBy(stores []core.Store, column string, n int) []core.Store {
	if n <= 0 {
		return []core.Store{}
	}
	pick := func(s core.Store) core.OptionalFloat { return s.Rating }
	if column == ByBags {
		pick = func(s core.Store) core.OptionalFloat { return s.Bags }
	}

	out := make([]core.Store, len(stores))
	copy(out, stores)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := pick(out[i]), pick(out[j])
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Value > b.Value
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
