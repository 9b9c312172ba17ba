package core

import "github.com/rushteam/foodrank/geo"

// Store 是门店表中的一行。数值列可能缺失，统一用 OptionalFloat 承载。
type Store struct {
	ID       int64 // 唯一且稳定，ValuationResolver 以此为 key
	Name     string
	Branch   string
	Location geo.Coordinate

	Rating OptionalFloat // average_overall_rating
	Price  OptionalFloat // price，非负
	Bags   OptionalFloat // average_bags_at_9AM，剩余餐袋数
}

// Customer 是顾客表中的一行。
// Valuations 是稀疏映射：store_id -> 该顾客对该门店的个性化估值，
// 未出现的门店按默认值处理，不视为错误。
type Customer struct {
	ID         string
	Location   geo.Coordinate
	Valuations map[int64]float64
}
