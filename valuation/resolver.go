// Package valuation 解析顾客对门店的个性化估值。
//
// 估值是稀疏的：顾客表只为部分门店提供 store<ID>_valuation 列值。
// 查不到的门店按 DefaultValuation 处理；估值映射中存在、但当前门店表中
// 没有的门店不会被查询，因此被自然忽略。
package valuation

import (
	"regexp"
	"strconv"

	"github.com/rushteam/foodrank/core"
)

// DefaultValuation 顾客未对门店估值时的默认值。
const DefaultValuation = 0.0

var columnPattern = regexp.MustCompile(`^store(\d+)_valuation$`)

// Resolve 返回 customer 对 storeID 的估值；缺失时返回 DefaultValuation。
func Resolve(customer *core.Customer, storeID int64) float64 {
	v, _ := Lookup(customer, storeID)
	return v
}

// Lookup 同 Resolve，并报告估值是否真实存在（用于 explain）。
func Lookup(customer *core.Customer, storeID int64) (float64, bool) {
	if customer == nil || customer.Valuations == nil {
		return DefaultValuation, false
	}
	v, ok := customer.Valuations[storeID]
	if !ok {
		return DefaultValuation, false
	}
	return v, true
}

// StoreIDFromColumn 解析形如 store<ID>_valuation 的列名，返回门店 ID。
func StoreIDFromColumn(column string) (int64, bool) {
	m := columnPattern.FindStringSubmatch(column)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ColumnName 返回门店 ID 对应的估值列名。
func ColumnName(storeID int64) string {
	return "store" + strconv.FormatInt(storeID, 10) + "_valuation"
}
