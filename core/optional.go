package core

import "math"

// OptionalFloat 是"可缺失数值"的显式表示，对应表格里的空值/非法值。
type OptionalFloat struct {
	Value float64
	Valid bool
}

// Some 构造一个有效值；NaN 和 ±Inf 视为缺失。
func Some(v float64) OptionalFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return OptionalFloat{}
	}
	return OptionalFloat{Value: v, Valid: true}
}

// None 构造一个缺失值。
func None() OptionalFloat {
	return OptionalFloat{}
}

// Or 有效时返回值，否则返回 def。
func (o OptionalFloat) Or(def float64) float64 {
	if o.Valid {
		return o.Value
	}
	return def
}
