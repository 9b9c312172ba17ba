// Package geo 提供门店与顾客之间的球面距离计算。
package geo

import "math"

// EarthRadiusKM 地球平均半径（km）。
const EarthRadiusKM = 6371.0

// Coordinate 经纬度坐标（角度制）。缺失坐标以 NaN 表示。
type Coordinate struct {
	Lat float64
	Lon float64
}

// Missing 返回一个缺失坐标。
func Missing() Coordinate {
	return Coordinate{Lat: math.NaN(), Lon: math.NaN()}
}

// Valid 坐标是否可用于距离计算：有限值且在经纬度合法范围内。
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Distance 使用 haversine 公式计算两点间大圆距离（km）。
// 参数顺序为 (lon1, lat1, lon2, lat2)，角度制。
// 不做缺失值替换：任一输入为 NaN 时返回 NaN，由调用方按中位数策略填充。
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	// 近对跖点时浮点误差可能使 a 略大于 1
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKM * c
}

// Between 计算两个坐标之间的距离；任一坐标无效时 ok=false。
func Between(from, to Coordinate) (km float64, ok bool) {
	if !from.Valid() || !to.Valid() {
		return 0, false
	}
	return Distance(from.Lon, from.Lat, to.Lon, to.Lat), true
}
