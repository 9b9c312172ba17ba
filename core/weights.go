package core

// 归一化后的五个特征名，写入 ScoredStore.Features。
const (
	FeatureRating   = "n_rating"
	FeaturePrice    = "n_price" // 已取反：越便宜越高
	FeatureValue    = "n_value"
	FeatureBags     = "n_bags"
	FeatureDistance = "n_dist" // 已取反：越近越高
)

// FeatureOrder 固定的特征顺序，打分时按此顺序累加以保证结果可复现。
var FeatureOrder = []string{
	FeatureRating,
	FeaturePrice,
	FeatureValue,
	FeatureBags,
	FeatureDistance,
}

// WeightVector 五个目标的权重，每次请求显式传入的不可变值对象。
//
// 引擎不会做归一化，也不校验取值范围：权重之和不要求为 1，
// 负权重会反转对应项的贡献。是否允许负权重由上层决定。
type WeightVector struct {
	Rating   float64 `koanf:"rating" yaml:"rating" json:"rating" validate:"gte=0"`
	Price    float64 `koanf:"price" yaml:"price" json:"price" validate:"gte=0"`
	Value    float64 `koanf:"value" yaml:"value" json:"value" validate:"gte=0"`
	Bags     float64 `koanf:"bags" yaml:"bags" json:"bags" validate:"gte=0"`
	Distance float64 `koanf:"distance" yaml:"distance" json:"distance" validate:"gte=0"`
}

// DefaultWeights 返回默认权重（评分 0.30、价格 0.20、估值 0.25、餐袋 0.20、距离 0.05）。
func DefaultWeights() WeightVector {
	return WeightVector{
		Rating:   0.30,
		Price:    0.20,
		Value:    0.25,
		Bags:     0.20,
		Distance: 0.05,
	}
}

// Of 返回特征对应的权重，未知特征返回 0。
func (w WeightVector) Of(feature string) float64 {
	switch feature {
	case FeatureRating:
		return w.Rating
	case FeaturePrice:
		return w.Price
	case FeatureValue:
		return w.Value
	case FeatureBags:
		return w.Bags
	case FeatureDistance:
		return w.Distance
	default:
		return 0
	}
}
