package model

// RankModel 是打分阶段的最小抽象：输入归一化特征，输出一个可比较的分数。
// 实现必须是纯函数：相同特征得到相同分数，不依赖门店之间的任何交互。
type RankModel interface {
	Name() string
	Predict(features map[string]float64) (float64, error)
}
