package core

// RecommendContext 承载一次推荐请求的全部输入，贯穿整个 Pipeline 透传。
// 它在请求开始时构造，Node 只读取、不修改。
type RecommendContext struct {
	RequestID string

	// Customer 已解析的顾客记录（不存在的顾客应在进入 Pipeline 前报错）
	Customer *Customer

	// Stores 当前门店表，归一化范围以整张表为准
	Stores []Store

	Weights WeightVector

	// TopN 请求级截断数量，rerank.TopNNode 未显式配置 N 时使用
	TopN int
}
