package utils

// Label 是 explain 信息的载体：记录某个门店在链路中经过了哪些处理。
// 例如 rank_model=weighted_sum、fill_price=median。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / feature / rank / filter / rerank
}

// MergeLabel 合并同名 Label，保留历史：
// - Value 以 '|' 累积
// - Source 以 ',' 累积，相同来源不重复
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "" || existing.Source == incoming.Source:
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
