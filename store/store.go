// Package store 提供 core.KeyValueStore 的实现，用于存放外部加载器发布的数据集快照。
//
// 示例：
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
//	kv, err := store.NewRedisStore("localhost:6379", 0)
package store
