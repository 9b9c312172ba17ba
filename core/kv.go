package core

import "context"

// KeyValueStore 是快照存储的领域接口，由 store 包实现（MemoryStore / RedisStore）。
//
// 外部加载器可以把门店表、顾客表的 CSV 快照写入 KV，推荐服务按 key 读取。
// 一个快照一旦写入即视为不可变，推荐过程对它只读。
type KeyValueStore interface {
	// Name 返回存储后端名称（用于日志）
	Name() string

	// Get 读取单个 key 的值，不存在时返回 ErrStoreNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value，ttl 单位为秒，可省略
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取，不存在的 key 不出现在结果中
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet 原子地写入一组 key-value：读者要么看到全部新值，要么全部旧值
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close 关闭连接/释放资源
	Close() error
}
