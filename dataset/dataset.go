package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/pkg/logging"
)

// Dataset 加载完成的门店表与顾客表快照，加载后不再修改。
type Dataset struct {
	Number    int
	Stores    []core.Store
	Customers []core.Customer

	customers map[string]int
}

// New 由已解析的两张表构造 Dataset。顾客 ID 重复时以首次出现为准。
func New(number int, stores []core.Store, customers []core.Customer) *Dataset {
	d := &Dataset{
		Number:    number,
		Stores:    stores,
		Customers: customers,
		customers: make(map[string]int, len(customers)),
	}
	for i, c := range customers {
		if _, ok := d.customers[c.ID]; !ok {
			d.customers[c.ID] = i
		}
	}
	return d
}

// Customer 按 ID 查找顾客，不存在时返回 INVALID_CUSTOMER。
func (d *Dataset) Customer(id string) (*core.Customer, error) {
	i, ok := d.customers[normalizeID(id)]
	if !ok {
		return nil, core.NewInvalidCustomerError(id)
	}
	c := d.Customers[i]
	return &c, nil
}

// CustomerIDs 顾客 ID 列表，按表中顺序。
func (d *Dataset) CustomerIDs() []string {
	ids := make([]string, len(d.Customers))
	for i, c := range d.Customers {
		ids[i] = c.ID
	}
	return ids
}

// Load 并发读取一组 CSV 文件。任一表缺少必需列时整体失败，不返回部分结果。
func Load(ctx context.Context, pair Pair) (*Dataset, error) {
	start := time.Now()
	var (
		stores    []core.Store
		customers []core.Customer
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stores, err = parseFile(pair.StoresPath, ParseStores)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = parseFile(pair.CustomersPath, ParseCustomers)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := New(pair.Number, stores, customers)
	logging.Ctx(ctx).Info().
		Int("dataset", pair.Number).
		Int("stores", len(stores)).
		Int("customers", len(customers)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset loaded")
	return d, nil
}

func parseFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

// StoresKey / CustomersKey 返回快照在 KV 中的 key。
func StoresKey(prefix string) string    { return prefix + ":stores" }
func CustomersKey(prefix string) string { return prefix + ":customers" }

// LoadFromStore 从 KV 存储读取外部加载器发布的 CSV 快照。
// 任一 key 不存在时返回 NOT_FOUND。
func LoadFromStore(ctx context.Context, kv core.KeyValueStore, prefix string, number int) (*Dataset, error) {
	sk, ck := StoresKey(prefix), CustomersKey(prefix)
	vals, err := kv.BatchGet(ctx, []string{sk, ck})
	if err != nil {
		return nil, fmt.Errorf("%s batch get %s: %w", kv.Name(), prefix, err)
	}
	for _, k := range []string{sk, ck} {
		if _, ok := vals[k]; !ok {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeNotFound,
				fmt.Sprintf("snapshot key %q not found in %s", k, kv.Name()))
		}
	}

	stores, err := ParseStores(bytes.NewReader(vals[sk]))
	if err != nil {
		return nil, err
	}
	customers, err := ParseCustomers(bytes.NewReader(vals[ck]))
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("backend", kv.Name()).
		Str("key", prefix).
		Int("stores", len(stores)).
		Int("customers", len(customers)).
		Msg("dataset loaded from store")
	return New(number, stores, customers), nil
}

// Publish 把一组 CSV 文件原样写入 KV，供 LoadFromStore 读取。
// 两张表在一次 BatchSet 中写入，并发的 LoadFromStore 不会读到新旧混合的快照。
// ttl 单位为秒，<= 0 表示不过期。
func Publish(ctx context.Context, kv core.KeyValueStore, prefix string, pair Pair, ttl int) error {
	kvs := make(map[string][]byte, 2)
	for key, path := range map[string]string{
		StoresKey(prefix):    pair.StoresPath,
		CustomersKey(prefix): pair.CustomersPath,
	} {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		kvs[key] = data
	}
	if err := kv.BatchSet(ctx, kvs, ttl); err != nil {
		return fmt.Errorf("%s batch set %s: %w", kv.Name(), prefix, err)
	}
	return nil
}
