// foodrank 在命令行中为顾客推荐门店，并输出数据集概览。
//
//	foodrank -dataset 46 -customer 42 -top 5
//	foodrank -w-rating 1 -w-price 0 -w-value 0 -w-bags 0 -w-distance 0
//	foodrank -publish            # 把 CSV 快照写入 Redis
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rushteam/foodrank/config"
	_ "github.com/rushteam/foodrank/config/builders"
	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/dataset"
	"github.com/rushteam/foodrank/filter"
	"github.com/rushteam/foodrank/pipeline"
	"github.com/rushteam/foodrank/pkg/logging"
	"github.com/rushteam/foodrank/recommend"
	"github.com/rushteam/foodrank/store"
)

func main() {
	var (
		cfgPath  string
		publish  bool
		list     bool
		topStats int
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; CONFIG_PATH or ./foodrank.yaml)")
	flag.BoolVar(&publish, "publish", false, "Publish the selected dataset to Redis and exit")
	flag.BoolVar(&list, "list", false, "List available datasets and exit")
	flag.IntVar(&topStats, "overview", 5, "Number of stores shown in the rating/bags overview")
	dsNum := flag.Int("dataset", 0, "Dataset number (0 = latest)")
	customerID := flag.String("customer", "", "Customer ID (default: first customer in the table)")
	topN := flag.Int("top", 0, "Number of stores to recommend")
	wRating := flag.Float64("w-rating", 0, "Weight of store rating")
	wPrice := flag.Float64("w-price", 0, "Weight of low price")
	wValue := flag.Float64("w-value", 0, "Weight of customer valuation")
	wBags := flag.Float64("w-bags", 0, "Weight of bags left at 9AM")
	wDist := flag.Float64("w-distance", 0, "Weight of proximity")
	flag.Parse()

	settings, err := config.Load(cfgPath)
	if err != nil {
		fatal(err)
	}
	// 显式给出的命令行参数覆盖配置
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dataset":
			settings.Dataset = *dsNum
		case "customer":
			settings.Customer = *customerID
		case "top":
			settings.TopN = *topN
		case "w-rating":
			settings.Weights.Rating = *wRating
		case "w-price":
			settings.Weights.Price = *wPrice
		case "w-value":
			settings.Weights.Value = *wValue
		case "w-bags":
			settings.Weights.Bags = *wBags
		case "w-distance":
			settings.Weights.Distance = *wDist
		}
	})
	if err := settings.Validate(); err != nil {
		fatal(err)
	}
	logging.Init(settings.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, settings, publish, list, topStats); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, out io.Writer, s *config.Settings, publish, list bool, topStats int) error {
	pairs, err := dataset.FindPairs(s.DatasetsDir)
	if err != nil && !s.Redis.Enabled {
		return err
	}
	if list {
		for _, p := range pairs {
			fmt.Fprintf(out, "%d\t%s\t%s\n", p.Number, p.StoresPath, p.CustomersPath)
		}
		return nil
	}

	ds, err := loadDataset(ctx, s, pairs, publish)
	if err != nil || ds == nil {
		return err
	}

	engine, err := newEngine(s)
	if err != nil {
		return err
	}

	customerID := s.Customer
	if customerID == "" {
		if len(ds.Customers) == 0 {
			return core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput, "customers table is empty")
		}
		customerID = ds.Customers[0].ID
	}

	res, err := engine.RecommendFor(ctx, ds, customerID, s.Weights, s.TopN)
	if err != nil {
		return err
	}

	printSummary(out, ds, topStats)
	fmt.Fprintf(out, "\nTop %d stores for customer %s\n", s.TopN, customerID)
	printRanked(out, res.Ranked)
	return nil
}

func loadDataset(ctx context.Context, s *config.Settings, pairs []dataset.Pair, publish bool) (*dataset.Dataset, error) {
	pair, havePair := dataset.Select(pairs, s.Dataset)

	if publish {
		if !havePair {
			return nil, fmt.Errorf("dataset %d not found in %s", s.Dataset, s.DatasetsDir)
		}
		kv, err := store.NewRedisStore(s.Redis.Addr, s.Redis.DB)
		if err != nil {
			return nil, err
		}
		defer kv.Close()
		key := snapshotKey(s, pair.Number)
		if err := dataset.Publish(ctx, kv, key, pair, s.Redis.TTL); err != nil {
			return nil, err
		}
		logging.Info().Str("key", key).Int("dataset", pair.Number).Msg("dataset published")
		return nil, nil
	}

	if s.Redis.Enabled {
		kv, err := store.NewRedisStore(s.Redis.Addr, s.Redis.DB)
		if err != nil {
			return nil, err
		}
		defer kv.Close()
		number := s.Dataset
		if number == 0 && havePair {
			number = pair.Number
		}
		return dataset.LoadFromStore(ctx, kv, snapshotKey(s, number), number)
	}

	if !havePair {
		return nil, fmt.Errorf("no dataset found in %s", s.DatasetsDir)
	}
	return dataset.Load(ctx, pair)
}

func snapshotKey(s *config.Settings, number int) string {
	if number <= 0 {
		return s.Redis.Key
	}
	return s.Redis.Key + ":" + strconv.Itoa(number)
}

func newEngine(s *config.Settings) (*recommend.Engine, error) {
	if s.PipelinePath != "" {
		load := pipeline.LoadFromYAML
		if strings.EqualFold(filepath.Ext(s.PipelinePath), ".json") {
			load = pipeline.LoadFromJSON
		}
		cfg, err := load(s.PipelinePath)
		if err != nil {
			return nil, err
		}
		if err := config.ValidatePipelineConfig(cfg); err != nil {
			return nil, err
		}
		p, err := cfg.BuildPipeline(config.DefaultFactory())
		if err != nil {
			return nil, err
		}
		return recommend.NewEngineFromPipeline(p), nil
	}

	opts := recommend.Options{Workers: s.Workers}
	if s.FilterExpr != "" {
		f, err := filter.NewExprFilter(s.FilterExpr)
		if err != nil {
			return nil, err
		}
		opts.Filters = append(opts.Filters, f)
	}
	return recommend.NewEngine(opts), nil
}

func printSummary(out io.Writer, ds *dataset.Dataset, n int) {
	sum := dataset.Summarize(ds)
	fmt.Fprintf(out, "Dataset %d\n", ds.Number)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Stores\tCustomers\tAvg rating\tAvg price\tBags @9AM")
	fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%.0f\n", sum.Stores, sum.Customers, num(sum.MeanRating), num(sum.MeanPrice), sum.TotalBags)
	_ = w.Flush()

	if n <= 0 {
		return
	}
	fmt.Fprintf(out, "\nTop %d by rating\n", n)
	printStores(out, dataset.TopBy(ds.Stores, dataset.ByRating, n))
	fmt.Fprintf(out, "\nTop %d by bags @9AM\n", n)
	printStores(out, dataset.TopBy(ds.Stores, dataset.ByBags, n))
}

func printStores(out io.Writer, stores []core.Store) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "store_id\tstore_name\tbranch\trating\tbags")
	for _, s := range stores {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Branch, opt(s.Rating), opt(s.Bags))
	}
	_ = w.Flush()
}

func printRanked(out io.Writer, ranked []*core.ScoredStore) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "store_id\tstore_name\tbranch\trating\tvaluation\tprice\tbags\tdistance_km\tscore")
	for _, it := range ranked {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%s\t%s\t%s\t%.4f\n",
			it.ID, it.Name, it.Branch, opt(it.Rating), it.Valuation,
			opt(it.Price), opt(it.Bags), opt(it.DistanceKM), it.Score)
	}
	_ = w.Flush()
}

func opt(v core.OptionalFloat) string {
	if !v.Valid {
		return "-"
	}
	return strconv.FormatFloat(v.Value, 'f', 2, 64)
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func fatal(err error) {
	logging.Error().Err(err).Msg("foodrank failed")
	os.Exit(1)
}
