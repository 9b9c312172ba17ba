package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/pkg/logging"
)

const (
	// EnvPrefix 环境变量前缀，如 FOODRANK_TOP_N、FOODRANK_WEIGHTS_RATING
	EnvPrefix = "FOODRANK_"
	// ConfigPathEnvVar 指定配置文件路径的环境变量
	ConfigPathEnvVar = "CONFIG_PATH"
)

// DefaultConfigPaths 未指定配置文件时依次查找的路径
var DefaultConfigPaths = []string{
	"foodrank.yaml",
	"config/foodrank.yaml",
}

// Settings 应用配置。优先级：环境变量 > 配置文件 > 默认值。
type Settings struct {
	// DatasetsDir 存放 storesN.csv / customersN.csv 的目录
	DatasetsDir string `koanf:"datasets_dir" validate:"required"`
	// Dataset 数据集编号，0 表示编号最大的一组
	Dataset int `koanf:"dataset" validate:"gte=0"`
	// Customer 默认查询的顾客 ID，为空时取表中第一位
	Customer string `koanf:"customer"`
	TopN     int    `koanf:"top_n" validate:"min=1"`
	// Workers 特征计算并发数，<= 1 时串行
	Workers int `koanf:"workers" validate:"gte=0"`
	// FilterExpr CEL 表达式，为 true 的门店不进入推荐结果
	FilterExpr string `koanf:"filter_expr"`
	// PipelinePath 可选的 pipeline 文件（.yaml/.yml 或 .json），设置后替代内置流程。
	// 其中 rank.weighted 的 weights 与 rerank.topn 的 n 一旦配置，会覆盖每次请求的值。
	PipelinePath string `koanf:"pipeline_path"`

	Weights core.WeightVector `koanf:"weights"`
	Redis   RedisSettings     `koanf:"redis"`
	Log     logging.Config    `koanf:"log"`
}

// RedisSettings 启用后数据集从 Redis 快照读取，而不是 CSV 目录。
type RedisSettings struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr" validate:"required_if=Enabled true"`
	DB      int    `koanf:"db" validate:"gte=0"`
	// Key 快照 key 前缀，实际 key 为 <Key>:stores / <Key>:customers
	Key string `koanf:"key" validate:"required_if=Enabled true"`
	// TTL 发布快照时的过期时间（秒），0 表示不过期
	TTL int `koanf:"ttl" validate:"gte=0"`
}

// DefaultSettings 返回默认配置。
func DefaultSettings() *Settings {
	return &Settings{
		DatasetsDir: "datasets",
		TopN:        10,
		Workers:     1,
		Weights:     core.DefaultWeights(),
		Redis: RedisSettings{
			Addr: "localhost:6379",
			Key:  "foodrank",
		},
		Log: logging.Config{Level: "info", Format: "console"},
	}
}

var validate = validator.New()

// Validate 校验配置取值。
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Load 按 默认值 -> 配置文件 -> 环境变量 的顺序加载配置并校验。
// path 为空时依次尝试 CONFIG_PATH 与 DefaultConfigPaths，找不到文件不算错误。
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultSettings(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	s := &Settings{}
	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// 带子结构的配置段，环境变量中第一个下划线映射为层级分隔符
var nestedSections = []string{"weights", "redis", "log"}

// envTransform 把环境变量名映射为配置路径：
//
//	FOODRANK_TOP_N           -> top_n
//	FOODRANK_WEIGHTS_RATING  -> weights.rating
//	FOODRANK_LOG_LEVEL       -> log.level
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	for _, section := range nestedSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}
