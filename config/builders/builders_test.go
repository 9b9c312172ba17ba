package builders

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rushteam/foodrank/config"
	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/geo"
	"github.com/rushteam/foodrank/pipeline"
	"github.com/rushteam/foodrank/pkg/logging"
)

const pipelineYAML = `
pipeline:
  name: foodrank
  nodes:
    - type: recall.table
    - type: feature.enrich
      config:
        workers: 2
    - type: feature.normalize
    - type: rank.weighted
      config:
        weights:
          rating: 1
    - type: filter.expr
      config:
        blacklist: [1]
    - type: rerank.topn
      config:
        n: 2
`

func TestBuildPipelineFromYAML(t *testing.T) {
	cfg, err := pipeline.Parse([]byte(pipelineYAML))
	if err != nil {
		t.Fatal(err)
	}
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}
	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 6 {
		t.Fatalf("got %d nodes", len(p.Nodes))
	}

	rctx := &core.RecommendContext{
		Customer: &core.Customer{ID: "c1", Location: geo.Coordinate{Lat: 0, Lon: 0}},
		Stores: []core.Store{
			{ID: 1, Rating: core.Some(5), Location: geo.Coordinate{}},
			{ID: 2, Rating: core.Some(4), Location: geo.Coordinate{}},
			{ID: 3, Rating: core.Some(1), Location: geo.Coordinate{}},
			{ID: 4, Rating: core.Some(3), Location: geo.Coordinate{}},
		},
		TopN: 10,
	}
	out, err := p.Run(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 2 || out[0].ID != 2 || out[1].ID != 4 {
		t.Errorf("ranked = %v, want [2 4]", storeIDs(out))
	}
}

func TestValidatePipelineConfig(t *testing.T) {
	const head = "pipeline:\n  name: t\n  nodes:\n"
	tests := []struct {
		name    string
		nodes   []string
		wantErr string
	}{
		{"unsupported", []string{"recall.table", "rank.lr"}, "unsupported node type"},
		{"no rank", []string{"recall.table", "feature.enrich", "feature.normalize"}, "no rank node"},
		{"no recall", []string{"feature.enrich", "feature.normalize", "rank.weighted"}, "no recall node"},
		{"no enrich", []string{"recall.table", "feature.normalize", "rank.weighted"}, "no feature.enrich node"},
		{"no normalize", []string{"recall.table", "feature.enrich", "rank.weighted"}, "no feature.normalize node"},
		{"complete", []string{"recall.table", "feature.enrich", "feature.normalize", "rank.weighted", "filter.expr"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaml := head
			for _, n := range tt.nodes {
				yaml += "    - type: " + n + "\n"
			}
			cfg, err := pipeline.Parse([]byte(yaml))
			if err != nil {
				t.Fatal(err)
			}
			err = config.ValidatePipelineConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidatePipelineConfig() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidatePipelineConfig() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestFixedOverridesAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "warn", Format: "json", Output: &buf})
	defer logging.Init(logging.DefaultConfig())

	if _, err := BuildWeightedNode(map[string]any{}); err != nil {
		t.Fatal(err)
	}
	if _, err := BuildTopNNode(map[string]any{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected warning without overrides: %s", buf.String())
	}

	if _, err := BuildWeightedNode(map[string]any{"weights": map[string]any{"rating": 1}}); err != nil {
		t.Fatal(err)
	}
	if _, err := BuildTopNNode(map[string]any{"n": 3}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"node":"rank.weighted"`) || !strings.Contains(out, `"node":"rerank.topn"`) {
		t.Errorf("missing override warnings: %s", out)
	}
	if strings.Count(out, `"level":"warn"`) != 2 {
		t.Errorf("want 2 warnings, got: %s", out)
	}
}

func TestBuilderErrors(t *testing.T) {
	if _, err := BuildFilterNode(map[string]any{}); err == nil {
		t.Error("filter.expr without expr or blacklist should fail")
	}
	if _, err := BuildFilterNode(map[string]any{"expr": "item.score >"}); err == nil {
		t.Error("invalid CEL expression should fail")
	}
	if _, err := BuildNormalizeNode(map[string]any{"fill": map[string]any{"n_unknown": "zero"}}); err == nil {
		t.Error("unknown feature in fill should fail")
	}
	if _, err := BuildNormalizeNode(map[string]any{"fill": map[string]any{"n_price": "mean"}}); err == nil {
		t.Error("unknown fill policy should fail")
	}
	if _, err := BuildEnrichNode(map[string]any{"workers": -1}); err == nil {
		t.Error("negative workers should fail")
	}
}

func storeIDs(items []*core.ScoredStore) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
