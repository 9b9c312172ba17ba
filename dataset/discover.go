// Package dataset 负责数据集的发现、加载与概览统计。
//
// 一个数据集由同编号的门店表 storesN.csv 与顾客表 customersN.csv 组成，
// 加载后得到不可变的 Dataset 快照，可在多个推荐请求间共享。
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var (
	storesFilePattern    = regexp.MustCompile(`^stores(\d+)\.csv$`)
	customersFilePattern = regexp.MustCompile(`^customers(\d+)\.csv$`)
)

// Pair 同编号的门店表与顾客表。
type Pair struct {
	Number        int
	StoresPath    string
	CustomersPath string
}

func (p Pair) String() string {
	return fmt.Sprintf("Dataset %d", p.Number)
}

// FindPairs 扫描 dir，返回两张表都存在的编号，按编号升序。
// 只有一侧存在的编号被忽略。
func FindPairs(dir string) ([]Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read datasets dir %s: %w", dir, err)
	}

	stores := make(map[int]string)
	customers := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if n, ok := matchNumber(storesFilePattern, name); ok {
			stores[n] = filepath.Join(dir, name)
		} else if n, ok := matchNumber(customersFilePattern, name); ok {
			customers[n] = filepath.Join(dir, name)
		}
	}

	pairs := make([]Pair, 0, len(stores))
	for n, sp := range stores {
		cp, ok := customers[n]
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{Number: n, StoresPath: sp, CustomersPath: cp})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Number < pairs[j].Number })
	return pairs, nil
}

// Select 按编号挑选数据集；number <= 0 时返回编号最大的一组。
func Select(pairs []Pair, number int) (Pair, bool) {
	if len(pairs) == 0 {
		return Pair{}, false
	}
	if number <= 0 {
		return pairs[len(pairs)-1], true
	}
	for _, p := range pairs {
		if p.Number == number {
			return p, true
		}
	}
	return Pair{}, false
}

func matchNumber(re *regexp.Regexp, name string) (int, bool) {
	m := re.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
