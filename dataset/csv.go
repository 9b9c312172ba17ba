package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/geo"
	"github.com/rushteam/foodrank/pkg/conv"
	"github.com/rushteam/foodrank/valuation"
)

// 门店表列名
const (
	ColStoreID   = "store_id"
	ColStoreName = "store_name"
	ColBranch    = "branch"
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
	ColRating    = "average_overall_rating"
	ColPrice     = "price"
	ColBags      = "average_bags_at_9AM"

	ColCustomerID = "customer_id"
)

var (
	storeColumns    = []string{ColStoreID, ColStoreName, ColBranch, ColLatitude, ColLongitude, ColRating, ColPrice, ColBags}
	customerColumns = []string{ColCustomerID, ColLatitude, ColLongitude}
)

// header 列名 -> 下标
type header map[string]int

func readHeader(r *csv.Reader, table string, required []string) (header, error) {
	row, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, core.NewMissingDataError(table, required[0])
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", table, err)
	}
	h := make(header, len(row))
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, core.NewMissingDataError(table, col)
		}
	}
	return h, nil
}

func (h header) cell(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) float(row []string, col string) core.OptionalFloat {
	if f, ok := conv.ParseFloat(h.cell(row, col)); ok {
		return core.Some(f)
	}
	return core.None()
}

func (h header) coordinate(row []string) geo.Coordinate {
	lat, lon := h.float(row, ColLatitude), h.float(row, ColLongitude)
	return geo.Coordinate{Lat: lat.Or(math.NaN()), Lon: lon.Or(math.NaN())}
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr
}

// ParseStores 解析门店表。缺少必需列返回 MISSING_DATA；
// store_id 非法或重复返回 INVALID_INPUT；其余非法数值按缺失处理。
func ParseStores(r io.Reader) ([]core.Store, error) {
	cr := newReader(r)
	h, err := readHeader(cr, "stores", storeColumns)
	if err != nil {
		return nil, err
	}

	var stores []core.Store
	seen := make(map[int64]struct{})
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read stores line %d: %w", line, err)
		}
		if blank(row) {
			continue
		}

		raw := h.cell(row, ColStoreID)
		id, ok := conv.ParseInt(raw)
		if !ok {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("stores line %d: invalid store_id %q", line, raw))
		}
		if _, dup := seen[id]; dup {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("stores line %d: duplicate store_id %d", line, id))
		}
		seen[id] = struct{}{}

		stores = append(stores, core.Store{
			ID:       id,
			Name:     h.cell(row, ColStoreName),
			Branch:   h.cell(row, ColBranch),
			Location: h.coordinate(row),
			Rating:   h.float(row, ColRating),
			Price:    h.float(row, ColPrice),
			Bags:     h.float(row, ColBags),
		})
	}
	return stores, nil
}

// ParseCustomers 解析顾客表。store<ID>_valuation 列转为稀疏估值映射，
// 空值或非法值不进入映射（之后按默认估值处理）。
func ParseCustomers(r io.Reader) ([]core.Customer, error) {
	cr := newReader(r)
	h, err := readHeader(cr, "customers", customerColumns)
	if err != nil {
		return nil, err
	}

	valuationCols := make(map[int]int64)
	for name, i := range h {
		if id, ok := valuation.StoreIDFromColumn(name); ok {
			valuationCols[i] = id
		}
	}

	var customers []core.Customer
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read customers line %d: %w", line, err)
		}
		if blank(row) {
			continue
		}

		c := core.Customer{
			ID:         normalizeID(h.cell(row, ColCustomerID)),
			Location:   h.coordinate(row),
			Valuations: make(map[int64]float64, len(valuationCols)),
		}
		for i, storeID := range valuationCols {
			if i >= len(row) {
				continue
			}
			if v, ok := conv.ParseFloat(row[i]); ok {
				c.Valuations[storeID] = v
			}
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// normalizeID 统一顾客 ID 的写法，"7.0" 与 "7" 视为同一顾客。
func normalizeID(s string) string {
	if n, ok := conv.ParseInt(s); ok {
		return fmt.Sprintf("%d", n)
	}
	return s
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
