package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 使用场景：
//   - dataset：MISSING_DATA（缺少必需列）、INVALID_INPUT（重复主键等）
//   - recommend：INVALID_CUSTOMER（顾客不存在）
//   - store：NOT_FOUND、UNAVAILABLE
//
// 列缺失/非法数值不会产生 DomainError：非法数值转为缺失值后按填充策略处理，
// 常数列由归一化的 0.5 兜底。
type DomainError struct {
	Code    string // 错误代码（如 "MISSING_DATA", "INVALID_CUSTOMER"）
	Message string // 错误消息，包含可展示的上下文（列名/顾客 ID）
	Module  string // 模块名称（如 "dataset", "recommend"）

	Column     string // MISSING_DATA 时为缺失的列名
	CustomerID string // INVALID_CUSTOMER 时为请求的顾客 ID
}

func (e *DomainError) Error() string {
	if e.Module == "" {
		return e.Message
	}
	return e.Module + ": " + e.Message
}

// IsDomainError 检查错误（含包装链）是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// NewMissingDataError 表示 table 缺少必需列 column。
func NewMissingDataError(table, column string) *DomainError {
	return &DomainError{
		Module:  ModuleDataset,
		Code:    ErrorCodeMissingData,
		Message: fmt.Sprintf("%s table is missing required column %q", table, column),
		Column:  column,
	}
}

// NewInvalidCustomerError 表示顾客 ID 在顾客表中不存在。
func NewInvalidCustomerError(customerID string) *DomainError {
	return &DomainError{
		Module:     ModuleRecommend,
		Code:       ErrorCodeInvalidCustomer,
		Message:    fmt.Sprintf("customer %q not found", customerID),
		CustomerID: customerID,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound        = "NOT_FOUND"        // 资源不存在
	ErrorCodeUnavailable     = "UNAVAILABLE"      // 服务不可用
	ErrorCodeInvalidInput    = "INVALID_INPUT"    // 输入无效
	ErrorCodeMissingData     = "MISSING_DATA"     // 缺少必需列
	ErrorCodeInvalidCustomer = "INVALID_CUSTOMER" // 顾客不存在
)

// 模块名称常量
const (
	ModuleStore     = "store"
	ModuleDataset   = "dataset"
	ModuleRecommend = "recommend"
)

// ErrStoreNotFound 是 KV 存储中 key 不存在时的统一错误。
var ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "key not found")

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool { return hasCode(err, ErrorCodeUnavailable) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsMissingData 检查错误是否为 MISSING_DATA
func IsMissingData(err error) bool { return hasCode(err, ErrorCodeMissingData) }

// IsInvalidCustomer 检查错误是否为 INVALID_CUSTOMER
func IsInvalidCustomer(err error) bool { return hasCode(err, ErrorCodeInvalidCustomer) }
