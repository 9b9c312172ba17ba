package core

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestDomainError_Wrapped(t *testing.T) {
	err := fmt.Errorf("load stores46.csv: %w", NewMissingDataError("stores", "price"))

	if !IsMissingData(err) {
		t.Fatal("IsMissingData() = false for wrapped MISSING_DATA error")
	}
	if IsInvalidCustomer(err) {
		t.Error("IsInvalidCustomer() = true for MISSING_DATA error")
	}
	de := GetDomainError(err)
	if de == nil || de.Column != "price" {
		t.Fatalf("GetDomainError() = %+v, want Column=price", de)
	}
	if !strings.Contains(err.Error(), `"price"`) {
		t.Errorf("error message %q should name the column", err.Error())
	}
}

func TestInvalidCustomerError(t *testing.T) {
	err := NewInvalidCustomerError("c-42")
	if !IsInvalidCustomer(err) {
		t.Fatal("IsInvalidCustomer() = false")
	}
	if err.CustomerID != "c-42" || !strings.Contains(err.Error(), "c-42") {
		t.Errorf("error should carry customer id, got %q", err.Error())
	}
}

func TestIsDomainError_Nil(t *testing.T) {
	if IsDomainError(nil) || IsNotFound(nil) || GetDomainError(nil) != nil {
		t.Error("nil error must not be treated as DomainError")
	}
	if IsDomainError(fmt.Errorf("plain")) {
		t.Error("plain error must not be treated as DomainError")
	}
}

func TestOptionalFloat(t *testing.T) {
	if Some(3).Or(1) != 3 {
		t.Error("Some(3).Or(1) != 3")
	}
	if None().Or(1) != 1 {
		t.Error("None().Or(1) != 1")
	}
	if Some(math.Inf(1)).Valid || Some(math.NaN()).Valid {
		t.Error("Some(±Inf/NaN) should be missing")
	}
}
