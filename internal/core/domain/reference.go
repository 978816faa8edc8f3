package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// ReferenceKind identifies which flow a payment reference belongs to.
type ReferenceKind string

const (
	ReferenceOrder    ReferenceKind = "order"
	ReferencePreorder ReferenceKind = "preorder"
	ReferenceTopUp    ReferenceKind = "topup"
)

// Order ids are ULIDs and never contain '-', which keeps these unambiguous
// even when participant ids do.
var (
	orderRefPattern    = regexp.MustCompile(`^order-([^-]+)-cust-(.+)-(\d+)$`)
	preorderRefPattern = regexp.MustCompile(`^preorder-([^-]+)-(.+)$`)
	topUpRefPattern    = regexp.MustCompile(`^topup-(.+)-(\d+)$`)
)

// PaymentReference is a parsed gateway reference id.
type PaymentReference struct {
	Kind          ReferenceKind
	OrderID       string
	CustomerID    string
	ParticipantID string
	EpochMillis   int64
}

// OrderReference builds order-{orderId}-cust-{customerId}-{epochMillis}.
func OrderReference(orderID, customerID string, epochMillis int64) string {
	return fmt.Sprintf("order-%s-cust-%s-%d", orderID, customerID, epochMillis)
}

// PreorderReference builds preorder-{orderId}-{customerId}.
func PreorderReference(orderID, customerID string) string {
	return fmt.Sprintf("preorder-%s-%s", orderID, customerID)
}

// TopUpReference builds topup-{participantId}-{epochMillis}.
func TopUpReference(participantID string, epochMillis int64) string {
	return fmt.Sprintf("topup-%s-%d", participantID, epochMillis)
}

// ParseReference recognizes the three reference shapes. ok is false for
// anything else.
func ParseReference(ref string) (PaymentReference, bool) {
	if m := orderRefPattern.FindStringSubmatch(ref); m != nil {
		ms, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return PaymentReference{}, false
		}
		return PaymentReference{Kind: ReferenceOrder, OrderID: m[1], CustomerID: m[2], EpochMillis: ms}, true
	}
	if m := preorderRefPattern.FindStringSubmatch(ref); m != nil {
		return PaymentReference{Kind: ReferencePreorder, OrderID: m[1], CustomerID: m[2]}, true
	}
	if m := topUpRefPattern.FindStringSubmatch(ref); m != nil {
		ms, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return PaymentReference{}, false
		}
		return PaymentReference{Kind: ReferenceTopUp, ParticipantID: m[1], EpochMillis: ms}, true
	}
	return PaymentReference{}, false
}

// IsOrder reports whether the reference pays for an order.
func (r PaymentReference) IsOrder() bool {
	return r.Kind == ReferenceOrder || r.Kind == ReferencePreorder
}
