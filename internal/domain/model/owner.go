package model

import "strconv"

type OwnerKind int

const (
	OwnerNone OwnerKind = iota
	OwnerCustomer
	OwnerSession
)

// Owner is the key cart state is scoped to: exactly one of a customer id
// or an anonymous session key.
type Owner struct {
	kind       OwnerKind
	customerID int64
	sessionKey string
}

func CustomerOwner(id int64) Owner {
	return Owner{kind: OwnerCustomer, customerID: id}
}

func SessionOwner(key string) Owner {
	return Owner{kind: OwnerSession, sessionKey: key}
}

func (o Owner) Kind() OwnerKind { return o.kind }

func (o Owner) CustomerID() (int64, bool) {
	return o.customerID, o.kind == OwnerCustomer
}

func (o Owner) SessionKey() (string, bool) {
	return o.sessionKey, o.kind == OwnerSession
}

func (o Owner) IsZero() bool { return o.kind == OwnerNone }

// String is safe for logs; session keys are truncated.
func (o Owner) String() string {
	switch o.kind {
	case OwnerCustomer:
		return "customer:" + strconv.FormatInt(o.customerID, 10)
	case OwnerSession:
		k := o.sessionKey
		if len(k) > 8 {
			k = k[:8]
		}
		return "session:" + k
	default:
		return "none"
	}
}

// Assign stamps the owner columns on a new order.
func (o Owner) Assign(order *Order) {
	order.CustomerID = nil
	order.SessionKey = nil
	switch o.kind {
	case OwnerCustomer:
		id := o.customerID
		order.CustomerID = &id
	case OwnerSession:
		key := o.sessionKey
		order.SessionKey = &key
	}
}
