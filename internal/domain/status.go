package domain

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

// List of possible order statuses
const (
	StatusCreated    OrderStatus = "created"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// StatusAll is the listing sentinel that disables status filtering.
const StatusAll = "all"

var allowedStatuses = [...]OrderStatus{
	StatusCreated, StatusConfirmed, StatusProcessing,
	StatusShipped, StatusDelivered, StatusCancelled,
}

// allowedTransitions is the directed transition graph. An order moves forward
// through the lifecycle one step at a time; cancelled is reachable from any
// non-terminal state. Delivered and cancelled are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusCreated:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(allowedTransitions[s]) == 0
}

// CanTransition reports whether moving from s to next is allowed.
// Writing the current status again is allowed so that repeated
// updates stay idempotent.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, v := range allowedTransitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input to an OrderStatus.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(raw)
	return s, s.Valid()
}
