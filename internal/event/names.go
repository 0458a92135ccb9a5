package event

// Event names shared with external listeners. The values must not change.
const (
	AddressDelete         = "ADDRESS_DELETE"
	CustomerUpdateAccount = "CUSTOMER_UPDATEACCOUNT"
	CustomerDeleteAccount = "CUSTOMER_DELETEACCOUNT"
)

// Routing keys used on the broker exchange.
const (
	RoutingKeyCustomerUpdated = "customer.updated"
	RoutingKeyCustomerDeleted = "customer.deleted"
	RoutingKeyAddressDeleted  = "address.deleted"
)
