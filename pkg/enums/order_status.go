package enums

// OrderStatus mirrors the estado field on upstream Orden records.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pendiente"
	OrderStatusPaid      OrderStatus = "Pagada"
	OrderStatusCancelled OrderStatus = "Cancelada"
)
