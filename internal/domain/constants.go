package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	BoostStatusPending   = "pending"
	BoostStatusActive    = "active"
	BoostStatusEnded     = "ended"
	BoostStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusExpired   = "EXPIRED"
)

// Vertical keys. Slots and listings are partitioned by vertical.
const (
	VerticalAutos      = "autos"
	VerticalProperties = "properties"
	VerticalStores     = "stores"
	VerticalFood       = "food"
)

// Well-known slot keys seeded for every vertical.
const (
	SlotHomeMain = "home_main"
	SlotVentaTab = "venta_tab"
	SlotUserPage = "user_page"
)
