package enums

// ServiceRequestStatus mirrors the estado field on upstream ServicioTecnico
// records.
type ServiceRequestStatus string

const (
	ServiceRequestPending    ServiceRequestStatus = "Pendiente"
	ServiceRequestInProgress ServiceRequestStatus = "EnProgreso"
	ServiceRequestCompleted  ServiceRequestStatus = "Completado"
)

// Valid reports whether the value is a known request status.
func (s ServiceRequestStatus) Valid() bool {
	switch s {
	case ServiceRequestPending, ServiceRequestInProgress, ServiceRequestCompleted:
		return true
	}
	return false
}
