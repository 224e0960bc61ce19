// Package broadcast определяет порт для рассылки live-событий подключённым
// клиентам дашборда.
package broadcast

// Событийные имена, которые слушает дашборд.
const (
	EventNewTicket     = "newTicket"
	EventTicketUpdated = "ticketUpdated"
)

// Broadcaster рассылает событие всем подключённым в этот момент клиентам.
// Best-effort: без подтверждений, без повторов, без реплея для опоздавших.
type Broadcaster interface {
	Publish(event string, payload any)
}
