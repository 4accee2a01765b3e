package entity

import "time"

// AuditEntry registro de bitácora: quién hizo qué y cuándo. Append-only.
type AuditEntry struct {
	ID         int64
	ActorID    string // cédula del usuario
	ActorName  string
	OccurredAt time.Time
	Action     string // descripción libre: "Inició sesión", "Registró una salida", ...
}
