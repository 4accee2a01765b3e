package dto

import "time"

// CreatePartyRequest entrada para crear un cliente o proveedor.
type CreatePartyRequest struct {
	ID    string `json:"id" validate:"required,min=1,max=20"`
	Name  string `json:"name" validate:"required,min=1,max=120"`
	Phone string `json:"phone" validate:"max=20"`
	Email string `json:"email" validate:"omitempty,email"`
}

// UpdatePartyRequest actualización parcial de un tercero.
type UpdatePartyRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=120"`
	Phone  *string `json:"phone" validate:"omitempty,max=20"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Active *bool   `json:"active"`
}

// PartyResponse salida de un tercero.
type PartyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartyListResponse listado de terceros.
type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Count int             `json:"count"`
}
