package kv

import (
	"context"
	"errors"
)

// Kind separa lo que vive por pestaña de lo que vive por dispositivo.
type Kind string

const (
	Ephemeral Kind = "tab"
	Durable   Kind = "device"
)

// Scope identifica el espacio de claves: tipo + id de pestaña o dispositivo.
type Scope struct {
	Kind Kind
	ID   string
}

func TabScope(tabID string) Scope       { return Scope{Kind: Ephemeral, ID: tabID} }
func DeviceScope(deviceID string) Scope { return Scope{Kind: Durable, ID: deviceID} }

func (s Scope) Valid() bool {
	return (s.Kind == Ephemeral || s.Kind == Durable) && s.ID != ""
}

var ErrInvalidScope = errors.New("kv: invalid scope")

// Store es un almacén clave/valor de strings.
// Get devuelve ok=false si la clave no existe.
type Store interface {
	Get(ctx context.Context, scope Scope, key string) (string, bool, error)
	Set(ctx context.Context, scope Scope, key, value string) error
	Delete(ctx context.Context, scope Scope, key string) error
}
