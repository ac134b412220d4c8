package entity

import "time"

// Organization representa un tenant del sistema: un operador de estaciones de combustible.
// Se crea junto con su primer usuario en el registro; después solo cambian sus banderas.
type Organization struct {
	ID        string
	Name      string
	Email     string // único; coincide con el email del usuario que registró la organización
	Phone     string
	Address   string
	IsActive  bool
	IsDemo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
