package entity

import "strings"

// DeliveryProfile datos de entrega asociados a la identidad verificada (UID).
type DeliveryProfile struct {
	Name     string
	Phone    string
	Address  string
	Location string
}

// Normalized recorta espacios de todos los campos.
func (p DeliveryProfile) Normalized() DeliveryProfile {
	return DeliveryProfile{
		Name:     strings.TrimSpace(p.Name),
		Phone:    strings.TrimSpace(p.Phone),
		Address:  strings.TrimSpace(p.Address),
		Location: strings.TrimSpace(p.Location),
	}
}

// Complete true si los cuatro campos tienen contenido.
func (p DeliveryProfile) Complete() bool {
	n := p.Normalized()
	return n.Name != "" && n.Phone != "" && n.Address != "" && n.Location != ""
}
