package catalog

// Service es un servicio de estética ofrecido por la tienda. Solo lectura.
type Service struct {
	ID          string
	Name        string
	Description string
	Price       float64 // BRL, unidades mayores
	Duration    int     // minutos
	ImageURL    string
}

// PriceCents convierte el precio a centavos para el gateway.
func (s Service) PriceCents() int64 {
	return toCents(s.Price)
}

// Plan es una suscripción mensual.
type Plan struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Benefits    []string
}

func (p Plan) PriceCents() int64 {
	return toCents(p.Price)
}

func toCents(v float64) int64 {
	c := v * 100
	if c < 0 {
		return int64(c - 0.5)
	}
	return int64(c + 0.5)
}
