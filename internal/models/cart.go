package models

// CartItem es un renglón del carrito. Precio y nombre son una foto del
// servicio al momento de agregarlo; el cobro final lo calcula el backend.
type CartItem struct {
	ServiceID   int    `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Price       int64  `json:"price"` // COP, sin decimales
	Quantity    int    `json:"quantity"`
}

// CartTotalItems suma las cantidades de todos los renglones
func CartTotalItems(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// CartTotalPrice suma precio × cantidad con los precios foto
func CartTotalPrice(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}
