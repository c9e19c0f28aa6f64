package entity

import "time"

// StockRow representa una cantidad de un producto en un depósito.
// Cantidad nunca puede quedar negativa: toda resta se rechaza si excede el valor actual.
// Version es el sello de concurrencia optimista: cada actualización de cantidad hace
// compare-and-swap sobre (RecID, Version).
type StockRow struct {
	RecID      string    `json:"RecID"`
	ProductoID string    `json:"ID_producto"`
	DepositoID string    `json:"ID_deposito"`
	Cantidad   int64     `json:"cantidad"`
	Version    int64     `json:"version"`
	UpdatedAt  time.Time `json:"updated_at"`
}
