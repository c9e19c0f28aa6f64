package entity

// Deposito representa un depósito o ubicación de almacenamiento. Solo lectura para el núcleo.
type Deposito struct {
	RecID  string `json:"RecID"`
	Codigo string `json:"id_deposito"`
	Nombre string `json:"nombre_deposito"`
}
