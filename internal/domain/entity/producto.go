package entity

// Producto representa un producto del catálogo. Solo lectura para el núcleo de stock:
// la creación y el borrado se hacen en la tabla externa de productos.
type Producto struct {
	RecID  string `json:"RecID"`
	Codigo string `json:"codigo_producto"`
	Nombre string `json:"nombre_producto"`
}
