package dto

// CreateCuadrillaRequest alta de cuadrilla.
type CreateCuadrillaRequest struct {
	Nombre string `json:"nombre"`
	Zona   string `json:"zona"`
}

// CreateEmpleadoRequest alta de empleado.
type CreateEmpleadoRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Legajo   string `json:"legajo"`
}

// CuadrillaConIntegrantesResponse cuadrilla más sus empleados.
type CuadrillaConIntegrantesResponse struct {
	Cuadrilla   CuadrillaResponse  `json:"cuadrilla"`
	Integrantes []EmpleadoResponse `json:"integrantes"`
}
