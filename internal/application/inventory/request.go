package inventory

import (
	"time"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
)

func derefFecha(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// IngresoInputFromRequest adapta el body HTTP; comprobanteURL es la ruta del archivo ya guardado.
func IngresoInputFromRequest(req dto.RegistrarIngresoRequest, comprobanteURL string) IngresoInput {
	in := IngresoInput{
		AlmacenID:       req.AlmacenID,
		ProveedorID:     req.ProveedorID,
		Fecha:           derefFecha(req.Fecha),
		NumeroDocumento: req.NumeroDocumento,
		Observaciones:   req.Observaciones,
		ComprobanteURL:  comprobanteURL,
		Lineas:          make([]LineaIngreso, 0, len(req.Lineas)),
	}
	for _, l := range req.Lineas {
		in.Lineas = append(in.Lineas, LineaIngreso(l))
	}
	return in
}

func SalidaInputFromRequest(req dto.RegistrarSalidaRequest) SalidaInput {
	in := SalidaInput{
		AlmacenID:     req.AlmacenID,
		AreaID:        req.AreaID,
		Solicitante:   req.Solicitante,
		Fecha:         derefFecha(req.Fecha),
		Observaciones: req.Observaciones,
		Lineas:        make([]LineaSalida, 0, len(req.Lineas)),
	}
	for _, l := range req.Lineas {
		in.Lineas = append(in.Lineas, LineaSalida(l))
	}
	return in
}

func EntregaEPPInputFromRequest(req dto.RegistrarEntregaEPPRequest) EntregaEPPInput {
	in := EntregaEPPInput{
		AlmacenID:     req.AlmacenID,
		TrabajadorID:  req.TrabajadorID,
		Fecha:         derefFecha(req.Fecha),
		Observaciones: req.Observaciones,
		Lineas:        make([]LineaEntregaEPP, 0, len(req.Lineas)),
	}
	for _, l := range req.Lineas {
		in.Lineas = append(in.Lineas, LineaEntregaEPP(l))
	}
	return in
}

// ToIngresoResponse mapea un ingreso a su representación HTTP.
func ToIngresoResponse(i *entity.Ingreso) dto.IngresoResponse {
	out := dto.IngresoResponse{
		ID:              i.ID,
		Fecha:           i.Fecha,
		UsuarioID:       i.UsuarioID,
		AlmacenID:       i.AlmacenID,
		ProveedorID:     i.ProveedorID,
		NumeroDocumento: i.NumeroDocumento,
		Observaciones:   i.Observaciones,
		ComprobanteURL:  i.ComprobanteURL,
		Total:           i.Total(),
		Detalles:        make([]dto.DetalleMovimientoResponse, 0, len(i.Detalles)),
		CreatedAt:       i.CreatedAt,
	}
	for _, d := range i.Detalles {
		precio := d.PrecioUnitario
		out.Detalles = append(out.Detalles, dto.DetalleMovimientoResponse{
			ID:             d.ID,
			MaterialID:     d.MaterialID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: &precio,
		})
	}
	return out
}

func ToSalidaResponse(s *entity.Salida) dto.SalidaResponse {
	out := dto.SalidaResponse{
		ID:            s.ID,
		Fecha:         s.Fecha,
		UsuarioID:     s.UsuarioID,
		AlmacenID:     s.AlmacenID,
		AreaID:        s.AreaID,
		Solicitante:   s.Solicitante,
		Observaciones: s.Observaciones,
		Detalles:      make([]dto.DetalleMovimientoResponse, 0, len(s.Detalles)),
		CreatedAt:     s.CreatedAt,
	}
	for _, d := range s.Detalles {
		out.Detalles = append(out.Detalles, dto.DetalleMovimientoResponse{ID: d.ID, MaterialID: d.MaterialID, Cantidad: d.Cantidad})
	}
	return out
}

func ToEntregaEPPResponse(e *entity.EntregaEPP) dto.EntregaEPPResponse {
	out := dto.EntregaEPPResponse{
		ID:            e.ID,
		Fecha:         e.Fecha,
		UsuarioID:     e.UsuarioID,
		AlmacenID:     e.AlmacenID,
		TrabajadorID:  e.TrabajadorID,
		Observaciones: e.Observaciones,
		Detalles:      make([]dto.DetalleMovimientoResponse, 0, len(e.Detalles)),
		CreatedAt:     e.CreatedAt,
	}
	for _, d := range e.Detalles {
		out.Detalles = append(out.Detalles, dto.DetalleMovimientoResponse{ID: d.ID, MaterialID: d.MaterialID, Cantidad: d.Cantidad, Talla: d.Talla})
	}
	return out
}
