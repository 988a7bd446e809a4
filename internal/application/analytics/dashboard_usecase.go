// Package analytics contiene los casos de uso del dashboard de inicio.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
	"github.com/jhoicas/mineria-admin/pkg/logger"
)

// DashboardCache guarda el último resumen calculado. Get devuelve (nil, nil) si no hay entrada.
type DashboardCache interface {
	GetDashboard(ctx context.Context) (*dto.DashboardDTO, error)
	SetDashboard(ctx context.Context, d *dto.DashboardDTO) error
}

// DashboardUseCase genera el resumen de inventario del mes en curso.
//
// Fuente de datos: InventarioRepository (consultas read-only). El resultado se cachea
// y los casos de uso de movimientos lo invalidan después de cada commit.
type DashboardUseCase struct {
	invRepo repository.InventarioRepository
	cache   DashboardCache
	log     *logger.Logger
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache nil desactiva el cacheo.
func NewDashboardUseCase(invRepo repository.InventarioRepository, cache DashboardCache, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{invRepo: invRepo, cache: cache, log: log.Named("dashboard"), now: time.Now}
}

// GetSummary devuelve el resumen, desde caché si está disponible.
// Un fallo de la caché nunca impide responder: se registra y se consulta la BD.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, p access.Principal) (*dto.DashboardDTO, error) {
	if !p.HasAccess(access.RutaInicio) {
		return nil, domain.ErrForbidden
	}

	if uc.cache != nil {
		cached, err := uc.cache.GetDashboard(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("caché de dashboard no disponible")
		} else if cached != nil {
			uc.log.Debug().Msg("dashboard desde caché")
			return cached, nil
		}
	}

	now := uc.now()
	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	res, err := uc.invRepo.Resumen(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", err)
	}

	out := &dto.DashboardDTO{
		MaterialesActivos: res.MaterialesActivos,
		ValorInventario:   res.ValorTotal.Round(2),
		BajoMinimo:        res.BajoMinimo,
		IngresosMes:       res.IngresosPeriodo,
		SalidasMes:        res.SalidasPeriodo,
		EntregasEPPMes:    res.EntregasPeriodo,
		DateLabel:         monthLabel(now),
	}

	if uc.cache != nil {
		if err := uc.cache.SetDashboard(ctx, out); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo cachear el dashboard")
		}
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
