// importmateriales carga el catálogo inicial de materiales desde un CSV exportado de Excel.
//
// Uso: go run ./cmd/importmateriales [-encoding latin1|utf8] [-sep ';'] catalogo.csv
//
// Columnas: codigo;nombre;unidad_medida;categoria;stock_minimo[;descripcion]
// La primera fila es cabecera. Las categorías que no existen se crean por nombre.
// Los códigos ya registrados se omiten; el precio y el stock empiezan en cero.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/application/usecase"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/mineria-admin/pkg/config"
	"github.com/jhoicas/mineria-admin/pkg/logger"
)

// fila material leído del CSV.
type fila struct {
	linea        int
	codigo       string
	nombre       string
	unidadMedida string
	categoria    string
	stockMinimo  decimal.Decimal
	descripcion  string
}

func main() {
	encoding := flag.String("encoding", "latin1", "codificación del archivo: latin1 (Excel en Windows) o utf8")
	sep := flag.String("sep", ";", "separador de columnas")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: "info"})

	if flag.NArg() != 1 {
		log.Fatal().Msg("uso: importmateriales [-encoding latin1|utf8] [-sep ';'] catalogo.csv")
	}
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	filas, err := leerFilas(f, *encoding, []rune(*sep)[0])
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar configuración")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	categorias := usecase.NewCategoriaUseCase(categoriaRepo, materialRepo)
	materiales := usecase.NewMaterialUseCase(
		materialRepo, categoriaRepo, postgres.NewAreaRepository(pool), postgres.NewStockRepository(pool),
		postgres.NewTxRunner(pool, cfg.DB.TxMaxWait, cfg.DB.TxTimeout), nil, log,
	)
	admin := access.Principal{ID: "importmateriales", Rol: access.RolAdmin}

	existentes, err := categorias.List(ctx, admin)
	if err != nil {
		log.Fatal().Err(err).Msg("listar categorías")
	}
	catIDs := make(map[string]string, len(existentes))
	for _, c := range existentes {
		catIDs[strings.ToLower(c.Nombre)] = c.ID
	}

	var creados, omitidos int
	for _, r := range filas {
		key := strings.ToLower(r.categoria)
		catID, ok := catIDs[key]
		if !ok {
			cat, err := categorias.Create(ctx, admin, dto.CategoriaRequest{Nombre: r.categoria})
			if err != nil {
				log.Fatal().Err(err).Str("categoria", r.categoria).Msg("crear categoría")
			}
			catID = cat.ID
			catIDs[key] = catID
			log.Info().Str("categoria", r.categoria).Msg("categoría creada")
		}

		_, err := materiales.Create(ctx, admin, dto.CreateMaterialRequest{
			Codigo:       r.codigo,
			Nombre:       r.nombre,
			Descripcion:  r.descripcion,
			UnidadMedida: r.unidadMedida,
			StockMinimo:  r.stockMinimo,
			CategoriaID:  catID,
		})
		var verr *domain.ValidationError
		switch {
		case err == nil:
			creados++
		case errors.As(err, &verr):
			omitidos++
			log.Warn().Int("linea", r.linea).Str("codigo", r.codigo).Msg(verr.Mensaje)
		default:
			log.Fatal().Err(err).Int("linea", r.linea).Msg("crear material")
		}
	}
	log.Info().Int("creados", creados).Int("omitidos", omitidos).Msg("importación terminada")
}

// leerFilas decodifica el CSV y valida cada fila. Un error incluye el número de línea.
func leerFilas(r io.Reader, encoding string, sep rune) ([]fila, error) {
	switch strings.ToLower(encoding) {
	case "latin1", "iso-8859-1", "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	case "utf8", "utf-8":
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}

	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var filas []fila
	for linea := 1; ; linea++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", linea, err)
		}
		if linea == 1 {
			continue // cabecera
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 5 columnas, hay %d", linea, len(rec))
		}
		minimo := strings.ReplaceAll(strings.TrimSpace(rec[4]), ",", ".")
		if minimo == "" {
			minimo = "0"
		}
		sm, err := decimal.NewFromString(minimo)
		if err != nil {
			return nil, fmt.Errorf("línea %d: stock_minimo inválido %q", linea, rec[4])
		}
		f := fila{
			linea:        linea,
			codigo:       strings.TrimSpace(rec[0]),
			nombre:       strings.TrimSpace(rec[1]),
			unidadMedida: strings.TrimSpace(rec[2]),
			categoria:    strings.TrimSpace(rec[3]),
			stockMinimo:  sm,
		}
		if len(rec) > 5 {
			f.descripcion = strings.TrimSpace(rec[5])
		}
		if f.codigo == "" || f.nombre == "" || f.categoria == "" {
			return nil, fmt.Errorf("línea %d: codigo, nombre y categoria son obligatorios", linea)
		}
		filas = append(filas, f)
	}
	return filas, nil
}
