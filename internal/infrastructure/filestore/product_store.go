package filestore

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"

	"github.com/jhoicas/tienda-archivo/internal/domain"
	"github.com/jhoicas/tienda-archivo/internal/domain/entity"
	"github.com/jhoicas/tienda-archivo/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductStore)(nil)

// Columnas del archivo de texto de un producto: [code:5][name:50][price:10].
const (
	productCodeWidth  = 5
	productNameWidth  = 50
	productPriceWidth = 10

	productsDir = "productos"
	binExt      = ".dat"
	txtExt      = ".txt"
)

// ProductStore persiste cada producto en dos archivos nombrados por su código:
// <code>.dat (snapshot binario) y <code>.txt (línea de ancho fijo, respaldo).
type ProductStore struct {
	fio fileIO
	dir string
	log zerolog.Logger
}

// NewProductStore construye el store y crea <base>/productos si no existe.
func NewProductStore(opts Options) (*ProductStore, error) {
	s := &ProductStore{
		fio: newFileIO(opts),
		dir: filepath.Join(opts.BaseDir, productsDir),
		log: opts.Logger.With().Str("store", productsDir).Logger(),
	}
	s.fio.log = s.log
	if err := s.fio.ensureDir(s.dir); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ProductStore) binPath(code int) string {
	return filepath.Join(s.dir, strconv.Itoa(code)+binExt)
}

func (s *ProductStore) txtPath(code int) string {
	return filepath.Join(s.dir, strconv.Itoa(code)+txtExt)
}

// Create escribe ambos archivos del producto. Sobrescribe lo que hubiera en ese código.
func (s *ProductStore) Create(product *entity.Product) error {
	if product == nil {
		return fmt.Errorf("%w: producto nulo", domain.ErrInvalidInput)
	}
	doc, err := toProductDoc(product)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	data, err := encodeSnapshot(productSnapshot{Header: newHeader(kindProduct), Product: doc})
	if err != nil {
		return fmt.Errorf("serializar producto %d: %w", product.Code, err)
	}
	binErr := s.fio.write(s.binPath(product.Code), data)
	txtErr := s.fio.write(s.txtPath(product.Code), []byte(formatProductLine(product)+"\n"))
	if err := errors.Join(binErr, txtErr); err != nil {
		return err
	}
	s.log.Debug().Int("code", product.Code).Msg("producto guardado")
	return nil
}

// GetByCode lee el snapshot binario; si falta o está dañado, reconstruye desde el .txt.
// Devuelve (nil, nil) si ninguno de los dos sirve.
func (s *ProductStore) GetByCode(code int) (*entity.Product, error) {
	binPath := s.binPath(code)
	if s.fio.exists(binPath) {
		p, err := s.readBinary(binPath)
		if err == nil {
			return p, nil
		}
		s.log.Warn().Err(err).Str("path", binPath).Msg("snapshot ilegible, se intenta el archivo de texto")
	}
	txtPath := s.txtPath(code)
	data, err := s.fio.read(txtPath)
	if err != nil {
		s.log.Debug().Err(err).Int("code", code).Msg("producto no encontrado")
		return nil, nil
	}
	p, err := parseProductLine(firstLine(string(data)))
	if err != nil {
		s.log.Warn().Err(err).Str("path", txtPath).Msg("línea de producto inválida")
		return nil, nil
	}
	return p, nil
}

// SearchByName devuelve los productos cuyo nombre empieza por prefix, sin distinguir mayúsculas.
func (s *ProductStore) SearchByName(prefix string) ([]*entity.Product, error) {
	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(prefix))
	out := make([]*entity.Product, 0)
	for _, p := range all {
		if strings.HasPrefix(fold.String(p.Name), want) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Update reemplaza el producto completo: elimina y vuelve a crear.
func (s *ProductStore) Update(product *entity.Product) error {
	if product == nil {
		return fmt.Errorf("%w: producto nulo", domain.ErrInvalidInput)
	}
	if err := s.Delete(product.Code); err != nil {
		return err
	}
	return s.Create(product)
}

// Delete borra ambos archivos. Un código inexistente no es error.
func (s *ProductStore) Delete(code int) error {
	binRemoved, binErr := s.fio.remove(s.binPath(code))
	txtRemoved, txtErr := s.fio.remove(s.txtPath(code))
	if err := errors.Join(binErr, txtErr); err != nil {
		return err
	}
	if !binRemoved && !txtRemoved {
		s.log.Warn().Int("code", code).Msg("eliminar: producto inexistente")
	}
	return nil
}

// ListAll decodifica cada .dat del directorio de forma independiente.
// Un archivo dañado se omite sin afectar al resto. El resultado va ordenado por código.
func (s *ProductStore) ListAll() ([]*entity.Product, error) {
	entries, err := afero.ReadDir(s.fio.fs, s.dir)
	if err != nil {
		s.log.Error().Err(err).Str("dir", s.dir).Msg("no se pudo listar el directorio")
		return []*entity.Product{}, nil
	}
	out := make([]*entity.Product, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != binExt {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		p, err := s.readBinary(path)
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("producto omitido del listado")
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// NextCode siguiente código libre según los productos listados.
func (s *ProductStore) NextCode() (int, error) {
	all, err := s.ListAll()
	if err != nil {
		return 0, err
	}
	return NextCode(all, func(p *entity.Product) int { return p.Code }), nil
}

func (s *ProductStore) readBinary(path string) (*entity.Product, error) {
	data, err := s.fio.read(path)
	if err != nil {
		return nil, err
	}
	var snap productSnapshot
	if err := decodeSnapshot(data, kindProduct, &snap); err != nil {
		return nil, err
	}
	p, err := snap.Product.toEntity()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func formatProductLine(p *entity.Product) string {
	return PadField(strconv.Itoa(p.Code), productCodeWidth) +
		PadField(p.Name, productNameWidth) +
		PadField(p.Price.StringFixed(2), productPriceWidth)
}

func parseProductLine(line string) (*entity.Product, error) {
	if strings.TrimSpace(line) == "" {
		return nil, errors.New("línea vacía")
	}
	cols := SliceFields(line, productCodeWidth, productNameWidth, productPriceWidth)
	code, err := strconv.Atoi(cols[0])
	if err != nil {
		return nil, fmt.Errorf("código %q: %w", cols[0], err)
	}
	price, err := decimal.NewFromString(cols[2])
	if err != nil {
		return nil, fmt.Errorf("precio %q: %w", cols[2], err)
	}
	return &entity.Product{Code: code, Name: cols[1], Price: price}, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r")
}
