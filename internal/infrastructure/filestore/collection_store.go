package filestore

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-archivo/internal/domain"
)

// collectionFormat describe cómo una colección se identifica y se codifica en sus dos archivos.
type collectionFormat[T any, K comparable] interface {
	key(item *T) K
	// validate rechaza elementos que no se pueden guardar (p. ej. llave vacía).
	validate(item *T) error
	// assignKey da llave al nuevo elemento a partir de la colección actual.
	assignKey(items []*T, item *T)
	encodeBinary(items []*T) ([]byte, error)
	decodeBinary(data []byte) ([]*T, error)
	encodeText(items []*T) string
	// decodeText recupera lo que pueda; los bloques inválidos se registran y se omiten.
	decodeText(text string, log zerolog.Logger) []*T
}

// collectionStore guarda la colección entera en un .dat y un .txt.
// Cada mutación carga todo, modifica en memoria y reescribe ambos archivos.
// No hay bloqueo: dos escritores intercalados pierden cambios (gana el último).
type collectionStore[T any, K comparable] struct {
	fio     fileIO
	binPath string
	txtPath string
	format  collectionFormat[T, K]
	log     zerolog.Logger
}

func newCollectionStore[T any, K comparable](opts Options, dir, baseName string, format collectionFormat[T, K]) (*collectionStore[T, K], error) {
	full := filepath.Join(opts.BaseDir, dir)
	log := opts.Logger.With().Str("store", dir).Logger()
	fio := newFileIO(opts)
	fio.log = log
	if err := fio.ensureDir(full); err != nil {
		return nil, err
	}
	return &collectionStore[T, K]{
		fio:     fio,
		binPath: filepath.Join(full, baseName+binExt),
		txtPath: filepath.Join(full, baseName+txtExt),
		format:  format,
		log:     log,
	}, nil
}

// listAll devuelve la colección: snapshot binario si se puede leer, si no el texto.
// Nunca falla por problemas de formato; en el peor caso devuelve una colección vacía.
func (s *collectionStore[T, K]) listAll() []*T {
	if s.fio.exists(s.binPath) {
		items, err := s.readBinary()
		if err == nil {
			return items
		}
		s.log.Warn().Err(err).Str("path", s.binPath).Msg("snapshot ilegible, se recupera desde texto")
	} else {
		s.log.Debug().Str("path", s.binPath).Msg("sin snapshot binario")
	}
	if !s.fio.exists(s.txtPath) {
		return []*T{}
	}
	data, err := s.fio.read(s.txtPath)
	if err != nil {
		s.log.Error().Err(err).Str("path", s.txtPath).Msg("no se pudo leer el archivo de texto")
		return []*T{}
	}
	items := s.format.decodeText(string(data), s.log)
	s.log.Info().Int("recuperados", len(items)).Str("path", s.txtPath).Msg("colección reconstruida desde texto")
	if items == nil {
		items = []*T{}
	}
	return items
}

func (s *collectionStore[T, K]) readBinary() ([]*T, error) {
	data, err := s.fio.read(s.binPath)
	if err != nil {
		return nil, err
	}
	items, err := s.format.decodeBinary(data)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}

func (s *collectionStore[T, K]) find(key K) *T {
	for _, it := range s.listAll() {
		if s.format.key(it) == key {
			return it
		}
	}
	return nil
}

// create asigna llave, rechaza duplicados y reescribe la colección completa.
func (s *collectionStore[T, K]) create(item *T) error {
	if item == nil {
		return fmt.Errorf("%w: elemento nulo", domain.ErrInvalidInput)
	}
	if err := s.format.validate(item); err != nil {
		return err
	}
	items := s.listAll()
	s.format.assignKey(items, item)
	key := s.format.key(item)
	for _, it := range items {
		if s.format.key(it) == key {
			s.log.Warn().Interface("key", key).Msg("crear: llave duplicada, se ignora")
			return fmt.Errorf("%w: %v", domain.ErrDuplicate, key)
		}
	}
	items = append(items, item)
	return s.persist(items)
}

// update reemplaza el elemento con la misma llave. Llave inexistente: no-op.
func (s *collectionStore[T, K]) update(item *T) error {
	if item == nil {
		return fmt.Errorf("%w: elemento nulo", domain.ErrInvalidInput)
	}
	if err := s.format.validate(item); err != nil {
		return err
	}
	items := s.listAll()
	key := s.format.key(item)
	for i, it := range items {
		if s.format.key(it) == key {
			items[i] = item
			return s.persist(items)
		}
	}
	s.log.Warn().Interface("key", key).Msg("actualizar: llave inexistente, sin cambios")
	return nil
}

// delete elimina el elemento con la llave dada. Llave inexistente: no-op.
func (s *collectionStore[T, K]) delete(key K) error {
	items := s.listAll()
	for i, it := range items {
		if s.format.key(it) == key {
			items = append(items[:i], items[i+1:]...)
			return s.persist(items)
		}
	}
	s.log.Warn().Interface("key", key).Msg("eliminar: llave inexistente, sin cambios")
	return nil
}

// persist sobrescribe el .dat y luego el .txt. Un fallo en uno no toca el otro.
func (s *collectionStore[T, K]) persist(items []*T) error {
	var binErr error
	data, err := s.format.encodeBinary(items)
	if err != nil {
		s.log.Error().Err(err).Msg("no se pudo serializar la colección")
		binErr = fmt.Errorf("serializar colección: %w", err)
	} else {
		binErr = s.fio.write(s.binPath, data)
	}
	txtErr := s.fio.write(s.txtPath, []byte(s.format.encodeText(items)))
	return errors.Join(binErr, txtErr)
}
