package filestore_test

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-archivo/internal/domain"
	"github.com/jhoicas/tienda-archivo/internal/domain/entity"
	"github.com/jhoicas/tienda-archivo/internal/infrastructure/filestore"
)

const testBaseDir = "/data"

func testOptions(fs afero.Fs) filestore.Options {
	return filestore.Options{Fs: fs, BaseDir: testBaseDir, Logger: zerolog.Nop()}
}

func newTestProductStore(t *testing.T) (*filestore.ProductStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := filestore.NewProductStore(testOptions(fs))
	require.NoError(t, err)
	return s, fs
}

func productPath(code, ext string) string {
	return filepath.Join(testBaseDir, "productos", code+ext)
}

func balon() *entity.Product {
	return &entity.Product{Code: 1, Name: "Balon Molten 7", Price: decimal.NewFromFloat(30.0)}
}

func TestProductStore_CreateYGetByCode(t *testing.T) {
	s, fs := newTestProductStore(t)
	require.NoError(t, s.Create(balon()))

	ok, _ := afero.Exists(fs, productPath("1", ".dat"))
	assert.True(t, ok, "debe existir el snapshot binario")
	ok, _ = afero.Exists(fs, productPath("1", ".txt"))
	assert.True(t, ok, "debe existir el archivo de texto")

	got, err := s.GetByCode(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Balon Molten 7", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(30.0)))
}

func TestProductStore_TextoDeAnchoFijo(t *testing.T) {
	s, fs := newTestProductStore(t)
	p := &entity.Product{Code: 42, Name: strings.Repeat("N", 60), Price: decimal.RequireFromString("1234.5")}
	require.NoError(t, s.Create(p))

	data, err := afero.ReadFile(fs, productPath("42", ".txt"))
	require.NoError(t, err)
	line := strings.TrimSuffix(string(data), "\n")
	assert.Equal(t, 65, utf8.RuneCountInString(line))
	assert.Equal(t, "42   ", line[:5])
	assert.Equal(t, strings.Repeat("N", 50), line[5:55])
	assert.Equal(t, "1234.50   ", line[55:])
}

func TestProductStore_FallbackATexto(t *testing.T) {
	s, fs := newTestProductStore(t)
	require.NoError(t, s.Create(balon()))
	require.NoError(t, fs.Remove(productPath("1", ".dat")))

	got, err := s.GetByCode(1)
	require.NoError(t, err)
	require.NotNil(t, got, "debe reconstruirse desde el texto")
	assert.Equal(t, 1, got.Code)
	assert.Equal(t, "Balon Molten 7", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(30.0)))
}

func TestProductStore_SnapshotCorruptoUsaTexto(t *testing.T) {
	s, fs := newTestProductStore(t)
	require.NoError(t, s.Create(balon()))
	require.NoError(t, afero.WriteFile(fs, productPath("1", ".dat"), []byte("basura"), 0o644))

	got, err := s.GetByCode(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Balon Molten 7", got.Name)

	// el texto no se toca al leer
	data, err := afero.ReadFile(fs, productPath("1", ".txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Balon Molten 7")
}

func TestProductStore_NoEncontrado(t *testing.T) {
	s, fs := newTestProductStore(t)
	got, err := s.GetByCode(99)
	require.NoError(t, err)
	assert.Nil(t, got)

	// texto ilegible y sin binario
	require.NoError(t, afero.WriteFile(fs, productPath("5", ".txt"), []byte("xx   sin precio\n"), 0o644))
	got, err = s.GetByCode(5)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductStore_ListAllOmiteCorruptos(t *testing.T) {
	s, fs := newTestProductStore(t)
	for i, name := range []string{"Balon", "Camiseta", "Guayos"} {
		require.NoError(t, s.Create(&entity.Product{Code: i + 1, Name: name, Price: decimal.NewFromInt(int64(10 * (i + 1)))}))
	}
	require.NoError(t, afero.WriteFile(fs, productPath("2", ".dat"), []byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}, 0o644))

	all, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].Code)
	assert.Equal(t, 3, all[1].Code)
}

func TestProductStore_ListAllIgnoraOtrosArchivos(t *testing.T) {
	s, fs := newTestProductStore(t)
	require.NoError(t, s.Create(balon()))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testBaseDir, "productos", "notas.md"), []byte("x"), 0o644))
	require.NoError(t, fs.MkdirAll(filepath.Join(testBaseDir, "productos", "sub.dat"), 0o755))

	all, err := s.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductStore_SearchByName(t *testing.T) {
	s, _ := newTestProductStore(t)
	require.NoError(t, s.Create(balon()))
	require.NoError(t, s.Create(&entity.Product{Code: 2, Name: "balón de voleibol", Price: decimal.NewFromInt(25)}))
	require.NoError(t, s.Create(&entity.Product{Code: 3, Name: "Camiseta", Price: decimal.NewFromInt(15)}))

	got, err := s.SearchByName("BAL")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Code)
	assert.Equal(t, 2, got[1].Code)

	got, err = s.SearchByName("zapato")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProductStore_UpdateReemplaza(t *testing.T) {
	s, _ := newTestProductStore(t)
	require.NoError(t, s.Create(balon()))
	require.NoError(t, s.Update(&entity.Product{Code: 1, Name: "Balon Molten 5", Price: decimal.NewFromInt(28)}))

	got, err := s.GetByCode(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Balon Molten 5", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(28)))

	all, err := s.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductStore_Delete(t *testing.T) {
	s, fs := newTestProductStore(t)
	require.NoError(t, s.Create(balon()))
	require.NoError(t, s.Delete(1))

	for _, ext := range []string{".dat", ".txt"} {
		ok, _ := afero.Exists(fs, productPath("1", ext))
		assert.False(t, ok)
	}
	// inexistente: no-op
	assert.NoError(t, s.Delete(1))
	assert.NoError(t, s.Delete(404))
}

func TestProductStore_Validacion(t *testing.T) {
	s, fs := newTestProductStore(t)
	assert.ErrorIs(t, s.Create(nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.Update(nil), domain.ErrInvalidInput)

	entries, err := afero.ReadDir(fs, filepath.Join(testBaseDir, "productos"))
	require.NoError(t, err)
	assert.Empty(t, entries, "la validación ocurre antes de tocar disco")
}

func TestProductStore_NextCode(t *testing.T) {
	s, _ := newTestProductStore(t)
	code, err := s.NextCode()
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	require.NoError(t, s.Create(&entity.Product{Code: 7, Name: "x", Price: decimal.NewFromInt(1)}))
	code, err = s.NextCode()
	require.NoError(t, err)
	assert.Equal(t, 8, code)
}

func TestProductStore_EscrituraAtomica(t *testing.T) {
	fs := afero.NewMemMapFs()
	opts := testOptions(fs)
	opts.AtomicWrites = true
	s, err := filestore.NewProductStore(opts)
	require.NoError(t, err)

	require.NoError(t, s.Create(balon()))
	require.NoError(t, s.Update(&entity.Product{Code: 1, Name: "Otro", Price: decimal.NewFromInt(2)}))

	entries, err := afero.ReadDir(fs, filepath.Join(testBaseDir, "productos"))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"1.dat", "1.txt"}, names, "no deben quedar temporales")

	got, err := s.GetByCode(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Otro", got.Name)
}

func TestProductStore_SistemaDeArchivosReal(t *testing.T) {
	s, err := filestore.NewProductStore(filestore.Options{BaseDir: t.TempDir(), Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.NoError(t, s.Create(balon()))

	all, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Balon Molten 7", all[0].Name)
}

func TestProductStore_SaltoDeLineaEnNombre(t *testing.T) {
	s, fs := newTestProductStore(t)
	require.NoError(t, s.Create(&entity.Product{Code: 4, Name: "Guayos\n99999", Price: decimal.NewFromInt(80)}))
	require.NoError(t, fs.Remove(productPath("4", ".dat")))

	got, err := s.GetByCode(4)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Guayos 99999", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(80)))
}
