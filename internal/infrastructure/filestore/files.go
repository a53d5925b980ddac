package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options configuración común a los stores de archivos.
type Options struct {
	Fs      afero.Fs // nil = sistema de archivos del SO
	BaseDir string
	// AtomicWrites escribe cada archivo en un temporal y lo renombra sobre el destino.
	// El par .dat/.txt sigue siendo dos escrituras independientes.
	AtomicWrites bool
	Logger       zerolog.Logger
}

func (o Options) fs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}

// fileIO acceso a disco de un store. No guarda handles abiertos entre llamadas.
type fileIO struct {
	fs     afero.Fs
	atomic bool
	log    zerolog.Logger
}

func newFileIO(o Options) fileIO {
	return fileIO{fs: o.fs(), atomic: o.AtomicWrites, log: o.Logger}
}

func (f fileIO) ensureDir(dir string) error {
	if err := f.fs.MkdirAll(dir, 0o755); err != nil {
		f.log.Error().Err(err).Str("dir", dir).Msg("no se pudo crear el directorio")
		return fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	return nil
}

func (f fileIO) read(path string) ([]byte, error) {
	return afero.ReadFile(f.fs, path)
}

func (f fileIO) exists(path string) bool {
	ok, err := afero.Exists(f.fs, path)
	return err == nil && ok
}

// write sobrescribe path. Sin AtomicWrites un fallo a mitad puede dejar el archivo truncado.
func (f fileIO) write(path string, data []byte) error {
	var err error
	if f.atomic {
		err = f.writeAtomic(path, data)
	} else {
		err = afero.WriteFile(f.fs, path, data, 0o644)
	}
	if err != nil {
		f.log.Error().Err(err).Str("path", path).Msg("error escribiendo archivo")
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	return nil
}

func (f fileIO) writeAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	tmp, err := afero.TempFile(f.fs, dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = f.fs.Remove(tmpPath)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	errSync := tmp.Sync()
	errClose := tmp.Close()
	if errSync != nil {
		return errSync
	}
	if errClose != nil {
		return errClose
	}
	if err := f.fs.Rename(tmpPath, path); err != nil {
		return err
	}
	renamed = true
	return nil
}

// remove borra path. Devuelve false si no existía.
func (f fileIO) remove(path string) (bool, error) {
	err := f.fs.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	f.log.Error().Err(err).Str("path", path).Msg("error eliminando archivo")
	return false, fmt.Errorf("eliminar %s: %w", path, err)
}
