package format

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xeptore/flaw/v8"

	"git.lost.host/meutraa/techmania/internal/errutil"
)

// ReadFile reads the whole file at path. A missing file is reported as a bare
// os.ErrNotExist so callers can fall back to defaults.
func ReadFile(path string) (data []byte, err error) {
	flawP := flaw.P{"file_path": path}

	f, err := os.Open(path)
	if nil != err {
		if errors.Is(err, os.ErrNotExist) {
			return nil, os.ErrNotExist
		}
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return nil, flaw.From(fmt.Errorf("failed to open file for read: %v", err)).Append(flawP)
	}
	defer func() {
		if closeErr := f.Close(); nil != closeErr {
			flawP["err_debug_tree"] = errutil.Tree(closeErr).FlawP()
			closeErr = flaw.From(fmt.Errorf("failed to close file: %v", closeErr)).Append(flawP)
			if nil != err {
				err = errutil.BeFlaw(err).Join(closeErr)
			} else {
				err = closeErr
			}
		}
	}()

	info, err := f.Stat()
	if nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return nil, flaw.From(fmt.Errorf("failed to stat file: %v", err)).Append(flawP)
	}
	data = make([]byte, info.Size())
	if _, err := io.ReadFull(f, data); nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return nil, flaw.From(fmt.Errorf("failed to read file: %v", err)).Append(flawP)
	}
	return data, nil
}

// WriteFile replaces the file at path with data. The content goes to a
// temporary file in the same directory first so a failed write leaves the
// old file intact.
func WriteFile(path string, data []byte) (err error) {
	flawP := flaw.P{"file_path": path}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return flaw.From(fmt.Errorf("failed to create temporary file: %v", err)).Append(flawP)
	}
	tmp := f.Name()
	flawP["temp_path"] = tmp
	defer func() {
		if nil != err {
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); nil != err {
		_ = f.Close()
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return flaw.From(fmt.Errorf("failed to write file: %v", err)).Append(flawP)
	}
	if err := f.Sync(); nil != err {
		_ = f.Close()
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return flaw.From(fmt.Errorf("failed to sync file: %v", err)).Append(flawP)
	}
	if err := f.Close(); nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return flaw.From(fmt.Errorf("failed to close file: %v", err)).Append(flawP)
	}
	if err := os.Rename(tmp, path); nil != err {
		flawP["err_debug_tree"] = errutil.Tree(err).FlawP()
		return flaw.From(fmt.Errorf("failed to replace file: %v", err)).Append(flawP)
	}
	return nil
}

// LoadFile reads and decodes a document, upgrading it to the latest version.
func LoadFile[T Document](r *Registry, path string) (T, error) {
	var zero T
	data, err := ReadFile(path)
	if nil != err {
		return zero, err
	}
	doc, err := Load[T](r, data)
	if nil != err {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func SaveFile(path string, doc Document) error {
	data, err := Encode(doc)
	if nil != err {
		return err
	}
	return WriteFile(path, data)
}
