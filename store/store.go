// Package store saves and loads values as JSON or gob files.
//
// Saving checks that the destination directory exists and loading checks that
// the file exists, so a wrong path fails with an fsutil error that shows what
// is actually there.
package store

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/utkarsh5026/boondh/fsutil"
)

// ErrInvalidJSON is returned when a file does not hold valid JSON.
var ErrInvalidJSON = errors.New("invalid json")

// SaveJSON writes v to path as JSON.
func SaveJSON(v any, path string) error {
	if err := fsutil.AssertParentDirExists(path); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// LoadJSON decodes the JSON file at path into v.
func LoadJSON(path string, v any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// LoadJSONIntKeys decodes a JSON object whose keys are integers written as
// strings, such as one saved from a map[int]V.
func LoadJSONIntKeys[V any](path string) (map[int]V, error) {
	var raw map[string]V
	if err := LoadJSON(path, &raw); err != nil {
		return nil, err
	}

	out := make(map[int]V, len(raw))
	for key, value := range raw {
		n, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("decode %s: key %q is not an integer: %w", path, key, err)
		}
		out[n] = value
	}
	return out, nil
}

// LoadJSONPath reads a single value from the JSON file at path using a gjson
// path query like "users.0.name", without decoding the whole document.
func LoadJSONPath(path, query string) (gjson.Result, error) {
	data, err := readFile(path)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%w: %s", ErrInvalidJSON, path)
	}
	return gjson.GetBytes(data, query), nil
}

// SaveGob writes v to path in gob encoding.
func SaveGob(v any, path string) error {
	if err := fsutil.AssertParentDirExists(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// LoadGob decodes the gob file at path into v, which must be a pointer.
func LoadGob(path string, v any) error {
	if err := fsutil.AssertFileExists(path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	if err := fsutil.AssertFileExists(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return data, nil
}
