package scene

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EncodeTOML writes tpl to w in the canonical TOML scene format.
func EncodeTOML(w io.Writer, tpl *Template) error {
	return toml.NewEncoder(w).Encode(tpl)
}

// DecodeTOML reads a TOML scene from r.
func DecodeTOML(r io.Reader) (*Template, error) {
	var tpl Template
	if _, err := toml.NewDecoder(r).Decode(&tpl); err != nil {
		return nil, fmt.Errorf("decode toml scene: %w", err)
	}
	return &tpl, nil
}

// EncodeYAML writes tpl to w as YAML.
func EncodeYAML(w io.Writer, tpl *Template) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(tpl); err != nil {
		return err
	}
	return enc.Close()
}

// DecodeYAML reads a YAML scene from r.
func DecodeYAML(r io.Reader) (*Template, error) {
	var tpl Template
	if err := yaml.NewDecoder(r).Decode(&tpl); err != nil {
		return nil, fmt.Errorf("decode yaml scene: %w", err)
	}
	return &tpl, nil
}

// Save persists tpl to path, choosing the codec from the extension
// (".toml", ".yaml"/".yml"). The file is written atomically: a temp file in
// the same directory is renamed over the target, so readers never observe a
// partially written scene.
func Save(path string, tpl *Template) error {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".scene-*")
	if err != nil {
		return fmt.Errorf("save scene %q: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp, tpl); err != nil {
		tmp.Close()
		return fmt.Errorf("save scene %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save scene %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save scene %q: %w", path, err)
	}
	return nil
}

// Load reads a scene from path, choosing the codec from the extension.
func Load(path string) (*Template, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load scene %q: %w", path, err)
	}
	defer f.Close()
	tpl, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("load scene %q: %w", path, err)
	}
	return tpl, nil
}

func encoderFor(path string) (func(io.Writer, *Template) error, error) {
	switch filepath.Ext(path) {
	case ".toml":
		return EncodeTOML, nil
	case ".yaml", ".yml":
		return EncodeYAML, nil
	default:
		return nil, fmt.Errorf("scene %q: unsupported extension", path)
	}
}

func decoderFor(path string) (func(io.Reader) (*Template, error), error) {
	switch filepath.Ext(path) {
	case ".toml":
		return DecodeTOML, nil
	case ".yaml", ".yml":
		return DecodeYAML, nil
	default:
		return nil, fmt.Errorf("scene %q: unsupported extension", path)
	}
}
