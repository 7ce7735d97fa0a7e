package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fireform/pkg/observation"
)

// LoadFS walks the provided filesystem and parses JSON/YAML UI schema files.
// When fsys is nil or no schema files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for formID, raw := range doc.Forms {
			id := strings.TrimSpace(formID)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty form id", path)
			}
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("uischema: duplicate form %q (file %s)", id, path)
			}

			f, err := normaliseForm(raw, id, path)
			if err != nil {
				return err
			}
			store.forms[id] = f
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadDefault parses the embedded schema.
func LoadDefault() (*Store, error) {
	return LoadFS(EmbeddedFS())
}

// Form returns the configuration for the supplied form id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	f, ok := s.forms[id]
	return f, ok
}

// IDs lists the loaded form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Form   FormConfig             `json:"form" yaml:"form"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func normaliseForm(raw formFile, id, source string) (Form, error) {
	f := Form{
		ID:     id,
		Source: source,
		Form:   raw.Form,
		Fields: make(map[observation.Field]FieldConfig, len(raw.Fields)),
	}

	for key, cfg := range raw.Fields {
		name := observation.Field(strings.TrimSpace(key))
		if !name.Valid() {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) references unknown field %q", id, source, key)
		}
		if _, exists := f.Fields[name]; exists {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) defines duplicate field %q", id, source, name)
		}
		cfg.Label = strings.TrimSpace(cfg.Label)
		cfg.HelpText = strings.TrimSpace(cfg.HelpText)
		cfg.Icon = sanitizeIconMarkup(cfg.Icon)
		f.Fields[name] = cfg
	}
	return f, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
