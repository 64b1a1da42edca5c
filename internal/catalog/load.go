package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrNotFound    = errors.New("catalog: category not found")
	ErrDuplicateID = errors.New("catalog: duplicate category id")
	ErrEmptyID     = errors.New("catalog: empty category id")
	ErrEmptyName   = errors.New("catalog: empty category name")
)

// Load reads and validates the category tree stored at name in fsys.
// A .json file is decoded as JSON, .yaml and .yml as YAML, anything else
// as Parse decides.
func Load(fsys fs.FS, name string) ([]Node, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", name, err)
	}

	var tree []Node
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		tree, err = ParseJSON(data)
	case ".yaml", ".yml":
		tree, err = ParseYAML(data)
	default:
		tree, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", name, err)
	}
	return tree, nil
}

// Parse decodes and validates a category tree of unknown format. Input that
// opens with '[' or '{' is tried as JSON first; YAML flow syntax that is not
// valid JSON falls back to YAML. Unknown fields are rejected either way.
func Parse(data []byte) ([]Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		tree, err := ParseJSON(data)
		var syntaxErr *json.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return tree, err
		}
	}
	return ParseYAML(data)
}

// ParseJSON decodes and validates a JSON category tree. Ids and
// discriminators may be JSON strings or numbers.
func ParseJSON(data []byte) ([]Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raw []jsonNode
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing tree: %w", err)
	}
	tree := fromJSON(raw)
	if err := Validate(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// ParseYAML decodes and validates a YAML category tree.
func ParseYAML(data []byte) ([]Node, error) {
	var tree []Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tree); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing tree: %w", err)
	}
	if err := Validate(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// jsonNode mirrors Node for JSON input, where catalog exports often write
// ids as bare numbers.
type jsonNode struct {
	ID        scalar     `json:"id"`
	Name      string     `json:"category_name"`
	Children  []jsonNode `json:"children"`
	ServiceID scalar     `json:"serviceId"`
	GameID    scalar     `json:"gameId"`
	SeriesID  scalar     `json:"seriesId"`
}

// scalar is a string that also accepts a JSON number. null reads as "".
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = scalar(v)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("want string or number, got %s", data)
		}
		*s = scalar(n)
	}
	return nil
}

func fromJSON(raw []jsonNode) []Node {
	if raw == nil {
		return nil
	}
	list := make([]Node, len(raw))
	for i, r := range raw {
		list[i] = Node{
			ID:        string(r.ID),
			Name:      r.Name,
			Children:  fromJSON(r.Children),
			ServiceID: string(r.ServiceID),
			GameID:    string(r.GameID),
			SeriesID:  string(r.SeriesID),
		}
	}
	return list
}

// Validate checks that every node has an id and a name and that ids are
// unique across the whole tree.
func Validate(tree []Node) error {
	seen := make(map[string]bool)
	var err error
	Walk(tree, func(n Node, _ int) bool {
		if err != nil {
			return false
		}
		switch {
		case n.ID == "":
			err = fmt.Errorf("node %q: %w", n.Name, ErrEmptyID)
		case n.Name == "":
			err = fmt.Errorf("node %q: %w", n.ID, ErrEmptyName)
		case seen[n.ID]:
			err = fmt.Errorf("node %q: %w", n.ID, ErrDuplicateID)
		}
		seen[n.ID] = true
		return err == nil
	})
	return err
}
