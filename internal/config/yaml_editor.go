package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAMLEditor provides structured editing of the YAML config file using
// the yaml.v3 Node API, preserving comments and formatting.
type YAMLEditor struct {
	path string
}

// NewYAMLEditor creates a new editor for the given config file path.
func NewYAMLEditor(path string) *YAMLEditor {
	return &YAMLEditor{path: path}
}

// AddWidgetType adds a new widget type to the registry section.
func (e *YAMLEditor) AddWidgetType(name string, def WidgetDef) error {
	if def.W < 1 || def.H < 1 {
		return fmt.Errorf("widget type '%s': size must be at least 1x1", name)
	}
	doc, root, err := e.load()
	if err != nil {
		return err
	}

	widgetsNode := findMappingKey(root, "widgets")
	if widgetsNode == nil {
		// No widgets section, create one
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "widgets"},
			&yaml.Node{Kind: yaml.MappingNode},
		)
		widgetsNode = root.Content[len(root.Content)-1]
	}

	if findMappingKey(widgetsNode, name) != nil {
		return fmt.Errorf("widget type '%s' already exists", name)
	}

	valueNode := &yaml.Node{Kind: yaml.MappingNode}
	valueNode.Content = append(valueNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "w"},
		intNode(def.W),
		&yaml.Node{Kind: yaml.ScalarNode, Value: "h"},
		intNode(def.H),
	)
	if len(def.Props) > 0 {
		propsNode := &yaml.Node{}
		if err := propsNode.Encode(def.Props); err != nil {
			return fmt.Errorf("encoding props: %w", err)
		}
		valueNode.Content = append(valueNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "props"},
			propsNode,
		)
	}

	widgetsNode.Content = append(widgetsNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: name},
		valueNode,
	)

	return e.save(doc)
}

// DeleteWidgetType removes a widget type from the registry section.
func (e *YAMLEditor) DeleteWidgetType(name string) error {
	doc, root, err := e.load()
	if err != nil {
		return err
	}

	widgetsNode := findMappingKey(root, "widgets")
	if widgetsNode == nil {
		return fmt.Errorf("no widgets section in config")
	}

	idx := findMappingKeyIndex(widgetsNode, name)
	if idx < 0 {
		return fmt.Errorf("widget type '%s' not found", name)
	}

	if layoutNode := findMappingKey(root, "default_layout"); layoutNode != nil && layoutNode.Kind == yaml.SequenceNode {
		for _, entry := range layoutNode.Content {
			if t := findMappingKey(entry, "type"); t != nil && t.Value == name {
				return fmt.Errorf("widget type '%s' is used by default_layout", name)
			}
		}
	}

	// Remove the key-value pair (2 consecutive entries in Content)
	widgetsNode.Content = append(widgetsNode.Content[:idx], widgetsNode.Content[idx+2:]...)

	return e.save(doc)
}

// SetWidgetSize updates or inserts the default size of a widget type.
func (e *YAMLEditor) SetWidgetSize(name string, w, h int) error {
	if w < 1 || h < 1 {
		return fmt.Errorf("widget type '%s': size must be at least 1x1", name)
	}
	doc, root, err := e.load()
	if err != nil {
		return err
	}

	widgetsNode := findMappingKey(root, "widgets")
	if widgetsNode == nil {
		return fmt.Errorf("no widgets section in config")
	}

	entryNode := findMappingKey(widgetsNode, name)
	if entryNode == nil {
		return fmt.Errorf("widget type '%s' not found", name)
	}

	setMappingInt(entryNode, "w", w)
	setMappingInt(entryNode, "h", h)

	return e.save(doc)
}

// SetBoardCols updates or inserts board.cols.
func (e *YAMLEditor) SetBoardCols(cols int) error {
	if cols < 1 {
		return fmt.Errorf("cols must be at least 1, got %d", cols)
	}
	doc, root, err := e.load()
	if err != nil {
		return err
	}

	boardNode := findMappingKey(root, "board")
	if boardNode == nil {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "board"},
			&yaml.Node{Kind: yaml.MappingNode},
		)
		boardNode = root.Content[len(root.Content)-1]
	}
	setMappingInt(boardNode, "cols", cols)

	return e.save(doc)
}

func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(v), Tag: "!!int"}
}

func setMappingInt(mapping *yaml.Node, key string, v int) {
	if val := findMappingKey(mapping, key); val != nil {
		val.Value = strconv.Itoa(v)
		val.Tag = "!!int"
		return
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		intNode(v),
	)
}

func (e *YAMLEditor) load() (*yaml.Node, *yaml.Node, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil, fmt.Errorf("invalid YAML document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("root is not a mapping")
	}

	return &doc, root, nil
}

func (e *YAMLEditor) save(doc *yaml.Node) error {
	out, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("opening config for write: %w", err)
	}
	defer out.Close()

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// findMappingKey finds the value node for a key in a MappingNode.
func findMappingKey(mapping *yaml.Node, key string) *yaml.Node {
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// findMappingKeyIndex returns the index of a key in a MappingNode's Content, or -1.
func findMappingKeyIndex(mapping *yaml.Node, key string) int {
	if mapping.Kind != yaml.MappingNode {
		return -1
	}
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}
