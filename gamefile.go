package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gmr/figure"
)

// Game is the content of a game file. Engagements and their features keep
// the order they were written in.
type Game struct {
	Name          string
	Interventions []string
	Engagements   []figure.Engagement
}

func loadGame(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	game, err := parseGame(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return game, nil
}

// parseGame walks the YAML node tree instead of decoding into maps, which
// would lose the order of engagements and features.
func parseGame(data []byte) (*Game, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty game file")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nodeError(root, "expected a mapping with name, interventions and engagements")
	}

	game := &Game{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		var err error
		switch key.Value {
		case "name":
			if value.Kind != yaml.ScalarNode {
				return nil, nodeError(value, "name must be a string")
			}
			game.Name = value.Value
		case "interventions":
			game.Interventions, err = stringList(value)
		case "engagements":
			game.Engagements, err = engagementList(value)
		default:
			err = nodeError(key, "unknown key %q", key.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(game.Name) == "" {
		return nil, fmt.Errorf("missing game name")
	}
	return game, nil
}

func engagementList(n *yaml.Node) ([]figure.Engagement, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, nodeError(n, "engagements must map engagement types to features")
	}
	var engagements []figure.Engagement
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, body := n.Content[i], n.Content[i+1]
		e := figure.Engagement{Name: name.Value}
		if !isNull(body) {
			if body.Kind != yaml.MappingNode {
				return nil, nodeError(body, "engagement %q must map features to design principles", name.Value)
			}
			for j := 0; j+1 < len(body.Content); j += 2 {
				hows, err := stringList(body.Content[j+1])
				if err != nil {
					return nil, err
				}
				e.Whats = append(e.Whats, figure.What{Text: body.Content[j].Value, Hows: hows})
			}
		}
		engagements = append(engagements, e)
	}
	return engagements, nil
}

// stringList accepts a sequence of strings, a single string, or nothing.
func stringList(n *yaml.Node) ([]string, error) {
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.ScalarNode:
		return []string{n.Value}, nil
	case n.Kind != yaml.SequenceNode:
		return nil, nodeError(n, "expected a list of strings")
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, nodeError(item, "expected a string")
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func nodeError(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}
