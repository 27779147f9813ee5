package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/sidechan/pkg/errors"
	"github.com/arthur-debert/sidechan/pkg/style"
	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"
)

// Kind classifies a node's value for styling.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindContainer
)

func (k Kind) role() style.Role {
	switch k {
	case KindNumber, KindBool:
		return style.RoleAccent
	case KindNull, KindContainer:
		return style.RoleMuted
	default:
		return style.RoleValue
	}
}

// Node is one entry of a StructuredData tree. A node with children is a
// container; its Value is only shown when it has none.
type Node struct {
	Key      string
	Value    string
	Kind     Kind
	Children []Node
}

// count returns the number of nodes below n.
func (n Node) count() int {
	c := len(n.Children)
	for _, ch := range n.Children {
		c += ch.count()
	}
	return c
}

// StructuredData is an ordered key/value tree used for payloads and
// backtraces.
type StructuredData struct {
	Title string
	Nodes []Node

	// MaxDepth hides nodes nested deeper than this. Zero means no limit.
	MaxDepth int

	// TruncateAt shortens values longer than this many cells. Zero means
	// no limit.
	TruncateAt int
}

// NewStructuredData returns a tree of nodes.
func NewStructuredData(title string, nodes ...Node) *StructuredData {
	return &StructuredData{Title: title, Nodes: nodes}
}

// Layout implements Renderable.
func (d *StructuredData) Layout(ctx Context) []Line {
	g := ctx.Glyphs()
	var lines []Line
	if title := firstLine(d.Title); title != "" {
		lines = append(lines, Line{}.clip(style.RoleHeader, title, ctx.Width, g.Ellipsis))
	}
	if len(d.Nodes) == 0 {
		return append(lines, Line{}.seg(style.RoleMuted, "(empty)"))
	}

	var walk func(nodes []Node, prefix string, depth int)
	walk = func(nodes []Node, prefix string, depth int) {
		for i, n := range nodes {
			last := i == len(nodes)-1

			var l Line
			childPrefix := prefix
			if depth > 1 {
				l = l.seg(style.RoleBorder, prefix)
				if last {
					l = l.seg(style.RoleBorder, g.LastBranch)
					childPrefix = prefix + strings.Repeat(" ", StringWidth(g.Pipe))
				} else {
					l = l.seg(style.RoleBorder, g.Branch)
					childPrefix = prefix + g.Pipe
				}
			}

			key := strings.ReplaceAll(firstLine(n.Key), "\n", " ")
			l = l.seg(style.RoleKey, key)

			collapsed := len(n.Children) > 0 && d.MaxDepth > 0 && depth >= d.MaxDepth
			switch {
			case collapsed:
				if key != "" {
					l = l.seg(style.RoleNone, ": ")
				}
				l = l.seg(style.RoleMuted, fmt.Sprintf("%s %d nested", g.Ellipsis, n.count()))
			case len(n.Children) == 0:
				value := strings.ReplaceAll(Sanitize(n.Value), "\n", " ")
				if d.TruncateAt > 0 {
					value = truncate(value, d.TruncateAt, g.Ellipsis)
				}
				if key != "" && value != "" {
					l = l.seg(style.RoleNone, ": ")
				}
				l = l.seg(n.Kind.role(), value)
			}
			lines = append(lines, truncateLine(l, ctx.Width, g.Ellipsis))

			if len(n.Children) > 0 && !collapsed {
				walk(n.Children, childPrefix, depth+1)
			}
		}
	}
	walk(d.Nodes, "", 1)
	return lines
}

// FromJSON parses a JSON document, keeping object keys in source order.
func FromJSON(title string, data []byte) (*StructuredData, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := jsonValue(dec, "")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPayloadParse, "invalid json")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrPayloadParse, "invalid json: trailing data")
	}
	return &StructuredData{Title: title, Nodes: rootNodes(root)}, nil
}

func jsonValue(dec *json.Decoder, key string) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}
	switch v := tok.(type) {
	case json.Delim:
		n := Node{Key: key, Kind: KindContainer}
		switch v {
		case '{':
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Node{}, err
				}
				k, ok := kt.(string)
				if !ok {
					return Node{}, fmt.Errorf("unexpected object key %v", kt)
				}
				child, err := jsonValue(dec, k)
				if err != nil {
					return Node{}, err
				}
				n.Children = append(n.Children, child)
			}
			n.Value = "{}"
		case '[':
			for i := 0; dec.More(); i++ {
				child, err := jsonValue(dec, "["+strconv.Itoa(i)+"]")
				if err != nil {
					return Node{}, err
				}
				n.Children = append(n.Children, child)
			}
			n.Value = "[]"
		default:
			return Node{}, fmt.Errorf("unexpected delimiter %v", v)
		}
		if _, err := dec.Token(); err != nil {
			return Node{}, err
		}
		return n, nil
	case string:
		return Node{Key: key, Value: v, Kind: KindString}, nil
	case json.Number:
		return Node{Key: key, Value: v.String(), Kind: KindNumber}, nil
	case bool:
		return Node{Key: key, Value: strconv.FormatBool(v), Kind: KindBool}, nil
	case nil:
		return Node{Key: key, Value: "null", Kind: KindNull}, nil
	default:
		return Node{}, fmt.Errorf("unexpected token %v", tok)
	}
}

// FromYAML parses a YAML document, keeping mapping keys in source order.
func FromYAML(title string, data []byte) (*StructuredData, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrPayloadParse, "invalid yaml")
	}
	d := &StructuredData{Title: title}
	if len(doc.Content) > 0 {
		d.Nodes = rootNodes(yamlNode(doc.Content[0], ""))
	}
	return d, nil
}

func yamlNode(y *yaml.Node, key string) Node {
	return yamlWalk(y, key, map[*yaml.Node]bool{})
}

// yamlWalk converts y. path holds the containers being expanded above y;
// an alias back to one of them becomes a leaf instead of a loop.
func yamlWalk(y *yaml.Node, key string, path map[*yaml.Node]bool) Node {
	switch y.Kind {
	case yaml.AliasNode:
		if y.Alias == nil {
			return Node{Key: key, Value: "*" + y.Value, Kind: KindString}
		}
		if path[y.Alias] {
			return Node{Key: key, Value: "*" + y.Value + " (recursive alias)", Kind: KindNull}
		}
		return yamlWalk(y.Alias, key, path)
	case yaml.MappingNode:
		path[y] = true
		defer delete(path, y)
		n := Node{Key: key, Value: "{}", Kind: KindContainer}
		for i := 0; i+1 < len(y.Content); i += 2 {
			n.Children = append(n.Children, yamlWalk(y.Content[i+1], y.Content[i].Value, path))
		}
		return n
	case yaml.SequenceNode:
		path[y] = true
		defer delete(path, y)
		n := Node{Key: key, Value: "[]", Kind: KindContainer}
		for i, c := range y.Content {
			n.Children = append(n.Children, yamlWalk(c, "["+strconv.Itoa(i)+"]", path))
		}
		return n
	case yaml.DocumentNode:
		if len(y.Content) > 0 {
			return yamlWalk(y.Content[0], key, path)
		}
		return Node{Key: key, Value: "null", Kind: KindNull}
	}

	n := Node{Key: key, Value: y.Value, Kind: KindString}
	switch y.ShortTag() {
	case "!!int", "!!float":
		n.Kind = KindNumber
	case "!!bool":
		n.Kind = KindBool
	case "!!null":
		n.Kind = KindNull
		n.Value = "null"
	}
	return n
}

// FromXML parses an XML document. Attributes become "@name" children and
// element text becomes the element's value.
func FromXML(title string, data []byte) (*StructuredData, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrPayloadParse, "invalid xml")
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrPayloadParse, "invalid xml: no root element")
	}
	return &StructuredData{Title: title, Nodes: []Node{xmlNode(root)}}, nil
}

func xmlNode(el *etree.Element) Node {
	n := Node{Key: el.FullTag(), Kind: KindString}
	for _, a := range el.Attr {
		n.Children = append(n.Children, Node{Key: "@" + a.FullKey(), Value: a.Value, Kind: KindString})
	}
	for _, c := range el.ChildElements() {
		n.Children = append(n.Children, xmlNode(c))
	}
	text := strings.TrimSpace(el.Text())
	if len(n.Children) == 0 {
		n.Value = text
		return n
	}
	if text != "" {
		n.Children = append(n.Children, Node{Key: "#text", Value: text, Kind: KindString})
	}
	n.Kind = KindContainer
	return n
}

// FromBacktrace turns a goroutine dump, such as the output of
// runtime/debug.Stack, into one node per frame: the function as key and
// its file position as value. Lines it does not recognise are kept as
// bare values.
func FromBacktrace(title, trace string) *StructuredData {
	d := &StructuredData{Title: title}
	lines := strings.Split(Sanitize(trace), "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "goroutine ") && strings.HasSuffix(line, ":") {
			if d.Title == "" {
				d.Title = strings.TrimSuffix(line, ":")
			}
			continue
		}
		if i+1 < len(lines) && strings.HasPrefix(lines[i+1], " ") {
			loc := strings.TrimSpace(lines[i+1])
			if j := strings.LastIndex(loc, " +0x"); j > 0 {
				loc = loc[:j]
			}
			d.Nodes = append(d.Nodes, Node{Key: line, Value: loc, Kind: KindString})
			i++
			continue
		}
		d.Nodes = append(d.Nodes, Node{Value: line, Kind: KindString})
	}
	return d
}

// rootNodes unwraps a top-level container so its members print at the top
// level. A scalar document becomes a single unkeyed node.
func rootNodes(root Node) []Node {
	if root.Kind == KindContainer {
		if len(root.Children) == 0 {
			return []Node{{Value: root.Value, Kind: KindContainer}}
		}
		return root.Children
	}
	return []Node{root}
}
