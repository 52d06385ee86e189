package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/shibukawa/jian"
	"github.com/shibukawa/jian/compiler"
)

// Format is an output format of Write.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
)

// ParseFormat validates a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatXML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s", jian.ErrUnknownFormat, s)
	}
}

// Write renders unit to w in format.
func Write(w io.Writer, format Format, unit *compiler.Unit) error {
	program := Build(unit)

	switch format {
	case FormatText, "":
		return writeText(w, program)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(program)
	case FormatYAML:
		return writeYAML(w, program)
	case FormatXML:
		return writeXML(w, program)
	default:
		return fmt.Errorf("%w: %s", jian.ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, program *Program) error {
	title := cases.Title(language.English)

	var b strings.Builder

	for _, def := range program.Definitions {
		fmt.Fprintf(&b, "%s %s #%d\n", title.String(def.Kind), def.Name, def.ID)

		if len(def.Params) > 0 {
			fmt.Fprintf(&b, "  params: %s\n", paramList(def.Params))
		}

		writeNode(&b, def.Body, 1)
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind)

	switch {
	case n.Kind == "resolved":
		fmt.Fprintf(b, " %s -> #%d", n.Text, n.Target)
	case n.Text != "":
		b.WriteString(" " + n.Text)
	}

	if len(n.Params) > 0 {
		fmt.Fprintf(b, " [%s]", paramList(n.Params))
	}

	b.WriteString("\n")

	for _, child := range n.Children {
		writeNode(b, child, depth+1)
	}
}

func paramList(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("%s #%d", p.Name, p.ID))
	}

	return strings.Join(parts, ", ")
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func intScalar(value int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(value)}
}

func mapping(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: pairs}
}

func yamlParams(params []Param) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, p := range params {
		seq.Content = append(seq.Content, mapping(scalar("id"), intScalar(p.ID), scalar("name"), scalar(p.Name)))
	}

	return seq
}

func yamlNode(n *Node) *yaml.Node {
	m := mapping(scalar("kind"), scalar(n.Kind))

	if n.Text != "" {
		m.Content = append(m.Content, scalar("text"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: n.Text})
	}

	if n.Kind == "resolved" {
		m.Content = append(m.Content, scalar("target"), intScalar(n.Target))
	}

	if len(n.Params) > 0 {
		m.Content = append(m.Content, scalar("params"), yamlParams(n.Params))
	}

	if len(n.Children) > 0 {
		children := &yaml.Node{Kind: yaml.SequenceNode}
		for _, child := range n.Children {
			children.Content = append(children.Content, yamlNode(child))
		}

		m.Content = append(m.Content, scalar("children"), children)
	}

	return m
}

// writeYAML keeps key order stable by building the node tree directly.
func writeYAML(w io.Writer, program *Program) error {
	defs := &yaml.Node{Kind: yaml.SequenceNode}

	for _, def := range program.Definitions {
		m := mapping(
			scalar("id"), intScalar(def.ID),
			scalar("name"), scalar(def.Name),
			scalar("kind"), scalar(def.Kind),
		)
		if len(def.Params) > 0 {
			m.Content = append(m.Content, scalar("params"), yamlParams(def.Params))
		}

		m.Content = append(m.Content, scalar("body"), yamlNode(def.Body))
		defs.Content = append(defs.Content, m)
	}

	doc := &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{
			mapping(scalar("source"), scalar(program.Source), scalar("definitions"), defs),
		},
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}

	return encoder.Close()
}

func xmlParams(parent *etree.Element, params []Param) {
	for _, p := range params {
		param := parent.CreateElement("param")
		param.CreateAttr("id", strconv.Itoa(p.ID))
		param.CreateAttr("name", p.Name)
	}
}

func xmlNode(parent *etree.Element, n *Node) {
	elem := parent.CreateElement(n.Kind)

	if n.Text != "" {
		elem.CreateAttr("text", n.Text)
	}

	if n.Kind == "resolved" {
		elem.CreateAttr("target", strconv.Itoa(n.Target))
	}

	xmlParams(elem, n.Params)

	for _, child := range n.Children {
		xmlNode(elem, child)
	}
}

func writeXML(w io.Writer, program *Program) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("program")
	root.CreateAttr("source", program.Source)

	for _, def := range program.Definitions {
		elem := root.CreateElement("definition")
		elem.CreateAttr("id", strconv.Itoa(def.ID))
		elem.CreateAttr("name", def.Name)
		elem.CreateAttr("kind", def.Kind)

		xmlParams(elem, def.Params)

		body := elem.CreateElement("body")
		xmlNode(body, def.Body)
	}

	doc.Indent(2)

	_, err := doc.WriteTo(w)

	return err
}
