// Package xml inspects the XHTML produced by the html output format:
// well-formedness checks, XPath queries, pretty-printing and heading
// outlines.
//
// Entity expansion is disabled when validating; xmlquery parses through
// encoding/xml and does not fetch external entities.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/Compendium/core/encoding"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element.
type Node struct {
	node *xmlquery.Node
}

// ValidationResult contains the result of a well-formedness check.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Offset  int64
	Message string
}

// FormatOptions controls pretty-printing.
type FormatOptions struct {
	Indent string // defaults to two spaces
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseFragment parses a run of sibling elements and text, such as a
// rendered entry, by wrapping it in a single div.
func ParseFragment(fragment string) (*Document, error) {
	return Parse([]byte("<div>" + fragment + "</div>"))
}

// Validate checks that data is well formed.
func Validate(data []byte) ValidationResult {
	result := ValidationResult{Valid: true}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Entity = map[string]string{}

	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Offset:  decoder.InputOffset(),
				Message: err.Error(),
			})
			break
		}
	}
	return result
}

// ValidateFragment is Validate for a fragment, see ParseFragment.
func ValidateFragment(fragment string) ValidationResult {
	return Validate([]byte("<div>" + fragment + "</div>"))
}

// Format pretty-prints XML data.
func Format(data []byte, opts FormatOptions) ([]byte, error) {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	formatNode(&buf, doc.root, 0, opts.Indent)
	return buf.Bytes(), nil
}

func formatNode(w *bytes.Buffer, n *xmlquery.Node, depth int, indent string) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			formatNode(w, child, depth, indent)
		}

	case xmlquery.DeclarationNode:
		w.WriteString("<?xml")
		for _, attr := range n.Attr {
			fmt.Fprintf(w, " %s=\"%s\"", attr.Name.Local, encoding.EscapeXML(attr.Value))
		}
		w.WriteString("?>\n")

	case xmlquery.ElementNode:
		writeIndent(w, depth, indent)
		w.WriteString("<" + qualified(n))
		for _, attr := range n.Attr {
			name := attr.Name.Local
			if attr.Name.Space != "" {
				name = attr.Name.Space + ":" + name
			}
			fmt.Fprintf(w, " %s=\"%s\"", name, encoding.EscapeXML(attr.Value))
		}

		if n.FirstChild == nil {
			w.WriteString("/>\n")
			return
		}
		if !hasElementChild(n) {
			w.WriteString(">")
			w.WriteString(encoding.EscapeXML(n.InnerText()))
			w.WriteString("</" + qualified(n) + ">\n")
			return
		}

		w.WriteString(">\n")
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			switch child.Type {
			case xmlquery.ElementNode, xmlquery.CommentNode:
				formatNode(w, child, depth+1, indent)
			case xmlquery.TextNode, xmlquery.CharDataNode:
				if text := strings.TrimSpace(child.Data); text != "" {
					writeIndent(w, depth+1, indent)
					w.WriteString(encoding.EscapeXML(text))
					w.WriteString("\n")
				}
			}
		}
		writeIndent(w, depth, indent)
		w.WriteString("</" + qualified(n) + ">\n")

	case xmlquery.CommentNode:
		writeIndent(w, depth, indent)
		w.WriteString("<!--" + n.Data + "-->\n")
	}
}

func qualified(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

func hasElementChild(n *xmlquery.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode || child.Type == xmlquery.CommentNode {
			return true
		}
	}
	return false
}

func writeIndent(w *bytes.Buffer, depth int, indent string) {
	for i := 0; i < depth; i++ {
		w.WriteString(indent)
	}
}

// Root returns the root element of the document.
func (d *Document) Root() *Node {
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// XPath executes an XPath query and returns matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}
	nodes := xmlquery.QuerySelectorAll(d.root, compiled)
	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPathFirst returns the first node matching expr, or nil.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}
	n := xmlquery.QuerySelector(d.root, compiled)
	if n == nil {
		return nil, nil
	}
	return &Node{node: n}, nil
}

// Count evaluates a counting expression such as "count(//table)".
func (d *Document) Count(expr string) (int, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return 0, fmt.Errorf("invalid xpath: %w", err)
	}
	v, ok := compiled.Evaluate(xmlquery.CreateXPathNavigator(d.root)).(float64)
	if !ok {
		return 0, fmt.Errorf("xpath %q is not numeric", expr)
	}
	return int(v), nil
}

// Serialize converts the document back to XML bytes.
func (d *Document) Serialize() []byte {
	return []byte(d.root.OutputXML(true))
}

// Heading is one h1-h6 element of a rendered page.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id,omitempty"`
	Text  string `json:"text"`
}

// Headings lists the h1-h6 elements of the document in document order.
func (d *Document) Headings() []Heading {
	var out []Heading
	for _, n := range xmlquery.Find(d.root, "//*") {
		if len(n.Data) != 2 || n.Data[0] != 'h' || n.Data[1] < '1' || n.Data[1] > '6' {
			continue
		}
		out = append(out, Heading{
			Level: int(n.Data[1] - '0'),
			ID:    n.SelectAttr("id"),
			Text:  strings.TrimSpace(n.InnerText()),
		})
	}
	return out
}

// Name returns the element name.
func (n *Node) Name() string {
	return n.node.Data
}

// Text returns the text content of the node and its descendants.
func (n *Node) Text() string {
	return n.node.InnerText()
}

// InnerXML returns the inner XML of the node.
func (n *Node) InnerXML() string {
	var buf bytes.Buffer
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		buf.WriteString(child.OutputXML(true))
	}
	return buf.String()
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Attributes returns all attributes of the node.
func (n *Node) Attributes() map[string]string {
	attrs := make(map[string]string, len(n.node.Attr))
	for _, attr := range n.node.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

// Attr returns the value of a specific attribute.
func (n *Node) Attr(name string) string {
	return n.node.SelectAttr(name)
}
