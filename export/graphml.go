// Package export serializes a connection graph to GraphML, readable by
// standard graph tooling like networkx, Gephi or yEd.
package export

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"

	"github.com/siherrmann/wikigraph/helper"
	"github.com/siherrmann/wikigraph/model"
)

const graphmlNamespace = "http://graphml.graphdrawing.org/xmlns"

// Attribute key ids, networkx uses the same d0/d1 convention
const (
	keyType   = "d0"
	keyGender = "d1"
)

type xmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type xmlGraph struct {
	EdgeDefault string    `xml:"edgedefault,attr"`
	Nodes       []xmlNode `xml:"node"`
	Edges       []xmlEdge `xml:"edge"`
}

type xmlGraphML struct {
	XMLName xml.Name `xml:"graphml"`
	Xmlns   string   `xml:"xmlns,attr"`
	Keys    []xmlKey `xml:"key"`
	Graph   xmlGraph `xml:"graph"`
}

// EncodeGraphML writes the graph as GraphML to w
func EncodeGraphML(g *model.Graph, w io.Writer) error {
	doc := xmlGraphML{
		Xmlns: graphmlNamespace,
		Keys: []xmlKey{
			{ID: keyType, For: "node", AttrName: "type", AttrType: "string"},
			{ID: keyGender, For: "node", AttrName: "gender", AttrType: "string"},
		},
		Graph: xmlGraph{EdgeDefault: "directed"},
	}

	for _, node := range g.Nodes() {
		xn := xmlNode{
			ID:   node.Name,
			Data: []xmlData{{Key: keyType, Value: string(node.Type)}},
		}
		if node.Type == model.NodeTypePerson {
			xn.Data = append(xn.Data, xmlData{Key: keyGender, Value: string(node.Gender)})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, xn)
	}

	for _, edge := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, xmlEdge{Source: edge.Source, Target: edge.Target})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return helper.NewError("write xml header", err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return helper.NewError("encode graphml", err)
	}

	return nil
}

// WriteGraphML serializes the graph to a GraphML file at path. The file
// is written to a temporary name first and renamed into place, a failed
// export never leaves a truncated artifact behind.
func WriteGraphML(g *model.Graph, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return helper.NewError("create graph directory", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".graphml-*.tmp")
	if err != nil {
		return helper.NewError("create graph file", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeGraphML(g, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return helper.NewError("close graph file", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return helper.NewError("rename graph file", err)
	}

	return nil
}
