package timetable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
	"github.com/lintang-b-s/tdnavigator/pkg/util"
)

type Connection struct {
	From string
	To   string
}

type connectionKey struct {
	from, to string
}

// Topology is the static edge list. Edge i is the i-th data row of the topology file (header excluded),
// and every per-edge table (durations, usage percentages) is aligned to that 0-based index.
type Topology struct {
	connections     []Connection
	vertices        []string
	connectionIndex map[connectionKey][]da.Index
}

// NewTopology derives the vertex set from the connections in order of first appearance.
func NewTopology(connections []Connection) *Topology {
	seen := make(map[string]struct{})
	vertices := make([]string, 0)
	for _, c := range connections {
		for _, label := range []string{c.From, c.To} {
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			vertices = append(vertices, label)
		}
	}
	return NewTopologyWithVertices(vertices, connections)
}

// NewTopologyWithVertices keeps an explicit vertex set, including vertices no edge touches.
func NewTopologyWithVertices(vertices []string, connections []Connection) *Topology {
	t := &Topology{
		connections:     make([]Connection, len(connections)),
		vertices:        make([]string, len(vertices)),
		connectionIndex: make(map[connectionKey][]da.Index, len(connections)),
	}
	copy(t.connections, connections)
	copy(t.vertices, vertices)

	for i, c := range connections {
		key := connectionKey{c.From, c.To}
		t.connectionIndex[key] = append(t.connectionIndex[key], da.Index(i))
	}
	return t
}

func (t *Topology) NumberOfConnections() int {
	return len(t.connections)
}

func (t *Topology) GetConnections() []Connection {
	return t.connections
}

func (t *Topology) GetConnection(i da.Index) Connection {
	return t.connections[i]
}

func (t *Topology) GetVertices() []string {
	return t.vertices
}

// ConnectionIndex resolves parallel edges to the first one.
func (t *Topology) ConnectionIndex(from, to string) (da.Index, error) {
	indices, err := t.ConnectionIndices(from, to)
	if err != nil {
		return da.INVALID_VERTEX_ID, err
	}
	return indices[0], nil
}

// ConnectionIndices returns every edge from -> to in row order. The slice must not be modified.
func (t *Topology) ConnectionIndices(from, to string) ([]da.Index, error) {
	indices, ok := t.connectionIndex[connectionKey{from, to}]
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownConnection, from, to)
	}
	return indices, nil
}

// ReadTopology reads a CSV edge list. The header row names the columns; "from" and "to" are used
// when present, otherwise the first two columns.
func ReadTopology(filename string) (*Topology, error) {
	rc, err := util.OpenFile(filename)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ParseTopology(rc)
}

func ParseTopology(r io.Reader) (*Topology, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewTopology(nil), nil
		}
		return nil, err
	}
	fromCol, toCol := 0, 1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "from":
			fromCol = i
		case "to":
			toCol = i
		}
	}

	connections := make([]Connection, 0)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) <= fromCol || len(record) <= toCol {
			return nil, fmt.Errorf("%w: topology row %d has %d columns", ErrMalformedRow, row, len(record))
		}
		connections = append(connections, Connection{
			From: strings.TrimSpace(record[fromCol]),
			To:   strings.TrimSpace(record[toCol]),
		})
	}
	return NewTopology(connections), nil
}
