package store

import (
	"github.com/pkg/errors"
)

// Snapshot is a dataset as produced by a Driver: the raw parcel and edge
// arrays, before indexing. Snapshots are consumed once by New and not
// retained.
type Snapshot struct {
	Parcels []*Parcel `json:"parcels"`
	Edges   []Edge    `json:"edges"`
}

// Neighbor is one entry of a parcel's adjacency list.
type Neighbor struct {
	Index int
	Type  EdgeType
}

// Store holds the immutable parcel graph: the parcel list, the edge list,
// the id lookup maps, and the adjacency index. All derived indexes are
// built once in New; the store is read-only afterwards and safe to share
// across concurrent readers without locking.
type Store struct {
	parcels []*Parcel
	edges   []Edge

	byID      map[string]*Parcel
	indexByID map[string]int
	adjacency [][]Neighbor
}

// New validates the snapshot and builds the indexed store. A duplicate
// parcel id or an edge referencing an out-of-range parcel index is a
// loader precondition violation and fails construction; this is the only
// fatal path in the system.
func New(snapshot *Snapshot) (*Store, error) {
	if snapshot == nil {
		return nil, errors.New("nil snapshot")
	}

	s := &Store{
		parcels:   snapshot.Parcels,
		edges:     snapshot.Edges,
		byID:      make(map[string]*Parcel, len(snapshot.Parcels)),
		indexByID: make(map[string]int, len(snapshot.Parcels)),
		adjacency: make([][]Neighbor, len(snapshot.Parcels)),
	}

	for i, p := range s.parcels {
		if p == nil {
			return nil, errors.Errorf("parcel at index %d is nil", i)
		}
		if p.ID == "" {
			return nil, errors.Errorf("parcel at index %d has an empty id", i)
		}
		if _, ok := s.byID[p.ID]; ok {
			return nil, errors.Errorf("duplicate parcel id %q", p.ID)
		}
		s.byID[p.ID] = p
		s.indexByID[p.ID] = i
	}

	for i, e := range s.edges {
		if e.Source < 0 || e.Source >= len(s.parcels) {
			return nil, errors.Errorf("edge %d references unknown source index %d", i, e.Source)
		}
		if e.Target < 0 || e.Target >= len(s.parcels) {
			return nil, errors.Errorf("edge %d references unknown target index %d", i, e.Target)
		}
		s.adjacency[e.Source] = append(s.adjacency[e.Source], Neighbor{Index: e.Target, Type: e.Type})
		s.adjacency[e.Target] = append(s.adjacency[e.Target], Neighbor{Index: e.Source, Type: e.Type})
	}

	return s, nil
}

// ParcelCount returns the number of parcels in the store.
func (s *Store) ParcelCount() int {
	return len(s.parcels)
}

// EdgeCount returns the number of stored edges. Each undirected edge is
// counted once, not once per direction.
func (s *Store) EdgeCount() int {
	return len(s.edges)
}

// Parcels returns the parcel list in dataset order. Callers must treat the
// returned slice and its parcels as read-only.
func (s *Store) Parcels() []*Parcel {
	return s.parcels
}

// Edges returns the edge list. Callers must treat it as read-only.
func (s *Store) Edges() []Edge {
	return s.edges
}

// ParcelByIndex returns the parcel at position i in the dataset order.
func (s *Store) ParcelByIndex(i int) (*Parcel, bool) {
	if i < 0 || i >= len(s.parcels) {
		return nil, false
	}
	return s.parcels[i], true
}

// ParcelByID resolves a parcel by its stable id.
func (s *Store) ParcelByID(id string) (*Parcel, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// IndexOf resolves a parcel id to its position in the parcel list.
func (s *Store) IndexOf(id string) (int, bool) {
	i, ok := s.indexByID[id]
	return i, ok
}

// Neighbors returns the adjacency list of the parcel at index i: one
// (neighbor index, edge type) pair per incident edge, covering both
// directions of every stored edge. The returned slice is read-only.
func (s *Store) Neighbors(i int) []Neighbor {
	if i < 0 || i >= len(s.adjacency) {
		return nil
	}
	return s.adjacency[i]
}
