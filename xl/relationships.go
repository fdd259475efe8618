package xl

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
)

const relationshipsNS = "http://schemas.openxmlformats.org/package/2006/relationships"

// TargetMode distinguishes a relationship target that lives inside the
// package from one that points outside it (a URL, typically).
type TargetMode int

const (
	Internal TargetMode = iota
	External
)

// Relationship is one edge of a part's (or the package root's) typed,
// identified relationship graph.
type Relationship struct {
	ID     string
	Type   string
	Target string
	Mode   TargetMode
}

// Relationships is the parsed `_rels/<part>.rels` sibling of a single
// part. Ids are allocated as "rId" followed by the smallest unused
// positive integer.
type Relationships struct {
	byID  map[string]*Relationship
	order []string
	dirty bool
}

func newRelationships() *Relationships {
	return &Relationships{byID: map[string]*Relationship{}, dirty: true}
}

func parseRelationships(data []byte) (*Relationships, error) {
	doc, err := loadXMLDoc(data)
	if err != nil {
		return nil, err
	}
	rs := newRelationships()
	rs.dirty = false
	root := doc.Root()
	if root == nil {
		return rs, nil
	}
	for _, e := range root.SelectElements("Relationship") {
		id := e.SelectAttrValue("Id", "")
		if id == "" {
			continue
		}
		mode := Internal
		if strings.EqualFold(e.SelectAttrValue("TargetMode", ""), "External") {
			mode = External
		}
		rs.byID[id] = &Relationship{
			ID:     id,
			Type:   e.SelectAttrValue("Type", ""),
			Target: e.SelectAttrValue("Target", ""),
			Mode:   mode,
		}
		rs.order = append(rs.order, id)
	}
	return rs, nil
}

// RelationshipsPath returns the conventional `_rels/<basename>.rels`
// sibling path for a given part path.
func RelationshipsPath(partPath string) string {
	dir := path.Dir(partPath)
	base := path.Base(partPath)
	if dir == "." || dir == "/" {
		return "_rels/" + base + ".rels"
	}
	return strings.TrimPrefix(dir, "/") + "/_rels/" + base + ".rels"
}

// Add registers a new relationship, allocating the smallest unused rId.
func (rs *Relationships) Add(typ, target string, mode TargetMode) string {
	id := rs.nextID()
	rs.byID[id] = &Relationship{ID: id, Type: typ, Target: target, Mode: mode}
	rs.order = append(rs.order, id)
	rs.dirty = true
	return id
}

// AddWithID registers a relationship under a caller-supplied id, used when
// cloning a part graph and needing deterministic ids. Errors if the id is
// already in use.
func (rs *Relationships) AddWithID(id, typ, target string, mode TargetMode) error {
	if _, exists := rs.byID[id]; exists {
		return newErr(KindInvalidArgument, "relationship id %q already in use", id)
	}
	rs.byID[id] = &Relationship{ID: id, Type: typ, Target: target, Mode: mode}
	rs.order = append(rs.order, id)
	rs.dirty = true
	return nil
}

func (rs *Relationships) nextID() string {
	used := make(map[int]bool, len(rs.byID))
	for id := range rs.byID {
		if n, ok := parseRID(id); ok {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return fmt.Sprintf("rId%d", n)
}

func parseRID(id string) (int, bool) {
	if !strings.HasPrefix(id, "rId") {
		return 0, false
	}
	n, err := strconv.Atoi(id[3:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Get returns the relationship with the given id, or nil if absent.
func (rs *Relationships) Get(id string) *Relationship {
	return rs.byID[id]
}

// Remove deletes a relationship by id, reporting whether it existed.
func (rs *Relationships) Remove(id string) bool {
	if _, ok := rs.byID[id]; !ok {
		return false
	}
	delete(rs.byID, id)
	for i, v := range rs.order {
		if v == id {
			rs.order = append(rs.order[:i], rs.order[i+1:]...)
			break
		}
	}
	rs.dirty = true
	return true
}

// ByType returns every relationship of the given type, in id order.
func (rs *Relationships) ByType(typ string) []*Relationship {
	var out []*Relationship
	for _, id := range rs.sortedIDs() {
		if r := rs.byID[id]; r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of relationships.
func (rs *Relationships) Len() int { return len(rs.byID) }

func (rs *Relationships) sortedIDs() []string {
	ids := make([]string, 0, len(rs.byID))
	for id := range rs.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, oki := parseRID(ids[i])
		nj, okj := parseRID(ids[j])
		if oki && okj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (rs *Relationships) toXML() *xmlDoc {
	d := newXMLDoc("Relationships", relationshipsNS)
	root := d.Root()
	for _, id := range rs.sortedIDs() {
		r := rs.byID[id]
		e := root.CreateElement("Relationship")
		e.CreateAttr("Id", r.ID)
		e.CreateAttr("Type", r.Type)
		e.CreateAttr("Target", r.Target)
		if r.Mode == External {
			e.CreateAttr("TargetMode", "External")
		}
	}
	return d
}
