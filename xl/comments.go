package xl

const commentsNS = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
const commentsContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.comments+xml"
const commentsRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/comments"
const vmlDrawingRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/vmlDrawing"

// comment is a single cell-anchored note.
type comment struct {
	ref      string
	authorID int
	text     string
}

// commentsPart is a sheet's `xl/comments<N>.xml` companion: an author
// table plus the comment list, keyed by cell reference so SetComment is
// idempotent (re-setting a ref replaces its text in place).
type commentsPart struct {
	partIndex int
	authors   []string
	authorIdx map[string]int
	byRef     map[string]*comment
	order     []string // ref insertion order, for stable emission
}

func newCommentsPart(idx int) *commentsPart {
	return &commentsPart{partIndex: idx, authorIdx: map[string]int{}, byRef: map[string]*comment{}}
}

func (cp *commentsPart) partPath() string {
	return "/xl/comments" + itoa(cp.partIndex) + ".xml"
}

func (cp *commentsPart) authorID(name string) int {
	if i, ok := cp.authorIdx[name]; ok {
		return i
	}
	i := len(cp.authors)
	cp.authors = append(cp.authors, name)
	cp.authorIdx[name] = i
	return i
}

// SetComment attaches (or replaces) a comment on sh at ref, authored by
// author. First call on a sheet lazily creates its comments part and
// paired VML legacy-drawing part, plus the relationships linking the
// worksheet to both.
func (d *Document) SetComment(sh *Sheet, ref, author, text string) error {
	if _, _, err := ParseCellRef(ref); err != nil {
		return err
	}
	partPath := d.sheetPartPath(sh)

	cp := d.comments[partPath]
	if cp == nil {
		cp = newCommentsPart(len(d.comments) + 1)
		d.comments[partPath] = cp
		rels := d.sheetRelationships(sh)
		rels.Add(commentsRelType, relativeTarget(partPath, cp.partPath()), Internal)
	}
	vp := d.vml[partPath]
	if vp == nil {
		vp = newVMLPart(len(d.vml) + 1)
		d.vml[partPath] = vp
		rels := d.sheetRelationships(sh)
		rels.Add(vmlDrawingRelType, relativeTarget(partPath, vp.partPath()), Internal)
	}

	aid := cp.authorID(author)
	if _, exists := cp.byRef[ref]; !exists {
		cp.order = append(cp.order, ref)
		vp.shapes = append(vp.shapes, ref)
	}
	cp.byRef[ref] = &comment{ref: ref, authorID: aid, text: text}
	return nil
}

// DeleteComment removes the comment at ref from sh, if any. The comments
// and VML parts themselves are retained (even if now empty) so repeated
// add/delete cycles stay idempotent and never re-trigger part creation
// side effects.
func (d *Document) DeleteComment(sh *Sheet, ref string) bool {
	partPath := d.sheetPartPath(sh)
	cp := d.comments[partPath]
	if cp == nil {
		return false
	}
	if _, ok := cp.byRef[ref]; !ok {
		return false
	}
	delete(cp.byRef, ref)
	for i, r := range cp.order {
		if r == ref {
			cp.order = append(cp.order[:i], cp.order[i+1:]...)
			break
		}
	}
	if vp := d.vml[partPath]; vp != nil {
		for i, r := range vp.shapes {
			if r == ref {
				vp.shapes = append(vp.shapes[:i], vp.shapes[i+1:]...)
				break
			}
		}
	}
	return true
}

func (cp *commentsPart) toXML() *xmlDoc {
	d := newXMLDoc("comments", commentsNS)
	root := d.Root()
	authorsEl := root.CreateElement("authors")
	for _, a := range cp.authors {
		authorsEl.CreateElement("author").SetText(a)
	}
	listEl := root.CreateElement("commentList")
	for _, ref := range cp.order {
		c := cp.byRef[ref]
		e := listEl.CreateElement("comment")
		e.CreateAttr("ref", c.ref)
		e.CreateAttr("authorId", itoa(c.authorID))
		text := e.CreateElement("text")
		r := text.CreateElement("r")
		t := r.CreateElement("t")
		t.SetText(c.text)
	}
	return d
}

func (d *Document) flushComments() error {
	var firstErr error
	enumerate(d.comments, func(_ string, cp *commentsPart) {
		if firstErr != nil {
			return
		}
		b, err := cp.toXML().Bytes()
		if err != nil {
			firstErr = err
			return
		}
		d.pkg.Put(cp.partPath(), b)
		d.contentTypes.AddOverride(cp.partPath(), commentsContentType)
	})
	if firstErr != nil {
		return firstErr
	}
	enumerate(d.vml, func(_ string, vp *vmlPart) {
		if firstErr != nil {
			return
		}
		b, err := vp.toXML()
		if err != nil {
			firstErr = err
			return
		}
		d.pkg.Put(vp.partPath(), b)
		if !d.contentTypes.HasDefault("vml") {
			d.contentTypes.AddDefault("vml", "application/vnd.openxmlformats-officedocument.vmlDrawing")
		}
	})
	return firstErr
}
