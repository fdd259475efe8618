package xl

// columnData is per-column state; the grid is sparse so most columns have
// no entry at all.
type columnData struct {
	width     float64
	hidden    bool
	formatIdx int
}

// Column is a handle to a single sheet column.
type Column struct {
	sheet *Sheet
	col   int
	gen   int
}

func (c Column) resolve() (*columnData, error) {
	if c.sheet == nil {
		return nil, newErr(KindInvalidState, "column handle is unattached")
	}
	if c.gen != c.sheet.generation {
		return nil, newErr(KindInvalidState, "column handle invalidated by a structural change")
	}
	if cd := c.sheet.columns[c.col]; cd != nil {
		return cd, nil
	}
	return &columnData{}, nil
}

func (c Column) ensure() (*columnData, error) {
	if c.sheet == nil || c.gen != c.sheet.generation {
		return nil, newErr(KindInvalidState, "column handle invalidated by a structural change")
	}
	cd := c.sheet.columns[c.col]
	if cd == nil {
		cd = &columnData{}
		c.sheet.columns[c.col] = cd
	}
	return cd, nil
}

// Number returns the 1-based column number.
func (c Column) Number() int { return c.col }

// Width returns the column's custom width, or 0 if unset.
func (c Column) Width() (float64, error) {
	cd, err := c.resolve()
	if err != nil {
		return 0, err
	}
	return cd.width, nil
}

// SetWidth sets a custom column width; <= 0 removes the custom width.
func (c Column) SetWidth(w float64) error {
	if w <= 0 {
		if c.sheet == nil || c.gen != c.sheet.generation {
			return newErr(KindInvalidState, "column handle invalidated by a structural change")
		}
		if cd := c.sheet.columns[c.col]; cd != nil {
			cd.width = 0
		}
		return nil
	}
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.width = w
	return nil
}

// Hidden reports whether the column is hidden.
func (c Column) Hidden() (bool, error) {
	cd, err := c.resolve()
	if err != nil {
		return false, err
	}
	return cd.hidden, nil
}

// SetHidden sets the column's hidden flag.
func (c Column) SetHidden(v bool) error {
	cd, err := c.ensure()
	if err != nil {
		return err
	}
	cd.hidden = v
	return nil
}
