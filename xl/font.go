package xl

// UnderlineType represents the type of underline formatting.
type UnderlineType string

// Underline type constants as defined in ECMA-376 (ST_UnderlineValues).
const (
	UnderlineNone             UnderlineType = ""                  // No underline (default)
	UnderlineSingle           UnderlineType = "single"             // Single underline
	UnderlineDouble           UnderlineType = "double"             // Double underline
	UnderlineSingleAccounting UnderlineType = "singleAccounting"   // Single accounting underline
	UnderlineDoubleAccounting UnderlineType = "doubleAccounting"   // Double accounting underline
)

// HorizontalAlignment represents the horizontal alignment of cell content.
type HorizontalAlignment string

// Horizontal alignment constants as defined in ECMA-376 (ST_HorizontalAlignment).
const (
	HAlignGeneral          HorizontalAlignment = "general"          // Default: numbers right-aligned, text left-aligned
	HAlignLeft             HorizontalAlignment = "left"             // Left aligned
	HAlignCenter           HorizontalAlignment = "center"           // Centered
	HAlignRight            HorizontalAlignment = "right"            // Right aligned
	HAlignFill             HorizontalAlignment = "fill"             // Fill/repeat content to fill column width
	HAlignJustify          HorizontalAlignment = "justify"          // Justified
	HAlignCenterContinuous HorizontalAlignment = "centerContinuous" // Center across selection
	HAlignDistributed      HorizontalAlignment = "distributed"      // Distributed alignment
)

// VerticalAlignment represents the vertical alignment of cell content.
type VerticalAlignment string

// Vertical alignment constants as defined in ECMA-376 (ST_VerticalAlignment).
const (
	VAlignTop         VerticalAlignment = "top"         // Top aligned
	VAlignCenter      VerticalAlignment = "center"      // Centered vertically
	VAlignBottom      VerticalAlignment = "bottom"      // Bottom aligned (default)
	VAlignJustify     VerticalAlignment = "justify"     // Justified
	VAlignDistributed VerticalAlignment = "distributed" // Distributed alignment
)

// Alignment represents the alignment properties applied by a cell format.
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
}

// Empty returns true if neither axis has a custom alignment set.
func (a Alignment) Empty() bool {
	return a.Horizontal == "" && a.Vertical == ""
}
