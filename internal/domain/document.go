package domain

// Document is the ordered content handed to the layout engine. It is built
// once per request, never mutated after handoff, and discarded after byte
// serialization.
type Document struct {
	Title  string
	Author string
	Blocks []Block
}

// Block is one content element of a report document. The concrete types
// below form a closed set; the layout engine type-switches over them.
type Block interface {
	block()
}

// TitleBlock is the large centered report title.
type TitleBlock struct {
	Text string
}

// HeadingBlock starts a report section.
type HeadingBlock struct {
	Text string
}

// SubheadingBlock starts a sub-section, used for individual charts.
type SubheadingBlock struct {
	Text string
}

// ParagraphBlock is body text. Placeholder paragraphs produced by section
// failure isolation are also ParagraphBlocks.
type ParagraphBlock struct {
	Text string
}

// TableBlock is a fixed key/value style table with a styled header row.
type TableBlock struct {
	Header []string
	Rows   [][]string
}

// ImageBlock embeds a raster image. Source names the chart or map kind that
// produced it, so degraded outputs remain identifiable downstream.
type ImageBlock struct {
	Name    string
	Source  string
	Caption string
	PNG     []byte
	// Pixel dimensions of the raster, used to preserve aspect ratio.
	Width  int
	Height int
}

// SpacerBlock inserts vertical whitespace, in points.
type SpacerBlock struct {
	Height float64
}

// PageBreakBlock forces a new page.
type PageBreakBlock struct{}

func (TitleBlock) block()      {}
func (HeadingBlock) block()    {}
func (SubheadingBlock) block() {}
func (ParagraphBlock) block()  {}
func (TableBlock) block()      {}
func (ImageBlock) block()      {}
func (SpacerBlock) block()     {}
func (PageBreakBlock) block()  {}
