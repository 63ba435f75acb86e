package layout_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-report-service/internal/domain"
	"github.com/couchcryptid/storm-report-service/internal/layout"
)

// pageCount counts page objects in an uncompressed PDF.
func pageCount(data []byte) int {
	return bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 220, B: 240, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEngine_Render(t *testing.T) {
	t.Run("produces a PDF", func(t *testing.T) {
		engine := layout.NewEngine()
		data, err := engine.Render(domain.Document{
			Title:  "Storm Report",
			Blocks: []domain.Block{domain.TitleBlock{Text: "Storm Report"}},
		})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("page breaks add pages", func(t *testing.T) {
		engine := layout.NewEngine(layout.WithCompression(false))
		data, err := engine.Render(domain.Document{
			Title: "Paged",
			Blocks: []domain.Block{
				domain.TitleBlock{Text: "First"},
				domain.PageBreakBlock{},
				domain.HeadingBlock{Text: "Second"},
				domain.PageBreakBlock{},
				domain.ParagraphBlock{Text: "Third"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, pageCount(data))
	})

	t.Run("text blocks appear in uncompressed output", func(t *testing.T) {
		engine := layout.NewEngine(layout.WithCompression(false))
		data, err := engine.Render(domain.Document{
			Title: "Text",
			Blocks: []domain.Block{
				domain.HeadingBlock{Text: "Weather Summary"},
				domain.ParagraphBlock{Text: "15 recorded weather events"},
				domain.TableBlock{
					Header: []string{"Metric", "Value"},
					Rows:   [][]string{{"Hail Events", "3"}},
				},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, string(data), "Weather Summary")
		assert.Contains(t, string(data), "15 recorded weather events")
		assert.Contains(t, string(data), "Hail Events")
	})

	t.Run("image blocks embed", func(t *testing.T) {
		engine := layout.NewEngine()
		data, err := engine.Render(domain.Document{
			Title: "Charts",
			Blocks: []domain.Block{
				domain.SubheadingBlock{Text: "Event Timeline"},
				domain.ImageBlock{
					Name: "time_series", Source: "time_series",
					PNG: testPNG(t, 150, 90), Width: 150, Height: 90,
					Caption: "Monthly counts",
				},
				domain.ImageBlock{
					Name: "time_series", Source: "time_series",
					PNG: testPNG(t, 150, 90), Width: 150, Height: 90,
				},
			},
		})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("image without data fails", func(t *testing.T) {
		engine := layout.NewEngine()
		_, err := engine.Render(domain.Document{
			Title:  "Broken",
			Blocks: []domain.Block{domain.ImageBlock{Name: "missing"}},
		})
		require.Error(t, err)
	})

	t.Run("spacer and empty table are harmless", func(t *testing.T) {
		engine := layout.NewEngine()
		data, err := engine.Render(domain.Document{
			Title: "Edge",
			Blocks: []domain.Block{
				domain.SpacerBlock{Height: 40},
				domain.TableBlock{},
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}
