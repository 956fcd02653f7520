package charts

import (
	"bytes"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
)

// RenderPNG renders a built surface to PNG bytes.
func RenderPNG(graph chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "rendering chart")
	}
	return buf.Bytes(), nil
}
