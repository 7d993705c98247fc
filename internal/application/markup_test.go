package application

import (
	"testing"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHtmlizeEscapesText(t *testing.T) {
	got := Htmlize("a <b> & c", TextStyle)

	assert.Equal(t,
		`<html><div style="padding: 5px; max-width: 96ch; font-family: monospace; overflow-wrap: break-word; white-space: break-spaces">a &lt;b&gt; &amp; c</div></html>`,
		got)
}

func TestSvglizeBuildsItems(t *testing.T) {
	v := domain.List(
		domain.Number(100), domain.Number(50),
		domain.List(domain.Text("p"), domain.Text("fill: red"), domain.Text("M0 0 L10 10")),
		domain.List(domain.Text("t"), domain.Text(""), domain.Number(1), domain.Number(2), domain.Number(3.5)),
		domain.List(domain.Text("i"), domain.Text(""), domain.Number(0), domain.Number(0), domain.Number(8), domain.Number(8), domain.Text("a.png")),
		domain.List(domain.Text("circle")),
	)

	got := Svglize(v, nil)

	assert.Equal(t,
		`<html><svg xmlns="http://www.w3.org/2000/svg" width="100" height="50">`+
			`<path style="fill: red" d="M0 0 L10 10"></path>`+
			`<text style="" x="1" y="2">3.5</text>`+
			`<image style="" x="0" y="0" width="8" height="8" href="a.png"></image>`+
			`</svg></html>`,
		got)
}

func TestStyleFromValueRecordSortsProperties(t *testing.T) {
	style, ok := StyleFromValue(domain.Record(map[string]domain.Value{
		"color":   domain.Text("red"),
		"padding": domain.Text("1px"),
	}))

	assert.True(t, ok)
	assert.Equal(t, "color: red; padding: 1px", style.String())

	_, ok = StyleFromValue(domain.Text("nope"))
	assert.False(t, ok)
}

func TestStyleFromValuePairsKeepOrder(t *testing.T) {
	style, ok := StyleFromValue(domain.List(
		domain.List(domain.Text("padding"), domain.Text("5px")),
		domain.List(domain.Text("color"), domain.Text("red")),
		domain.List(domain.Text("padding"), domain.Text("0")),
	))

	assert.True(t, ok)
	assert.Equal(t, "padding: 5px; color: red; padding: 0", style.String())

	_, ok = StyleFromValue(domain.List(domain.Text("padding")))
	assert.False(t, ok)
	_, ok = StyleFromValue(domain.List())
	assert.False(t, ok)
}
