package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTMLStandaloneDocument(t *testing.T) {
	out := RenderHTML(sampleDocument(), ThemeDark)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<meta charset=\"utf-8\">")
	assert.Contains(t, out, "<style>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "http://")
	assert.NotContains(t, out, "https://")
}

func TestRenderHTMLThemes(t *testing.T) {
	doc := sampleDocument()

	dark := RenderHTML(doc, ThemeDark)
	light := RenderHTML(doc, ThemeLight)
	assert.Contains(t, dark, "#0f1117")
	assert.Contains(t, light, "#f6f7fb")

	// Bilinmeyen tema karanlığa düşer
	fallback := RenderHTML(doc, Theme("mavi"))
	assert.Contains(t, fallback, "#0f1117")
}

func TestRenderHTMLCompactNumbers(t *testing.T) {
	out := RenderHTML(sampleDocument(), ThemeDark)

	assert.Contains(t, out, "12.5K") // takipçi
	assert.Contains(t, out, "2.5M")  // gösterim
	assert.Contains(t, out, "+4.2%") // değişim rozeti
}

func TestRenderHTMLEscapesValues(t *testing.T) {
	doc := &Document{}
	doc.Brand.Name = `<img src=x onerror=alert(1)>`
	doc.Strategies = []string{`a < b & "c"`}
	doc.applyDefaults()

	out := RenderHTML(doc, ThemeLight)
	assert.NotContains(t, out, "<img src=x")
	assert.Contains(t, out, "&lt;img")
	assert.Contains(t, out, "a &lt; b &amp; &#34;c&#34;")
}

func TestRenderHTMLEmptyDocumentNeverFails(t *testing.T) {
	doc, err := Parse([]byte("{}"))
	require.NoError(t, err)

	out := RenderHTML(doc, ThemeDark)

	assert.Contains(t, out, "Performans Raporu")
	assert.Contains(t, out, "Henüz eklenmedi")
	assert.Contains(t, out, "Özet Metrikler")
	assert.Contains(t, out, "0,00 TRY")
}

func TestRenderHTMLTrendMissingValueDash(t *testing.T) {
	doc := &Document{}
	doc.GrowthTrends.Reach = []GrowthPoint{{Period: "Ocak", Value: 1000}}
	doc.GrowthTrends.Impressions = []GrowthPoint{{Period: "Şubat", Value: 2000}}
	doc.applyDefaults()

	out := RenderHTML(doc, ThemeDark)
	assert.Contains(t, out, "<tr><td>Ocak</td><td>1.0K</td><td>-</td></tr>")
	assert.Contains(t, out, "<tr><td>Şubat</td><td>-</td><td>2.0K</td></tr>")
}

func TestHTMLFileName(t *testing.T) {
	doc := &Document{Brand: Brand{Name: "Kahve Köşesi"}}
	assert.Equal(t, "Kahve-Köşesi-Rapor-2026-02-28.html", HTMLFileName(doc, "2026-02-28"))
}
