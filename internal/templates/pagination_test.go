package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/kbits/internal/pagination"
)

func TestPageURL(t *testing.T) {
	var opts PaginationOptions
	assert.Equal(t, "index.html", opts.PageURL(1))
	assert.Equal(t, "index2.html", opts.PageURL(2))

	opts = PaginationOptions{SiteURL: "https://example.com/kbits/", Name: "category/go"}
	assert.Equal(t, "https://example.com/kbits/category/go.html", opts.PageURL(1))
	assert.Equal(t, "https://example.com/kbits/category/go7.html", opts.PageURL(7))
}

func TestRenderPagination_SmallListing(t *testing.T) {
	page := pagination.NewPaginator(30, 10).Page(2)

	got, err := RenderPagination(page, PaginationOptions{})
	require.NoError(t, err)

	want := `<nav class="pagination" aria-label="Pagination">
<ul>
<li><a href="index.html" rel="prev">«</a></li>
<li><a href="index.html">1</a></li>
<li><a href="index2.html" aria-current="page">2</a></li>
<li><a href="index3.html">3</a></li>
<li><a href="index3.html" rel="next">»</a></li>
</ul>
</nav>
`
	assert.Equal(t, want, string(got))
}

func TestRenderPagination_Gaps(t *testing.T) {
	page := pagination.NewPaginator(420, 10).Page(6)

	got, err := RenderPagination(page, PaginationOptions{SiteURL: "https://example.com"})
	require.NoError(t, err)
	html := string(got)

	assert.Equal(t, 2, strings.Count(html, `<span class="gap">…</span>`))
	assert.Contains(t, html, `<a href="https://example.com/index6.html" aria-current="page">6</a>`)
	assert.Contains(t, html, `<a href="https://example.com/index42.html">42</a>`)
	assert.NotContains(t, html, `>3</a>`)
	assert.NotContains(t, html, `>11</a>`)
}

func TestRenderPagination_EdgePages(t *testing.T) {
	first, err := RenderPagination(pagination.NewPaginator(20, 10).Page(1), PaginationOptions{})
	require.NoError(t, err)
	assert.NotContains(t, string(first), "«")
	assert.Contains(t, string(first), "»")

	last, err := RenderPagination(pagination.NewPaginator(20, 10).Page(2), PaginationOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(last), "«")
	assert.NotContains(t, string(last), "»")
}

func TestRenderPagination_SinglePage(t *testing.T) {
	got, err := RenderPagination(pagination.NewPaginator(5, 10).Page(1), PaginationOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderPagination_ZeroWindow(t *testing.T) {
	page := pagination.Page{Number: 5, NumPages: 9}
	got, err := RenderPagination(page, PaginationOptions{Thresholds: &pagination.Thresholds{}})
	require.NoError(t, err)

	want := `<nav class="pagination" aria-label="Pagination">
<ul>
<li><a href="index4.html" rel="prev">«</a></li>
<li><a href="index6.html" rel="next">»</a></li>
</ul>
</nav>
`
	assert.Equal(t, want, string(got))
	assert.Empty(t, page.Window(pagination.Thresholds{}))

	defaults, err := RenderPagination(page, PaginationOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(defaults), `<a href="index9.html">9</a>`)
}

func TestRenderPagination_EscapesLabel(t *testing.T) {
	got, err := RenderPagination(pagination.NewPaginator(20, 10).Page(1), PaginationOptions{Label: `a"b<c`})
	require.NoError(t, err)
	assert.Contains(t, string(got), `aria-label="a&#34;b&lt;c"`)
}

func TestFuncMap_Names(t *testing.T) {
	fm := FuncMap(pagination.DefaultThresholds())
	for _, name := range []string{"iter_pages", "iterPages", "isGap", "formatPages"} {
		assert.Contains(t, fm, name)
	}
	iter, ok := fm["iter_pages"].(func(int, int, ...int) []pagination.Item)
	require.True(t, ok)
	assert.Equal(t, []pagination.Item{{Page: 1}}, iter(1, 1))
}
