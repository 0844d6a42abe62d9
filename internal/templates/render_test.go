package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/kbits/internal/pagination"
)

func TestRenderTemplateBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		th   pagination.Thresholds
		want string
	}{
		{
			name: "default window",
			body: "{{ formatPages (iter_pages 6 42) 6 }}",
			th:   pagination.DefaultThresholds(),
			want: "1 2 … 4 5 [6] 7 8 9 10 … 41 42",
		},
		{
			name: "configured window",
			body: "{{ formatPages (iterPages 6 42) 6 }}",
			th:   pagination.Thresholds{LeftEdge: 1, LeftCurrent: 1, RightCurrent: 2, RightEdge: 1},
			want: "1 … 5 [6] 7 … 42",
		},
		{
			name: "positional overrides",
			body: "{{ formatPages (iter_pages 1 10 5 0 0 5) 1 }}",
			th:   pagination.DefaultThresholds(),
			want: "[1] 2 3 4 5 6 7 8 9 10",
		},
		{
			name: "leading gap",
			body: "{{ formatPages (iter_pages 6 42 0) 6 }}",
			th:   pagination.DefaultThresholds(),
			want: "… 4 5 [6] 7 8 9 10 … 41 42",
		},
		{
			name: "range with isGap",
			body: "{{ range iter_pages .Current .Total }}{{ if isGap . }}_{{ else }}{{ .Page }}{{ end }},{{ end }}",
			th:   pagination.DefaultThresholds(),
			want: "1,2,_,48,49,50,",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderTemplateBody(tt.body, map[string]any{"Current": 50, "Total": 50}, tt.th)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTemplateBody_Errors(t *testing.T) {
	_, err := RenderTemplateBody("{{ iter_pages", nil, pagination.DefaultThresholds())
	require.ErrorContains(t, err, "parse template body")

	_, err = RenderTemplateBody("{{ .Missing }}", map[string]any{}, pagination.DefaultThresholds())
	require.ErrorContains(t, err, "render template body")
}

func TestRenderTemplateBody_Builtins(t *testing.T) {
	fixed := time.Date(2024, 3, 9, 10, 11, 12, 0, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })

	got, err := RenderTemplateBody("{{ .Date }} {{ .DateTime }}", nil, pagination.DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09 2024-03-09T10:11:12Z", got)

	got, err = RenderTemplateBody("{{ .Date }}", map[string]any{"Date": "yesterday"}, pagination.DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, "yesterday", got)
}
