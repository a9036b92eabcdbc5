package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		vals Values
		want string
	}{
		{
			name: "every occurrence replaced",
			tpl:  "<h1>{{title}}</h1><title>{{title}}</title>",
			vals: Values{TokenTitle: "X"},
			want: "<h1>X</h1><title>X</title>",
		},
		{
			name: "unknown tokens kept",
			tpl:  `<a href="{{url}}">{{title}}</a> {{description}}`,
			vals: Values{TokenURL: "/a.html", TokenTitle: "A"},
			want: `<a href="/a.html">A</a> {{description}}`,
		},
		{
			name: "replacement not rescanned",
			tpl:  "{{title}}|{{date}}",
			vals: Values{TokenTitle: "{{date}}", TokenDate: "01-01-2020"},
			want: "{{date}}|01-01-2020",
		},
		{
			name: "raw mode keeps markup",
			tpl:  "<p>{{body}}</p>",
			vals: Values{TokenBody: "<li>x</li>"},
			want: "<p><li>x</li></p>",
		},
		{
			name: "custom placeholder",
			tpl:  "<ul><!-- ARTICLES --></ul>",
			vals: Values{"<!-- ARTICLES -->": "<li>a</li>"},
			want: "<ul><li>a</li></ul>",
		},
		{
			name: "empty values map",
			tpl:  "{{title}}",
			vals: nil,
			want: "{{title}}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.tpl, tt.vals))
		})
	}
}

func TestSubstituteEscaped(t *testing.T) {
	got := SubstituteEscaped("<title>{{title}}</title>", Values{TokenTitle: "<script>"})
	assert.Equal(t, "<title>&lt;script&gt;</title>", got)
	assert.NotContains(t, got, "<script>")

	got = SubstituteEscaped("{{description}}", Values{TokenDescription: `Tom & "Jerry's"`})
	assert.Equal(t, "Tom &amp; &#34;Jerry&#39;s&#34;", got)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a&lt;b&gt;&amp;", Escape("a<b>&"))
	assert.Equal(t, "plain", Escape("plain"))
}
