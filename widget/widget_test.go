package widget

import (
	"bytes"
	"errors"
	"html"
	"strings"
	"testing"
)

const disqus = `<div id="disqus_thread"></div>
<script>
(function() { var d = document, s = d.createElement('script'); s.src = 'https://example.disqus.com/embed.js'; (d.head || d.body).appendChild(s); })();
</script>`

func TestRenderSandboxesMarkup(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "comments", disqus); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, `sandbox="`+Sandbox+`"`) {
		t.Errorf("missing sandbox attribute: %q", got)
	}
	if strings.Contains(got, "allow-same-origin") {
		t.Errorf("sandbox must not grant same origin: %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("script escaped the sandbox: %q", got)
	}
	start := strings.Index(got, `srcdoc="`) + len(`srcdoc="`)
	end := strings.Index(got[start:], `"`)
	if html.UnescapeString(got[start:start+end]) != disqus {
		t.Errorf("srcdoc does not carry the markup unmodified")
	}
}

func TestRenderFailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		err    error
	}{
		{"empty", "   \n", ErrEmpty},
		{"text only", "just some words", ErrNoElements},
		{"invalid utf8", "<div>\xff\xfe</div>", ErrInvalidUTF8},
		{"too large", "<div>" + strings.Repeat("x", MaxMarkupBytes) + "</div>", ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, "newsletter", tt.markup)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Render error = %v, want %v", err, tt.err)
			}
			want := `<div class="embed embed-newsletter" data-widget="newsletter"></div>`
			if buf.String() != want {
				t.Errorf("Render wrote %q, want empty container %q", buf.String(), want)
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderEmpty(&buf, `x"y`)
	if strings.Contains(buf.String(), `x"y`) {
		t.Errorf("kind was not escaped: %q", buf.String())
	}
}
