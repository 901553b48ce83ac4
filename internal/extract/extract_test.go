package extract

import (
	"net/url"
	"reflect"
	"testing"
)

// TestFromHTML_TagAttributes tests extraction from known element
// attributes.
func TestFromHTML_TagAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "img src",
			html: `<img src="https://framerusercontent.com/images/photo.png">`,
			want: []string{"https://framerusercontent.com/images/photo.png"},
		},
		{
			name: "link href stylesheet",
			html: `<link rel="stylesheet" href="https://framerusercontent.com/sites/framer.css">`,
			want: []string{"https://framerusercontent.com/sites/framer.css"},
		},
		{
			name: "script src",
			html: `<script src="https://cdn.example.com/app.js"></script>`,
			want: []string{"https://cdn.example.com/app.js"},
		},
		{
			name: "module script src",
			html: `<script type="module" src="https://framerusercontent.com/sites/chunk.H2AALWS7.mjs"></script>`,
			want: []string{"https://framerusercontent.com/sites/chunk.H2AALWS7.mjs"},
		},
		{
			name: "video poster and src",
			html: `<video poster="https://cdn.example.com/poster.jpg" src="https://cdn.example.com/clip.mp4"></video>`,
			want: []string{
				"https://cdn.example.com/clip.mp4",
				"https://cdn.example.com/poster.jpg",
			},
		},
		{
			name: "srcset with descriptors",
			html: `<img srcset="https://cdn.example.com/a.png 1x, https://cdn.example.com/b.png 2x">`,
			want: []string{
				"https://cdn.example.com/a.png",
				"https://cdn.example.com/b.png",
			},
		},
		{
			name: "duplicates collapse",
			html: `<img src="https://cdn.example.com/a.png"><img src="https://cdn.example.com/a.png">`,
			want: []string{"https://cdn.example.com/a.png"},
		},
		{
			name: "data URI excluded",
			html: `<img src="data:image/png;base64,iVBORw0KGgo=">`,
			want: nil,
		},
		{
			name: "page link not extracted",
			html: `<a href="https://example.com/about.html">about</a>`,
			want: nil,
		},
		{
			name: "relative reference skipped without base",
			html: `<img src="/images/photo.png">`,
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := New()
			got, err := e.FromHTML(tt.html)
			if err != nil {
				t.Fatalf("FromHTML returned error: %v", err)
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromHTML = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestFromHTML_StyleAndLazy tests inline styles, style blocks, lazy-load
// attributes, and the raw-text fallback pass.
func TestFromHTML_StyleAndLazy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "inline style background",
			html: `<div style="background-image: url('https://cdn.example.com/bg.png')"></div>`,
			want: []string{"https://cdn.example.com/bg.png"},
		},
		{
			name: "style block",
			html: `<style>.hero { background: url(https://cdn.example.com/hero.webp); }</style>`,
			want: []string{"https://cdn.example.com/hero.webp"},
		},
		{
			name: "lazy data-src",
			html: `<img data-src="https://cdn.example.com/lazy.jpg">`,
			want: []string{"https://cdn.example.com/lazy.jpg"},
		},
		{
			name: "lazy data-srcset splits descriptors",
			html: `<img data-srcset="https://cdn.example.com/s.png 480w, https://cdn.example.com/l.png 1024w">`,
			want: []string{
				"https://cdn.example.com/l.png",
				"https://cdn.example.com/s.png",
			},
		},
		{
			name: "absolute URL inside inline script",
			html: `<script>var img = "https://cdn.example.com/runtime.png";</script>`,
			want: []string{"https://cdn.example.com/runtime.png"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := New()
			got, err := e.FromHTML(tt.html)
			if err != nil {
				t.Fatalf("FromHTML returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromHTML = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestFromHTML_BaseURL tests relative reference resolution.
func TestFromHTML_BaseURL(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.framer.website/")
	if err != nil {
		t.Fatal(err)
	}

	e := New(WithBaseURL(base))
	got, err := e.FromHTML(`<img src="/images/photo.png"><img src="relative/icon.svg">`)
	if err != nil {
		t.Fatalf("FromHTML returned error: %v", err)
	}

	want := []string{
		"https://example.framer.website/images/photo.png",
		"https://example.framer.website/relative/icon.svg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromHTML = %v, want %v", got, want)
	}
}

// TestFromHTML_AllowedHosts tests the host allow-list filter.
func TestFromHTML_AllowedHosts(t *testing.T) {
	t.Parallel()

	e := New(WithAllowedHosts([]string{"framerusercontent.com", "framer.com"}))
	got, err := e.FromHTML(`
		<img src="https://framerusercontent.com/images/a.png">
		<img src="https://cdn.framerusercontent.com/images/b.png">
		<img src="https://events.framer.com/pixel.png">
		<img src="https://evil-framerusercontent.com/images/c.png">
		<img src="https://unrelated.example.com/d.png">
	`)
	if err != nil {
		t.Fatalf("FromHTML returned error: %v", err)
	}

	want := []string{
		"https://cdn.framerusercontent.com/images/b.png",
		"https://events.framer.com/pixel.png",
		"https://framerusercontent.com/images/a.png",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromHTML = %v, want %v", got, want)
	}
}

// TestFromCSS tests extraction from stylesheet text.
func TestFromCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		css  string
		want []string
	}{
		{
			name: "unquoted url",
			css:  `.a { background: url(https://cdn.example.com/bg.png); }`,
			want: []string{"https://cdn.example.com/bg.png"},
		},
		{
			name: "single quoted url",
			css:  `.a { background: url('https://cdn.example.com/bg.png'); }`,
			want: []string{"https://cdn.example.com/bg.png"},
		},
		{
			name: "double quoted url with whitespace",
			css:  `.a { background: url( "https://cdn.example.com/bg.png" ); }`,
			want: []string{"https://cdn.example.com/bg.png"},
		},
		{
			name: "font face src",
			css:  `@font-face { src: url(https://fonts.example.com/Inter.woff2) format("woff2"); }`,
			want: []string{"https://fonts.example.com/Inter.woff2"},
		},
		{
			name: "import with url function",
			css:  `@import url("https://cdn.example.com/theme.css");`,
			want: []string{"https://cdn.example.com/theme.css"},
		},
		{
			name: "bare import",
			css:  `@import "https://cdn.example.com/theme.css";`,
			want: []string{"https://cdn.example.com/theme.css"},
		},
		{
			name: "data URI excluded",
			css:  `.a { background: url(data:image/png;base64,AAAA); }`,
			want: nil,
		},
		{
			name: "duplicates collapse",
			css:  `.a { background: url(https://cdn.example.com/bg.png); } .b { background: url(https://cdn.example.com/bg.png); }`,
			want: []string{"https://cdn.example.com/bg.png"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := New()
			got := e.FromCSS(tt.css)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromCSS = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestFromText tests the raw-text extraction used for script bodies.
func TestFromText(t *testing.T) {
	t.Parallel()

	e := New()

	t.Run("absolute asset URLs with and without query", func(t *testing.T) {
		t.Parallel()

		text := `const a = "https://framerusercontent.com/images/photo.png?scale=2";
const b = 'https://framerusercontent.com/sites/chunk.ABC123.mjs';
const c = "https://example.com/page"; // no asset extension`
		got := e.FromText(text)
		want := []string{
			"https://framerusercontent.com/images/photo.png?scale=2",
			"https://framerusercontent.com/sites/chunk.ABC123.mjs",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FromText = %v, want %v", got, want)
		}
	})

	t.Run("relative references are invisible", func(t *testing.T) {
		t.Parallel()

		if got := e.FromText(`import "./chunk.ABC123.mjs";`); len(got) != 0 {
			t.Errorf("FromText = %v, want empty", got)
		}
	})
}

// TestSplitSrcset tests srcset value splitting.
func TestSplitSrcset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "width descriptors",
			value: "https://a.example.com/s.png 480w, https://a.example.com/l.png 1024w",
			want:  []string{"https://a.example.com/s.png", "https://a.example.com/l.png"},
		},
		{
			name:  "density descriptors",
			value: "https://a.example.com/a.png 1x,https://a.example.com/b.png 2x",
			want:  []string{"https://a.example.com/a.png", "https://a.example.com/b.png"},
		},
		{
			name:  "single URL without descriptor",
			value: "https://a.example.com/a.png",
			want:  []string{"https://a.example.com/a.png"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := splitSrcset(tt.value); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitSrcset(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
