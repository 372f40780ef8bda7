package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		c         Content
		wantText  string
		wantMedia string
	}{
		{
			name:     "markdown preferred",
			c:        Content{Title: "T", Data: []byte(`{"markdown":"# md body","text":"plain"}`)},
			wantText: "# md body",
		},
		{
			name:     "text when no markdown",
			c:        Content{Title: "T", Data: []byte(`{"text":"plain body"}`)},
			wantText: "plain body",
		},
		{
			name:     "content field as last body option",
			c:        Content{Title: "T", Data: []byte(`{"content":"caption here"}`)},
			wantText: "caption here",
		},
		{
			name:     "title fallback",
			c:        Content{Title: "Launch teaser", Data: []byte(`{}`)},
			wantText: "Launch teaser",
		},
		{
			name:     "default when nothing renderable",
			c:        Content{Data: []byte(`{}`)},
			wantText: "Post",
		},
		{
			name:      "media url carried through",
			c:         Content{Title: "Img", Data: []byte(`{"url":"https://cdn.example/x.png"}`)},
			wantText:  "Img",
			wantMedia: "https://cdn.example/x.png",
		},
		{
			name:     "garbage data falls back to title",
			c:        Content{Title: "T", Data: []byte(`not json`)},
			wantText: "T",
		},
		{
			name:     "nil data",
			c:        Content{Title: "T"},
			wantText: "T",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, media := tt.c.Render()
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantMedia, media)
		})
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range []string{TypeCaption, TypePost, TypeBlog, TypeImage, TypeVideo} {
		assert.True(t, ValidType(typ), typ)
	}
	assert.False(t, ValidType("newsletter"))
	assert.False(t, ValidType(""))
}
