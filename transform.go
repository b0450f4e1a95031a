package pubgen

import (
	"github.com/eringen/pubgen/content"
)

// Transformer rewrites a post between parsing and storage.
type Transformer interface {
	Transform(content.Post) content.Post
}

// TransformFunc adapts an ordinary function to the Transformer interface.
type TransformFunc func(content.Post) content.Post

// Transform calls f(p).
func (f TransformFunc) Transform(p content.Post) content.Post {
	return f(p)
}

// DefaultAuthor fills in Name for posts that carry no author.
type DefaultAuthor struct {
	Name string
}

func (d DefaultAuthor) Transform(p content.Post) content.Post {
	if p.Author == "" {
		p.Author = d.Name
	}
	return p
}

// NormalizeCategories lowercases, deduplicates and sorts post categories.
var NormalizeCategories = TransformFunc(func(p content.Post) content.Post {
	p.Categories = content.NormalizeCategories(p.Categories)
	return p
})

func applyTransformers(p content.Post, ts []Transformer) content.Post {
	for _, t := range ts {
		p = t.Transform(p)
	}
	return p
}
