package pubgen

import (
	"iter"
	"slices"

	"github.com/eringen/pubgen/content"
)

// Store is the in-memory, append-only collection of posts accepted in one
// run. Posts are kept in publication order: date descending, then title.
type Store struct {
	posts []content.Post
	ids   map[string]content.Post
	next  int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{ids: make(map[string]content.Post)}
}

// Add accepts post unless one with the same title and date is already
// present, in which case the new post is dropped and a *DuplicatePostError is
// returned. Accepted posts are numbered in ingestion order.
func (s *Store) Add(post content.Post) error {
	if s.ids == nil {
		s.ids = make(map[string]content.Post)
	}
	id := post.Identity()
	if existing, ok := s.ids[id]; ok {
		return &DuplicatePostError{Post: post, Existing: existing}
	}
	post.Ordinal = s.next
	s.next++
	s.ids[id] = post
	i, _ := slices.BinarySearchFunc(s.posts, post, content.Compare)
	s.posts = slices.Insert(s.posts, i, post)
	return nil
}

// All yields posts in publication order. Each call starts a fresh traversal.
func (s *Store) All() iter.Seq[content.Post] {
	return func(yield func(content.Post) bool) {
		for _, p := range s.posts {
			if !yield(p) {
				return
			}
		}
	}
}

// Len returns the number of accepted posts.
func (s *Store) Len() int {
	return len(s.posts)
}
