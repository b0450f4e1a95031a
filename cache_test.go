package pubgen

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/eringen/pubgen/content"
)

func TestSiteCacheLoadsOnce(t *testing.T) {
	calls := 0
	site := sampleSite(t, content.Post{Title: "A", Date: day(2020, 1, 1)})
	c := NewSiteCache(func(context.Context) (*Site, error) {
		calls++
		return site, nil
	})

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Site(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}

	c.Invalidate()
	if _, err := c.Site(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("load called %d times after Invalidate, want 2", calls)
	}
}

func TestSiteCacheKeepsStaleSiteOnError(t *testing.T) {
	good := sampleSite(t, content.Post{Title: "A", Date: day(2020, 1, 1)})
	fail := false
	c := NewSiteCache(func(context.Context) (*Site, error) {
		if fail {
			return nil, ErrNoContent
		}
		return good, nil
	})
	if _, err := c.Site(context.Background()); err != nil {
		t.Fatal(err)
	}

	fail = true
	c.Invalidate()
	got, err := c.Site(context.Background())
	if err != nil {
		t.Fatalf("Site() error = %v, want stale site", err)
	}
	if got != good {
		t.Error("Site() did not return the previous site")
	}
	if !errors.Is(c.Err(), ErrNoContent) {
		t.Errorf("Err() = %v, want ErrNoContent", c.Err())
	}
}

func TestSiteCacheErrorWithoutSite(t *testing.T) {
	c := NewSiteCache(func(context.Context) (*Site, error) {
		return nil, ErrNoContent
	})
	if _, err := c.Site(context.Background()); !errors.Is(err, ErrNoContent) {
		t.Errorf("Site() error = %v, want ErrNoContent", err)
	}
}
