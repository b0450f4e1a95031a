package pubgen

import (
	"testing"
	"testing/fstest"
)

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md":               {Data: []byte("b")},
		"a.markdown":         {Data: []byte("a")},
		"notes.txt":          {Data: []byte("ignored")},
		"2020/post.md":       {Data: []byte("nested")},
		".drafts/secret.md":  {Data: []byte("hidden")},
		"images/diagram.png": {Data: []byte{0x89}},
	}
	units, err := LoadDir(fsys)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	want := []string{"2020/post.md", "a.markdown", "b.md"}
	if len(units) != len(want) {
		t.Fatalf("got %d units, want %d: %+v", len(units), len(want), units)
	}
	for i, u := range units {
		if u.Source != want[i] {
			t.Errorf("units[%d].Source = %q, want %q", i, u.Source, want[i])
		}
	}
	if string(units[0].Data) != "nested" {
		t.Errorf("units[0].Data = %q", units[0].Data)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	units, err := LoadDir(fstest.MapFS{})
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(units) != 0 {
		t.Errorf("got %d units, want 0", len(units))
	}
}
