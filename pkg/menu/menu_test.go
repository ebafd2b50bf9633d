package menu

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hrefs(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Href)
	}
	return out
}

func sampleTree() []Item {
	return []Item{
		{Href: "/a"},
		{Href: "/b", Items: []Item{{Href: "/b/1"}}},
		{Href: "/c"},
	}
}

func docsTree() []Item {
	return []Item{
		{Text: "Getting started", Items: []Item{
			{Text: "Intro", Href: "/docs/intro/"},
			{Text: "Install", Href: "/docs/install"},
		}},
		{Text: "Guides", Items: []Item{
			{Text: "Basics", Items: []Item{
				{Text: "Routing", Href: "/docs/guides/routing"},
			}},
			{Text: "Empty"},
			{Text: "Deploy", Href: "/docs/guides/deploy", Items: []Item{
				{Text: "Docker", Href: "/docs/guides/deploy/docker"},
			}},
		}},
		{Text: "FAQ", Href: "/docs/faq"},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/a/b/", "/a/b"},
		{"/a/b", "/a/b"},
		{"", ""},
		{"/", ""},
		{"/a//", "/a/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestFlatten(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		assert.Equal(t, []string{"/a", "/b", "/b/1", "/c"}, hrefs(Flatten(sampleTree())))
	})

	t.Run("parent before children", func(t *testing.T) {
		assert.Equal(t, []string{
			"/docs/intro/",
			"/docs/install",
			"/docs/guides/routing",
			"/docs/guides/deploy",
			"/docs/guides/deploy/docker",
			"/docs/faq",
		}, hrefs(Flatten(docsTree())))
	})

	t.Run("nil tree", func(t *testing.T) {
		flat := Flatten(nil)
		require.NotNil(t, flat)
		assert.Empty(t, flat)
	})

	t.Run("structural only", func(t *testing.T) {
		assert.Empty(t, Flatten([]Item{{Text: "a"}, {Items: []Item{{Label: "b"}}}}))
	})

	t.Run("stable", func(t *testing.T) {
		tree := docsTree()
		assert.Equal(t, hrefs(Flatten(tree)), hrefs(Flatten(tree)))
	})

	t.Run("references tree", func(t *testing.T) {
		tree := sampleTree()
		flat := Flatten(tree)
		assert.Same(t, &tree[1].Items[0], flat[2])
	})

	t.Run("deep tree", func(t *testing.T) {
		root := Item{Href: "/0"}
		cur := &root
		for i := 1; i < 10000; i++ {
			cur.Items = []Item{{Href: "/n"}}
			cur = &cur.Items[0]
		}
		assert.Len(t, Flatten([]Item{root}), 10000)
	})
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		tree     []Item
		path     string
		wantPrev string
		wantNext string
	}{
		{name: "scenario", tree: sampleTree(), path: "/b", wantPrev: "/a", wantNext: "/b/1"},
		{name: "first", tree: sampleTree(), path: "/a", wantNext: "/b"},
		{name: "last", tree: sampleTree(), path: "/c", wantPrev: "/b/1"},
		{name: "trailing slash on path", tree: sampleTree(), path: "/b/1/", wantPrev: "/b", wantNext: "/c"},
		{name: "trailing slash on href", tree: docsTree(), path: "/docs/intro", wantNext: "/docs/install"},
		{name: "across sections", tree: docsTree(), path: "/docs/install", wantPrev: "/docs/intro/", wantNext: "/docs/guides/routing"},
		{name: "no match", tree: sampleTree(), path: "/nope"},
		{name: "empty tree", tree: nil, path: "/a"},
		{
			name:     "first duplicate wins",
			tree:     []Item{{Href: "/x"}, {Href: "/dup"}, {Href: "/y"}, {Href: "/dup"}, {Href: "/z"}},
			path:     "/dup",
			wantPrev: "/x",
			wantNext: "/y",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.tree, tt.path)
			if tt.wantPrev == "" {
				assert.Nil(t, p.Prev)
			} else {
				require.NotNil(t, p.Prev)
				assert.Equal(t, tt.wantPrev, p.Prev.Href)
			}
			if tt.wantNext == "" {
				assert.Nil(t, p.Next)
			} else {
				require.NotNil(t, p.Next)
				assert.Equal(t, tt.wantNext, p.Next.Href)
			}
		})
	}
}

func TestPaginateReciprocity(t *testing.T) {
	tree := docsTree()
	for _, item := range Flatten(tree) {
		p := Paginate(tree, item.Href)
		if p.Next == nil {
			continue
		}
		back := Paginate(tree, p.Next.Href)
		require.NotNil(t, back.Prev, item.Href)
		assert.Equal(t, Normalize(item.Href), Normalize(back.Prev.Href))
	}
}

func TestBreadcrumbs(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		assert.Equal(t, []string{"/b"}, hrefs(Breadcrumbs(sampleTree(), "/b")))
	})

	t.Run("structural ancestors", func(t *testing.T) {
		path := Breadcrumbs(docsTree(), "/docs/guides/routing/")
		require.Len(t, path, 3)
		assert.Equal(t, "Guides", path[0].Text)
		assert.Equal(t, "Basics", path[1].Text)
		assert.Equal(t, "Routing", path[2].Text)
	})

	t.Run("linkable ancestor", func(t *testing.T) {
		path := Breadcrumbs(docsTree(), "/docs/guides/deploy/docker")
		assert.Equal(t, []string{"", "/docs/guides/deploy", "/docs/guides/deploy/docker"}, hrefs(path))
	})

	t.Run("first match wins", func(t *testing.T) {
		tree := []Item{
			{Text: "one", Items: []Item{{Text: "first", Href: "/dup"}}},
			{Text: "second", Href: "/dup"},
		}
		path := Breadcrumbs(tree, "/dup")
		require.Len(t, path, 2)
		assert.Equal(t, "first", path[1].Text)
	})

	t.Run("parent matched before children", func(t *testing.T) {
		tree := []Item{{Text: "parent", Href: "/p", Items: []Item{{Text: "child", Href: "/p/"}}}}
		path := Breadcrumbs(tree, "/p")
		require.Len(t, path, 1)
		assert.Equal(t, "parent", path[0].Text)
	})

	t.Run("no match", func(t *testing.T) {
		path := Breadcrumbs(docsTree(), "/missing")
		require.NotNil(t, path)
		assert.Empty(t, path)
	})

	t.Run("sibling branch not leaked", func(t *testing.T) {
		path := Breadcrumbs(docsTree(), "/docs/faq")
		assert.Equal(t, []string{"/docs/faq"}, hrefs(path))
	})
}

func TestBreadcrumbsMatchesFlatten(t *testing.T) {
	tree := docsTree()
	for _, item := range Flatten(tree) {
		path := Breadcrumbs(tree, item.Href)
		require.NotEmpty(t, path, item.Href)
		assert.Equal(t, Normalize(item.Href), Normalize(path[len(path)-1].Href))
	}
}

func TestConcurrentTraversal(t *testing.T) {
	tree := docsTree()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, Breadcrumbs(tree, "/docs/guides/deploy/docker"), 3)
			assert.NotNil(t, Paginate(tree, "/docs/faq").Prev)
		}()
	}
	wg.Wait()
}
