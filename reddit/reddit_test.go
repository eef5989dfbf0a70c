package reddit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/storage"
)

const hotListing = `{
  "data": {
    "children": [
      {"data": {"id": "p1", "title": "Pinned rules", "author": "mod", "stickied": true,
                "permalink": "/r/golang/p1", "created_utc": 100}},
      {"data": {"id": "p2", "title": "Generics tips", "author": "gopher", "score": 42,
                "num_comments": 7, "permalink": "/r/golang/p2", "created_utc": 200}},
      {"data": {"id": "p3", "title": "Error handling", "author": "rob", "score": 10,
                "num_comments": 3, "permalink": "/r/golang/p3", "over_18": true,
                "created_utc": 300}}
    ]
  }
}`

func testServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("request without User-Agent")
		}
		switch {
		case strings.HasPrefix(r.URL.Path, "/r/golang/"):
			w.Write([]byte(hotListing))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-agent")
	c.base = srv.URL
	return srv, c
}

func TestHotSkipsStickies(t *testing.T) {
	_, c := testServer(t)

	posts, err := c.Hot("golang", 10)
	if err != nil {
		t.Fatalf("hot: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2 with the sticky skipped", len(posts))
	}
	if posts[0].ID != "p2" || posts[0].Author != "gopher" || posts[0].Score != 42 {
		t.Errorf("first post = %+v", posts[0])
	}
	if !posts[1].NSFW {
		t.Error("over_18 flag not mapped")
	}
	if posts[0].Link() != "https://www.reddit.com/r/golang/p2" {
		t.Errorf("link = %q", posts[0].Link())
	}
}

func TestHotMissingSubreddit(t *testing.T) {
	_, c := testServer(t)

	_, err := c.Hot("doesnotexist", 10)
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("err = %v, want does-not-exist", err)
	}
}

func TestWatcherSubscriptions(t *testing.T) {
	store, err := storage.OpenFileStore(t.TempDir() + "/records.json")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	w := NewWatcher(store, NewClient("test-agent"))

	if err := w.Subscribe("chan1", "GoLang"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := w.Subscribe("chan1", "pics"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := w.Subscribe("chan2", "golang"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	subs, err := w.Subscriptions("chan1")
	if err != nil {
		t.Fatalf("subscriptions: %v", err)
	}
	if len(subs) != 2 {
		t.Errorf("chan1 subs = %v, want 2 entries", subs)
	}
	for _, sub := range subs {
		if sub != strings.ToLower(sub) {
			t.Errorf("subreddit %q not normalized to lowercase", sub)
		}
	}

	if err := w.Unsubscribe("chan1", "golang"); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	subs, _ = w.Subscriptions("chan1")
	if len(subs) != 1 || subs[0] != "pics" {
		t.Errorf("subs after unsubscribe = %v, want [pics]", subs)
	}
}
