// Package reddit fetches subreddit listings through reddit's public JSON
// API and drives the channel feed subscriptions.
package reddit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const baseURL = "https://www.reddit.com"

// Post is one subreddit submission.
type Post struct {
	ID        string
	Title     string
	Author    string
	Score     int
	Comments  int
	Permalink string
	URL       string
	NSFW      bool
	Created   time.Time
}

// Link returns the full reddit URL of the post.
func (p Post) Link() string { return baseURL + p.Permalink }

// listing mirrors the parts of reddit's listing envelope we read.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID         string  `json:"id"`
				Title      string  `json:"title"`
				Author     string  `json:"author"`
				Score      int     `json:"score"`
				NumComment int     `json:"num_comments"`
				Permalink  string  `json:"permalink"`
				URL        string  `json:"url"`
				Over18     bool    `json:"over_18"`
				Stickied   bool    `json:"stickied"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Client is a minimal reddit API client. Reddit rejects requests without a
// descriptive User-Agent, so one is required.
type Client struct {
	http      *http.Client
	userAgent string
	base      string
}

// NewClient builds a client with a 10s timeout.
func NewClient(userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		userAgent: userAgent,
		base:      baseURL,
	}
}

// Hot returns the subreddit's hot posts, stickies excluded, newest data
// first as reddit orders them.
func (c *Client) Hot(subreddit string, limit int) ([]Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", c.base, subreddit, limit)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("r/%s does not exist", subreddit)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching r/%s: status %d", subreddit, resp.StatusCode)
	}

	var body listing
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding r/%s listing: %w", subreddit, err)
	}

	posts := make([]Post, 0, len(body.Data.Children))
	for _, child := range body.Data.Children {
		d := child.Data
		if d.Stickied {
			continue
		}
		posts = append(posts, Post{
			ID:        d.ID,
			Title:     d.Title,
			Author:    d.Author,
			Score:     d.Score,
			Comments:  d.NumComment,
			Permalink: d.Permalink,
			URL:       d.URL,
			NSFW:      d.Over18,
			Created:   time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}
	return posts, nil
}
