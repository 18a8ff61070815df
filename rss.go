package blogsphere

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Author      string `xml:"author,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

func (a *App) handleFeed(c echo.Context) error {
	blogs, err := a.API.ListBlogs(c.Request().Context())
	if err != nil {
		return err
	}
	if len(blogs) > 20 {
		blogs = blogs[:20]
	}
	return a.renderRSS(c, blogs)
}

func (a *App) renderRSS(c echo.Context, blogs []api.Blog) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(blogs))
	for _, b := range blogs {
		pubDate := ""
		if t, err := time.Parse(time.RFC3339, b.CreatedAt); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		blogURL := base + views.BlogURL(b.ID)
		items = append(items, rssItem{
			Title:       b.Title,
			Link:        blogURL,
			Description: views.Excerpt(b.Content, 280),
			Author:      views.AuthorName(b),
			PubDate:     pubDate,
			GUID:        blogURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
