package blogsphere

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/firatdemir47/blogsphere-web/api"
	"github.com/firatdemir47/blogsphere-web/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	blogs, err := a.API.ListBlogs(ctx)
	if err != nil {
		return err
	}
	categories, err := a.catalog.Categories(ctx)
	if err != nil {
		c.Logger().Errorf("category catalog: %v", err)
	}
	return a.renderSitemap(c, blogs, categories)
}

func (a *App) renderSitemap(c echo.Context, blogs []api.Blog, categories []api.Category) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: base + "/"},
		{Loc: base + "/trending/"},
		{Loc: base + "/categories/"},
		{Loc: base + "/about/"},
	}
	for _, cat := range categories {
		urls = append(urls, sitemapURL{Loc: base + "/category/" + views.PathEscape(cat.Name) + "/"})
	}
	for _, b := range blogs {
		lastMod := b.UpdatedAt
		if lastMod == "" {
			lastMod = b.CreatedAt
		}
		urls = append(urls, sitemapURL{
			Loc:     base + views.BlogURL(b.ID),
			LastMod: lastMod,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
