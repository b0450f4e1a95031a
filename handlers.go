package pubgen

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

func (s *Server) site(c echo.Context) (*Site, error) {
	return s.Cache.Site(c.Request().Context())
}

// pathParam returns the decoded value of a route parameter. Echo matches on
// the raw path whenever the request path is not in canonical encoding, and
// its parameters are then still escaped.
func pathParam(c echo.Context, name string) (string, bool) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, true
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", false
	}
	return decoded, true
}

func (s *Server) handleHome(c echo.Context) error {
	site, err := s.site(c)
	if err != nil {
		return err
	}
	return Render(c, IndexPage(s.Config, site))
}

func (s *Server) handlePost(c echo.Context) error {
	site, err := s.site(c)
	if err != nil {
		return err
	}
	var page Page
	slug, ok := pathParam(c, "slug")
	if ok {
		page, ok = site.Page(slug)
	}
	if !ok {
		return RenderStatus(c, http.StatusNotFound, NotFoundPage(s.Config))
	}
	return Render(c, PostPage(s.Config, site, page))
}

func (s *Server) handleCategory(c echo.Context) error {
	site, err := s.site(c)
	if err != nil {
		return err
	}
	cat, ok := pathParam(c, "cat")
	if !ok || !safePathElem(cat) || len(site.Filter(cat)) == 0 {
		return RenderStatus(c, http.StatusNotFound, NotFoundPage(s.Config))
	}
	return Render(c, CategoryPage(s.Config, site, cat))
}

func (s *Server) handleSitemap(c echo.Context) error {
	site, err := s.site(c)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemap(c.Response(), s.Config.URL, site)
}

func (s *Server) handleFeed(c echo.Context) error {
	site, err := s.site(c)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteRSS(c.Response(), s.Config, site.Index)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, NotFoundPage(s.Config))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		s.logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = c.String(code, http.StatusText(code))
		return
	}
	s.Echo.DefaultHTTPErrorHandler(err, c)
}
