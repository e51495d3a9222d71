package reader

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/univmedia/campusnews/internal/auth"
	"github.com/univmedia/campusnews/internal/backend"
	"github.com/univmedia/campusnews/internal/engagement"
	"github.com/univmedia/campusnews/internal/share"
	"golang.org/x/sync/errgroup"
)

// handleHome renders the posts list plus, for a logged-in reader, their
// personalized recommendations. The two fetches run concurrently and may
// resolve in either order; they fill independent slices so ordering only
// affects display freshness, never consistency.
func (s *Service) handleHome(c echo.Context) error {
	sess := auth.CurrentSession(c)
	data := s.data(c, "")

	var (
		posts           []backend.Post
		recommendations []backend.Post
	)

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		fetched, err := s.api.Posts(ctx, sess.Token)
		if err != nil {
			return err
		}
		posts = fetched
		return nil
	})
	if sess.IsAuthenticated() {
		g.Go(func() error {
			// Best-effort: the client already degrades failures to nil.
			recommendations = s.api.Recommendations(ctx, sess.UserID(), sess.Token)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		data["Error"] = s.loc.T("error.load")
		return c.Render(http.StatusOK, "home", data)
	}

	data["Posts"] = backend.NewPostViews(posts)
	data["Recommendations"] = backend.NewPostViews(recommendations)
	return c.Render(http.StatusOK, "home", data)
}

func (s *Service) handlePostDetail(c echo.Context) error {
	data := s.data(c, "")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		data["Error"] = s.loc.T("error.not_found")
		return c.Render(http.StatusOK, "post", data)
	}

	sess := auth.CurrentSession(c)
	post, err := s.api.Post(c.Request().Context(), id, sess.Token)
	if err != nil {
		if backend.IsStatus(err, http.StatusNotFound) {
			data["Error"] = s.loc.T("error.not_found")
		} else {
			data["Error"] = s.loc.T("error.load")
		}
		return c.Render(http.StatusOK, "post", data)
	}

	view := backend.NewPostView(*post)

	// The visit counter bumps locally only when the record call landed;
	// a failed call must stay invisible to the reader.
	visits := view.Visits
	if s.api.RecordVisit(c.Request().Context(), id, sess.Token) {
		visits++
	}

	data["Post"] = view
	data["Visits"] = visits
	data["Title"] = view.Title
	data["Similar"] = backend.NewPostViews(s.api.Similar(c.Request().Context(), id))
	return c.Render(http.StatusOK, "post", data)
}

// handleLike toggles the reader's like. At most one mutation per viewer
// and post may be outstanding; overlapping clicks are dropped without a
// second API call.
func (s *Service) handleLike(c echo.Context) error {
	sess := auth.CurrentSession(c)
	if !sess.IsAuthenticated() {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad post id")
	}

	if !s.tracker.Begin(sess.Token, id) {
		return c.NoContent(http.StatusTooManyRequests)
	}
	defer s.tracker.End(sess.Token, id)

	if err := s.api.Like(c.Request().Context(), id, sess.Token); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "like failed")
	}

	liked := c.FormValue("liked") == "true"
	likes, _ := strconv.Atoi(c.FormValue("likes"))
	nowLiked, nowLikes := engagement.Toggle(liked, likes)

	return c.JSON(http.StatusOK, map[string]any{
		"liked": nowLiked,
		"likes": nowLikes,
	})
}

func (s *Service) handlePostQR(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad post id")
	}
	png, err := share.PostQR(s.config.BaseURL, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "QR rendering failed")
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func (s *Service) handleMyPosts(c echo.Context) error {
	sess := auth.CurrentSession(c)
	data := s.data(c, s.loc.T("nav.my_posts"))

	posts, err := s.api.MyPosts(c.Request().Context(), sess.Token)
	if err != nil {
		data["Error"] = s.loc.T("error.load")
		return c.Render(http.StatusOK, "myposts", data)
	}

	data["Posts"] = backend.NewPostViews(posts)
	return c.Render(http.StatusOK, "myposts", data)
}
