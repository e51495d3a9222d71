package admin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/univmedia/campusnews/internal/auth"
	"github.com/univmedia/campusnews/internal/backend"
)

func (s *Service) handlePostsList(c echo.Context) error {
	sess := auth.CurrentSession(c)
	data := s.data(c, s.loc.T("nav.posts"))

	posts, err := s.api.Posts(c.Request().Context(), sess.Token)
	if err != nil {
		data["Error"] = s.loc.T("error.load")
		return c.Render(http.StatusOK, "admin_posts", data)
	}

	data["Posts"] = backend.NewPostViews(posts)
	return c.Render(http.StatusOK, "admin_posts", data)
}

// handlePostForm serves both the create form and, when an id route param
// is present, the edit form prefilled from the API.
func (s *Service) handlePostForm(c echo.Context) error {
	data := s.data(c, s.loc.T("posts.create"))
	data["Action"] = "/admin/posts"

	if idParam := c.Param("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "bad post id")
		}
		sess := auth.CurrentSession(c)
		post, err := s.api.Post(c.Request().Context(), id, sess.Token)
		if err != nil {
			data["Error"] = s.loc.T("error.load")
			return c.Render(http.StatusOK, "admin_post_form", data)
		}
		data["Title"] = s.loc.T("posts.edit")
		data["Post"] = backend.NewPostView(*post)
		data["Action"] = fmt.Sprintf("/admin/posts/%d", id)
	}

	return c.Render(http.StatusOK, "admin_post_form", data)
}

func (s *Service) handleCreatePost(c echo.Context) error {
	input, errKey := s.postInput(c)
	if errKey != "" {
		data := s.data(c, s.loc.T("posts.create"))
		data["Action"] = "/admin/posts"
		data["Error"] = s.loc.T(errKey)
		return c.Render(http.StatusOK, "admin_post_form", data)
	}

	sess := auth.CurrentSession(c)
	if _, err := s.api.CreatePost(c.Request().Context(), input, sess.Token); err != nil {
		data := s.data(c, s.loc.T("posts.create"))
		data["Action"] = "/admin/posts"
		data["Error"] = s.loc.T("error.load")
		return c.Render(http.StatusOK, "admin_post_form", data)
	}

	return c.Redirect(http.StatusSeeOther, "/admin/posts")
}

func (s *Service) handleUpdatePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad post id")
	}

	input, errKey := s.postInput(c)
	action := fmt.Sprintf("/admin/posts/%d", id)
	if errKey != "" {
		data := s.data(c, s.loc.T("posts.edit"))
		data["Action"] = action
		data["Error"] = s.loc.T(errKey)
		return c.Render(http.StatusOK, "admin_post_form", data)
	}

	sess := auth.CurrentSession(c)
	if _, err := s.api.UpdatePost(c.Request().Context(), id, input, sess.Token); err != nil {
		data := s.data(c, s.loc.T("posts.edit"))
		data["Action"] = action
		data["Error"] = s.loc.T("error.load")
		return c.Render(http.StatusOK, "admin_post_form", data)
	}

	return c.Redirect(http.StatusSeeOther, "/admin/posts")
}

func (s *Service) handleDeletePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad post id")
	}

	sess := auth.CurrentSession(c)
	if err := s.api.DeletePost(c.Request().Context(), id, sess.Token); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "delete failed")
	}

	return c.Redirect(http.StatusSeeOther, "/admin/posts")
}

// postInput reads the post form, validating locally before anything
// reaches the API.
func (s *Service) postInput(c echo.Context) (backend.PostInput, string) {
	input := backend.PostInput{
		Title:    c.FormValue("title"),
		Content:  c.FormValue("content"),
		Category: c.FormValue("categorie"),
		Image:    c.FormValue("image"),
	}
	if input.Title == "" || input.Content == "" {
		return input, "validation.required"
	}
	return input, ""
}
