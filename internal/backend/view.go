package backend

import "strconv"

// DefaultPostImage is shown when a post has no image of its own.
const DefaultPostImage = "/public/post.jpg"

// PostView is the render shape of a post: ids as strings, image always
// set. It is built per fetch and discarded with the page.
type PostView struct {
	ID       string
	Title    string
	Image    string
	Content  string
	Liked    bool
	Likes    int
	Visits   int
	Category string
}

// NewPostView reshapes a wire record for rendering.
func NewPostView(p Post) PostView {
	image := p.Image
	if image == "" {
		image = DefaultPostImage
	}
	return PostView{
		ID:       strconv.FormatInt(p.ID, 10),
		Title:    p.Title,
		Image:    image,
		Content:  p.Content,
		Liked:    p.IsLiked,
		Likes:    p.Likes,
		Visits:   p.Visits,
		Category: p.Category,
	}
}

// NewPostViews reshapes a list. A nil input yields an empty, non-nil
// slice so templates can range without nil checks.
func NewPostViews(posts []Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, NewPostView(p))
	}
	return views
}
