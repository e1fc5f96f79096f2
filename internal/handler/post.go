package handler

import (
	"net/http"
	"strconv"
	"strings"

	"community/internal/auth"
	"community/internal/image"
	"community/internal/like"
	"community/internal/post"
	"community/internal/util"

	"github.com/gin-gonic/gin"
)

// PostHandler - список/детали/CRUD постов и переключение лайка
type PostHandler struct {
	Posts  post.PostStorage
	Likes  like.LikeStorage
	Images image.Storage
}

func NewPostHandler(posts post.PostStorage, likes like.LikeStorage, images image.Storage) *PostHandler {
	return &PostHandler{Posts: posts, Likes: likes, Images: images}
}

func summaryJSON(s *post.Summary) gin.H {
	return gin.H{
		"post_id":              s.ID,
		"title":                s.Title,
		"likes":                s.LikesCount,
		"views":                s.ViewsCount,
		"comments":             s.CommentsCount,
		"created_at":           s.CreatedAt,
		"author_nickname":      s.AuthorNickname,
		"author_profile_image": s.AuthorImageURL,
	}
}

func detailJSON(d *post.Detail) gin.H {
	return gin.H{
		"post_id":              d.ID,
		"title":                d.Title,
		"content":              d.Content,
		"image":                d.ImageURL,
		"likes_count":          d.LikesCount,
		"views_count":          d.ViewsCount,
		"comments_count":       d.CommentsCount,
		"created_at":           d.CreatedAt,
		"author_nickname":      d.AuthorNickname,
		"author_profile_image": d.AuthorImageURL,
		"is_owner":             d.IsOwner,
		"is_liked":             d.IsLiked,
	}
}

func (h *PostHandler) List(c *gin.Context) {
	offset, err1 := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, err2 := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err1 != nil || err2 != nil || offset < 0 || limit < 0 {
		util.Error(c, http.StatusBadRequest, "offset and limit must be non-negative numbers")
		return
	}

	posts, err := h.Posts.ListPosts(c.Request.Context(), offset, limit)
	if err != nil {
		util.FromError(c, err)
		return
	}

	items := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		items = append(items, summaryJSON(p))
	}
	util.Success(c, http.StatusOK, gin.H{"posts": items})
}

// Create - multipart-форма: title, content и необязательная картинка
func (h *PostHandler) Create(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	if title == "" || content == "" {
		util.Error(c, http.StatusBadRequest, "title and content are required")
		return
	}
	if len([]rune(title)) > 64 {
		util.Error(c, http.StatusBadRequest, "title must be at most 64 characters")
		return
	}

	imageURL := ""
	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err = h.Images.Save(file, header.Filename)
		if err != nil {
			util.FromError(c, err)
			return
		}
	}

	d, err := h.Posts.CreatePost(c.Request.Context(), userID, title, content, imageURL)
	if err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusCreated, gin.H{
		"message": "post created",
		"post":    detailJSON(d),
	})
}

// Detail доступен и анониму; просмотр засчитывается только залогиненному
func (h *PostHandler) Detail(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	d, err := h.Posts.GetPostDetail(c.Request.Context(), postID, auth.ViewerID(c.Request.Context()))
	if err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusOK, detailJSON(d))
}

func (h *PostHandler) Update(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	if title == "" || content == "" {
		util.Error(c, http.StatusBadRequest, "title and content are required")
		return
	}
	if len([]rune(title)) > 64 {
		util.Error(c, http.StatusBadRequest, "title must be at most 64 characters")
		return
	}

	upd := post.Update{Title: title, Content: content}
	// картинка заменяется только если прислана новая
	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err := h.Images.Save(file, header.Filename)
		if err != nil {
			util.FromError(c, err)
			return
		}
		upd.ImageURL = &imageURL
	}

	if err := h.Posts.UpdatePost(c.Request.Context(), postID, userID, upd); err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusOK, gin.H{"message": "post updated"})
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	if err := h.Posts.DeletePost(c.Request.Context(), postID, userID); err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusOK, gin.H{"message": "post deleted"})
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	res, err := h.Likes.ToggleLike(c.Request.Context(), postID, userID)
	if err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusOK, gin.H{
		"likes_count": res.LikesCount,
		"is_liked":    res.IsLiked,
	})
}
