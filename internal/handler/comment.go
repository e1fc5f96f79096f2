package handler

import (
	"net/http"

	"community/internal/auth"
	"community/internal/comment"
	"community/internal/util"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	Comments comment.CommentStorage
}

func NewCommentHandler(comments comment.CommentStorage) *CommentHandler {
	return &CommentHandler{Comments: comments}
}

func commentJSON(v *comment.View) gin.H {
	return gin.H{
		"comment_id":           v.ID,
		"post_id":              v.PostID,
		"content":              v.Content,
		"created_at":           v.CreatedAt,
		"author_nickname":      v.AuthorNickname,
		"author_profile_image": v.AuthorImageURL,
		"is_owner":             v.IsOwner,
	}
}

type commentReq struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	// пустой/длинный текст отбраковывает хранилище (ErrValidation)
	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "content is required")
		return
	}

	v, err := h.Comments.CreateComment(c.Request.Context(), postID, userID, req.Content)
	if err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusCreated, gin.H{
		"message": "comment created",
		"comment": commentJSON(v),
	})
}

// List доступен и анониму: is_owner тогда false у всех
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	comments, err := h.Comments.ListComments(c.Request.Context(), postID, auth.ViewerID(c.Request.Context()))
	if err != nil {
		util.FromError(c, err)
		return
	}

	items := make([]gin.H, 0, len(comments))
	for _, v := range comments {
		items = append(items, commentJSON(v))
	}
	util.Success(c, http.StatusOK, gin.H{"comments": items})
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "content is required")
		return
	}

	if err := h.Comments.UpdateComment(c.Request.Context(), commentID, userID, req.Content); err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusOK, gin.H{"message": "comment updated"})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return
	}

	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	if err := h.Comments.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		util.FromError(c, err)
		return
	}
	util.Success(c, http.StatusOK, gin.H{"message": "comment deleted"})
}
