package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/posting/internal/model"
	"github.com/d60-Lab/posting/internal/service"
	"github.com/d60-Lab/posting/pkg/response"
)

type newPostRequest struct {
	Post *string `json:"post" binding:"required,max=140"`
}

type followQuery struct {
	FollowedUserName string `form:"followedUserName" binding:"required"`
}

type pageQuery struct {
	Page *int `form:"page" binding:"required"`
	Size *int `form:"size" binding:"required"`
}

// NewPost 发帖；用户不存在时自动创建
// @Summary 发帖
// @Tags posting
// @Accept json
// @Param username path string true "用户名"
// @Param request body newPostRequest true "帖子内容（最多 140 字符）"
// @Success 201
// @Failure 400 {string} string
// @Router /users/{username}/post [post]
func (h *Handler) NewPost(c *gin.Context) {
	var req newPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}
	if err := h.postingService.NewPost(c.Request.Context(), c.Param("username"), *req.Post); err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c)
}

// Follow 关注用户
// @Summary 关注用户
// @Tags posting
// @Param username path string true "用户名"
// @Param followedUserName query string true "被关注的用户名"
// @Success 200
// @Failure 400 {string} string
// @Router /users/{username}/follow [put]
func (h *Handler) Follow(c *gin.Context) {
	var q followQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}
	if err := h.postingService.Follow(c.Request.Context(), c.Param("username"), q.FollowedUserName); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c)
}

// GetCompleteWall 用户自己的全部帖子
// @Summary 完整的墙
// @Tags posting
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {array} model.PostDTO
// @Failure 400 {string} string
// @Router /users/{username}/completeWall [get]
func (h *Handler) GetCompleteWall(c *gin.Context) {
	posts, err := h.postingService.GetCompleteWall(c.Request.Context(), c.Param("username"))
	h.respondPosts(c, posts, err)
}

// GetWall 分页的墙
// @Summary 分页的墙
// @Tags posting
// @Produce json
// @Param username path string true "用户名"
// @Param page query int true "页码，从 0 开始"
// @Param size query int true "每页数量"
// @Success 200 {array} model.PostDTO
// @Failure 400 {string} string
// @Router /users/{username}/wall [get]
func (h *Handler) GetWall(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}
	posts, err := h.postingService.GetWall(c.Request.Context(), c.Param("username"), *q.Page, *q.Size)
	h.respondPosts(c, posts, err)
}

// GetCompleteTimeline 关注的人的全部帖子
// @Summary 完整的时间线
// @Tags posting
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {array} model.PostDTO
// @Failure 400 {string} string
// @Router /users/{username}/completeTimeline [get]
func (h *Handler) GetCompleteTimeline(c *gin.Context) {
	posts, err := h.postingService.GetCompleteTimeline(c.Request.Context(), c.Param("username"))
	h.respondPosts(c, posts, err)
}

// GetTimeline 分页的时间线
// @Summary 分页的时间线
// @Tags posting
// @Produce json
// @Param username path string true "用户名"
// @Param page query int true "页码，从 0 开始"
// @Param size query int true "每页数量"
// @Success 200 {array} model.PostDTO
// @Failure 400 {string} string
// @Router /users/{username}/timeline [get]
func (h *Handler) GetTimeline(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}
	posts, err := h.postingService.GetTimeline(c.Request.Context(), c.Param("username"), *q.Page, *q.Size)
	h.respondPosts(c, posts, err)
}

func (h *Handler) respondPosts(c *gin.Context, posts []model.PostDTO, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if posts == nil {
		posts = []model.PostDTO{}
	}
	response.Success(c, posts)
}

// fail 非法请求 -> 400 + 原始信息，其余 -> 500
func (h *Handler) fail(c *gin.Context, err error) {
	var ire *service.InvalidRequestError
	if errors.As(err, &ire) {
		response.BadRequest(c, ire.Message)
		return
	}
	response.InternalError(c, err)
}
