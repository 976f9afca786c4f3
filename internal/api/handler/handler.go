package handler

import (
	"github.com/d60-Lab/posting/internal/repository"
	"github.com/d60-Lab/posting/internal/service"
)

// Handler 聚合 HTTP 处理器依赖
type Handler struct {
	postingService service.PostingService
	store          repository.Store
}

func NewHandler(postingService service.PostingService, store repository.Store) *Handler {
	registerTagNames()
	return &Handler{postingService: postingService, store: store}
}
