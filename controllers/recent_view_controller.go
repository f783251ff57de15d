package controllers

import (
	"errors"

	"eatmove/pkg/resp"
	"eatmove/services"
	"eatmove/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RecentViewController struct{ Svc *services.RecentViewService }

func NewRecentViewController(s *services.RecentViewService) *RecentViewController {
	return &RecentViewController{Svc: s}
}

// GET /recent-views
func (h *RecentViewController) List(c *gin.Context) {
	views, err := h.Svc.List(utils.CurrentAccountID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, views)
}

// POST /recent-views/:id records a visit to restaurant :id explicitly;
// browsing a restaurant while logged in records one as well.
func (h *RecentViewController) Record(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.Svc.Record(utils.CurrentAccountID(c), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view)
}

// DELETE /recent-views/:id
func (h *RecentViewController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(utils.CurrentAccountID(c), id); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// DELETE /recent-views
func (h *RecentViewController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(utils.CurrentAccountID(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
