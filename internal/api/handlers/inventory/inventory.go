package inventory

import (
	"net/http"
	"time"

	inventoryService "meadery-assistant/internal/core/inventory"
	"meadery-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ownerFromRequest 取出資料分區擁有者，前端帶 X-Owner，沒帶就落到共用分區
func ownerFromRequest(c *gin.Context) string {
	owner := c.GetHeader("X-Owner")
	if owner == "" {
		owner = "default"
	}
	return owner
}

// ItemRequest 新增/更新庫存項目的請求
type ItemRequest struct {
	Name           string  `json:"name" binding:"required"`
	Category       string  `json:"category"`
	Qty            float64 `json:"qty"`
	Unit           string  `json:"unit"`
	Price          float64 `json:"price"`
	ExpirationDate string  `json:"expiration_date,omitempty"` // RFC 3339 日期，可空
}

// Handler 庫存處理程序
type Handler struct {
	inventoryService *inventoryService.Service
}

// NewHandler 創建庫存處理程序
func NewHandler(svc *inventoryService.Service) *Handler {
	return &Handler{inventoryService: svc}
}

// HandleList 列出庫存
func (h *Handler) HandleList(c *gin.Context) {
	owner := ownerFromRequest(c)

	items, err := h.inventoryService.List(c.Request.Context(), owner)
	if err != nil {
		common.LogError("庫存列表讀取失敗",
			zap.Error(err),
			zap.String("owner", owner),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inventory store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// HandleGet 讀取單筆庫存
func (h *Handler) HandleGet(c *gin.Context) {
	owner := ownerFromRequest(c)

	item, err := h.inventoryService.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		if err == common.ErrItemNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		common.LogError("庫存項目讀取失敗", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inventory store unavailable"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// HandleCreate 新增庫存項目
func (h *Handler) HandleCreate(c *gin.Context) {
	owner := ownerFromRequest(c)

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, err := itemFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.inventoryService.Create(c.Request.Context(), owner, item); err != nil {
		h.writeMutationError(c, err, "庫存項目新增失敗")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// HandleUpdate 更新庫存項目
func (h *Handler) HandleUpdate(c *gin.Context) {
	owner := ownerFromRequest(c)

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, err := itemFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = c.Param("id")

	if err := h.inventoryService.Update(c.Request.Context(), owner, item); err != nil {
		h.writeMutationError(c, err, "庫存項目更新失敗")
		return
	}

	c.JSON(http.StatusOK, item)
}

// HandleDelete 刪除庫存項目
func (h *Handler) HandleDelete(c *gin.Context) {
	owner := ownerFromRequest(c)

	if err := h.inventoryService.Delete(c.Request.Context(), owner, c.Param("id")); err != nil {
		if err == common.ErrItemNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		common.LogError("庫存項目刪除失敗", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inventory store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// writeMutationError 將服務層錯誤轉成 HTTP 響應
func (h *Handler) writeMutationError(c *gin.Context, err error, logMsg string) {
	switch {
	case common.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err == common.ErrInvalidCategory:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
	case err == common.ErrItemNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	default:
		common.LogError(logMsg, zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inventory store unavailable"})
	}
}

// itemFromRequest 轉換請求為庫存項目
func itemFromRequest(req *ItemRequest) (*common.InventoryItem, error) {
	item := &common.InventoryItem{
		Name:     req.Name,
		Category: common.Category(req.Category),
		Qty:      req.Qty,
		Unit:     req.Unit,
		Price:    req.Price,
	}

	if req.ExpirationDate != "" {
		t, err := time.Parse("2006-01-02", req.ExpirationDate)
		if err != nil {
			return nil, common.NewValidationError("expiration_date must be YYYY-MM-DD")
		}
		item.ExpirationDate = &t
	}

	return item, nil
}
