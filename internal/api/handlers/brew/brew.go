package brew

import (
	"net/http"

	inventoryService "meadery-assistant/internal/core/inventory"
	"meadery-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeductRequest 開釀扣庫存請求
type DeductRequest struct {
	Usage []UsageEntry `json:"usage" binding:"required,dive"`
}

// UsageEntry 單筆原料用量
type UsageEntry struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
}

// Handler 釀造處理程序
type Handler struct {
	inventoryService *inventoryService.Service
}

// NewHandler 創建釀造處理程序
func NewHandler(inventory *inventoryService.Service) *Handler {
	return &Handler{inventoryService: inventory}
}

func ownerFromRequest(c *gin.Context) string {
	owner := c.GetHeader("X-Owner")
	if owner == "" {
		owner = "default"
	}
	return owner
}

// HandleDeduct 依實際用量扣減庫存
// 扣不了的品項列進 issues，不會讓整批失敗
func (h *Handler) HandleDeduct(c *gin.Context) {
	var req DeductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("client_ip", c.ClientIP()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	usage := make([]common.UsageRecord, 0, len(req.Usage))
	for _, u := range req.Usage {
		usage = append(usage, common.UsageRecord{Name: u.Name, Quantity: u.Quantity})
	}

	result, err := h.inventoryService.DeductStock(c.Request.Context(), ownerFromRequest(c), usage)
	if err != nil {
		common.LogError("庫存扣減失敗",
			zap.Error(err),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inventory store unavailable"})
		return
	}

	c.JSON(http.StatusOK, result)
}
