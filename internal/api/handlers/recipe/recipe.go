package recipe

import (
	"net/http"

	inventoryService "meadery-assistant/internal/core/inventory"
	recipeService "meadery-assistant/internal/core/recipe"
	"meadery-assistant/internal/core/reconcile"
	"meadery-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateRequest 食譜生成請求
type GenerateRequest struct {
	Style                string   `json:"style" binding:"required"` // 例如 traditional、melomel、metheglin
	BatchSizeL           float64  `json:"batch_size_l"`
	TargetABV            float64  `json:"target_abv,omitempty"`
	PreferredIngredients []string `json:"preferred_ingredients,omitempty"`
	Notes                string   `json:"notes,omitempty"`
	UseInventory         bool     `json:"use_inventory"` // 是否把現有庫存餵給模型
}

// CostRequest 成本計算請求
type CostRequest struct {
	RecipeMarkdown string  `json:"recipe_markdown" binding:"required"`
	BatchSizeL     float64 `json:"batch_size_l"`
}

// CostResponse 成本計算響應
// 每公升成本的縮放在這裡做，計算器本身不管 batch size
type CostResponse struct {
	Cost         float64  `json:"cost"`
	CostPerLiter float64  `json:"cost_per_liter,omitempty"`
	Warnings     []string `json:"warnings"`
}

// ShoppingListRequest 購物清單請求
type ShoppingListRequest struct {
	RecipeMarkdown string `json:"recipe_markdown" binding:"required"`
}

// Handler 食譜處理程序
type Handler struct {
	generationService *recipeService.GenerationService
	shoppingService   *recipeService.ShoppingService
	inventoryService  *inventoryService.Service
}

// NewHandler 創建食譜處理程序
func NewHandler(generation *recipeService.GenerationService, shopping *recipeService.ShoppingService, inventory *inventoryService.Service) *Handler {
	return &Handler{
		generationService: generation,
		shoppingService:   shopping,
		inventoryService:  inventory,
	}
}

// requestID 確保每個請求都有 X-Request-ID
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Header("X-Request-ID", id)
	}
	return id
}

// ownerFromRequest 取出資料分區擁有者
func ownerFromRequest(c *gin.Context) string {
	owner := c.GetHeader("X-Owner")
	if owner == "" {
		owner = "default"
	}
	return owner
}

// HandleGenerate 生成蜂蜜酒食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	reqID := requestID(c)

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", reqID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// 有要求時把庫存快照餵給模型，讓它優先用現有原料
	var items []common.InventoryItem
	if req.UseInventory {
		var err error
		items, err = h.inventoryService.List(c.Request.Context(), ownerFromRequest(c))
		if err != nil {
			// 庫存讀不到不擋生成，只是不給模型參考
			common.LogWarn("庫存讀取失敗，改用空庫存生成",
				zap.Error(err),
				zap.String("request_id", reqID),
			)
			items = nil
		}
	}

	generated, err := h.generationService.Generate(c.Request.Context(), &recipeService.GenerationRequest{
		Style:                req.Style,
		BatchSizeL:           req.BatchSizeL,
		TargetABV:            req.TargetABV,
		PreferredIngredients: req.PreferredIngredients,
		Notes:                req.Notes,
	}, items)
	if err != nil {
		common.LogError("食譜生成失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recipe generation failed"})
		return
	}

	c.JSON(http.StatusOK, generated)
}

// HandleCost 計算食譜對照庫存的成本
func (h *Handler) HandleCost(c *gin.Context) {
	reqID := requestID(c)

	var req CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	items, err := h.inventoryService.List(c.Request.Context(), ownerFromRequest(c))
	if err != nil {
		common.LogError("庫存讀取失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inventory store unavailable"})
		return
	}

	result := reconcile.CalculateCost(req.RecipeMarkdown, items, req.BatchSizeL)

	resp := CostResponse{
		Cost:     result.Cost,
		Warnings: result.Warnings,
	}
	if req.BatchSizeL > 0 {
		resp.CostPerLiter = result.Cost / req.BatchSizeL
	}

	c.JSON(http.StatusOK, resp)
}

// HandleShoppingList 依食譜與庫存組購物清單
func (h *Handler) HandleShoppingList(c *gin.Context) {
	reqID := requestID(c)

	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	items, err := h.inventoryService.List(c.Request.Context(), ownerFromRequest(c))
	if err != nil {
		common.LogError("庫存讀取失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inventory store unavailable"})
		return
	}

	c.JSON(http.StatusOK, h.shoppingService.BuildList(req.RecipeMarkdown, items))
}
