package inventory

import (
	"context"
	"strings"

	"meadery-assistant/internal/core/reconcile"
	"meadery-assistant/internal/pkg/common"
)

// DeductionResult 扣庫存結果
type DeductionResult struct {
	UpdatedCount int      `json:"updated_count"`
	Issues       []string `json:"issues"`
}

// Service 庫存服務：CRUD 與扣庫存流程
type Service struct {
	store *Store
}

// NewService 創建庫存服務
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// List 列出庫存
func (s *Service) List(ctx context.Context, owner string) ([]common.InventoryItem, error) {
	return s.store.List(ctx, owner)
}

// Get 讀取單筆庫存
func (s *Service) Get(ctx context.Context, owner, id string) (*common.InventoryItem, error) {
	return s.store.Get(ctx, owner, id)
}

// Create 新增庫存項目
func (s *Service) Create(ctx context.Context, owner string, item *common.InventoryItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	item.ID = ""
	return s.store.Put(ctx, owner, item)
}

// Update 更新庫存項目，項目必須已存在
func (s *Service) Update(ctx context.Context, owner string, item *common.InventoryItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if _, err := s.store.Get(ctx, owner, item.ID); err != nil {
		return err
	}
	return s.store.Put(ctx, owner, item)
}

// Delete 刪除庫存項目
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	return s.store.Delete(ctx, owner, id)
}

// DeductStock 依實際用量扣庫存
// 先用目前的庫存快照排計畫，再把排定的更新以單一批次送出；
// 有問題的紀錄只回報不進批次
func (s *Service) DeductStock(ctx context.Context, owner string, usage []common.UsageRecord) (*DeductionResult, error) {
	items, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	plan := reconcile.PlanDeduction(usage, items)

	updated, err := s.store.ApplyDeduction(ctx, owner, plan.Updates)
	if err != nil {
		return nil, err
	}

	return &DeductionResult{
		UpdatedCount: updated,
		Issues:       plan.Issues,
	}, nil
}

// validateItem 檢查庫存項目欄位
func validateItem(item *common.InventoryItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return common.NewValidationError("item name is required")
	}
	if item.Category == "" {
		item.Category = common.CategoryOther
	}
	if !common.IsValidCategory(item.Category) {
		return common.ErrInvalidCategory
	}
	if item.Qty < 0 {
		return common.NewValidationError("item qty must not be negative")
	}
	if item.Price < 0 {
		return common.NewValidationError("item price must not be negative")
	}
	return nil
}
