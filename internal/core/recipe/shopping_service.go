package recipe

import (
	"fmt"
	"strings"

	"meadery-assistant/internal/core/reconcile"
	"meadery-assistant/internal/pkg/common"
)

// ShoppingService 購物清單服務
// 與成本計算不同，這裡用寬鬆比對：漏報「你已經有了」只會多買一次，
// 但成本那邊算錯價會直接誤導使用者
type ShoppingService struct{}

// NewShoppingService 創建購物清單服務
func NewShoppingService() *ShoppingService {
	return &ShoppingService{}
}

// ShoppingItem 購物清單單筆項目，數量一律以基準單位表示
type ShoppingItem struct {
	Name         string  `json:"name"`
	RequiredQty  float64 `json:"required_qty"`
	RequiredUnit string  `json:"required_unit"`
	InStockQty   float64 `json:"in_stock_qty"`
	ShortfallQty float64 `json:"shortfall_qty"`
	Covered      bool    `json:"covered"`
}

// ShoppingList 購物清單
type ShoppingList struct {
	Items    []ShoppingItem `json:"items"`
	Warnings []string       `json:"warnings"`
}

// BuildList 由食譜 markdown 與庫存快照組購物清單
// 寬鬆比對命中多筆庫存時照舊取第一筆計算，但一定要加警告，不能默默挑
func (s *ShoppingService) BuildList(markdown string, inventory []common.InventoryItem) ShoppingList {
	list := ShoppingList{
		Items:    []ShoppingItem{},
		Warnings: []string{},
	}

	for _, req := range reconcile.ExtractIngredients(markdown) {
		need := reconcile.Normalize(req.Quantity, req.Unit)
		entry := ShoppingItem{
			Name:         req.Name,
			RequiredQty:  need.Quantity,
			RequiredUnit: need.Unit,
		}

		matches := reconcile.FuzzyMatches(req.Name, inventory)
		if len(matches) == 0 {
			entry.ShortfallQty = need.Quantity
			list.Items = append(list.Items, entry)
			continue
		}

		if len(matches) > 1 {
			names := make([]string, 0, len(matches))
			for _, m := range matches {
				names = append(names, m.Name)
			}
			list.Warnings = append(list.Warnings,
				fmt.Sprintf("'%s': multiple inventory items match (%s)", req.Name, strings.Join(names, ", ")))
		}

		stock := matches[0]
		have := reconcile.Normalize(stock.Qty, stock.Unit)
		if have.Unit != need.Unit {
			// 單位不相容就無法判斷覆蓋量，整筆當作待購
			entry.ShortfallQty = need.Quantity
			list.Warnings = append(list.Warnings,
				fmt.Sprintf("'%s': Mismatch (Recipe: %s, Stock: %s)", req.Name, need.Unit, have.Unit))
			list.Items = append(list.Items, entry)
			continue
		}

		entry.InStockQty = have.Quantity
		if have.Quantity >= need.Quantity {
			entry.Covered = true
		} else {
			entry.ShortfallQty = need.Quantity - have.Quantity
		}
		list.Items = append(list.Items, entry)
	}

	return list
}
