package reconcile

import (
	"strings"

	"meadery-assistant/internal/pkg/common"
)

// StrictMatch 以名稱完全相符（不分大小寫、去頭尾空白）找庫存項目
// 成本計算與扣庫存都只用這個：算錯價比漏掉折扣更糟
func StrictMatch(name string, inventory []common.InventoryItem) *common.InventoryItem {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil
	}
	for i := range inventory {
		if strings.ToLower(strings.TrimSpace(inventory[i].Name)) == key {
			return &inventory[i]
		}
	}
	return nil
}

// FuzzyMatches 以雙向子字串包含（不分大小寫）找出所有候選庫存項目
// 只給購物清單用：寧可多報「你已經有了」，也不要漏報
// 回傳全部候選而非第一筆，命中多筆時由呼叫端自行警告，不能默默挑一個
func FuzzyMatches(name string, inventory []common.InventoryItem) []*common.InventoryItem {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil
	}
	var matches []*common.InventoryItem
	for i := range inventory {
		stock := strings.ToLower(strings.TrimSpace(inventory[i].Name))
		if stock == "" {
			continue
		}
		if strings.Contains(stock, key) || strings.Contains(key, stock) {
			matches = append(matches, &inventory[i])
		}
	}
	return matches
}
