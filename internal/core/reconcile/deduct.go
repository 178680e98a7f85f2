package reconcile

import (
	"fmt"

	"meadery-assistant/internal/pkg/common"
)

// ScheduledUpdate 排入批次的單筆庫存更新
type ScheduledUpdate struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	NewQty float64 `json:"new_qty"`
}

// DeductionPlan 扣庫存計畫：排定的更新與被排除的紀錄
// 有問題的紀錄只是不進批次，不會讓整個批次失敗
type DeductionPlan struct {
	Updates []ScheduledUpdate `json:"updates"`
	Issues  []string          `json:"issues"`
}

// PlanDeduction 依實際用量決定哪些庫存更新可以進批次
// 比對規則與成本計算相同（嚴格相符）：扣錯庫存的代價太高
// 扣到負數的紀錄整筆排除，不做 clamp；純函式，不改動 inventory
func PlanDeduction(usage []common.UsageRecord, inventory []common.InventoryItem) DeductionPlan {
	plan := DeductionPlan{
		Updates: []ScheduledUpdate{},
		Issues:  []string{},
	}

	for _, rec := range usage {
		item := StrictMatch(rec.Name, inventory)
		if item == nil {
			plan.Issues = append(plan.Issues, fmt.Sprintf("%s (not found)", rec.Name))
			continue
		}
		newQty := item.Qty - rec.Quantity
		if newQty < 0 {
			plan.Issues = append(plan.Issues, fmt.Sprintf("%s (low stock)", rec.Name))
			continue
		}
		plan.Updates = append(plan.Updates, ScheduledUpdate{
			ID:     item.ID,
			Name:   item.Name,
			NewQty: newQty,
		})
	}

	return plan
}
