package reconcile

import (
	"fmt"
	"math"

	"meadery-assistant/internal/pkg/common"
)

// packetGramThreshold 小劑量粉包門檻：需求 ≤ 15g 且庫存以包計時，整包使用
// （酵母營養劑這類粉包是整包買整包用的，含 15g 整，超過就回報單位不符）
const packetGramThreshold = 15.0

// CostResult 成本計算結果
// Cost 只累計「有比對到、有價格、單位相容」的原料；
// 其餘每筆原料恰好產生一條警告並貢獻 0
type CostResult struct {
	Cost     float64  `json:"cost"`
	Warnings []string `json:"warnings"`
}

// CalculateCost 計算食譜對照庫存的成本與短缺警告
// batchSize 僅為了與下游（每公升成本顯示）介面對稱而收，縮放由呼叫端處理
// 純函式：不改動 inventory，也不讀取任何外部狀態
func CalculateCost(markdown string, inventory []common.InventoryItem, batchSize float64) CostResult {
	_ = batchSize

	result := CostResult{Warnings: []string{}}

	for _, req := range ExtractIngredients(markdown) {
		item := StrictMatch(req.Name, inventory)
		if item == nil || item.Price == 0 || item.Qty <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("'%s': Not found in inventory or no price.", req.Name))
			continue
		}

		need := Normalize(req.Quantity, req.Unit)
		have := Normalize(item.Qty, item.Unit)

		switch {
		case need.Unit == have.Unit:
			// Price 是在庫總價，單價 = Price / 正規化後在庫量
			contribution := need.Quantity * (item.Price / have.Quantity)
			if math.IsNaN(contribution) {
				contribution = 0
			}
			result.Cost += contribution

		case need.Unit == UnitGrams && have.Unit == UnitPackets && need.Quantity <= packetGramThreshold:
			// 一包的成本
			result.Cost += item.Price / item.Qty

		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("'%s': Mismatch (Recipe: %s, Stock: %s)", req.Name, need.Unit, have.Unit))
		}
	}

	return result
}
