package common

import (
	"fmt"
	"strings"
	"time"
)

// Category 庫存分類（與前端下拉選單一致）
type Category string

const (
	CategoryHoney       Category = "Honey"
	CategoryYeast       Category = "Yeast"
	CategoryNutrient    Category = "Nutrient"
	CategoryMaltExtract Category = "Malt Extract"
	CategoryFruit       Category = "Fruit"
	CategorySpice       Category = "Spice"
	CategoryAdjunct     Category = "Adjunct"
	CategoryChemical    Category = "Chemical"
	CategoryWater       Category = "Water"
	CategoryOther       Category = "Other"
)

// Categories 所有合法分類
var Categories = []Category{
	CategoryHoney, CategoryYeast, CategoryNutrient, CategoryMaltExtract,
	CategoryFruit, CategorySpice, CategoryAdjunct, CategoryChemical,
	CategoryWater, CategoryOther,
}

// IsValidCategory 檢查分類是否合法
func IsValidCategory(c Category) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// InventoryItem 庫存項目
// Price 是目前在庫 Qty 的總價，不是單價；單價 = Price / Qty
type InventoryItem struct {
	ID             string     `json:"id" msgpack:"id"`
	Name           string     `json:"name" msgpack:"name"`
	Category       Category   `json:"category" msgpack:"category"`
	Qty            float64    `json:"qty" msgpack:"qty"`
	Unit           string     `json:"unit" msgpack:"unit"`
	Price          float64    `json:"price" msgpack:"price"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty" msgpack:"expiration_date"`
}

// UsageRecord 釀造日實際用量紀錄
type UsageRecord struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// FormatInventoryItems 格式化庫存列表（用於組 prompt）
func FormatInventoryItems(items []InventoryItem) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s (%s): %g %s\n",
			item.Name, item.Category, item.Qty, item.Unit))
	}
	return sb.String()
}
