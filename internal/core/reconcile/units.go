package reconcile

import "strings"

// 正規化後的基準單位
const (
	UnitGrams       = "g"
	UnitMilliliters = "ml"
	UnitPackets     = "packets"
	UnitItems       = "items"
)

// Amount 以基準單位表示的數量
// 只有 Unit 相同的兩個 Amount 才可以比較，否則必須回報單位不符
type Amount struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type unitRule struct {
	factor float64
	unit   string
}

// unitTable 單位換算的唯一依據，其他元件不得自行換算
var unitTable = map[string]unitRule{
	"kg":      {1000, UnitGrams},
	"l":       {1000, UnitMilliliters},
	"liter":   {1000, UnitMilliliters},
	"liters":  {1000, UnitMilliliters},
	"packet":  {1, UnitPackets},
	"packets": {1, UnitPackets},
	"sachet":  {1, UnitPackets},
	"pkg":     {1, UnitPackets},
	"pack":    {1, UnitPackets},
	"item":    {1, UnitItems},
	"items":   {1, UnitItems},
	"st":      {1, UnitItems},
	"piece":   {1, UnitItems},
	"pieces":  {1, UnitItems},
}

// Normalize 將 (數量, 單位) 轉成基準單位
// 未知單位原樣通過，只把單位轉成小寫；對已是基準單位的輸入是 no-op
func Normalize(quantity float64, unit string) Amount {
	key := strings.ToLower(strings.TrimSpace(unit))
	if rule, ok := unitTable[key]; ok {
		return Amount{Quantity: quantity * rule.factor, Unit: rule.unit}
	}
	return Amount{Quantity: quantity, Unit: key}
}
