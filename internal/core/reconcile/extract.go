package reconcile

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"meadery-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// Requirement 從食譜 markdown 內嵌 JSON 解析出的單筆原料需求
type Requirement struct {
	Name     string  `json:"ingredient"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// looseRequirement 寬鬆版中繼結構：quantity 可能是數字或字串
type looseRequirement struct {
	Ingredient string          `json:"ingredient"`
	Quantity   json.RawMessage `json:"quantity"`
	Unit       string          `json:"unit"`
}

var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")

// ExtractIngredients 從食譜 markdown 取出內嵌的原料 JSON 陣列
// 找不到陣列或清理後仍解析失敗時回傳空列表，絕不回傳錯誤：
// 呼叫端（購物清單、成本計算）拿到空結果仍要能正常渲染
func ExtractIngredients(markdown string) []Requirement {
	raw := locateArray(markdown)
	if raw == "" {
		return []Requirement{}
	}

	loose, err := parseLoose(raw)
	if err != nil {
		// LLM 輸出最常見的語法缺陷是多餘的逗號，修掉後重試一次
		loose, err = parseLoose(common.StripTrailingCommas(raw))
		if err != nil {
			common.LogDebug("原料 JSON 解析失敗，降級為空列表", zap.Error(err))
			return []Requirement{}
		}
	}

	reqs := make([]Requirement, 0, len(loose))
	for _, lr := range loose {
		reqs = append(reqs, Requirement{
			Name:     strings.TrimSpace(lr.Ingredient),
			Quantity: parseQuantity(lr.Quantity),
			Unit:     strings.TrimSpace(lr.Unit),
		})
	}
	return reqs
}

// locateArray 找出第一段 JSON 陣列，優先取 ```json 圍欄內的內容
func locateArray(markdown string) string {
	if m := fencedJSONPattern.FindStringSubmatch(markdown); m != nil {
		return m[1]
	}
	start := strings.Index(markdown, "[")
	end := strings.LastIndex(markdown, "]")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return markdown[start : end+1]
}

func parseLoose(raw string) ([]looseRequirement, error) {
	var loose []looseRequirement
	if err := common.ParseJSON(raw, &loose); err != nil {
		return nil, err
	}
	return loose, nil
}

// parseQuantity 容錯解析數量：接受數字或數字字串，失敗與負值一律視為 0
func parseQuantity(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	q, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(q) || q < 0 {
		return 0
	}
	return q
}
