package recipe

import (
	"context"
	"fmt"
	"strings"

	"meadery-assistant/internal/core/ai/service"
	"meadery-assistant/internal/core/reconcile"
	"meadery-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// GenerationService 蜂蜜酒食譜生成服務
type GenerationService struct {
	aiService *service.Service
}

// NewGenerationService 創建食譜生成服務
func NewGenerationService(aiService *service.Service) *GenerationService {
	return &GenerationService{
		aiService: aiService,
	}
}

// GenerationRequest 食譜生成請求
type GenerationRequest struct {
	Style                string   `json:"style"`
	BatchSizeL           float64  `json:"batch_size_l"`
	TargetABV            float64  `json:"target_abv,omitempty"`
	PreferredIngredients []string `json:"preferred_ingredients,omitempty"`
	Notes                string   `json:"notes,omitempty"`
}

// GeneratedRecipe 生成結果：完整 markdown 與解析出的原料需求
type GeneratedRecipe struct {
	Markdown     string                  `json:"markdown"`
	Requirements []reconcile.Requirement `json:"requirements"`
}

// Generate 生成蜂蜜酒食譜
// 回應必須內嵌 ```json 圍欄的原料陣列；解析不出原料時帶原因重試一次
func (s *GenerationService) Generate(ctx context.Context, req *GenerationRequest, inventory []common.InventoryItem) (*GeneratedRecipe, error) {
	style := strings.TrimSpace(req.Style)
	if style == "" {
		style = "traditional mead"
	}
	batchSize := req.BatchSizeL
	if batchSize <= 0 {
		batchSize = 5
	}

	prompt := s.buildPrompt(style, batchSize, req, inventory)
	common.LogDebug("Generate 組裝的 prompt", zap.String("prompt", prompt))

	const maxTries = 2
	reason := ""
	for attempt := 1; attempt <= maxTries; attempt++ {
		p := prompt
		if reason != "" {
			p += fmt.Sprintf("\n\nThe previous answer was rejected: %s. Follow every requirement exactly this time.", reason)
		}

		resp, err := s.aiService.ProcessRequest(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("AI service error: %w", err)
		}
		if resp == nil || resp.Content == "" {
			return nil, fmt.Errorf("empty AI response")
		}

		markdown := strings.TrimSpace(resp.Content)
		requirements := reconcile.ExtractIngredients(markdown)
		if len(requirements) == 0 {
			reason = "no parseable ingredients JSON array was found in the response"
			common.LogWarn("食譜回應缺少原料 JSON，重新生成",
				zap.Int("attempt", attempt),
			)
			continue
		}

		return &GeneratedRecipe{
			Markdown:     markdown,
			Requirements: requirements,
		}, nil
	}

	return nil, fmt.Errorf("model failed to produce a recipe with a parseable ingredients array")
}

// buildPrompt 組裝食譜生成 prompt
func (s *GenerationService) buildPrompt(style string, batchSize float64, req *GenerationRequest, inventory []common.InventoryItem) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`You are an experienced meadmaker. Write a complete recipe as markdown for the following batch.

Style: %s
Batch size: %g liters
`, style, batchSize))

	if req.TargetABV > 0 {
		sb.WriteString(fmt.Sprintf("Target ABV: %g%%\n", req.TargetABV))
	}
	if len(req.PreferredIngredients) > 0 {
		sb.WriteString(fmt.Sprintf("Preferred ingredients: %s\n", strings.Join(req.PreferredIngredients, ", ")))
	}
	if req.Notes != "" {
		sb.WriteString(fmt.Sprintf("Additional notes: %s\n", req.Notes))
	}
	if len(inventory) > 0 {
		sb.WriteString("\nIngredients already on hand (prefer these, use their exact names):\n")
		sb.WriteString(common.FormatInventoryItems(inventory))
	}

	sb.WriteString(`
Requirements:
1. Only use ingredients that make sense for this style, do not invent equipment the recipe does not need
2. Include sections for ingredients, equipment, step-by-step process, fermentation schedule and aging notes
3. Embed the full ingredient list as a JSON array inside a fenced code block labeled json
4. Each array element must be {"ingredient": string, "quantity": number, "unit": string}
5. quantity must be a plain number without thousands separators, never a string
6. Use metric units: kg, g, l, ml, or packet for dry yeast and nutrient sachets
7. All JSON keys and string values must use double quotes
8. Output exactly one JSON array, do not repeat it elsewhere in the document
9. When an on-hand ingredient fits the recipe, spell its name exactly as listed above
`)

	return sb.String()
}
