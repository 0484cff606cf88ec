package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"finhealth/pkg/core/utils"
	"finhealth/pkg/models"
)

// extractJSONObject pulls the outermost {...} span out of a model response,
// dropping any prose or code fences around it.
func extractJSONObject(response string) (string, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return response[start : end+1], nil
}

// rawInsights accepts both shapes models produce for SWOT lists: plain
// strings or {"point": "..."} objects.
type rawInsights struct {
	Strengths     []json.RawMessage `json:"strengths"`
	Weaknesses    []json.RawMessage `json:"weaknesses"`
	Opportunities []json.RawMessage `json:"opportunities"`
	Threats       []json.RawMessage `json:"threats"`
}

func decodePoints(items []json.RawMessage) []models.InsightPoint {
	points := make([]models.InsightPoint, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			points = append(points, models.InsightPoint{Point: s})
			continue
		}
		var p models.InsightPoint
		if err := json.Unmarshal(item, &p); err == nil && p.Point != "" {
			points = append(points, p)
		}
	}
	return points
}

func parseInsights(response string) (*Insights, error) {
	jsonStr, err := extractJSONObject(response)
	if err != nil {
		return nil, err
	}

	var raw rawInsights
	if _, err := utils.SmartParse(jsonStr, &raw); err != nil {
		return nil, err
	}

	insights := &Insights{
		Strengths:     decodePoints(raw.Strengths),
		Weaknesses:    decodePoints(raw.Weaknesses),
		Opportunities: decodePoints(raw.Opportunities),
		Threats:       decodePoints(raw.Threats),
	}
	if len(insights.Strengths) == 0 && len(insights.Weaknesses) == 0 &&
		len(insights.Opportunities) == 0 && len(insights.Threats) == 0 {
		return nil, fmt.Errorf("response contained no insight points")
	}
	return insights, nil
}

func parseRecommendations(response string) (*Recommendations, error) {
	jsonStr, err := extractJSONObject(response)
	if err != nil {
		return nil, err
	}

	var recs Recommendations
	if _, err := utils.SmartParse(jsonStr, &recs); err != nil {
		return nil, err
	}

	if len(recs.CostOptimization) == 0 && len(recs.RevenueEnhancement) == 0 &&
		len(recs.WorkingCapitalTips) == 0 && len(recs.TaxOptimization) == 0 {
		return nil, fmt.Errorf("response contained no recommendations")
	}
	return &recs, nil
}

func cleanSummary(response string) string {
	cleaned := utils.CleanMarkdown(response)
	if cleaned == "" {
		return "Unable to generate executive summary at this time."
	}
	return cleaned
}
