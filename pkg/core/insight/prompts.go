package insight

import (
	"encoding/json"
	"fmt"
)

func marshalIndent(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func insightsPrompt(financialData map[string]interface{}, company CompanyInfo) string {
	name := company.Name
	if name == "" {
		name = "N/A"
	}
	industry := company.Industry
	if industry == "" {
		industry = "N/A"
	}

	return fmt.Sprintf(`You are a financial analyst expert. Analyze the following financial data and provide comprehensive insights.

Company Information:
- Name: %s
- Industry: %s

Financial Data:
%s

Provide a detailed analysis covering:
1. STRENGTHS: List 3-5 key financial strengths
2. WEAKNESSES: List 3-5 areas of concern
3. OPPORTUNITIES: List 3-5 growth opportunities
4. THREATS: List 3-5 potential risks

Format your response as JSON with keys: strengths, weaknesses, opportunities, threats
Each should be an array of strings.`, name, industry, marshalIndent(financialData))
}

func recommendationsPrompt(financialData map[string]interface{}, industry string) string {
	return fmt.Sprintf(`As a financial advisor, provide actionable recommendations for this %s business.

Financial Data:
%s

Provide specific recommendations in the following categories:
1. COST_OPTIMIZATION: 3-5 ways to reduce costs
2. REVENUE_ENHANCEMENT: 3-5 ways to increase revenue
3. WORKING_CAPITAL: 3-5 ways to optimize working capital
4. TAX_OPTIMIZATION: 3-5 tax planning strategies

Format as JSON with keys: cost_optimization, revenue_enhancement, working_capital_tips, tax_optimization
Each should be an array of objects with 'title' and 'description' fields.`, industry, marshalIndent(financialData))
}

func summaryPrompt(assessmentData map[string]interface{}, language string) string {
	langInstruction := ""
	switch {
	case language == "hi":
		langInstruction = "Write the summary in Hindi language."
	case language != "" && language != "en":
		langInstruction = fmt.Sprintf("Write the summary in %s language.", language)
	}

	return fmt.Sprintf(`Create a concise executive summary of this financial health assessment.

Assessment Data:
%s

The summary should:
- Be 3-4 paragraphs
- Highlight the overall financial health score and risk level
- Mention key strengths and concerns
- Provide 2-3 top recommendations

%s`, marshalIndent(assessmentData), langInstruction)
}
