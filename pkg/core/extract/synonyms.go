package extract

// synonymEntry maps a canonical line-item key to the statement labels that
// name it in the wild, in priority order. Matching is exact string equality
// after lowercasing and trimming — the first label present in the table wins.
type synonymEntry struct {
	Key    string
	Labels []string
}

// synonymTable is evaluated top to bottom once per table. Order inside each
// Labels slice is a compatibility contract: changing it changes which cell a
// statement resolves to.
var synonymTable = []synonymEntry{
	{"revenue", []string{"revenue", "sales", "total revenue", "total sales", "net sales", "net revenue"}},
	{"gross_profit", []string{"gross profit", "gross margin"}},
	{"net_profit", []string{"net profit", "net income", "net earnings", "profit after tax", "net profit after tax"}},
	{"operating_profit", []string{"operating profit", "operating income", "ebit"}},
	{"ebitda", []string{"ebitda"}},
	{"total_assets", []string{"total assets", "assets"}},
	{"current_assets", []string{"current assets", "total current assets"}},
	{"cash", []string{"cash", "cash and cash equivalents", "cash & equivalents"}},
	{"inventory", []string{"inventory", "inventories"}},
	{"accounts_receivable", []string{"accounts receivable", "receivables", "trade receivables"}},
	{"total_liabilities", []string{"total liabilities", "liabilities"}},
	{"current_liabilities", []string{"current liabilities", "total current liabilities"}},
	{"accounts_payable", []string{"accounts payable", "payables", "trade payables"}},
	{"long_term_debt", []string{"long-term debt", "long term debt", "debt"}},
	{"equity", []string{"equity", "total equity", "shareholders equity", "shareholders' equity", "owners equity"}},
	{"cogs", []string{"cogs", "cost of goods sold", "cost of sales"}},
}

// labelColumnTokens mark a column as holding line-item names.
var labelColumnTokens = []string{"account", "description", "item", "category", "line"}
