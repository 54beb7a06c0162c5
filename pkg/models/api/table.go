package api

type TableRow struct {
	OrderDate    string  `json:"order_date"`
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	Sales        float64 `json:"sales"`
	Quantity     int     `json:"quantity"`
	Profit       float64 `json:"profit"`
	CustomerName string  `json:"customer_name"`
	Region       string  `json:"region"`
}

type TableView struct {
	Rows          []TableRow `json:"rows"`
	TotalRows     int        `json:"total_rows"`
	TotalPages    int        `json:"total_pages"`
	CurrentPage   int        `json:"current_page"`
	ItemsPerPage  int        `json:"items_per_page"`
	SearchQuery   string     `json:"search_query"`
	SortColumn    string     `json:"sort_column"`
	SortDirection string     `json:"sort_direction"`
}

type SearchRequest struct {
	Query string `json:"query"`
}
