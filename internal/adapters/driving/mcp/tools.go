package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

// CategoriesInput is the input schema for the list_categories tool.
type CategoriesInput struct{}

// CategoriesOutput is the output schema for the list_categories tool.
type CategoriesOutput struct {
	Categories []string `json:"categories"`
}

// ProductsInput is the input schema for the list_products tool.
type ProductsInput struct {
	Category string `json:"category" jsonschema:"the spending category, e.g. Market"`
}

// ProductsOutput is the output schema for the list_products tool.
type ProductsOutput struct {
	Products []ProductOutput `json:"products"`
	Count    int             `json:"count"`
}

// ProductOutput is one product group.
type ProductOutput struct {
	Label        string `json:"label"`
	Key          string `json:"key"`
	Purchases    int    `json:"purchases"`
	LowestPrice  string `json:"lowest_price"`
	HighestPrice string `json:"highest_price"`
}

// HistoryInput is the input schema for the product_history tool.
type HistoryInput struct {
	Category string `json:"category" jsonschema:"the spending category the product belongs to"`
	Product  string `json:"product" jsonschema:"the product label as returned by list_products"`
}

// HistoryOutput is the output schema for the product_history tool.
type HistoryOutput struct {
	Product   string          `json:"product"`
	Purchases []PurchaseEntry `json:"purchases"`
}

// PurchaseEntry is one purchase of a product.
type PurchaseEntry struct {
	Date        string `json:"date"`
	Merchant    string `json:"merchant"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	ReceiptID   string `json:"receipt_id"`
}

// SummaryInput is the input schema for the spending_summary tool.
type SummaryInput struct{}

// SummaryOutput is the output schema for the spending_summary tool.
type SummaryOutput struct {
	TotalSpent   string          `json:"total_spent"`
	ReceiptCount int             `json:"receipt_count"`
	Categories   []CategoryTotal `json:"categories"`
	Achievements []string        `json:"achievements_unlocked"`
}

// CategoryTotal is the spending within one category.
type CategoryTotal struct {
	Category     string `json:"category"`
	TotalSpent   string `json:"total_spent"`
	ReceiptCount int    `json:"receipt_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the spending categories that have receipts",
	}, s.handleCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_products",
		Description: "Group a category's line items into products and list them with price ranges",
	}, s.handleProducts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "product_history",
		Description: "Show every purchase of a product, most recent first",
	}, s.handleHistory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spending_summary",
		Description: "Total spending overall and per category, plus unlocked achievements",
	}, s.handleSummary)
}

func (s *Server) handleCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CategoriesInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	categories, err := s.ports.Analysis.Categories(ctx, s.ports.user())
	if err != nil {
		return nil, CategoriesOutput{}, err
	}
	if categories == nil {
		categories = []string{}
	}
	return nil, CategoriesOutput{Categories: categories}, nil
}

func (s *Server) handleProducts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProductsInput,
) (*mcp.CallToolResult, ProductsOutput, error) {
	if input.Category == "" {
		return nil, ProductsOutput{}, errors.New("category is required")
	}

	products, err := s.ports.Analysis.Products(ctx, s.ports.user(), input.Category)
	if errors.Is(err, domain.ErrEmptyCategory) {
		return nil, ProductsOutput{Products: []ProductOutput{}}, nil
	}
	if err != nil {
		return nil, ProductsOutput{}, err
	}

	output := ProductsOutput{
		Products: make([]ProductOutput, len(products)),
		Count:    len(products),
	}
	for i, p := range products {
		output.Products[i] = ProductOutput{
			Label:        p.Label,
			Key:          p.NormalizedKey,
			Purchases:    p.Purchases,
			LowestPrice:  p.LowestPrice.StringFixed(2),
			HighestPrice: p.HighestPrice.StringFixed(2),
		}
	}
	return nil, output, nil
}

func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if input.Category == "" || input.Product == "" {
		return nil, HistoryOutput{}, errors.New("category and product are required")
	}

	entries, err := s.ports.Analysis.History(ctx, s.ports.user(), input.Category, input.Product)
	if err != nil {
		return nil, HistoryOutput{}, fmt.Errorf("history for %q: %w", input.Product, err)
	}

	output := HistoryOutput{
		Product:   input.Product,
		Purchases: make([]PurchaseEntry, len(entries)),
	}
	for i, e := range entries {
		output.Purchases[i] = PurchaseEntry{
			Date:        e.Date,
			Merchant:    e.MerchantName,
			Description: e.Description,
			Quantity:    e.Quantity.String(),
			UnitPrice:   e.UnitPrice.StringFixed(2),
			ReceiptID:   e.ReceiptID,
		}
	}
	return nil, output, nil
}

func (s *Server) handleSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SummaryInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	summary, err := s.ports.Analysis.Summary(ctx, s.ports.user())
	if err != nil {
		return nil, SummaryOutput{}, err
	}

	output := SummaryOutput{
		TotalSpent:   summary.TotalSpent.StringFixed(2),
		ReceiptCount: summary.ReceiptCount,
		Categories:   make([]CategoryTotal, len(summary.Categories)),
		Achievements: []string{},
	}
	for _, a := range summary.Achievements {
		if a.Unlocked {
			output.Achievements = append(output.Achievements, a.Title)
		}
	}
	for i, c := range summary.Categories {
		output.Categories[i] = CategoryTotal{
			Category:     c.Category,
			TotalSpent:   c.TotalSpent.StringFixed(2),
			ReceiptCount: c.ReceiptCount,
		}
	}
	return nil, output, nil
}
