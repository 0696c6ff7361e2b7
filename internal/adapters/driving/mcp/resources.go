package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/receipta/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for receipta resources.
	uriScheme = "receipta://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "receipts",
		Name:        "receipts",
		Description: "The user's receipts, most recent first",
		MIMEType:    "application/json",
	}, s.handleReceiptsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "receipts/{receiptId}",
		Name:        "receipt",
		Description: "A single receipt with its line items",
		MIMEType:    "application/json",
	}, s.handleReceiptResource)
}

type receiptInfo struct {
	ID       string     `json:"id"`
	Merchant string     `json:"merchant"`
	Date     string     `json:"date"`
	Time     string     `json:"time,omitempty"`
	Category string     `json:"category"`
	Total    string     `json:"total"`
	Items    []itemInfo `json:"items,omitempty"`
}

type itemInfo struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

func toReceiptInfo(r *domain.Receipt, withItems bool) receiptInfo {
	info := receiptInfo{
		ID:       r.ID,
		Merchant: r.MerchantName,
		Date:     r.TransactionDate,
		Time:     r.TransactionTime,
		Category: r.Category,
		Total:    r.TotalAmount.StringFixed(2),
	}
	if withItems {
		for _, item := range r.Items {
			info.Items = append(info.Items, itemInfo{
				Description: item.Description,
				Quantity:    item.Quantity.String(),
				UnitPrice:   item.UnitPrice.StringFixed(2),
			})
		}
	}
	return info
}

// handleReceiptsResource lists the user's receipts without line items.
func (s *Server) handleReceiptsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Receipt == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	receipts, err := s.ports.Receipt.List(ctx, s.ports.user())
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}

	infos := make([]receiptInfo, len(receipts))
	for i := range receipts {
		infos[i] = toReceiptInfo(&receipts[i], false)
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling receipts: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleReceiptResource returns one receipt with its line items.
func (s *Server) handleReceiptResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Receipt == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractReceiptID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	receipt, err := s.ports.Receipt.Get(ctx, s.ports.user(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}

	data, err := json.MarshalIndent(toReceiptInfo(receipt, true), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling receipt: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractReceiptID extracts the receipt ID from a URI like receipta://receipts/{receiptId}.
func extractReceiptID(uri string) string {
	const prefix = uriScheme + "receipts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
