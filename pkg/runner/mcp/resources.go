package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSpreadsResource(srv, svc)
	registerInboxResource(srv, svc)
	registerSpreadTemplate(srv, svc)
	registerEntryTemplate(srv, svc)
}

func registerSpreadsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"spreads://spreads",
		"Spreads",
		mcp.WithResourceDescription("Every spread in the journal in hierarchy order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		spreads, err := svc.ListSpreads(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"spreads": spreads,
			"count":   len(spreads),
		})
	})
}

func registerInboxResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"spreads://inbox",
		"Inbox",
		mcp.WithResourceDescription("Tasks and notes without a spread."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := svc.Inbox(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerSpreadTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"spreads://spreads/{id}",
		"Spread Entries",
		mcp.WithTemplateDescription("Entries shown on a spread."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("spread id is required")
		}
		sp, entries, err := svc.SpreadEntries(ctx, id, "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"spread":  sp,
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerEntryTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"spreads://entries/{id}",
		"Entry Details",
		mcp.WithTemplateDescription("Detailed information about a single entry."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("entry id is required")
		}
		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"entry": dto,
		})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
