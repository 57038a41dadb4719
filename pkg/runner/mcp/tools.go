package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListSpreadsTool(srv, svc)
	registerSpreadTreeTool(srv, svc)
	registerCreateSpreadTool(srv, svc)
	registerDeleteSpreadTool(srv, svc)
	registerAddEntryTool(srv, svc)
	registerSetTaskStatusTool(srv, svc)
	registerMigrateEntryTool(srv, svc)
	registerMigrateBatchTool(srv, svc)
	registerInboxTool(srv, svc)
	registerSpreadEntriesTool(srv, svc)
	registerMultidayEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
}

func registerListSpreadsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_spreads",
		mcp.WithDescription("List every spread in year, month, day order."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		spreads, err := svc.ListSpreads(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"spreads": spreads,
			"count":   len(spreads),
		})
	})
}

func registerSpreadTreeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"spread_tree",
		mcp.WithDescription("Show the year → month → day hierarchy and the spread to open first."),
		mcp.WithString("on",
			mcp.Description("Day used to pick the initial spread: today, tomorrow, +2d, a weekday or YYYY-MM-DD. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tree, err := svc.Tree(ctx, request.GetString("on", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(tree)
	})
}

func registerCreateSpreadTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_spread",
		mcp.WithDescription("Create a year, month, day or multiday spread. Inbox entries that match it are attached."),
		mcp.WithString("period",
			mcp.Description("Spread period."),
			mcp.Enum("year", "month", "day", "multiday"),
		),
		mcp.WithString("date",
			mcp.Description("Date inside the period, or the first day of a multiday spread. Defaults to today."),
		),
		mcp.WithString("end",
			mcp.Description("Last day of a multiday spread."),
		),
		mcp.WithString("preset",
			mcp.Description("Create a multiday spread from a preset instead of period and dates."),
			mcp.Enum("this-week", "next-week"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Period string `json:"period"`
			Date   string `json:"date"`
			End    string `json:"end"`
			Preset string `json:"preset"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Period == "" && args.Preset == "" {
			return mcp.NewToolResultError("period or preset is required"), nil
		}

		created, adopted, err := svc.CreateSpread(ctx, CreateSpreadOptions{
			Period: args.Period,
			Date:   args.Date,
			End:    args.End,
			Preset: args.Preset,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"spread":  created,
			"adopted": adopted,
		})
	})
}

func registerDeleteSpreadTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_spread",
		mcp.WithDescription("Delete a spread. Its entries move to the nearest parent spread or the Inbox; none are deleted."),
		mcp.WithString("spread",
			mcp.Required(),
			mcp.Description("Spread id or name such as 2026, January 2026 or 2026-01-05."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("spread")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		deleted, moves, err := svc.DeleteSpread(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"deleted": deleted,
			"moves":   moves,
		})
	})
}

func registerAddEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_entry",
		mcp.WithDescription("Add a task, note or event. Tasks and notes land on the best matching spread or the Inbox."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Entry title."),
		),
		mcp.WithString("kind",
			mcp.Description("Entry kind (default task)."),
			mcp.Enum("task", "note", "event"),
		),
		mcp.WithString("content",
			mcp.Description("Note body."),
		),
		mcp.WithString("period",
			mcp.Description("Preferred period for tasks and notes (default day)."),
			mcp.Enum("year", "month", "day"),
		),
		mcp.WithString("date",
			mcp.Description("Preferred date, or the first day of an event. Defaults to today."),
		),
		mcp.WithString("end",
			mcp.Description("Last day of an event."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Kind    string `json:"kind"`
			Title   string `json:"title"`
			Content string `json:"content"`
			Period  string `json:"period"`
			Date    string `json:"date"`
			End     string `json:"end"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddEntry(ctx, AddEntryOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetTaskStatusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_task_status",
		mcp.WithDescription("Complete, cancel or reopen a task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Status change to apply."),
			mcp.Enum("complete", "cancel", "reopen"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		action, err := request.RequireString("action")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetTaskStatus(ctx, id, action)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMigrateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"migrate_entry",
		mcp.WithDescription("Migrate a task or note from one spread to another. The source keeps a migrated record."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to migrate."),
		),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Source spread id or name."),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Destination spread id or name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		from, err := request.RequireString("from")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		to, err := request.RequireString("to")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.MigrateEntry(ctx, id, from, to)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMigrateBatchTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"migrate_batch",
		mcp.WithDescription("Bring open tasks from parent spreads onto a spread."),
		mcp.WithString("spread",
			mcp.Required(),
			mcp.Description("Destination spread id or name."),
		),
		mcp.WithString("ids",
			mcp.Description("Comma separated task ids. Every candidate is migrated when omitted."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("spread")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var ids []string
		for _, id := range strings.Split(request.GetString("ids", ""), ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		result, err := svc.MigrateBatch(ctx, ref, ids)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(result)
	})
}

func registerInboxTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"inbox",
		mcp.WithDescription("List tasks and notes that no spread holds yet."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := svc.Inbox(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerSpreadEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"spread_entries",
		mcp.WithDescription("List the entries shown on a spread."),
		mcp.WithString("spread",
			mcp.Required(),
			mcp.Description("Spread id, name or today."),
		),
		mcp.WithString("mode",
			mcp.Description("conventional shows assignment history; traditional shows preferred dates only."),
			mcp.Enum("conventional", "traditional"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("spread")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sp, entries, err := svc.SpreadEntries(ctx, ref, request.GetString("mode", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"spread":  sp,
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerMultidayEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"multiday_entries",
		mcp.WithDescription("Aggregate the entries whose preferred dates fall inside a multiday spread."),
		mcp.WithString("spread",
			mcp.Required(),
			mcp.Description("Multiday spread id."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("spread")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sp, entries, err := svc.MultidayEntries(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"spread":  sp,
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
