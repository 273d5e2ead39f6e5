package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/freewrite/pkg/handoff"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListEntriesTool(srv, svc)
	registerReadEntryTool(srv, svc)
	registerWriteEntryTool(srv, svc)
	registerCreateEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerSyncStatusTool(srv, svc)
	registerSetSyncTool(srv, svc)
	registerChatLinkTool(srv, svc)
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List journal entries, newest first, with a short preview of each."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return. Omit for all."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 0)
		entries, err := svc.ListEntries(ctx, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerReadEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"read_entry",
		mcp.WithDescription("Read the full text of an entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry id, id prefix, or filename."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ReadEntry(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerWriteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"write_entry",
		mcp.WithDescription("Replace the text of an entry, or append to it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry id, id prefix, or filename."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Text to write."),
		),
		mcp.WithString("mode",
			mcp.Description("Whether to replace the entry or append to it."),
			mcp.Enum("replace", "append"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID      string `json:"id"`
			Content string `json:"content"`
			Mode    string `json:"mode"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ID == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		var appendText bool
		switch args.Mode {
		case "", "replace":
		case "append":
			appendText = true
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q", args.Mode)), nil
		}

		dto, err := svc.WriteEntry(ctx, args.ID, args.Content, appendText)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_entry",
		mcp.WithDescription("Start a new entry and make it the current one."),
		mcp.WithString("content",
			mcp.Description("Optional initial text."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.CreateEntry(ctx, request.GetString("content", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry file."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry id, id prefix, or filename."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteEntry(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": dto})
	})
}

func registerSyncStatusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"sync_status",
		mcp.WithDescription("Report whether cloud storage is available and in use, and the last sync error."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st, err := svc.SyncStatus()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(st)
	})
}

func registerSetSyncTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_sync",
		mcp.WithDescription("Turn cloud sync on or off. Entries are copied to the newly active storage first."),
		mcp.WithBoolean("enabled",
			mcp.Required(),
			mcp.Description("true to use cloud storage, false to use local storage."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		enabled, err := request.RequireBool("enabled")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.SetSync(ctx, enabled)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerChatLinkTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"chat_link",
		mcp.WithDescription("Build a link that opens a chat assistant with an entry as the first message."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry id, id prefix, or filename."),
		),
		mcp.WithString("provider",
			mcp.Description("Chat assistant to open."),
			mcp.Enum(string(handoff.ChatGPT), string(handoff.Claude)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		provider, err := handoff.ParseProvider(request.GetString("provider", string(handoff.Claude)))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		link, err := svc.ChatLink(ctx, id, provider)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"provider": provider, "url": link})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
