// Package mcptools exposes the reminder service as MCP tools over stdio.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandeepkv93/lembrete/internal/datemask"
	"github.com/sandeepkv93/lembrete/internal/model"
	"github.com/sandeepkv93/lembrete/internal/reminders"
)

const (
	serverName    = "lembrete"
	serverVersion = "1.0.0"
)

// Server is the MCP server for reminder management.
type Server struct {
	mcpServer *server.MCPServer
	svc       *reminders.Service
	logger    *log.Logger
}

func NewServer(svc *reminders.Service, logger *log.Logger) *Server {
	s := &Server{
		svc:    svc,
		logger: logger,
	}
	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks until stdin is closed.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_lembrete",
			mcp.WithDescription("Create a reminder with a text, a due date and optional priority, category and description"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Reminder text, up to 500 characters")),
			mcp.WithString("due_date", mcp.Required(), mcp.Description("Due date as DD/MM/YYYY")),
			mcp.WithNumber("priority", mcp.Description("0 low, 1 medium, 2 high (default 0)")),
			mcp.WithString("category", mcp.Description("Existing category name")),
			mcp.WithString("description", mcp.Description("Optional markdown description")),
		),
		s.handleAdd,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_lembretes",
			mcp.WithDescription("List reminders ordered by due date, optionally filtered by status and category"),
			mcp.WithString("status", mcp.Description("pending, done or all (default all)")),
			mcp.WithString("category", mcp.Description("Category name")),
		),
		s.handleList,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("update_lembrete",
			mcp.WithDescription("Change the fields given; omitted fields keep their value"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Reminder ID")),
			mcp.WithString("text", mcp.Description("New text")),
			mcp.WithString("due_date", mcp.Description("New due date as DD/MM/YYYY")),
			mcp.WithNumber("priority", mcp.Description("0 low, 1 medium, 2 high")),
			mcp.WithString("category", mcp.Description("Category name; empty string removes the category")),
			mcp.WithString("description", mcp.Description("New description")),
		),
		s.handleUpdate,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("complete_lembrete",
			mcp.WithDescription("Mark a reminder as done, or as pending again with completed=false"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Reminder ID")),
			mcp.WithBoolean("completed", mcp.Description("Completion flag (default true)")),
		),
		s.handleComplete,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_lembrete",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleDelete,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("suggest_lembrete",
			mcp.WithDescription("Suggest up to five completions for a partially typed reminder text"),
			mcp.WithString("input", mcp.Description("Text typed so far; empty returns a random sample")),
		),
		s.handleSuggest,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("format_date",
			mcp.WithDescription("Apply the DD/MM/YYYY input mask to raw text and report whether the date is complete and valid"),
			mcp.WithString("value", mcp.Required(), mcp.Description("Raw typed text")),
		),
		s.handleFormatDate,
	)
}

func (s *Server) handleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := reminders.Input{
		Text:        req.GetString("text", ""),
		DueDate:     req.GetString("due_date", ""),
		Description: req.GetString("description", ""),
	}
	priority, err := priorityArg(req, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in.Priority = priority
	if name := req.GetString("category", ""); name != "" {
		cat, err := s.svc.FindCategory(ctx, name)
		if err != nil {
			return s.toolError("find category", err), nil
		}
		in.CategoryID = &cat.ID
	}

	rem, err := s.svc.Create(ctx, in)
	if err != nil {
		return s.toolError("add reminder", err), nil
	}
	return jsonResult(present(rem))
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, ok := reminders.ParseStatus(req.GetString("status", ""))
	if !ok {
		return mcp.NewToolResultError("status must be pending, done or all"), nil
	}
	filter := reminders.Filter{Status: status}
	if name := req.GetString("category", ""); name != "" {
		cat, err := s.svc.FindCategory(ctx, name)
		if err != nil {
			return s.toolError("find category", err), nil
		}
		filter.CategoryID = &cat.ID
	}

	list, err := s.svc.List(ctx, filter)
	if err != nil {
		return s.toolError("list reminders", err), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}
	out := make([]reminderView, 0, len(list))
	for _, rem := range list {
		out = append(out, present(rem))
	}
	return jsonResult(out)
}

func (s *Server) handleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	current, err := s.svc.Get(ctx, id)
	if err != nil {
		return s.toolError("update reminder", err), nil
	}

	in := reminders.Input{
		Text:        req.GetString("text", current.Text),
		DueDate:     req.GetString("due_date", datemask.Format(current.DueDate)),
		Description: req.GetString("description", current.Description),
		CategoryID:  current.CategoryID,
	}
	if in.Priority, err = priorityArg(req, int(current.Priority)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, ok := req.GetArguments()["category"]; ok {
		in.CategoryID = nil
		if name := req.GetString("category", ""); name != "" {
			cat, err := s.svc.FindCategory(ctx, name)
			if err != nil {
				return s.toolError("find category", err), nil
			}
			in.CategoryID = &cat.ID
		}
	}

	rem, err := s.svc.Update(ctx, id, in)
	if err != nil {
		return s.toolError("update reminder", err), nil
	}
	return jsonResult(present(rem))
}

func (s *Server) handleComplete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	completed := req.GetBool("completed", true)
	if _, err := s.svc.SetCompleted(ctx, id, completed); err != nil {
		return s.toolError("complete reminder", err), nil
	}
	if completed {
		return mcp.NewToolResultText(fmt.Sprintf("Reminder %d marked as done.", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %d marked as pending.", id)), nil
}

func (s *Server) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.Delete(ctx, id); err != nil {
		return s.toolError("delete reminder", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %d deleted.", id)), nil
}

func (s *Server) handleSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.svc.Suggest(ctx, req.GetString("input", ""))
	if err != nil {
		return s.toolError("suggest", err), nil
	}
	return jsonResult(list)
}

func (s *Server) handleFormatDate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.MaskDate(req.GetString("value", "")))
}

// toolError turns a service failure into a tool error and logs the unexpected ones.
func (s *Server) toolError(action string, err error) *mcp.CallToolResult {
	var verr *reminders.ValidationError
	switch {
	case errors.As(err, &verr):
		return mcp.NewToolResultError(fmt.Sprintf("invalid %s: %v", verr.Field, verr.Err))
	case errors.Is(err, reminders.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("%s: not found", action))
	case errors.Is(err, reminders.ErrConflict):
		return mcp.NewToolResultError(fmt.Sprintf("%s: already exists", action))
	default:
		s.logger.Error("mcp tool failed", "action", action, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s", action))
	}
}

func idArg(req mcp.CallToolRequest) (int64, error) {
	v := req.GetFloat("id", -1)
	if v < 1 || v != math.Trunc(v) {
		return 0, errors.New("id is required and must be a positive integer")
	}
	return int64(v), nil
}

func priorityArg(req mcp.CallToolRequest, fallback int) (int, error) {
	v := req.GetFloat("priority", float64(fallback))
	if v != math.Trunc(v) || !model.Priority(int(v)).IsValid() {
		return 0, errors.New("priority must be 0, 1 or 2")
	}
	return int(v), nil
}

type reminderView struct {
	ID          int64  `json:"id"`
	Text        string `json:"text"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
	CategoryID  *int64 `json:"category_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// present renders dates the way users type them.
func present(rem model.Reminder) reminderView {
	return reminderView{
		ID:          rem.ID,
		Text:        rem.Text,
		DueDate:     datemask.Format(rem.DueDate),
		Priority:    rem.Priority.Label(),
		Completed:   rem.Completed,
		CategoryID:  rem.CategoryID,
		Description: rem.Description,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(output)), nil
}
