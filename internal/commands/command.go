package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/lembrete/internal/datemask"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeUndo     Type = "undo"
	TypeDelete   Type = "delete"
	TypeShow     Type = "show"
	TypeCategory Type = "category"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs carries a masked DD/MM/YYYY date; calendar validity is checked on save.
type AddArgs struct {
	DueDate string
	Text    string
}

type TargetArgs struct {
	ID int64
}

type ShowArgs struct {
	Status   string
	Category string
}

type CategoryArgs struct {
	Name  string
	Color string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Target   *TargetArgs
	Show     *ShowArgs
	Category *CategoryArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeUndo, TypeDelete:
		return parseTarget(input, Type(head), args)
	case TypeShow:
		return parseShow(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a date and a text"}
	}
	due := datemask.FormatInput(args[0])
	if len(due) != datemask.Length {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("date must be DD/MM/YYYY, got %q", args[0])}
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{DueDate: due, Text: text}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one reminder id", typ)}
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid reminder id: %s", args[0])}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires pending, done or all"}
	}
	status := strings.ToLower(args[0])
	switch status {
	case "pending", "done", "all":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown status: %s", args[0])}
	}
	category := ""
	for i, arg := range args[1:] {
		if strings.HasPrefix(strings.ToLower(arg), "cat:") {
			rest := append([]string{arg[len("cat:"):]}, args[i+2:]...)
			category = strings.TrimSpace(strings.Join(rest, " "))
			break
		}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Status: status, Category: category}}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	color := ""
	if n := len(args); n > 0 && strings.HasPrefix(args[n-1], "#") {
		color = args[n-1]
		args = args[:n-1]
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires a name"}
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Name: name, Color: color}}, nil
}
