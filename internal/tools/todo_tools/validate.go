package todo_tools

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report argument names as the client sent them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type taskInput struct {
	Task string `json:"task" validate:"required"`
}

type setupInput struct {
	Token      string `json:"token" validate:"required"`
	DatabaseID string `json:"database_id" validate:"required"`
}

func parseTaskInput(request mcp.CallToolRequest) (taskInput, error) {
	args := request.GetArguments()
	in := taskInput{Task: stringArg(args, "task")}
	return in, validateInput(in)
}

func parseSetupInput(request mcp.CallToolRequest) (setupInput, error) {
	args := request.GetArguments()
	in := setupInput{
		Token:      stringArg(args, "token"),
		DatabaseID: stringArg(args, "database_id"),
	}
	return in, validateInput(in)
}

// stringArg returns args[key] when it is a string. Any other type reads as
// empty and fails validation.
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// validateInput turns validation failures into "<arg> is required" style
// messages, one per failing argument.
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
