package api

import (
	"context"

	"github.com/synapsehq/synapse-mcp/internal/domain/todo"
)

// ListTodos fetches the todos for a team.
func (c *Client) ListTodos(ctx context.Context, teamID string) ([]todo.Todo, error) {
	var todos []todo.Todo
	if err := c.get(ctx, "/todos/team/"+teamID, &todos); err != nil {
		return nil, err
	}
	for _, t := range todos {
		if err := t.Validate(); err != nil {
			return nil, &DecodeError{Entity: "todo", Err: err}
		}
	}
	return todos, nil
}

// CreateTodo posts a new todo and returns the server's record.
func (c *Client) CreateTodo(ctx context.Context, req todo.CreateRequest) (todo.Todo, error) {
	if err := todo.ValidateCreateInput(req); err != nil {
		return todo.Todo{}, err
	}
	if req.AssignedUserEmails == nil {
		req.AssignedUserEmails = []string{}
	}
	var created todo.Todo
	if err := c.post(ctx, "/todos/", req, &created); err != nil {
		return todo.Todo{}, err
	}
	if err := created.Validate(); err != nil {
		return todo.Todo{}, &DecodeError{Entity: "todo", Err: err}
	}
	return created, nil
}

// DeleteTodo removes a todo by ID.
func (c *Client) DeleteTodo(ctx context.Context, todoID string) error {
	return c.delete(ctx, "/todos/"+todoID)
}
