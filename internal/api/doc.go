// Package api handles incoming HTTP requests for the task endpoints: request
// parsing, field validation, and response formatting. It adapts HTTP to the
// operations of service.TaskService.
package api
