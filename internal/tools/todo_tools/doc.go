// Package todo_tools registers the MCP tools of the task server:
// add_task, list_tasks, remove_task, sync_to_notion and setup_notion.
//
// Every tool answers with a JSON object as text content, either
// {"message": "..."} or, for list_tasks, {"todos": [...]}. A missing or
// empty required argument is rejected with a tool error before any state
// is touched. Failures of the remote store are not tool errors; they are
// reported in the message.
package todo_tools
