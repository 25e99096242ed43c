package client

import "github.com/santhosh-tekuri/jsonschema/v5"

const taskSchemaJSON = `{
	"type": "object",
	"required": ["id", "title", "priority", "status"],
	"properties": {
		"id": {"type": ["string", "integer"]},
		"title": {"type": "string"},
		"description": {"type": ["string", "null"]},
		"priority": {"enum": ["LOW", "MEDIUM", "HIGH", "URGENT"]},
		"status": {"enum": ["PENDING", "IN_PROGRESS", "COMPLETED", "CANCELLED"]},
		"dueDate": {"type": ["string", "null"]},
		"category": {"type": ["string", "null"]},
		"tags": {"type": ["string", "null"]}
	}
}`

var (
	tokenSchema = jsonschema.MustCompileString("token.json", `{
	"type": "object",
	"required": ["token"],
	"properties": {
		"token": {"type": "string", "minLength": 1}
	}
}`)

	taskSchema = jsonschema.MustCompileString("task.json", taskSchemaJSON)

	taskListSchema = jsonschema.MustCompileString("tasks.json", `{
	"type": "array",
	"items": `+taskSchemaJSON+`
}`)

	categoriesSchema = jsonschema.MustCompileString("categories.json", `{
	"type": "array",
	"items": {"type": ["string", "null"]}
}`)

	statisticsSchema = jsonschema.MustCompileString("statistics.json", `{
	"type": "object",
	"required": ["totalTasks", "byStatus", "byPriority"],
	"properties": {
		"totalTasks": {"type": "integer", "minimum": 0},
		"byStatus": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 0}},
		"byPriority": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 0}},
		"overdueTasksCount": {"type": ["integer", "null"]},
		"todayTasksCount": {"type": ["integer", "null"]},
		"weekTasksCount": {"type": ["integer", "null"]}
	}
}`)

	profileSchema = jsonschema.MustCompileString("profile.json", `{
	"type": "object",
	"required": ["username"],
	"properties": {
		"id": {"type": ["string", "integer"]},
		"username": {"type": "string"},
		"email": {"type": ["string", "null"]},
		"firstName": {"type": ["string", "null"]},
		"lastName": {"type": ["string", "null"]},
		"avatarUrl": {"type": ["string", "null"]}
	}
}`)
)
