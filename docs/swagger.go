// Package docs registers the OpenAPI spec served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": ["http"],
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Registration, login, and session management"},
        {"name": "Projects", "description": "Project management operations"},
        {"name": "Tasks", "description": "Task management operations"},
        {"name": "Team", "description": "Team membership and invitations"},
        {"name": "Notifications", "description": "User notifications"},
        {"name": "Analytics", "description": "Aggregated project and task statistics"},
        {"name": "Chat", "description": "Project chat history"}
    ]
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "SynergySphere API",
	Description:      "Team collaboration API: projects, tasks, team membership, chat, notifications, and analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
