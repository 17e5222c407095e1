package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the activity service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>fitlog activities — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "fitlog-activities", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Activity": {"type":"object","properties":{"id":{"type":"string"},"userId":{"type":"string"},"type":{"type":"string"},"durationMinutes":{"type":"integer"},"calories":{"type":"integer"},"notes":{"type":"string"},"timestamp":{"type":"string","format":"date-time"},"createdAt":{"type":"string","format":"date-time"}}},
      "Error": {"type":"object","properties":{"error":{"type":"string"}}}
    }
  },
  "paths": {
    "/log-activity": {
      "post": {
        "summary": "Log an activity; calories are estimated from the MET table",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["userId","type","durationMinutes"],"properties":{"id":{"type":"string"},"userId":{"type":"string"},"type":{"type":"string","example":"run"},"durationMinutes":{"type":"integer","minimum":1},"notes":{"type":"string"},"weight":{"type":"number","default":70}}}}}},
        "responses": { "200": { "description": "activity stored" }, "400": { "description": "invalid request" }, "500": { "description": "storage error" } }
      }
    },
    "/activities/{userId}": {
      "get": { "summary": "List a user's activities, newest first", "parameters": [{"name":"userId","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "count and items" }, "500": { "description": "storage error" } } }
    },
    "/activities/summary/{userId}": {
      "get": {
        "summary": "Totals over a time window (default: last 7 days)",
        "parameters": [
          {"name":"userId","in":"path","required":true,"schema":{"type":"string"}},
          {"name":"type","in":"query","schema":{"type":"string"}},
          {"name":"from","in":"query","schema":{"type":"string","format":"date-time"}},
          {"name":"to","in":"query","schema":{"type":"string","format":"date-time"}}
        ],
        "responses": { "200": { "description": "summary" }, "400": { "description": "invalid filter" }, "500": { "description": "storage error" } }
      }
    },
    "/activities/{activityId}": {
      "put": {
        "summary": "Overwrite type, durationMinutes and/or notes",
        "parameters": [{"name":"activityId","in":"path","required":true,"schema":{"type":"string"}}],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["userId"],"properties":{"userId":{"type":"string"},"type":{"type":"string"},"durationMinutes":{"type":"integer","minimum":1},"notes":{"type":"string"}}}}}},
        "responses": { "200": { "description": "updated activity" }, "400": { "description": "invalid request" }, "404": { "description": "activity not found" }, "500": { "description": "storage error" } }
      },
      "delete": {
        "summary": "Delete an activity",
        "parameters": [{"name":"activityId","in":"path","required":true,"schema":{"type":"string"}},{"name":"userId","in":"query","required":true,"schema":{"type":"string"}}],
        "responses": { "200": { "description": "deleted" }, "400": { "description": "missing userId" }, "404": { "description": "activity not found" }, "500": { "description": "storage error" } }
      }
    },
    "/activities/{userId}/export": {
      "get": { "summary": "Download activities as CSV", "parameters": [{"name":"userId","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "text/csv attachment" } } },
      "post": { "summary": "Upload a CSV export to object storage", "parameters": [{"name":"userId","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "key and presigned url" }, "500": { "description": "object storage not configured" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
