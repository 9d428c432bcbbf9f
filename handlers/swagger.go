package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRoutes) {
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
    <title>AskBook API - Swagger</title>
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
  "info": { "title": "askbook-api", "version": "v1.0.0" },
  "paths": {
    "/register": {
      "post": {
        "summary": "Create an email/password account",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "201": { "description": "user record" }, "400": { "description": "provider error text" } }
      }
    },
    "/login": {
      "post": {
        "summary": "Issue a custom token for a registered email",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "{token}" }, "400": { "description": "provider error text" } }
      }
    },
    "/logout": {
      "post": { "summary": "Stateless logout", "responses": { "200": { "description": "confirmation text" } } }
    },
    "/books": {
      "get": {
        "summary": "List books matching every given exact-match filter",
        "parameters": [
          {"name":"age","in":"query","schema":{"type":"string"}},
          {"name":"rating","in":"query","schema":{"type":"string"}},
          {"name":"genre","in":"query","schema":{"type":"string"}},
          {"name":"author","in":"query","schema":{"type":"string"}},
          {"name":"title","in":"query","schema":{"type":"string"}}
        ],
        "responses": { "200": { "description": "array of book records" }, "404": { "description": "no matching books" }, "500": { "description": "store error text" } }
      }
    },
    "/books/{id}": {
      "get": {
        "summary": "Get one book record",
        "parameters": [ {"name":"id","in":"path","required":true,"schema":{"type":"string"}} ],
        "responses": { "200": { "description": "book record" }, "404": { "description": "book not found" }, "500": { "description": "store error text" } }
      }
    },
    "/download-model/{modelName}": {
      "get": {
        "summary": "Copy model/<modelName> from blob storage to the local models directory",
        "parameters": [ {"name":"modelName","in":"path","required":true,"schema":{"type":"string"}} ],
        "responses": { "200": { "description": "confirmation text" }, "400": { "description": "invalid model name" }, "500": { "description": "storage error text" } }
      }
    }
  }
}`
