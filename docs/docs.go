// Package docs holds the generated Swagger specification for the API.
// Hand-maintained in place of swag's codegen output, kept in the same
// shape swag would produce so gin-swagger can serve it unchanged.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health Check",
                "responses": { "200": { "description": "Service is healthy" } }
            }
        },
        "/capacity": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Calculate Carrier Embedding Capacity",
                "consumes": ["multipart/form-data"],
                "responses": { "200": { "description": "Successfully calculated embedding capacity" } }
            }
        },
        "/encode": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Embed an Encrypted Payload in a Carrier",
                "consumes": ["multipart/form-data"],
                "produces": ["application/octet-stream"],
                "responses": { "200": { "description": "Successfully embedded payload" } }
            }
        },
        "/decode": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Extract and Decrypt a Payload from a Stego Carrier",
                "consumes": ["multipart/form-data"],
                "produces": ["application/octet-stream"],
                "responses": { "200": { "description": "Successfully extracted payload" } }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "stegolock API",
	Description:      "Encrypted LSB steganography over PNG, BMP, and WAV carriers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
