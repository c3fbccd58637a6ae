// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g app.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "info@bentech.app"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "description": "Checks the health of the API.",
                "produces": ["application/json"],
                "tags": ["Monitoring"],
                "summary": "Health Check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/models.HealthResponse"}
                    }
                }
            }
        },
        "/lookup/{domain}/whois": {
            "get": {
                "description": "Looks up the registrable base domain of the given name. The presence of the 'force' query parameter, with any value, looks up the exact name instead.",
                "produces": ["application/json"],
                "tags": ["Domain Lookup"],
                "summary": "WHOIS lookup for a domain",
                "parameters": [
                    {"type": "string", "example": "www.example.com", "description": "Domain name", "name": "domain", "in": "path", "required": true},
                    {"type": "string", "description": "Look up the exact name instead of its base domain", "name": "force", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "WHOIS sections in server order", "schema": {"$ref": "#/definitions/models.WhoisLookupResponse"}},
                    "400": {"description": "Invalid domain", "schema": {"$ref": "#/definitions/models.APIErrorResponse"}},
                    "404": {"description": "No results found", "schema": {"$ref": "#/definitions/models.APIErrorResponse"}},
                    "502": {"description": "WHOIS server unavailable", "schema": {"$ref": "#/definitions/models.APIErrorResponse"}}
                }
            }
        },
        "/lookup/{domain}/certs": {
            "get": {
                "description": "Searches certificate-transparency logs for the exact name given. An empty list is a successful result.",
                "produces": ["application/json"],
                "tags": ["Domain Lookup"],
                "summary": "Certificates issued for a domain",
                "parameters": [
                    {"type": "string", "example": "www.example.com", "description": "Domain name", "name": "domain", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Certificates in provider order", "schema": {"$ref": "#/definitions/models.CertsLookupResponse"}},
                    "502": {"description": "Certificate search unavailable", "schema": {"$ref": "#/definitions/models.APIErrorResponse"}}
                }
            }
        },
        "/lookup/{domain}/base": {
            "get": {
                "description": "Splits a name into subdomain, registrable base domain and public suffix using the Public Suffix List.",
                "produces": ["application/json"],
                "tags": ["Domain Lookup"],
                "summary": "Base domain of a name",
                "parameters": [
                    {"type": "string", "example": "www.example.co.uk", "description": "Domain name", "name": "domain", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BaseDomainResponse"}},
                    "400": {"description": "Invalid domain", "schema": {"$ref": "#/definitions/models.APIErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.WhoisSection": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "domain.WhoisSummary": {
            "type": "object",
            "properties": {
                "registrar": {"type": "string"},
                "creation_date": {"type": "string"},
                "expiration_date": {"type": "string"},
                "updated_date": {"type": "string"},
                "name_servers": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.APIErrorResponse": {
            "type": "object",
            "properties": {
                "status_code": {"type": "integer"},
                "error_code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "UP"},
                "uptime": {"type": "string", "example": "1h2m3s"}
            }
        },
        "models.WhoisToggle": {
            "type": "object",
            "properties": {
                "notice": {"type": "string", "example": "Showing results for example.com"},
                "label": {"type": "string", "example": "Force lookup for www.example.com instead"},
                "link": {"type": "string", "example": "/lookup/www.example.com/whois?force"}
            }
        },
        "models.WhoisLookupResponse": {
            "type": "object",
            "properties": {
                "domain": {"type": "string", "example": "www.example.com"},
                "base_domain": {"type": "string", "example": "example.com"},
                "query_domain": {"type": "string", "example": "example.com"},
                "forced": {"type": "boolean"},
                "toggle": {"$ref": "#/definitions/models.WhoisToggle"},
                "sections": {"type": "array", "items": {"$ref": "#/definitions/domain.WhoisSection"}},
                "summary": {"$ref": "#/definitions/domain.WhoisSummary"},
                "query_time": {"type": "string"}
            }
        },
        "models.Certificate": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 12345678},
                "issuer_ca_id": {"type": "integer"},
                "issuer_name": {"type": "string"},
                "common_name": {"type": "string", "example": "www.example.com"},
                "names": {"type": "array", "items": {"type": "string"}},
                "serial_number": {"type": "string"},
                "entry_timestamp": {"type": "string"},
                "not_before": {"type": "string"},
                "not_after": {"type": "string"}
            }
        },
        "models.CertsLookupResponse": {
            "type": "object",
            "properties": {
                "domain": {"type": "string", "example": "www.example.com"},
                "count": {"type": "integer"},
                "message": {"type": "string", "example": "Found 3 certificates."},
                "certificates": {"type": "array", "items": {"$ref": "#/definitions/models.Certificate"}},
                "query_time": {"type": "string"}
            }
        },
        "models.BaseDomainResponse": {
            "type": "object",
            "properties": {
                "domain": {"type": "string", "example": "www.example.co.uk"},
                "base_domain": {"type": "string", "example": "example.co.uk"},
                "public_suffix": {"type": "string", "example": "co.uk"},
                "subdomain": {"type": "string", "example": "www"},
                "icann": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Domain Lookup API",
	Description:      "WHOIS and certificate-transparency lookups for domain names.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
