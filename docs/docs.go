// Package docs is generated by swag init from the handler annotations.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.UserIDResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/auth/validate-token": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Validate the session cookie",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.UserIDResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "New user", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/hotels": {
            "get": {
                "produces": ["application/json"],
                "tags": ["hotels"],
                "summary": "List hotels",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/hotels.Hotel"}}}
                }
            }
        },
        "/hotels/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["hotels"],
                "summary": "Search hotels",
                "parameters": [
                    {"type": "string", "name": "destination", "in": "query"},
                    {"type": "integer", "name": "adultCount", "in": "query"},
                    {"type": "integer", "name": "childCount", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "name": "facilities", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "name": "types", "in": "query"},
                    {"type": "array", "items": {"type": "integer"}, "name": "stars", "in": "query"},
                    {"type": "number", "name": "maxPrice", "in": "query"},
                    {"type": "string", "name": "sortOption", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.PaginatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/hotels/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["hotels"],
                "summary": "Hotel detail",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/hotels.Hotel"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/hotels/{id}/bookings/payment-intent": {
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Create a payment intent",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Stay length", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/bookings.PaymentIntentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/bookings.PaymentIntentResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/hotels/{id}/bookings": {
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Confirm a booking",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Booking form", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/bookings.BookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/hotels.Booking"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/my-bookings": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List my bookings",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/hotels.Hotel"}}}
                }
            }
        },
        "/my-hotels": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["my-hotels"],
                "summary": "List my hotels",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/hotels.Hotel"}}}
                }
            },
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["my-hotels"],
                "summary": "Create a hotel",
                "parameters": [
                    {"type": "file", "name": "imageFiles", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/hotels.Hotel"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/my-hotels/{id}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["my-hotels"],
                "summary": "Get my hotel",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/hotels.Hotel"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"CookieAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["my-hotels"],
                "summary": "Update my hotel",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/hotels.Hotel"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "auth.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "auth.RegisterRequest": {
            "type": "object",
            "required": ["email", "password", "firstName", "lastName"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"}
            }
        },
        "auth.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"}
            }
        },
        "auth.UserIDResponse": {
            "type": "object",
            "properties": {"userId": {"type": "string"}}
        },
        "bookings.PaymentIntentRequest": {
            "type": "object",
            "required": ["numberOfNights"],
            "properties": {"numberOfNights": {"type": "integer", "example": 3}}
        },
        "bookings.PaymentIntentResponse": {
            "type": "object",
            "properties": {
                "paymentIntentId": {"type": "string"},
                "clientSecret": {"type": "string"},
                "totalCost": {"type": "number", "example": 2310}
            }
        },
        "bookings.BookingRequest": {
            "type": "object",
            "required": ["firstName", "lastName", "email", "checkIn", "checkOut", "paymentIntentId"],
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "adultCount": {"type": "integer"},
                "childCount": {"type": "integer"},
                "checkIn": {"type": "string"},
                "checkOut": {"type": "string"},
                "paymentIntentId": {"type": "string"},
                "totalCost": {"type": "number"}
            }
        },
        "hotels.Booking": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "userId": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "adultCount": {"type": "integer"},
                "childCount": {"type": "integer"},
                "checkIn": {"type": "string"},
                "checkOut": {"type": "string"},
                "totalCost": {"type": "number"},
                "paymentIntentId": {"type": "string"}
            }
        },
        "hotels.Hotel": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "userId": {"type": "string"},
                "name": {"type": "string"},
                "city": {"type": "string"},
                "country": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string"},
                "adultCount": {"type": "integer"},
                "childCount": {"type": "integer"},
                "facilities": {"type": "array", "items": {"type": "string"}},
                "pricePerNight": {"type": "number"},
                "starRating": {"type": "integer"},
                "imageUrls": {"type": "array", "items": {"type": "string"}},
                "lastUpdated": {"type": "string"},
                "bookings": {"type": "array", "items": {"$ref": "#/definitions/hotels.Booking"}}
            }
        },
        "response.PaginatedResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/hotels.Hotel"}},
                "pagination": {"$ref": "#/definitions/pagination.Pagination"}
            }
        },
        "pagination.Pagination": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "pages": {"type": "integer"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "unauthorized"},
                "code": {"type": "string", "example": "AUTH_INVALID_TOKEN"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/validator.FieldError"}}
            }
        },
        "response.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "User registered successfully"}}
        },
        "validator.FieldError": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "CookieAuth": {"type": "apiKey", "name": "auth_token", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Hotel Booking API",
	Description:      "Hotel listings, search, owner management and paid bookings",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
