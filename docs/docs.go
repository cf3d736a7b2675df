// Package docs holds the OpenAPI description built from the handler
// annotations. Regenerate with `swag init -g cmd/server/main.go`.
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
        "/": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Landing page",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.landingResponse"
                        }
                    }
                }
            }
        },
        "/admin/": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboards"
                ],
                "summary": "Admin dashboard",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.adminDashboardResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/accounts": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "List accounts",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ADMIN, RESIDENT or GUARD",
                        "name": "role",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum results (default 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Account"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/accounts/{id}": {
            "delete": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "Deactivate an account",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Account id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/amenities": {
            "post": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "amenities"
                ],
                "summary": "Add an amenity",
                "parameters": [
                    {
                        "description": "Amenity",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.createAmenityRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Amenity"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/amenities/{id}": {
            "patch": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "amenities"
                ],
                "summary": "Open or close an amenity for booking",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Amenity id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Availability",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.availabilityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Amenity"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/bills": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bills"
                ],
                "summary": "List bills",
                "parameters": [
                    {
                        "type": "string",
                        "description": "PENDING, PAID, OVERDUE or PARTIAL",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Only bills of this unit",
                        "name": "unit_id",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_MaintenanceBill"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bills"
                ],
                "summary": "Raise a maintenance bill",
                "parameters": [
                    {
                        "description": "Bill details; billing_month is YYYY-MM",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.createBillRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.MaintenanceBill"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/bills/{id}": {
            "patch": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bills"
                ],
                "summary": "Change a bill's status",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Bill id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Target status",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.statusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.MaintenanceBill"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/bookings": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "amenities"
                ],
                "summary": "List bookings",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Only bookings of this amenity",
                        "name": "amenity_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "PENDING, CONFIRMED, CANCELLED or COMPLETED",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_AmenityBooking"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/bookings/{id}": {
            "patch": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "amenities"
                ],
                "summary": "Confirm, cancel or complete a booking",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Booking id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Target status",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.statusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.AmenityBooking"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/complaints": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "complaints"
                ],
                "summary": "List complaints",
                "parameters": [
                    {
                        "type": "string",
                        "description": "OPEN, IN_PROGRESS, RESOLVED or CLOSED",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Only complaints not yet resolved or closed",
                        "name": "open",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Complaint"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/complaints/{id}": {
            "patch": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "complaints"
                ],
                "summary": "Update or assign a complaint",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Complaint id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to change",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.updateComplaintRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Complaint"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/notices": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "notices"
                ],
                "summary": "All notices",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Notice"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "notices"
                ],
                "summary": "Post a notice",
                "parameters": [
                    {
                        "description": "Notice; expiry_date is YYYY-MM-DD",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.postNoticeRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Notice"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/notices/{id}": {
            "delete": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "tags": [
                    "notices"
                ],
                "summary": "Withdraw a notice",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Notice id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/residents": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "residents"
                ],
                "summary": "List residents",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Only residents of this unit",
                        "name": "unit_id",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Resident"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "residents"
                ],
                "summary": "Register a resident in a unit",
                "parameters": [
                    {
                        "description": "Resident profile",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.createResidentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Resident"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/transactions": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bills"
                ],
                "summary": "List transactions",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Only this resident's payments",
                        "name": "resident_id",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum results (default 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Transaction"
                        }
                    }
                }
            }
        },
        "/admin/units": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "units"
                ],
                "summary": "List units",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Unit"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "units"
                ],
                "summary": "Create a unit",
                "parameters": [
                    {
                        "description": "Unit details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.createUnitRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Unit"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/admin/units/{id}": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "units"
                ],
                "summary": "Get a unit",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Unit id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Unit"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/amenities": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "amenities"
                ],
                "summary": "List amenities",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Only amenities open for booking",
                        "name": "available",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Amenity"
                        }
                    }
                }
            }
        },
        "/guard/": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboards"
                ],
                "summary": "Guard dashboard",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.guardDashboardResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/guard/visitors": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "visitors"
                ],
                "summary": "List visitors",
                "parameters": [
                    {
                        "type": "string",
                        "description": "IN or OUT",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Visitor"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "visitors"
                ],
                "summary": "Check a visitor in",
                "parameters": [
                    {
                        "description": "Visitor details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.checkInRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Visitor"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/guard/visitors/{id}/checkout": {
            "post": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "visitors"
                ],
                "summary": "Check a visitor out",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Visitor id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Visitor"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.readinessResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/handler.readinessResponse"
                        }
                    }
                }
            }
        },
        "/login": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Login form",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.formResponse"
                        }
                    },
                    "303": {
                        "description": "already logged in, redirected to the dashboard"
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.loginRequest"
                        }
                    }
                ],
                "responses": {
                    "303": {
                        "description": "redirect to the role dashboard"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/logout": {
            "get": {
                "tags": [
                    "auth"
                ],
                "summary": "Logout",
                "responses": {
                    "303": {
                        "description": "redirect to /login"
                    }
                }
            }
        },
        "/notices": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "notices"
                ],
                "summary": "Current notices",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Notice"
                        }
                    }
                }
            }
        },
        "/resident/": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboards"
                ],
                "summary": "Resident dashboard",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.residentDashboardResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/resident/amenities/{id}/bookings": {
            "post": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "amenities"
                ],
                "summary": "Book an amenity",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Amenity id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Time range (RFC 3339), same day",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.bookAmenityRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.AmenityBooking"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/resident/bills": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bills"
                ],
                "summary": "Bills of the caller's unit",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_MaintenanceBill"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/resident/bills/{id}/pay": {
            "post": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bills"
                ],
                "summary": "Pay a bill",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Bill id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Payment details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.payBillRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Transaction"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/resident/bookings": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "amenities"
                ],
                "summary": "Bookings made by the caller",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_AmenityBooking"
                        }
                    }
                }
            }
        },
        "/resident/complaints": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "complaints"
                ],
                "summary": "Complaints raised by the caller",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Complaint"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "complaints"
                ],
                "summary": "Raise a complaint",
                "parameters": [
                    {
                        "description": "Complaint",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.raiseComplaintRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Complaint"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        },
        "/resident/transactions": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bills"
                ],
                "summary": "Payments made by the caller",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Transaction"
                        }
                    }
                }
            }
        },
        "/resident/visitors": {
            "get": {
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "visitors"
                ],
                "summary": "Visitors of the caller's unit",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Visitor"
                        }
                    }
                }
            }
        },
        "/signup": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Signup form",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.formResponse"
                        }
                    },
                    "303": {
                        "description": "already logged in, redirected to the dashboard"
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json",
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Create an account",
                "parameters": [
                    {
                        "description": "Signup form",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.signupRequest"
                        }
                    }
                ],
                "responses": {
                    "303": {
                        "description": "redirect to /login with a success notice"
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handler.errorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.Account": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "role": {
                    "$ref": "#/definitions/domain.Role"
                },
                "phone": {
                    "type": "string"
                },
                "profile_image": {
                    "type": "string"
                },
                "date_of_birth": {
                    "type": "string"
                },
                "is_active_resident": {
                    "type": "boolean"
                },
                "date_joined": {
                    "type": "string"
                },
                "last_login": {
                    "type": "string"
                }
            }
        },
        "domain.Amenity": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "is_available": {
                    "type": "boolean"
                },
                "image": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "domain.AmenityBooking": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "resident_id": {
                    "type": "string"
                },
                "amenity_id": {
                    "type": "string"
                },
                "starts_at": {
                    "type": "string"
                },
                "ends_at": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/domain.BookingStatus"
                },
                "purpose": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "domain.BillStatus": {
            "type": "string",
            "enum": [
                "PENDING",
                "PAID",
                "OVERDUE",
                "PARTIAL"
            ],
            "x-enum-varnames": [
                "BillPending",
                "BillPaid",
                "BillOverdue",
                "BillPartial"
            ]
        },
        "domain.BookingStatus": {
            "type": "string",
            "enum": [
                "PENDING",
                "CONFIRMED",
                "CANCELLED",
                "COMPLETED"
            ],
            "x-enum-varnames": [
                "BookingPending",
                "BookingConfirmed",
                "BookingCancelled",
                "BookingCompleted"
            ]
        },
        "domain.Complaint": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "raised_by": {
                    "type": "string"
                },
                "category": {
                    "$ref": "#/definitions/domain.ComplaintCategory"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/domain.ComplaintStatus"
                },
                "priority": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "resolved_date": {
                    "type": "string"
                },
                "assigned_to": {
                    "type": "string"
                }
            }
        },
        "domain.ComplaintCategory": {
            "type": "string",
            "enum": [
                "MAINTENANCE",
                "WATER",
                "ELECTRICITY",
                "GAS",
                "NOISE",
                "PARKING",
                "SECURITY",
                "OTHER"
            ],
            "x-enum-varnames": [
                "CategoryMaintenance",
                "CategoryWater",
                "CategoryElectricity",
                "CategoryGas",
                "CategoryNoise",
                "CategoryParking",
                "CategorySecurity",
                "CategoryOther"
            ]
        },
        "domain.ComplaintStatus": {
            "type": "string",
            "enum": [
                "OPEN",
                "IN_PROGRESS",
                "RESOLVED",
                "CLOSED"
            ],
            "x-enum-varnames": [
                "ComplaintOpen",
                "ComplaintInProgress",
                "ComplaintResolved",
                "ComplaintClosed"
            ]
        },
        "domain.MaintenanceBill": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "unit_id": {
                    "type": "string"
                },
                "billing_month": {
                    "type": "string"
                },
                "amount": {
                    "type": "integer"
                },
                "penalty": {
                    "type": "integer"
                },
                "status": {
                    "$ref": "#/definitions/domain.BillStatus"
                },
                "payment_date": {
                    "type": "string"
                },
                "payment_mode": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "domain.Notice": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "priority": {
                    "$ref": "#/definitions/domain.NoticePriority"
                },
                "posted_by": {
                    "type": "string"
                },
                "posted_date": {
                    "type": "string"
                },
                "expiry_date": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "is_active": {
                    "type": "boolean"
                }
            }
        },
        "domain.NoticePriority": {
            "type": "string",
            "enum": [
                "LOW",
                "MEDIUM",
                "HIGH",
                "URGENT"
            ],
            "x-enum-varnames": [
                "NoticeLow",
                "NoticeMedium",
                "NoticeHigh",
                "NoticeUrgent"
            ]
        },
        "domain.PaymentMode": {
            "type": "string",
            "enum": [
                "CASH",
                "CHEQUE",
                "ONLINE",
                "UPI"
            ],
            "x-enum-varnames": [
                "PayCash",
                "PayCheque",
                "PayOnline",
                "PayUPI"
            ]
        },
        "domain.Resident": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "account_id": {
                    "type": "string"
                },
                "unit_id": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/domain.ResidentStatus"
                },
                "vehicle_no": {
                    "type": "string"
                },
                "member_count": {
                    "type": "integer"
                },
                "move_in_date": {
                    "type": "string"
                },
                "move_out_date": {
                    "type": "string"
                },
                "emergency_contact": {
                    "type": "string"
                },
                "emergency_phone": {
                    "type": "string"
                },
                "occupation": {
                    "type": "string"
                }
            }
        },
        "domain.ResidentStatus": {
            "type": "string",
            "enum": [
                "OWNER",
                "TENANT",
                "FAMILY_MEMBER"
            ],
            "x-enum-varnames": [
                "ResidentOwner",
                "ResidentTenant",
                "ResidentFamilyMember"
            ]
        },
        "domain.Role": {
            "type": "string",
            "enum": [
                "ADMIN",
                "RESIDENT",
                "GUARD"
            ],
            "x-enum-varnames": [
                "RoleAdmin",
                "RoleResident",
                "RoleGuard"
            ]
        },
        "domain.Transaction": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "bill_id": {
                    "type": "string"
                },
                "resident_id": {
                    "type": "string"
                },
                "amount": {
                    "type": "integer"
                },
                "transaction_type": {
                    "$ref": "#/definitions/domain.TransactionType"
                },
                "payment_mode": {
                    "$ref": "#/definitions/domain.PaymentMode"
                },
                "reference_no": {
                    "type": "string"
                },
                "transaction_date": {
                    "type": "string"
                },
                "remarks": {
                    "type": "string"
                }
            }
        },
        "domain.TransactionType": {
            "type": "string",
            "enum": [
                "MAINTENANCE",
                "OTHER_CHARGE",
                "REFUND",
                "AMENITY_BOOKING"
            ],
            "x-enum-varnames": [
                "TxMaintenance",
                "TxOtherCharge",
                "TxRefund",
                "TxAmenityBooking"
            ]
        },
        "domain.Unit": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "unit_no": {
                    "type": "string"
                },
                "wing": {
                    "type": "string"
                },
                "floor": {
                    "type": "integer"
                },
                "unit_type": {
                    "$ref": "#/definitions/domain.UnitType"
                },
                "sq_ft": {
                    "type": "number"
                },
                "is_occupied": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "domain.UnitType": {
            "type": "string",
            "enum": [
                "1BHK",
                "2BHK",
                "3BHK",
                "4BHK",
                "SHOP",
                "OFFICE"
            ],
            "x-enum-varnames": [
                "Unit1BHK",
                "Unit2BHK",
                "Unit3BHK",
                "Unit4BHK",
                "UnitShop",
                "UnitOffice"
            ]
        },
        "domain.Visitor": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "visit_unit_id": {
                    "type": "string"
                },
                "host_id": {
                    "type": "string"
                },
                "purpose": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/domain.VisitorStatus"
                },
                "in_time": {
                    "type": "string"
                },
                "out_time": {
                    "type": "string"
                },
                "vehicle_no": {
                    "type": "string"
                },
                "logged_by": {
                    "type": "string"
                }
            }
        },
        "domain.VisitorStatus": {
            "type": "string",
            "enum": [
                "IN",
                "OUT"
            ],
            "x-enum-varnames": [
                "VisitorIn",
                "VisitorOut"
            ]
        },
        "handler.adminDashboardResponse": {
            "type": "object",
            "properties": {
                "role": {
                    "$ref": "#/definitions/domain.Role"
                },
                "units_total": {
                    "type": "integer"
                },
                "units_occupied": {
                    "type": "integer"
                },
                "residents": {
                    "type": "integer"
                },
                "pending_bills": {
                    "type": "integer"
                },
                "overdue_bills": {
                    "type": "integer"
                },
                "open_complaints": {
                    "type": "integer"
                },
                "visitors_inside": {
                    "type": "integer"
                },
                "_links": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "handler.availabilityRequest": {
            "type": "object",
            "properties": {
                "is_available": {
                    "type": "boolean"
                }
            }
        },
        "handler.bookAmenityRequest": {
            "type": "object",
            "properties": {
                "starts_at": {
                    "type": "string"
                },
                "ends_at": {
                    "type": "string"
                },
                "purpose": {
                    "type": "string"
                }
            }
        },
        "handler.checkInRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "visit_unit_id": {
                    "type": "string"
                },
                "host_id": {
                    "type": "string"
                },
                "purpose": {
                    "type": "string"
                },
                "vehicle_no": {
                    "type": "string"
                }
            }
        },
        "handler.createAmenityRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                }
            }
        },
        "handler.createBillRequest": {
            "type": "object",
            "properties": {
                "unit_id": {
                    "type": "string"
                },
                "billing_month": {
                    "type": "string"
                },
                "amount": {
                    "type": "integer"
                },
                "penalty": {
                    "type": "integer"
                }
            }
        },
        "handler.createResidentRequest": {
            "type": "object",
            "properties": {
                "account_id": {
                    "type": "string"
                },
                "unit_id": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "vehicle_no": {
                    "type": "string"
                },
                "member_count": {
                    "type": "integer"
                },
                "move_in_date": {
                    "type": "string"
                },
                "emergency_contact": {
                    "type": "string"
                },
                "emergency_phone": {
                    "type": "string"
                },
                "occupation": {
                    "type": "string"
                }
            }
        },
        "handler.createUnitRequest": {
            "type": "object",
            "properties": {
                "unit_no": {
                    "type": "string"
                },
                "wing": {
                    "type": "string"
                },
                "floor": {
                    "type": "integer"
                },
                "unit_type": {
                    "type": "string"
                },
                "sq_ft": {
                    "type": "number"
                }
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "fields": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "handler.formField": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "required": {
                    "type": "boolean"
                },
                "choices": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "handler.formResponse": {
            "type": "object",
            "properties": {
                "form": {
                    "type": "string"
                },
                "action": {
                    "type": "string"
                },
                "fields": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.formField"
                    }
                },
                "notice": {
                    "type": "string"
                }
            }
        },
        "handler.guardDashboardResponse": {
            "type": "object",
            "properties": {
                "role": {
                    "$ref": "#/definitions/domain.Role"
                },
                "visitors_inside": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Visitor"
                    }
                },
                "checked_in_today": {
                    "type": "integer"
                },
                "notices": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Notice"
                    }
                },
                "_links": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "handler.landingResponse": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "_links": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "notice": {
                    "type": "string"
                }
            }
        },
        "handler.listResponse-domain_Account": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Account"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_Amenity": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Amenity"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_AmenityBooking": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.AmenityBooking"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_Complaint": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Complaint"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_MaintenanceBill": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.MaintenanceBill"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_Notice": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Notice"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_Resident": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Resident"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_Transaction": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Transaction"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_Unit": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Unit"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_Visitor": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Visitor"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "handler.payBillRequest": {
            "type": "object",
            "properties": {
                "payment_mode": {
                    "type": "string"
                },
                "remarks": {
                    "type": "string"
                }
            }
        },
        "handler.postNoticeRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                },
                "expiry_date": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                }
            }
        },
        "handler.raiseComplaintRequest": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "integer"
                }
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "dependencies": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/handler.dependencyStatus"
                    }
                }
            }
        },
        "handler.residentDashboardResponse": {
            "type": "object",
            "properties": {
                "role": {
                    "$ref": "#/definitions/domain.Role"
                },
                "resident": {
                    "$ref": "#/definitions/domain.Resident"
                },
                "unit": {
                    "$ref": "#/definitions/domain.Unit"
                },
                "pending_bills": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.MaintenanceBill"
                    }
                },
                "open_complaints": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Complaint"
                    }
                },
                "upcoming_bookings": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.AmenityBooking"
                    }
                },
                "notices": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Notice"
                    }
                },
                "_links": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "handler.signupRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "password_confirmation": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                }
            }
        },
        "handler.statusRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            }
        },
        "handler.updateComplaintRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "assigned_to": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {
            "type": "apiKey",
            "name": "session_id",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Society API",
	Description:      "Residential society management: accounts, role dashboards, billing, visitors, complaints, amenities and notices.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
