package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Checklist EPI/EPC API",
        "description": "Field inspection checklists for safety equipment and tools",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Checklist",
            "description": "Checklist sessions"
        },
        {
            "name": "Catalog",
            "description": "Teams and category options"
        },
        {
            "name": "Export",
            "description": "Excel, PDF and CSV documents"
        },
        {
            "name": "History",
            "description": "Recently finalized checklists"
        }
    ],
    "paths": {
        "/sessions": {
            "post": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Start a checklist session",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Get a checklist session",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Discard a checklist session",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/sessions/{id}/reset": {
            "post": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Start a new checklist in the session",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/sector": {
            "put": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Select the sector",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SelectSectorRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/modality": {
            "put": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Select the OBRAS modality",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SelectModalityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/mode": {
            "put": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Select the checklist mode",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SelectModeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/team": {
            "put": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Select the team",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SelectTeamRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/names": {
            "patch": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Update the header names",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SetNamesRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/filter": {
            "put": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Set the category filter",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SetFilterRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/items/{itemId}": {
            "patch": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Edit the found quantity or the note of an item",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    },
                    {
                        "name": "itemId",
                        "in": "path",
                        "type": "integer",
                        "required": true,
                        "description": "Item ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateItemRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/items/{itemId}/evidence": {
            "post": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Attach a photo to an item",
                "consumes": [
                    "multipart/form-data"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    },
                    {
                        "name": "itemId",
                        "in": "path",
                        "type": "integer",
                        "required": true,
                        "description": "Item ID"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "type": "file",
                        "required": true
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "413": {
                        "description": "File too large",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "415": {
                        "description": "Not an image",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/confirmation": {
            "put": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Toggle the final confirmation",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SetConfirmationRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/finalize": {
            "post": {
                "tags": [
                    "Checklist"
                ],
                "summary": "Finalize the checklist and record it in history",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Header incomplete or confirmation missing",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}/export": {
            "get": {
                "tags": [
                    "Export"
                ],
                "summary": "Export the filtered items of a session",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Session ID"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "description": "xlsx (default), pdf or csv"
                    },
                    {
                        "name": "store",
                        "in": "query",
                        "type": "boolean",
                        "description": "Archive the file and return a signed link"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Document",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "201": {
                        "description": "Archived",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/excel/checklist": {
            "post": {
                "tags": [
                    "Export"
                ],
                "summary": "Render a checklist as an Excel workbook",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ChecklistExportRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Document",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "500": {
                        "description": "Generation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/pdf/checklist": {
            "post": {
                "tags": [
                    "Export"
                ],
                "summary": "Render a checklist as a PDF",
                "produces": [
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ChecklistExportRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Document",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "500": {
                        "description": "Generation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/csv/checklist": {
            "post": {
                "tags": [
                    "Export"
                ],
                "summary": "Render a checklist as CSV",
                "produces": [
                    "text/csv"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ChecklistExportRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Document",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "500": {
                        "description": "Generation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": [
                    "Export"
                ],
                "summary": "Download an archived export",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "token",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Document",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/teams": {
            "get": {
                "tags": [
                    "Catalog"
                ],
                "summary": "List teams",
                "parameters": [
                    {
                        "name": "sector",
                        "in": "query",
                        "type": "string",
                        "description": "STC or OBRAS"
                    },
                    {
                        "name": "modality",
                        "in": "query",
                        "type": "string",
                        "description": "LV or LM"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/categories": {
            "get": {
                "tags": [
                    "Catalog"
                ],
                "summary": "List category filter options",
                "parameters": [
                    {
                        "name": "sector",
                        "in": "query",
                        "type": "string",
                        "description": "STC or OBRAS"
                    },
                    {
                        "name": "mode",
                        "in": "query",
                        "type": "string",
                        "description": "VIATURA or COLABORADOR"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/history": {
            "get": {
                "tags": [
                    "History"
                ],
                "summary": "List recent finalized checklists, newest first",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/history/{id}": {
            "get": {
                "tags": [
                    "History"
                ],
                "summary": "Get a finalized checklist",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "SelectSectorRequest": {
            "type": "object",
            "properties": {
                "setor": {
                    "type": "string",
                    "enum": [
                        "",
                        "STC",
                        "OBRAS"
                    ]
                }
            }
        },
        "SelectModalityRequest": {
            "type": "object",
            "properties": {
                "modalidadeObras": {
                    "type": "string",
                    "enum": [
                        "",
                        "LV",
                        "LM"
                    ]
                }
            }
        },
        "SelectModeRequest": {
            "type": "object",
            "properties": {
                "modoChecklist": {
                    "type": "string",
                    "enum": [
                        "",
                        "VIATURA",
                        "COLABORADOR"
                    ]
                }
            }
        },
        "SelectTeamRequest": {
            "type": "object",
            "properties": {
                "codigoEquipe": {
                    "type": "string"
                }
            }
        },
        "SetNamesRequest": {
            "type": "object",
            "properties": {
                "eletricista1": {
                    "type": "string"
                },
                "eletricista2": {
                    "type": "string"
                },
                "colaboradorIndividual": {
                    "type": "string"
                },
                "responsavelChecklist": {
                    "type": "string"
                }
            }
        },
        "SetFilterRequest": {
            "type": "object",
            "properties": {
                "filtroTipo": {
                    "type": "string",
                    "enum": [
                        "TODOS",
                        "EPI",
                        "EPC",
                        "Ferr. Ind",
                        "Ferr. Colet"
                    ]
                }
            },
            "required": [
                "filtroTipo"
            ]
        },
        "SetConfirmationRequest": {
            "type": "object",
            "properties": {
                "confirmacaoFinal": {
                    "type": "boolean"
                }
            },
            "required": [
                "confirmacaoFinal"
            ]
        },
        "UpdateItemRequest": {
            "type": "object",
            "properties": {
                "campo": {
                    "type": "string",
                    "enum": [
                        "qtdeEncontrada",
                        "observacao"
                    ]
                },
                "valor": {
                    "description": "Non-negative integer, string or null"
                }
            },
            "required": [
                "campo"
            ]
        },
        "ExportLine": {
            "type": "object",
            "properties": {
                "tipo": {
                    "type": "string"
                },
                "descricao": {
                    "type": "string"
                },
                "qtdeEncontrada": {
                    "description": "Integer, numeric string, empty string or null"
                },
                "observacao": {
                    "type": "string"
                }
            }
        },
        "ChecklistExportRequest": {
            "type": "object",
            "properties": {
                "setor": {
                    "type": "string"
                },
                "modoChecklist": {
                    "type": "string"
                },
                "tipoEquipe": {
                    "type": "string"
                },
                "codigoEquipe": {
                    "type": "string"
                },
                "eletricista1": {
                    "type": "string"
                },
                "eletricista2": {
                    "type": "string"
                },
                "colaboradorIndividual": {
                    "type": "string"
                },
                "responsavelChecklist": {
                    "type": "string"
                },
                "linhas": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ExportLine"
                    }
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "details": {
                    "type": "object"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
