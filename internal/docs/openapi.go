// Package docs builds and serves the OpenAPI description of the product API.
package docs

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// NewSpec assembles the OpenAPI 3 document for the product API. The document
// is built once at startup and served as-is.
func NewSpec() *openapi3.T {
	productSchema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewInt64Schema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("price", openapi3.NewFloat64Schema()).
		WithProperty("availability", openapi3.NewBoolSchema())
	productSchema.Required = []string{"id", "name", "price", "availability"}

	createSchema := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("price", positivePrice())
	createSchema.Required = []string{"name", "price"}

	updateSchema := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("price", positivePrice()).
		WithProperty("availability", openapi3.NewBoolSchema())
	updateSchema.Required = []string{"name", "price", "availability"}

	fieldErrorSchema := openapi3.NewObjectSchema().
		WithProperty("msg", openapi3.NewStringSchema()).
		WithProperty("param", openapi3.NewStringSchema()).
		WithProperty("location", openapi3.NewStringSchema())

	validationErrorSchema := openapi3.NewObjectSchema().
		WithPropertyRef("errors", openapi3.NewSchemaRef("", openapi3.NewArraySchema().WithItems(fieldErrorSchema)))

	errorSchema := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema())

	messageSchema := openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema())

	productRef := openapi3.NewSchemaRef("#/components/schemas/Product", productSchema)
	validationRef := openapi3.NewSchemaRef("#/components/schemas/ValidationError", validationErrorSchema)
	errorRef := openapi3.NewSchemaRef("#/components/schemas/Error", errorSchema)

	idParam := &openapi3.ParameterRef{
		Value: openapi3.NewPathParameter("id").
			WithSchema(openapi3.NewInt64Schema()).
			WithDescription("Product identifier"),
	}

	collectionItem := &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "listProducts",
			Summary:     "List all products",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, jsonResponse("Product list",
					openapi3.NewSchemaRef("", openapi3.NewArraySchema().WithItems(productSchema)))),
				openapi3.WithStatus(500, jsonResponse("Store error", errorRef)),
			),
		},
		Post: &openapi3.Operation{
			OperationID: "createProduct",
			Summary:     "Create a product",
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithRequired(true).
					WithJSONSchemaRef(openapi3.NewSchemaRef("", createSchema)),
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(201, jsonResponse("Created product", productRef)),
				openapi3.WithStatus(400, jsonResponse("Validation failure", validationRef)),
				openapi3.WithStatus(500, jsonResponse("Store error", errorRef)),
			),
		},
	}

	itemPath := &openapi3.PathItem{
		Parameters: openapi3.Parameters{idParam},
		Get: &openapi3.Operation{
			OperationID: "getProduct",
			Summary:     "Get a product by ID",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, jsonResponse("Product", productRef)),
				openapi3.WithStatus(400, jsonResponse("Validation failure", validationRef)),
				openapi3.WithStatus(404, jsonResponse("Product not found", errorRef)),
				openapi3.WithStatus(500, jsonResponse("Store error", errorRef)),
			),
		},
		Put: &openapi3.Operation{
			OperationID: "updateProduct",
			Summary:     "Replace a product",
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithRequired(true).
					WithJSONSchemaRef(openapi3.NewSchemaRef("", updateSchema)),
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, jsonResponse("Updated product", productRef)),
				openapi3.WithStatus(400, jsonResponse("Validation failure", validationRef)),
				openapi3.WithStatus(404, jsonResponse("Product not found", errorRef)),
				openapi3.WithStatus(500, jsonResponse("Store error", errorRef)),
			),
		},
		Patch: &openapi3.Operation{
			OperationID: "toggleProductAvailability",
			Summary:     "Toggle product availability",
			Description: "Flips the availability flag of the product. Applying the operation twice restores the original value.",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, jsonResponse("Updated product", productRef)),
				openapi3.WithStatus(400, jsonResponse("Validation failure", validationRef)),
				openapi3.WithStatus(404, jsonResponse("Product not found", errorRef)),
				openapi3.WithStatus(500, jsonResponse("Store error", errorRef)),
			),
		},
		Delete: &openapi3.Operation{
			OperationID: "deleteProduct",
			Summary:     "Delete a product",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, jsonResponse("Deletion confirmation",
					openapi3.NewSchemaRef("", messageSchema))),
				openapi3.WithStatus(400, jsonResponse("Validation failure", validationRef)),
				openapi3.WithStatus(404, jsonResponse("Product not found", errorRef)),
				openapi3.WithStatus(500, jsonResponse("Store error", errorRef)),
			),
		},
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Product API",
			Description: "CRUD operations over the Product resource.",
			Version:     "1.0.0",
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/api/products", collectionItem),
			openapi3.WithPath("/api/products/{id}", itemPath),
		),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Product":         openapi3.NewSchemaRef("", productSchema),
				"ValidationError": openapi3.NewSchemaRef("", validationErrorSchema),
				"Error":           openapi3.NewSchemaRef("", errorSchema),
			},
		},
	}
}

func positivePrice() *openapi3.Schema {
	schema := openapi3.NewFloat64Schema().WithMin(0)
	schema.ExclusiveMin = true
	return schema
}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(schema),
	}
}
