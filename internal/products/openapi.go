package products

import "github.com/JaimeStill/product-catalog/pkg/openapi"

type spec struct {
	Create    *openapi.Operation
	Count     *openapi.Operation
	List      *openapi.Operation
	UpdateAll *openapi.Operation
	Find      *openapi.Operation
	Update    *openapi.Operation
	Replace   *openapi.Operation
	Delete    *openapi.Operation
}

func filterParams() []*openapi.Parameter {
	return []*openapi.Parameter{
		openapi.QueryParam("name", "string", "Filter by name (contains)", false),
		openapi.QueryParam("description", "string", "Filter by description (contains)", false),
		openapi.QueryParam("search", "string", "Search in name and description", false),
	}
}

func idParam() *openapi.Parameter {
	return openapi.PathParam("id", "uuid", "Product ID")
}

var Spec = spec{
	Create: &openapi.Operation{
		OperationID: "createProduct",
		Summary:     "Create product",
		Description: "Create a product. previewImage must be empty or a URL.",
		RequestBody: openapi.RequestBodyJSON("CreateProductCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product created", "Product"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	},
	Count: &openapi.Operation{
		OperationID: "countProducts",
		Summary:     "Count products",
		Parameters:  filterParams(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product count", "Count"),
		},
	},
	List: &openapi.Operation{
		OperationID: "listProducts",
		Summary:     "List products",
		Description: "List products with pagination, search, sorting and optional filters",
		Parameters: append([]*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("sort", "string", "Sort fields: name, price, createdAt, updatedAt (\"-\" prefix for descending)", false),
		}, filterParams()...),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Products list", "ProductPageResult"),
		},
	},
	UpdateAll: &openapi.Operation{
		OperationID: "patchProducts",
		Summary:     "Patch products",
		Description: "Apply a patch to every product matching the filters",
		Parameters:  filterParams(),
		RequestBody: openapi.RequestBodyJSON("ProductPatch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated count", "Count"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		OperationID: "findProduct",
		Summary:     "Find product",
		Parameters:  []*openapi.Parameter{idParam()},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product details", "Product"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		OperationID: "patchProduct",
		Summary:     "Patch product",
		Parameters:  []*openapi.Parameter{idParam()},
		RequestBody: openapi.RequestBodyJSON("ProductPatch", true),
		Responses: map[int]*openapi.Response{
			204: {Description: "Product updated"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Replace: &openapi.Operation{
		OperationID: "replaceProduct",
		Summary:     "Replace product",
		Description: "Replace a product. A data:image/<type>;base64 previewImage is stored as a file " +
			"in the background and rewritten to its public URL.",
		Parameters:  []*openapi.Parameter{idParam()},
		RequestBody: openapi.RequestBodyJSON("ReplaceProductCommand", true),
		Responses: map[int]*openapi.Response{
			204: {Description: "Product replaced"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Delete: &openapi.Operation{
		OperationID: "deleteProduct",
		Summary:     "Delete product",
		Description: "Delete a product and its stored preview image",
		Parameters:  []*openapi.Parameter{idParam()},
		Responses: map[int]*openapi.Response{
			204: {Description: "Product deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	command := func(required ...string) *openapi.Schema {
		return &openapi.Schema{
			Type:     "object",
			Required: required,
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string"},
				"description":  {Type: "string"},
				"price":        {Type: "number", Minimum: openapi.Min(0)},
				"previewImage": {Type: "string"},
			},
		}
	}

	replace := command("name")
	replace.Properties["previewImage"] = &openapi.Schema{
		Type:        "string",
		Description: "Image URL or data:image/<type>;base64,<payload>",
	}

	return map[string]*openapi.Schema{
		"Product": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid", ReadOnly: true},
				"name":         {Type: "string"},
				"description":  {Type: "string"},
				"price":        {Type: "number", Minimum: openapi.Min(0)},
				"previewImage": {Type: "string", Description: "Empty or image URL"},
				"createdAt":    {Type: "string", Format: "date-time", ReadOnly: true},
				"updatedAt":    {Type: "string", Format: "date-time", ReadOnly: true},
			},
		},
		"CreateProductCommand":  command("name"),
		"ReplaceProductCommand": replace,
		"ProductPatch":          command(),
		"ProductPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Product")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
