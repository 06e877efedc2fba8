package assets

import "github.com/JaimeStill/product-catalog/pkg/openapi"

type spec struct {
	Serve *openapi.Operation
}

var Spec = spec{
	Serve: &openapi.Operation{
		OperationID: "getProductImage",
		Summary:     "Get product image",
		Description: "Serve a stored preview image. Content type is detected from the file contents.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("filename", "", "Image filename, e.g. preview_<id>.png"),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Image bytes",
				Content: map[string]*openapi.MediaType{
					"image/*": {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
