// Package api содержит встроенную OpenAPI-спецификацию, которую отдаёт
// swagger-роут.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
