package http

import (
	"fmt"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathUUID binds a required simple-style path parameter.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

// pageParams binds the optional page and limit query parameters. Absent
// values are zero and normalized by the queries.
func pageParams(c echo.Context) (page, limit int, err error) {
	params := c.QueryParams()
	var pagePtr, limitPtr *int
	if err = runtime.BindQueryParameter("form", true, false, "page", params, &pagePtr); err != nil {
		return 0, 0, errs.NewValueIsInvalidErrorWithCause("page", err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "limit", params, &limitPtr); err != nil {
		return 0, 0, errs.NewValueIsInvalidErrorWithCause("limit", err)
	}
	if pagePtr != nil {
		page = *pagePtr
	}
	if limitPtr != nil {
		limit = *limitPtr
	}
	return page, limit, nil
}

// queryString binds an optional string query parameter.
func queryString(c echo.Context, name string) (string, error) {
	var value *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("bind query: %w", err))
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}
