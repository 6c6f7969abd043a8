package http

const (
	CodeUnknown              = "UNKNOWN"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeInvalidJSON          = "INVALID_JSON"
	CodeBadRequest           = "BAD_REQUEST"
	CodeInvalidPath          = "INVALID_PATH"
	CodeRouteNotFound        = "ROUTE_NOT_FOUND"
	CodeInvalidPlaceIDFormat = "INVALID_PLACE_ID_FORMAT"
	CodeInvalidUserIDFormat  = "INVALID_USER_ID_FORMAT"
	CodeMissingAuthorization = "MISSING_AUTHORIZATION"
	CodeInvalidToken         = "INVALID_TOKEN"
)
