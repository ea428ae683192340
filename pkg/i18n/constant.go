package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL          = "error.internal"
	ERROR_NOTFOUND          = "error.notfound"
	ERROR_INVALIDARGUMENT   = "error.invalidargument"
	ERROR_PERMISSION_DENIED = "error.permission.denied"
	ERROR_UNAUTHORIZED      = "error.unauthorized"
	ERROR_EXIST             = "error.exist"
	ERROR_FORBIDDEN         = "error.forbidden"
	ERROR_TOO_MANY_REQUESTS = "error.tooManyRequests"

	ERROR_INVALID_TOKEN = "error.invalid.token"

	ERROR_LOGIC_QUOTE_TEXT_EMPTY = "error.logic.quote.text.empty"
	ERROR_LOGIC_INVALID_DATE     = "error.logic.invalid.date"
	ERROR_UNSUPPORTED_FILE_TYPE  = "error.unsupported.filetype"
)
