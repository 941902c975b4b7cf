package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUsername   = "username"
	FieldSourceMode = "source_mode"
	FieldTxCount    = "transaction_count"
	FieldTxRef      = "transaction_ref"
	FieldAmount     = "amount_cents"
	FieldCategory   = "category"
	FieldPeriod     = "period"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentAuth   = "auth"
	ComponentSource = "source"
	ComponentReport = "report"
	ComponentAudit  = "audit"
	ComponentCache  = "cache"
)

// Operations defines standard operation names
const (
	OpLogin    = "login"
	OpLogout   = "logout"
	OpFetch    = "fetch"
	OpFilter   = "filter"
	OpCreate   = "create"
	OpExport   = "export"
	OpRender   = "render"
	OpPublish  = "publish"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
