package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldCommand   = "command"
	FieldSnapshot  = "snapshot"
	FieldFrom      = "from"
	FieldTo        = "to"
	FieldName      = "name"
	FieldCount     = "count"
	FieldRoot      = "root"
	FieldError     = "error"
	FieldCommit    = "commit"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStore   = "store"
	ComponentLedger  = "ledger"
	ComponentReport  = "report"
	ComponentGit     = "git"
	ComponentHistory = "history"
)
