package domain

// IntentType enumerates the commands the settings surface understands.
type IntentType string

const (
	IntentDraw    IntentType = "draw"
	IntentAdd     IntentType = "add"
	IntentRemove  IntentType = "remove"
	IntentCount   IntentType = "count"
	IntentSound   IntentType = "sound"
	IntentList    IntentType = "list"
	IntentLoad    IntentType = "load"
	IntentSave    IntentType = "save"
	IntentDismiss IntentType = "dismiss"
	IntentHelp    IntentType = "help"
	IntentQuit    IntentType = "quit"
	IntentUnknown IntentType = "unknown"
)

// Intent is a parsed user command. Payload carries the argument for
// intents that take one (a name, a count, a path, on/off).
type Intent struct {
	Type    IntentType
	Payload string
}
